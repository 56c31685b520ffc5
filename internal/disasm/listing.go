package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/opcode"
)

// Options defines options to control the listing output.
type Options struct {
	HexComments    bool // output opcode bytes as hex values in comments
	OffsetComments bool // output addresses in comments
	ZeroBytes      bool // output trailing zero bytes of the image
}

// line is a single listing entry of one instruction word or a trailing byte.
type line struct {
	address uint16
	data    []byte
	code    string
}

// WriteListing writes a linear listing of the program image, as loaded at
// the program start address, to w.
func WriteListing(w io.Writer, image []byte, options Options) error {
	if _, err := fmt.Fprintf(w, "; CHIP-8 program listing\n; Program starts at $%03X\n\n.org $%03X\n\n",
		memory.ProgramStart, memory.ProgramStart); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	end := len(image)
	if !options.ZeroBytes {
		end = lastNonZero(image)
		if end%opcode.Size != 0 && end < len(image) {
			end++ // keep the low byte of the last instruction word
		}
	}

	lines := splitLines(image[:end])
	labels := collectLabels(lines)

	for _, l := range lines {
		if label, ok := labels[l.address]; ok {
			if _, err := fmt.Fprintf(w, "%s:\n", label); err != nil {
				return fmt.Errorf("writing label %s: %w", label, err)
			}
		}
		if err := writeLine(w, l, options); err != nil {
			return err
		}
	}
	return nil
}

func splitLines(image []byte) []line {
	lines := make([]line, 0, len(image)/opcode.Size+1)

	for i := 0; i < len(image); i += opcode.Size {
		address := uint16(memory.ProgramStart + i)
		if i+1 >= len(image) {
			lines = append(lines, line{
				address: address,
				data:    image[i : i+1],
				code:    fmt.Sprintf(".byte $%02X", image[i]),
			})
			break
		}

		op := opcode.Opcode(uint16(image[i])<<8 | uint16(image[i+1]))
		lines = append(lines, line{
			address: address,
			data:    image[i : i+2],
			code:    Format(op),
		})
	}
	return lines
}

// collectLabels names the program start and every jump or call target that
// points to an instruction of the listing.
func collectLabels(lines []line) map[uint16]string {
	labels := map[uint16]string{}
	if len(lines) == 0 {
		return labels
	}

	known := make(map[uint16]struct{}, len(lines))
	for _, l := range lines {
		known[l.address] = struct{}{}
	}

	for _, l := range lines {
		if len(l.data) != opcode.Size {
			continue
		}
		op := opcode.Opcode(uint16(l.data[0])<<8 | uint16(l.data[1]))
		if ins := opcode.Decode(op); ins != opcode.Jp && ins != opcode.Call {
			continue
		}
		if _, ok := known[op.NNN()]; ok {
			labels[op.NNN()] = fmt.Sprintf("_label_%04x", op.NNN())
		}
	}

	labels[memory.ProgramStart] = "Start"
	return labels
}

func writeLine(w io.Writer, l line, options Options) error {
	text := "    " + l.code

	var comments []string
	if options.OffsetComments {
		comments = append(comments, fmt.Sprintf("$%04X", l.address))
	}
	if options.HexComments {
		hexBytes := make([]string, len(l.data))
		for i, b := range l.data {
			hexBytes[i] = fmt.Sprintf("%02X", b)
		}
		comments = append(comments, strings.Join(hexBytes, " "))
	}

	if len(comments) == 0 {
		if _, err := fmt.Fprintf(w, "%s\n", text); err != nil {
			return fmt.Errorf("writing code: %w", err)
		}
		return nil
	}

	if _, err := fmt.Fprintf(w, "%-32s ; %s\n", text, strings.Join(comments, ": ")); err != nil {
		return fmt.Errorf("writing code with comment: %w", err)
	}
	return nil
}

// lastNonZero returns the length of the image without trailing zero bytes.
func lastNonZero(image []byte) int {
	for i := len(image) - 1; i >= 0; i-- {
		if image[i] != 0 {
			return i + 1
		}
	}
	return 0
}
