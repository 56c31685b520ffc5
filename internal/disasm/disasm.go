// Package disasm formats CHIP-8 opcodes as assembly for instruction traces
// and program listings.
package disasm

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Mnemonic returns the instruction name of the opcode.
// It returns false for words that do not encode a known instruction.
func Mnemonic(op opcode.Opcode) (string, bool) {
	if opcode.Decode(op) == opcode.Invalid {
		return "", false
	}

	w := uint16(op)
	for _, candidate := range chip8.Opcodes[int(op.Family())] {
		if candidate.Info.Mask&w == candidate.Info.Value && candidate.Instruction != nil {
			return candidate.Instruction.Name, true
		}
	}
	return "", false
}

// Format returns the assembly text of the opcode, words that do not encode
// a known instruction are returned as a .word directive.
func Format(op opcode.Opcode) string {
	name, ok := Mnemonic(op)
	if !ok {
		return fmt.Sprintf(".word $%04X", uint16(op))
	}

	if params := formatParams(op); params != "" {
		return name + " " + params
	}
	return name
}

// formatParams formats the operands of the opcode.
//
//nolint:cyclop // one case per operand layout
func formatParams(op opcode.Opcode) string {
	x, y := op.X(), op.Y()

	switch opcode.Decode(op) {
	case opcode.Sys, opcode.Jp, opcode.Call:
		return fmt.Sprintf("$%03X", op.NNN())

	case opcode.JpV0:
		return fmt.Sprintf("V0, $%03X", op.NNN())

	case opcode.SeImm, opcode.SneImm, opcode.LdImm, opcode.AddImm, opcode.Rnd:
		return fmt.Sprintf("V%X, $%02X", x, op.KK())

	case opcode.SeReg, opcode.SneReg, opcode.LdReg, opcode.Or, opcode.And, opcode.Xor,
		opcode.AddReg, opcode.Sub, opcode.Subn:
		return fmt.Sprintf("V%X, V%X", x, y)

	case opcode.Shr, opcode.Shl, opcode.Skp, opcode.Sknp:
		return fmt.Sprintf("V%X", x)

	case opcode.LdI:
		return fmt.Sprintf("I, $%03X", op.NNN())

	case opcode.Drw:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, op.N())

	case opcode.LdVxDT:
		return fmt.Sprintf("V%X, DT", x)

	case opcode.LdKey:
		return fmt.Sprintf("V%X, K", x)

	case opcode.LdDTVx:
		return fmt.Sprintf("DT, V%X", x)

	case opcode.LdSTVx:
		return fmt.Sprintf("ST, V%X", x)

	case opcode.AddI:
		return fmt.Sprintf("I, V%X", x)

	case opcode.LdFont:
		return fmt.Sprintf("F, V%X", x)

	case opcode.Bcd:
		return fmt.Sprintf("B, V%X", x)

	case opcode.Store:
		return fmt.Sprintf("[I], V%X", x)

	case opcode.Load:
		return fmt.Sprintf("V%X, [I]", x)

	default:
		return ""
	}
}
