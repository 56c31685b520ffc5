// Package main implements a standalone CHIP-8 program disassembler
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrogolib/buildinfo"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	input  string
	output string

	quiet bool

	noHexComments bool
	noOffsets     bool
	zeroBytes     bool
}

func main() {
	options := readArguments()

	if !options.quiet {
		printBanner()
	}

	if err := disasmFile(options); err != nil {
		fmt.Println(fmt.Errorf("disassembling failed: %w", err))
		os.Exit(1)
	}
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.BoolVar(&options.noHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&options.noOffsets, "nooffsets", false, "do not output addresses in comments")
	flags.StringVar(&options.output, "o", "", "name of the output .asm file, printed on console if no name given")
	flags.BoolVar(&options.quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&options.zeroBytes, "z", false, "output the trailing zero bytes of the image")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) == 0 {
		printBanner()
		fmt.Printf("usage: chip8disasm [options] <file to disassemble>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	options.input = args[0]

	return options
}

func printBanner() {
	fmt.Println("[-----------------------------------------]")
	fmt.Println("[ chip8disasm - CHIP-8 program listing    ]")
	fmt.Printf("[-----------------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

func disasmFile(options optionFlags) error {
	image, err := loader.New().Load(options.input)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	var outputFile io.WriteCloser
	if options.output == "" {
		outputFile = os.Stdout
	} else {
		outputFile, err = os.Create(options.output)
		if err != nil {
			return fmt.Errorf("creating file '%s': %w", options.output, err)
		}
		defer func() { _ = outputFile.Close() }()
	}

	listingOptions := disasm.Options{
		HexComments:    !options.noHexComments,
		OffsetComments: !options.noOffsets,
		ZeroBytes:      options.zeroBytes,
	}
	if err := disasm.WriteListing(outputFile, image, listingOptions); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}
