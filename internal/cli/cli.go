// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
)

var validFrontends = []string{options.FrontendWindow, options.FrontendTerminal, options.FrontendHeadless}

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)
	readOutputFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if len(args) > 0 {
		opts.Input = args[0]
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: retrochip8 [options] <ROM file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	if opts.Trace {
		opts.Debug = true
	}

	if opts.CyclesPerFrame <= 0 {
		return fmt.Errorf("invalid cycles per frame %d: must be positive", opts.CyclesPerFrame)
	}
	if opts.FrameRate <= 0 {
		return fmt.Errorf("invalid frame rate %d: must be positive", opts.FrameRate)
	}
	if opts.Scale <= 0 {
		return fmt.Errorf("invalid window scale %d: must be positive", opts.Scale)
	}
	if opts.Frames < 0 {
		return fmt.Errorf("invalid frame count %d: must not be negative", opts.Frames)
	}

	for _, valid := range validFrontends {
		if opts.Frontend == valid {
			return nil
		}
	}

	return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
		opts.Frontend, strings.Join(validFrontends, ", "))
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Output, "o", "", "name of the output file for the listing or the headless dump, printed on console if no name given")
	flags.StringVar(&opts.Frontend, "f", options.DefaultFrontend, "frontend to run the program with ("+strings.Join(validFrontends, "/")+")")
	flags.BoolVar(&opts.Disasm, "disasm", false, "write a program listing instead of running the program")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	flags.IntVar(&opts.CyclesPerFrame, "cpf", options.DefaultCyclesPerFrame, "instruction cycles executed per frame")
	flags.IntVar(&opts.FrameRate, "fps", options.DefaultFrameRate, "frames per second")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "window pixel scale")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses a time based seed")
	flags.BoolVar(&opts.Mute, "mute", false, "disable the buzzer")
	flags.IntVar(&opts.Frames, "frames", 0, "number of frames to run, headless defaults to 60, 0 runs the terminal frontend unlimited")
}

func readOutputFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output addresses in comments")
	flags.BoolVar(&opts.ZeroBytes, "z", false, "output the trailing zero bytes of the image")
}
