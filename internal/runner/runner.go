// Package runner orchestrates loading a program and either listing it or
// running it with the selected frontend.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/frontend/terminal"
	"github.com/retroenv/retrochip8/internal/frontend/window"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Runner orchestrates the complete emulator workflow.
type Runner struct {
	logger *log.Logger
	loader *loader.Loader

	stdin     io.Reader
	stdout    io.Writer
	newBeeper func() (audio.Beeper, error)
}

// New creates a new runner that uses the process standard streams for the
// terminal frontend and the host audio device for the buzzer.
func New(logger *log.Logger) *Runner {
	return &Runner{
		logger: logger,
		loader: loader.New(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		newBeeper: func() (audio.Beeper, error) {
			buzzer, err := audio.NewBuzzer()
			if err != nil {
				return nil, err
			}
			return buzzer, nil
		},
	}
}

// Execute loads the program image and runs the workflow selected by the options.
func (r *Runner) Execute(ctx context.Context, opts options.Program) error {
	image, err := r.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program image: %w", err)
	}

	r.printInfo(opts, image)

	if opts.Disasm {
		return r.writeListing(opts, image)
	}
	return r.ExecuteWithImage(ctx, image, opts)
}

// ExecuteWithImage runs a pre-loaded program image with the selected frontend.
func (r *Runner) ExecuteWithImage(ctx context.Context, image []byte, opts options.Program) error {
	machine := chip8.New(r.logger, opts.Machine())
	if err := machine.LoadProgram(image); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	output, closeOutput, err := r.createDumpWriter(opts)
	if err != nil {
		return err
	}
	defer closeOutput()

	fe, err := r.createFrontend(opts, output)
	if err != nil {
		return fmt.Errorf("creating frontend: %w", err)
	}

	session := emulator.New(r.logger, machine, r.createBeeper(opts), emulator.Options{
		CyclesPerFrame: opts.CyclesPerFrame,
		FrameRate:      opts.FrameRate,
	})
	defer func() {
		if err := session.Close(); err != nil {
			r.logger.Warn("Closing session failed", log.Err(err))
		}
	}()

	r.logger.Debug("Starting frontend",
		log.String("frontend", opts.Frontend),
		log.Int("cpf", opts.CyclesPerFrame),
		log.Int("fps", opts.FrameRate))

	if err := fe.Run(ctx, session); err != nil {
		return fmt.Errorf("running %s frontend: %w", opts.Frontend, err)
	}

	r.logger.Debug("Frontend stopped",
		log.Uint64("frames", session.Frames()),
		log.Uint64("cycles", machine.Cycles()))
	return nil
}

// createFrontend creates the frontend selected by the options.
func (r *Runner) createFrontend(opts options.Program, output io.Writer) (frontend.Frontend, error) {
	switch opts.Frontend {
	case options.FrontendWindow:
		return window.New(r.logger, window.Options{
			Scale: opts.Scale,
			Title: "retrochip8 - " + filepath.Base(opts.Input),
		}), nil

	case options.FrontendTerminal:
		return terminal.New(r.logger, r.stdin, r.stdout, terminal.Options{
			Frames: opts.Frames,
		}), nil

	case options.FrontendHeadless:
		return headless.New(r.logger, output, opts.Frames), nil

	default:
		return nil, fmt.Errorf("unsupported frontend '%s'", opts.Frontend)
	}
}

// createBeeper opens the host audio device unless the buzzer is muted or
// the frontend has no host output. A missing audio device is not fatal.
func (r *Runner) createBeeper(opts options.Program) audio.Beeper {
	if opts.Mute || opts.Frontend == options.FrontendHeadless {
		return &audio.Silent{}
	}

	beeper, err := r.newBeeper()
	if err != nil {
		r.logger.Warn("Audio output not available, buzzer is muted", log.Err(err))
		return &audio.Silent{}
	}
	return beeper
}

func (r *Runner) writeListing(opts options.Program, image []byte) error {
	writer, closeWriter, err := createWriter(opts.Output, r.stdout)
	if err != nil {
		return err
	}
	defer closeWriter()

	if err := disasm.WriteListing(writer, image, opts.Listing()); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

// createDumpWriter returns the output of the headless framebuffer dump.
func (r *Runner) createDumpWriter(opts options.Program) (io.Writer, func(), error) {
	if opts.Frontend != options.FrontendHeadless {
		return io.Discard, func() {}, nil
	}
	return createWriter(opts.Output, r.stdout)
}

// printInfo prints information about the program being processed.
func (r *Runner) printInfo(opts options.Program, image []byte) {
	if opts.Quiet {
		return
	}

	if opts.Disasm {
		r.logger.Info("Disassembling CHIP-8 program",
			log.String("file", opts.Input),
			log.Int("size", len(image)),
		)
		return
	}

	r.logger.Info("Running CHIP-8 program",
		log.String("file", opts.Input),
		log.Int("size", len(image)),
		log.String("frontend", opts.Frontend),
	)
}
