// Package options contains the program options.
package options

import (
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/disasm"
)

// Frontend names selectable with the -f flag.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Default values of the emulation flags.
const (
	DefaultCyclesPerFrame = 36
	DefaultFrameRate      = 30
	DefaultScale          = 15
	DefaultFrontend       = FrontendWindow
)

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input ROM file"`
	Output string `flag:"o" usage:"output file for the listing or the headless dump (default: stdout)"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend string `flag:"f" usage:"frontend: window, terminal, headless" default:"window"`
	Disasm   bool   `flag:"disasm" usage:"write a program listing and exit"`
	Trace    bool   `flag:"trace" usage:"log every executed instruction"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
}

// EmulationFlags contains timing and host options.
type EmulationFlags struct {
	CyclesPerFrame int    `flag:"cpf" usage:"instruction cycles per frame" default:"36"`
	FrameRate      int    `flag:"fps" usage:"frames per second" default:"30"`
	Scale          int    `flag:"scale" usage:"window pixel scale" default:"15"`
	Seed           uint64 `flag:"seed" usage:"random generator seed (0: time based)"`
	Mute           bool   `flag:"mute" usage:"disable the buzzer"`
	Frames         int    `flag:"frames" usage:"frames to run (headless: default 60, terminal: 0 unlimited)"`
}

// OutputFlags contains listing formatting options.
type OutputFlags struct {
	NoHexComments bool `flag:"nohexcomments" usage:"omit hex opcode bytes in comments"`
	NoOffsets     bool `flag:"nooffsets" usage:"omit addresses in comments"`
	ZeroBytes     bool `flag:"z" usage:"include trailing zero bytes of the image"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	EmulationFlags
	OutputFlags
}

// Machine returns the options of the virtual machine.
func (p Program) Machine() chip8.Options {
	return chip8.Options{
		Seed:  p.Seed,
		Trace: p.Trace,
	}
}

// Listing returns the options of the program listing.
func (p Program) Listing() disasm.Options {
	return disasm.Options{
		HexComments:    !p.NoHexComments,
		OffsetComments: !p.NoOffsets,
		ZeroBytes:      p.ZeroBytes,
	}
}
