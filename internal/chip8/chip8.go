package chip8

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/register"
	"github.com/retroenv/retrochip8/internal/stack"
	"github.com/retroenv/retrogolib/log"
)

// ErrProgramTooLarge is returned when a program image does not fit into
// the program area of the memory.
var ErrProgramTooLarge = errors.New("program image too large")

// Options defines options to control the machine.
type Options struct {
	Seed  uint64 // random generator seed, 0 selects a time based seed
	Trace bool   // log every executed instruction at debug level
}

// Machine is a CHIP-8 virtual machine. It exclusively owns its memory,
// registers, call stack, framebuffer and keypad. It is not safe for
// concurrent use.
type Machine struct {
	logger  *log.Logger
	options Options
	random  *rand.Rand

	memory    *memory.Memory
	registers *register.File
	stack     *stack.Stack
	display   *display.Framebuffer
	keypad    *keypad.Keypad

	program []byte // loaded image, reinstalled by Reset

	awaitingKey bool
	keyRegister uint8
	cycles      uint64
}

// New returns a machine with the font installed and the program counter
// set to the program start address.
func New(logger *log.Logger, options Options) *Machine {
	seed := options.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	m := &Machine{
		logger:    logger,
		options:   options,
		random:    rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
		memory:    memory.New(),
		registers: register.NewFile(memory.ProgramStart),
		stack:     stack.New(),
		display:   display.New(),
		keypad:    keypad.New(),
	}
	m.installFont()
	return m
}

// LoadProgram copies the program image verbatim to the program start address.
func (m *Machine) LoadProgram(image []byte) error {
	if len(image) > memory.MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(image), memory.MaxProgramSize)
	}
	if err := m.memory.WriteBlock(memory.ProgramStart, image); err != nil {
		return fmt.Errorf("writing program image: %w", err)
	}

	m.program = make([]byte, len(image))
	copy(m.program, image)
	m.logger.Debug("Program loaded",
		log.Hex("address", memory.ProgramStart),
		log.Int("size", len(image)))
	return nil
}

// Reset restores the initial machine state and reinstalls the font and the
// last loaded program image.
func (m *Machine) Reset() error {
	m.memory.Reset()
	m.registers.Reset(memory.ProgramStart)
	m.stack.Reset()
	m.display.Clear()
	m.keypad.ReleaseAll()
	m.awaitingKey = false
	m.keyRegister = 0
	m.cycles = 0

	m.installFont()
	if err := m.memory.WriteBlock(memory.ProgramStart, m.program); err != nil {
		return fmt.Errorf("writing program image: %w", err)
	}
	return nil
}

// Display returns the framebuffer for rendering.
func (m *Machine) Display() *display.Framebuffer {
	return m.display
}

// Keypad returns the input latch that the host input source writes to.
func (m *Machine) Keypad() *keypad.Keypad {
	return m.keypad
}

// Registers returns the register file.
func (m *Machine) Registers() *register.File {
	return m.registers
}

// Memory returns the machine memory.
func (m *Machine) Memory() *memory.Memory {
	return m.memory
}

// SoundActive reports whether the sound timer is running and the buzzer
// should sound.
func (m *Machine) SoundActive() bool {
	return m.registers.ST.Active()
}

// AwaitingKey returns the destination register of a pending wait for key
// instruction.
func (m *Machine) AwaitingKey() (uint8, bool) {
	return m.keyRegister, m.awaitingKey
}

// Cycles returns the number of executed cycles.
func (m *Machine) Cycles() uint64 {
	return m.cycles
}

func (m *Machine) installFont() {
	// the font region is always inside of the memory
	_ = m.memory.WriteBlock(memory.FontStart, fontSet[:])
}
