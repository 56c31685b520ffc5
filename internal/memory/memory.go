// Package memory implements the flat, bounds-checked CHIP-8 address space.
package memory

import (
	"errors"
	"fmt"
)

// CHIP-8 memory layout constants.
//
//	0x000-0x04F: unused interpreter area
//	0x050-0x09F: hexadecimal font glyphs (16 x 5 bytes)
//	0x0A0-0x1FF: unused interpreter area
//	0x200-0xFFF: program image and data
const (
	// Size is the total size of the address space in bytes.
	Size = 4096

	// FontStart is the address of the first font glyph.
	FontStart = 0x50

	// ProgramStart is the address the program image is loaded to and
	// where execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program image that fits into memory.
	MaxProgramSize = Size - ProgramStart
)

// ErrOutOfRange is returned for any access whose window exceeds the memory size.
var ErrOutOfRange = errors.New("address out of range")

// Memory is a fixed size byte addressable memory.
// An access of width w at address a is valid when a+w <= Size.
type Memory struct {
	data [Size]byte
}

// New returns a zeroed memory.
func New() *Memory {
	return &Memory{}
}

// ReadByte reads a single byte.
func (m *Memory) ReadByte(address uint16) (byte, error) {
	if err := checkRange(address, 1); err != nil {
		return 0, err
	}
	return m.data[address], nil
}

// WriteByte writes a single byte.
func (m *Memory) WriteByte(address uint16, value byte) error {
	if err := checkRange(address, 1); err != nil {
		return err
	}
	m.data[address] = value
	return nil
}

// ReadWord reads a big-endian 16 bit word, the high byte is at address.
func (m *Memory) ReadWord(address uint16) (uint16, error) {
	if err := checkRange(address, 2); err != nil {
		return 0, err
	}
	return uint16(m.data[address])<<8 | uint16(m.data[address+1]), nil
}

// WriteWord writes a big-endian 16 bit word, the high byte is written to address.
func (m *Memory) WriteWord(address, value uint16) error {
	if err := checkRange(address, 2); err != nil {
		return err
	}
	m.data[address] = byte(value >> 8)
	m.data[address+1] = byte(value)
	return nil
}

// ReadBlock returns a copy of length bytes starting at address.
func (m *Memory) ReadBlock(address uint16, length int) ([]byte, error) {
	if err := checkRange(address, length); err != nil {
		return nil, err
	}
	block := make([]byte, length)
	copy(block, m.data[address:])
	return block, nil
}

// WriteBlock copies data to memory starting at address. Memory is not
// modified if the block does not fit.
func (m *Memory) WriteBlock(address uint16, data []byte) error {
	if err := checkRange(address, len(data)); err != nil {
		return err
	}
	copy(m.data[address:], data)
	return nil
}

// Reset zeroes the whole memory.
func (m *Memory) Reset() {
	clear(m.data[:])
}

func checkRange(address uint16, width int) error {
	if width < 0 || int(address)+width > Size {
		return fmt.Errorf("%w: $%04X+%d exceeds $%04X", ErrOutOfRange, address, width, Size)
	}
	return nil
}
