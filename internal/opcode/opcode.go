// Package opcode decodes 16 bit CHIP-8 instruction words.
package opcode

import "fmt"

// Size is the size of every CHIP-8 instruction in bytes.
const Size = 2

// Opcode is a fetched 16 bit instruction word.
type Opcode uint16

// Family returns the top nibble that selects the instruction family.
func (o Opcode) Family() uint8 {
	return uint8(o >> 12)
}

// X returns the upper operand nibble, usually a register index.
func (o Opcode) X() uint8 {
	return uint8(o>>8) & 0x0F
}

// Y returns the lower operand nibble, usually a register index.
func (o Opcode) Y() uint8 {
	return uint8(o>>4) & 0x0F
}

// N returns the lowest nibble.
func (o Opcode) N() uint8 {
	return uint8(o) & 0x0F
}

// KK returns the low byte immediate.
func (o Opcode) KK() uint8 {
	return uint8(o)
}

// NNN returns the 12 bit address immediate.
func (o Opcode) NNN() uint16 {
	return uint16(o) & 0x0FFF
}

func (o Opcode) String() string {
	return fmt.Sprintf("%04X", uint16(o))
}
