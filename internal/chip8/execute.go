package chip8

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrochip8/internal/register"
)

// execute runs a single decoded instruction. The program counter already
// points to the next instruction.
//
//nolint:funlen,cyclop // one case per instruction
func (m *Machine) execute(op opcode.Opcode) error {
	r := m.registers
	vx := &r.V[op.X()]
	vy := &r.V[op.Y()]

	switch opcode.Decode(op) {
	case opcode.Invalid, opcode.Sys:
		// consumes the cycle without side effects

	case opcode.Cls:
		m.display.Clear()

	case opcode.Ret:
		address, err := m.stack.Pop()
		if err != nil {
			return fmt.Errorf("returning from subroutine: %w", err)
		}
		r.PC.Set(address)

	case opcode.Jp:
		r.PC.Set(op.NNN())

	case opcode.Call:
		if err := m.stack.Push(r.PC.Get()); err != nil {
			return fmt.Errorf("calling subroutine $%03X: %w", op.NNN(), err)
		}
		r.PC.Set(op.NNN())

	case opcode.SeImm:
		m.skipIf(vx.Equal(op.KK()))

	case opcode.SneImm:
		m.skipIf(!vx.Equal(op.KK()))

	case opcode.SeReg:
		m.skipIf(vx.EqualRegister(vy))

	case opcode.SneReg:
		m.skipIf(!vx.EqualRegister(vy))

	case opcode.LdImm:
		vx.Set(op.KK())

	case opcode.AddImm:
		vx.IncrementBy(op.KK())

	case opcode.LdReg:
		vx.Set(vy.Get())

	case opcode.Or:
		vx.Set(vx.Get() | vy.Get())

	case opcode.And:
		vx.Set(vx.Get() & vy.Get())

	case opcode.Xor:
		vx.Set(vx.Get() ^ vy.Get())

	case opcode.AddReg:
		sum := uint16(vx.Get()) + uint16(vy.Get())
		vx.Set(uint8(sum))
		m.setFlag(sum > 0xFF)

	case opcode.Sub:
		noBorrow := vx.GreaterRegister(vy)
		vx.DecrementBy(vy.Get())
		m.setFlag(noBorrow)

	case opcode.Subn:
		noBorrow := vy.GreaterRegister(vx)
		vx.Set(vy.Get() - vx.Get())
		m.setFlag(noBorrow)

	case opcode.Shr:
		shiftedOut := vx.Get() & 0x01
		vx.Set(vx.Get() >> 1)
		m.setFlag(shiftedOut == 1)

	case opcode.Shl:
		shiftedOut := vx.Get() >> 7
		vx.Set(vx.Get() << 1)
		m.setFlag(shiftedOut == 1)

	case opcode.LdI:
		r.I.Set(op.NNN())

	case opcode.JpV0:
		r.PC.Set(op.NNN() + uint16(r.V[0].Get()))

	case opcode.Rnd:
		vx.Set(uint8(m.random.UintN(256)) & op.KK())

	case opcode.Drw:
		return m.draw(op, vx.Get(), vy.Get())

	case opcode.Skp:
		m.skipIf(m.keypad.IsPressed(keypad.Key(vx.Get())))

	case opcode.Sknp:
		m.skipIf(!m.keypad.IsPressed(keypad.Key(vx.Get())))

	case opcode.LdVxDT:
		vx.Set(r.DT.Get())

	case opcode.LdKey:
		m.awaitKey(op.X())

	case opcode.LdDTVx:
		r.DT.Set(vx.Get())

	case opcode.LdSTVx:
		r.ST.Set(vx.Get())

	case opcode.AddI:
		r.I.IncrementBy(uint16(vx.Get()))

	case opcode.LdFont:
		r.I.Set(glyphAddress(vx.Get()))

	case opcode.Bcd:
		return m.storeBCD(vx.Get())

	case opcode.Store:
		return m.storeRegisters(op.X())

	case opcode.Load:
		return m.loadRegisters(op.X())
	}

	return nil
}

// skipIf skips the next instruction if the condition holds.
func (m *Machine) skipIf(condition bool) {
	if condition {
		m.registers.PC.IncrementBy(opcode.Size)
	}
}

// setFlag stores a boolean result as 1 or 0 in VF.
func (m *Machine) setFlag(set bool) {
	var value uint8
	if set {
		value = 1
	}
	m.registers.V[register.Flag].Set(value)
}

func (m *Machine) draw(op opcode.Opcode, x, y uint8) error {
	address := m.registers.I.Get()
	rows, err := m.memory.ReadBlock(address, int(op.N()))
	if err != nil {
		return fmt.Errorf("reading sprite at $%04X: %w", address, err)
	}

	collision := m.display.DrawSprite(int(x), int(y), rows)
	m.setFlag(collision)
	return nil
}

// awaitKey completes immediately if a key is already pressed, otherwise
// the machine enters the awaiting key state that the following cycles resolve.
func (m *Machine) awaitKey(x uint8) {
	m.keyRegister = x
	m.awaitingKey = true
	m.resumeKeyWait()
}

func (m *Machine) storeBCD(value uint8) error {
	digits := []byte{value / 100, value / 10 % 10, value % 10}
	address := m.registers.I.Get()
	if err := m.memory.WriteBlock(address, digits); err != nil {
		return fmt.Errorf("storing BCD at $%04X: %w", address, err)
	}
	return nil
}

func (m *Machine) storeRegisters(x uint8) error {
	values := make([]byte, int(x)+1)
	for i := range values {
		values[i] = m.registers.V[i].Get()
	}

	address := m.registers.I.Get()
	if err := m.memory.WriteBlock(address, values); err != nil {
		return fmt.Errorf("storing V0-V%X at $%04X: %w", x, address, err)
	}
	return nil
}

func (m *Machine) loadRegisters(x uint8) error {
	address := m.registers.I.Get()
	values, err := m.memory.ReadBlock(address, int(x)+1)
	if err != nil {
		return fmt.Errorf("loading V0-V%X from $%04X: %w", x, address, err)
	}

	for i, value := range values {
		m.registers.V[i].Set(value)
	}
	return nil
}
