package chip8

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrogolib/log"
)

// ExecutionError describes an instruction that failed and its context.
type ExecutionError struct {
	PC     uint16        // address the opcode was fetched from
	Opcode opcode.Opcode // failing opcode
	Err    error         // memory or stack error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("executing %s at $%04X: %v", e.Opcode, e.PC, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Cycle runs one fetch, decode, execute and timer decay step.
// While a wait for key instruction is pending, the cycle only checks the
// keypad and decays the timers.
func (m *Machine) Cycle() error {
	m.cycles++

	if m.awaitingKey {
		m.resumeKeyWait()
		m.registers.DecayTimers()
		return nil
	}

	pc := m.registers.PC.Get()
	word, err := m.memory.ReadWord(pc)
	if err != nil {
		return fmt.Errorf("fetching opcode at $%04X: %w", pc, err)
	}
	m.registers.PC.IncrementBy(opcode.Size)

	op := opcode.Opcode(word)
	if m.options.Trace {
		m.logger.Debug("Executing",
			log.Hex("pc", pc),
			log.String("opcode", op.String()),
			log.String("code", disasm.Format(op)))
	}

	if err := m.execute(op); err != nil {
		return &ExecutionError{PC: pc, Opcode: op, Err: err}
	}

	m.registers.DecayTimers()
	return nil
}

// resumeKeyWait completes a pending wait for key instruction once a key is pressed.
func (m *Machine) resumeKeyWait() {
	key, ok := m.keypad.FirstPressed()
	if !ok {
		return
	}
	m.registers.V[m.keyRegister].Set(uint8(key))
	m.awaitingKey = false
}
