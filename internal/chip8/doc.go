// Package chip8 implements the CHIP-8 execution engine.
//
// # Machine
//
// A Machine aggregates the 4KB memory, the register file (V0-VF, I, PC and
// the delay and sound timers), the 16 entry call stack, the 64x32
// framebuffer and the 16 key keypad. All components are created by New and
// mutated in place.
//
// # Cycle
//
// Every call to Cycle performs, in this order:
//  1. fetch the big-endian opcode at PC
//  2. advance PC by 2
//  3. decode and execute the instruction
//  4. decrement the delay and sound timers if they are running
//
// The wait for key instruction (Fx0A) does not block. The machine enters an
// awaiting key state instead and every following Cycle checks the keypad
// without fetching, until a key is pressed. The timers keep running while
// waiting.
//
// # Errors
//
// Memory accesses outside of the address space and call stack overflows or
// underflows are returned as *ExecutionError, which unwraps to
// memory.ErrOutOfRange, stack.ErrStackOverflow or stack.ErrStackUnderflow.
// Unknown opcodes are not errors, they execute as no-ops.
//
// # Usage Example
//
//	m := chip8.New(logger, chip8.Options{})
//	if err := m.LoadProgram(image); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for range cyclesPerFrame {
//		if err := m.Cycle(); err != nil {
//			return fmt.Errorf("running cycle: %w", err)
//		}
//	}
package chip8
