package opcode

// Instruction identifies one of the 35 CHIP-8 instructions.
type Instruction uint8

// CHIP-8 instructions, named after their conventional opcode pattern.
const (
	Invalid Instruction = iota // unmapped or reserved opcode, executes as no-op
	Sys                        // 0nnn: machine code routine, ignored
	Cls                        // 00E0: clear display
	Ret                        // 00EE: return from subroutine
	Jp                         // 1nnn: jump to nnn
	Call                       // 2nnn: call subroutine at nnn
	SeImm                      // 3xkk: skip if Vx == kk
	SneImm                     // 4xkk: skip if Vx != kk
	SeReg                      // 5xy0: skip if Vx == Vy
	LdImm                      // 6xkk: Vx = kk
	AddImm                     // 7xkk: Vx += kk
	LdReg                      // 8xy0: Vx = Vy
	Or                         // 8xy1: Vx |= Vy
	And                        // 8xy2: Vx &= Vy
	Xor                        // 8xy3: Vx ^= Vy
	AddReg                     // 8xy4: Vx += Vy, VF = carry
	Sub                        // 8xy5: Vx -= Vy, VF = not borrow
	Shr                        // 8xy6: Vx >>= 1, VF = shifted out bit
	Subn                       // 8xy7: Vx = Vy - Vx, VF = not borrow
	Shl                        // 8xyE: Vx <<= 1, VF = shifted out bit
	SneReg                     // 9xy0: skip if Vx != Vy
	LdI                        // Annn: I = nnn
	JpV0                       // Bnnn: jump to nnn + V0
	Rnd                        // Cxkk: Vx = random byte AND kk
	Drw                        // Dxyn: draw n byte sprite at (Vx, Vy), VF = collision
	Skp                        // Ex9E: skip if key Vx is pressed
	Sknp                       // ExA1: skip if key Vx is not pressed
	LdVxDT                     // Fx07: Vx = delay timer
	LdKey                      // Fx0A: wait for key press, Vx = key
	LdDTVx                     // Fx15: delay timer = Vx
	LdSTVx                     // Fx18: sound timer = Vx
	AddI                       // Fx1E: I += Vx
	LdFont                     // Fx29: I = font glyph address of Vx
	Bcd                        // Fx33: store BCD of Vx at I, I+1, I+2
	Store                      // Fx55: store V0..Vx at I
	Load                       // Fx65: load V0..Vx from I

	instructionCount
)

var patterns = [instructionCount]string{
	Invalid: "invalid",
	Sys:     "0nnn",
	Cls:     "00E0",
	Ret:     "00EE",
	Jp:      "1nnn",
	Call:    "2nnn",
	SeImm:   "3xkk",
	SneImm:  "4xkk",
	SeReg:   "5xy0",
	LdImm:   "6xkk",
	AddImm:  "7xkk",
	LdReg:   "8xy0",
	Or:      "8xy1",
	And:     "8xy2",
	Xor:     "8xy3",
	AddReg:  "8xy4",
	Sub:     "8xy5",
	Shr:     "8xy6",
	Subn:    "8xy7",
	Shl:     "8xyE",
	SneReg:  "9xy0",
	LdI:     "Annn",
	JpV0:    "Bnnn",
	Rnd:     "Cxkk",
	Drw:     "Dxyn",
	Skp:     "Ex9E",
	Sknp:    "ExA1",
	LdVxDT:  "Fx07",
	LdKey:   "Fx0A",
	LdDTVx:  "Fx15",
	LdSTVx:  "Fx18",
	AddI:    "Fx1E",
	LdFont:  "Fx29",
	Bcd:     "Fx33",
	Store:   "Fx55",
	Load:    "Fx65",
}

// String returns the conventional opcode pattern of the instruction.
func (i Instruction) String() string {
	if i >= instructionCount {
		return patterns[Invalid]
	}
	return patterns[i]
}

// IsSkip reports whether the instruction conditionally skips the next one.
func (i Instruction) IsSkip() bool {
	switch i {
	case SeImm, SneImm, SeReg, SneReg, Skp, Sknp:
		return true
	default:
		return false
	}
}

// IsJump reports whether the instruction assigns the program counter unconditionally.
func (i Instruction) IsJump() bool {
	switch i {
	case Jp, JpV0, Call, Ret:
		return true
	default:
		return false
	}
}
