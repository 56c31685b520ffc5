package opcode

// entry is a dispatch table slot. An opcode resolves to the slot instruction
// only if its fixed bits match, opcode & mask == value.
type entry struct {
	instruction Instruction
	mask        uint16
	value       uint16
}

func (e entry) matches(op Opcode) bool {
	return uint16(op)&e.mask == e.value
}

// firstLevel is indexed by the top nibble. Families 0, 8, E and F are
// ambiguous and are resolved by their second level table.
var firstLevel = [16]entry{
	0x1: {Jp, 0xF000, 0x1000},
	0x2: {Call, 0xF000, 0x2000},
	0x3: {SeImm, 0xF000, 0x3000},
	0x4: {SneImm, 0xF000, 0x4000},
	0x5: {SeReg, 0xF00F, 0x5000},
	0x6: {LdImm, 0xF000, 0x6000},
	0x7: {AddImm, 0xF000, 0x7000},
	0x9: {SneReg, 0xF00F, 0x9000},
	0xA: {LdI, 0xF000, 0xA000},
	0xB: {JpV0, 0xF000, 0xB000},
	0xC: {Rnd, 0xF000, 0xC000},
	0xD: {Drw, 0xF000, 0xD000},
}

// family0 is indexed by the low nibble.
var family0 = [16]entry{
	0x0: {Cls, 0xFFFF, 0x00E0},
	0xE: {Ret, 0xFFFF, 0x00EE},
}

// family8 is indexed by the low nibble.
var family8 = [16]entry{
	0x0: {LdReg, 0xF00F, 0x8000},
	0x1: {Or, 0xF00F, 0x8001},
	0x2: {And, 0xF00F, 0x8002},
	0x3: {Xor, 0xF00F, 0x8003},
	0x4: {AddReg, 0xF00F, 0x8004},
	0x5: {Sub, 0xF00F, 0x8005},
	0x6: {Shr, 0xF00F, 0x8006},
	0x7: {Subn, 0xF00F, 0x8007},
	0xE: {Shl, 0xF00F, 0x800E},
}

// familyE is indexed by the low nibble.
var familyE = [16]entry{
	0xE: {Skp, 0xF0FF, 0xE09E},
	0x1: {Sknp, 0xF0FF, 0xE0A1},
}

// familyF is indexed by the low byte.
var familyF = [256]entry{
	0x07: {LdVxDT, 0xF0FF, 0xF007},
	0x0A: {LdKey, 0xF0FF, 0xF00A},
	0x15: {LdDTVx, 0xF0FF, 0xF015},
	0x18: {LdSTVx, 0xF0FF, 0xF018},
	0x1E: {AddI, 0xF0FF, 0xF01E},
	0x29: {LdFont, 0xF0FF, 0xF029},
	0x33: {Bcd, 0xF0FF, 0xF033},
	0x55: {Store, 0xF0FF, 0xF055},
	0x65: {Load, 0xF0FF, 0xF065},
}

// Decode maps an opcode to its instruction. Opcodes that do not belong to
// any instruction decode to Invalid, 0nnn words other than 00E0 and 00EE
// decode to Sys.
func Decode(op Opcode) Instruction {
	var e entry

	switch family := op.Family(); family {
	case 0x0:
		e = family0[op.N()]
		if e.instruction == Invalid || !e.matches(op) {
			return Sys
		}
		return e.instruction
	case 0x8:
		e = family8[op.N()]
	case 0xE:
		e = familyE[op.N()]
	case 0xF:
		e = familyF[op.KK()]
	default:
		e = firstLevel[family]
	}

	if !e.matches(op) {
		return Invalid
	}
	return e.instruction
}
