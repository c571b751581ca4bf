package cpu

// opcode holds one dense dispatch-table entry: the instruction body and
// its base cycle count (before any page-cross/branch-taken additions).
type opcode struct {
	fn     func(c *CPU)
	cycles uint8
}

// op builds a reader-style instruction (operand fetched via mode, fed to
// fn) into a dispatch entry.
func op(mode func(*CPU) uint16, fn func(*CPU, uint16), cycles uint8) opcode {
	return opcode{
		fn: func(c *CPU) {
			fn(c, mode(c))
		},
		cycles: cycles,
	}
}

func implied(fn func(*CPU), cycles uint8) opcode {
	return opcode{fn: fn, cycles: cycles}
}

// opcodeTable is the dense 256-entry official-opcode dispatch array. Every
// undocumented/illegal opcode is left zero-valued (fn == nil), handled by
// execute as an invalid-opcode trap.
var opcodeTable [256]opcode

func init() {
	t := &opcodeTable

	// ADC
	t[0x69] = op((*CPU).modeImm, (*CPU).adc, 2)
	t[0x65] = op((*CPU).modeZP, (*CPU).adc, 3)
	t[0x75] = op((*CPU).modeZPX, (*CPU).adc, 4)
	t[0x6D] = op((*CPU).modeAbs, (*CPU).adc, 4)
	t[0x7D] = op((*CPU).modeAbsX, (*CPU).adc, 4)
	t[0x79] = op((*CPU).modeAbsY, (*CPU).adc, 4)
	t[0x61] = op((*CPU).modeIndX, (*CPU).adc, 6)
	t[0x71] = op((*CPU).modeIndY, (*CPU).adc, 5)

	// SBC
	t[0xE9] = op((*CPU).modeImm, (*CPU).sbc, 2)
	t[0xE5] = op((*CPU).modeZP, (*CPU).sbc, 3)
	t[0xF5] = op((*CPU).modeZPX, (*CPU).sbc, 4)
	t[0xED] = op((*CPU).modeAbs, (*CPU).sbc, 4)
	t[0xFD] = op((*CPU).modeAbsX, (*CPU).sbc, 4)
	t[0xF9] = op((*CPU).modeAbsY, (*CPU).sbc, 4)
	t[0xE1] = op((*CPU).modeIndX, (*CPU).sbc, 6)
	t[0xF1] = op((*CPU).modeIndY, (*CPU).sbc, 5)

	// AND
	t[0x29] = op((*CPU).modeImm, (*CPU).and, 2)
	t[0x25] = op((*CPU).modeZP, (*CPU).and, 3)
	t[0x35] = op((*CPU).modeZPX, (*CPU).and, 4)
	t[0x2D] = op((*CPU).modeAbs, (*CPU).and, 4)
	t[0x3D] = op((*CPU).modeAbsX, (*CPU).and, 4)
	t[0x39] = op((*CPU).modeAbsY, (*CPU).and, 4)
	t[0x21] = op((*CPU).modeIndX, (*CPU).and, 6)
	t[0x31] = op((*CPU).modeIndY, (*CPU).and, 5)

	// ORA
	t[0x09] = op((*CPU).modeImm, (*CPU).ora, 2)
	t[0x05] = op((*CPU).modeZP, (*CPU).ora, 3)
	t[0x15] = op((*CPU).modeZPX, (*CPU).ora, 4)
	t[0x0D] = op((*CPU).modeAbs, (*CPU).ora, 4)
	t[0x1D] = op((*CPU).modeAbsX, (*CPU).ora, 4)
	t[0x19] = op((*CPU).modeAbsY, (*CPU).ora, 4)
	t[0x01] = op((*CPU).modeIndX, (*CPU).ora, 6)
	t[0x11] = op((*CPU).modeIndY, (*CPU).ora, 5)

	// EOR
	t[0x49] = op((*CPU).modeImm, (*CPU).eor, 2)
	t[0x45] = op((*CPU).modeZP, (*CPU).eor, 3)
	t[0x55] = op((*CPU).modeZPX, (*CPU).eor, 4)
	t[0x4D] = op((*CPU).modeAbs, (*CPU).eor, 4)
	t[0x5D] = op((*CPU).modeAbsX, (*CPU).eor, 4)
	t[0x59] = op((*CPU).modeAbsY, (*CPU).eor, 4)
	t[0x41] = op((*CPU).modeIndX, (*CPU).eor, 6)
	t[0x51] = op((*CPU).modeIndY, (*CPU).eor, 5)

	// BIT
	t[0x24] = op((*CPU).modeZP, (*CPU).bit, 3)
	t[0x2C] = op((*CPU).modeAbs, (*CPU).bit, 4)

	// CMP / CPX / CPY
	t[0xC9] = op((*CPU).modeImm, (*CPU).cmp, 2)
	t[0xC5] = op((*CPU).modeZP, (*CPU).cmp, 3)
	t[0xD5] = op((*CPU).modeZPX, (*CPU).cmp, 4)
	t[0xCD] = op((*CPU).modeAbs, (*CPU).cmp, 4)
	t[0xDD] = op((*CPU).modeAbsX, (*CPU).cmp, 4)
	t[0xD9] = op((*CPU).modeAbsY, (*CPU).cmp, 4)
	t[0xC1] = op((*CPU).modeIndX, (*CPU).cmp, 6)
	t[0xD1] = op((*CPU).modeIndY, (*CPU).cmp, 5)
	t[0xE0] = op((*CPU).modeImm, (*CPU).cpx, 2)
	t[0xE4] = op((*CPU).modeZP, (*CPU).cpx, 3)
	t[0xEC] = op((*CPU).modeAbs, (*CPU).cpx, 4)
	t[0xC0] = op((*CPU).modeImm, (*CPU).cpy, 2)
	t[0xC4] = op((*CPU).modeZP, (*CPU).cpy, 3)
	t[0xCC] = op((*CPU).modeAbs, (*CPU).cpy, 4)

	// INC / DEC (memory)
	t[0xE6] = op((*CPU).modeZP, (*CPU).incMem, 5)
	t[0xF6] = op((*CPU).modeZPX, (*CPU).incMem, 6)
	t[0xEE] = op((*CPU).modeAbs, (*CPU).incMem, 6)
	t[0xFE] = op((*CPU).modeAbsX, (*CPU).incMem, 7)
	t[0xC6] = op((*CPU).modeZP, (*CPU).decMem, 5)
	t[0xD6] = op((*CPU).modeZPX, (*CPU).decMem, 6)
	t[0xCE] = op((*CPU).modeAbs, (*CPU).decMem, 6)
	t[0xDE] = op((*CPU).modeAbsX, (*CPU).decMem, 7)

	// INX / INY / DEX / DEY
	t[0xE8] = implied((*CPU).inx, 2)
	t[0xC8] = implied((*CPU).iny, 2)
	t[0xCA] = implied((*CPU).dex, 2)
	t[0x88] = implied((*CPU).dey, 2)

	// ASL / LSR / ROL / ROR
	t[0x0A] = implied((*CPU).aslAcc, 2)
	t[0x06] = op((*CPU).modeZP, (*CPU).aslMem, 5)
	t[0x16] = op((*CPU).modeZPX, (*CPU).aslMem, 6)
	t[0x0E] = op((*CPU).modeAbs, (*CPU).aslMem, 6)
	t[0x1E] = op((*CPU).modeAbsX, (*CPU).aslMem, 7)
	t[0x4A] = implied((*CPU).lsrAcc, 2)
	t[0x46] = op((*CPU).modeZP, (*CPU).lsrMem, 5)
	t[0x56] = op((*CPU).modeZPX, (*CPU).lsrMem, 6)
	t[0x4E] = op((*CPU).modeAbs, (*CPU).lsrMem, 6)
	t[0x5E] = op((*CPU).modeAbsX, (*CPU).lsrMem, 7)
	t[0x2A] = implied((*CPU).rolAcc, 2)
	t[0x26] = op((*CPU).modeZP, (*CPU).rolMem, 5)
	t[0x36] = op((*CPU).modeZPX, (*CPU).rolMem, 6)
	t[0x2E] = op((*CPU).modeAbs, (*CPU).rolMem, 6)
	t[0x3E] = op((*CPU).modeAbsX, (*CPU).rolMem, 7)
	t[0x6A] = implied((*CPU).rorAcc, 2)
	t[0x66] = op((*CPU).modeZP, (*CPU).rorMem, 5)
	t[0x76] = op((*CPU).modeZPX, (*CPU).rorMem, 6)
	t[0x6E] = op((*CPU).modeAbs, (*CPU).rorMem, 6)
	t[0x7E] = op((*CPU).modeAbsX, (*CPU).rorMem, 7)

	// flag instructions
	t[0x18] = implied((*CPU).clc, 2)
	t[0x38] = implied((*CPU).sec, 2)
	t[0x58] = implied((*CPU).cli, 2)
	t[0x78] = implied((*CPU).sei, 2)
	t[0xD8] = implied((*CPU).cld, 2)
	t[0xF8] = implied((*CPU).sed, 2)
	t[0xB8] = implied((*CPU).clv, 2)

	// loads / stores
	t[0xA9] = op((*CPU).modeImm, (*CPU).lda, 2)
	t[0xA5] = op((*CPU).modeZP, (*CPU).lda, 3)
	t[0xB5] = op((*CPU).modeZPX, (*CPU).lda, 4)
	t[0xAD] = op((*CPU).modeAbs, (*CPU).lda, 4)
	t[0xBD] = op((*CPU).modeAbsX, (*CPU).lda, 4)
	t[0xB9] = op((*CPU).modeAbsY, (*CPU).lda, 4)
	t[0xA1] = op((*CPU).modeIndX, (*CPU).lda, 6)
	t[0xB1] = op((*CPU).modeIndY, (*CPU).lda, 5)
	t[0xA2] = op((*CPU).modeImm, (*CPU).ldx, 2)
	t[0xA6] = op((*CPU).modeZP, (*CPU).ldx, 3)
	t[0xB6] = op((*CPU).modeZPY, (*CPU).ldx, 4)
	t[0xAE] = op((*CPU).modeAbs, (*CPU).ldx, 4)
	t[0xBE] = op((*CPU).modeAbsY, (*CPU).ldx, 4)
	t[0xA0] = op((*CPU).modeImm, (*CPU).ldy, 2)
	t[0xA4] = op((*CPU).modeZP, (*CPU).ldy, 3)
	t[0xB4] = op((*CPU).modeZPX, (*CPU).ldy, 4)
	t[0xAC] = op((*CPU).modeAbs, (*CPU).ldy, 4)
	t[0xBC] = op((*CPU).modeAbsX, (*CPU).ldy, 4)

	t[0x85] = op((*CPU).modeZP, (*CPU).sta, 3)
	t[0x95] = op((*CPU).modeZPX, (*CPU).sta, 4)
	t[0x8D] = op((*CPU).modeAbs, (*CPU).sta, 4)
	t[0x9D] = op((*CPU).modeAbsX, (*CPU).sta, 5)
	t[0x99] = op((*CPU).modeAbsY, (*CPU).sta, 5)
	t[0x81] = op((*CPU).modeIndX, (*CPU).sta, 6)
	t[0x91] = op((*CPU).modeIndY, (*CPU).sta, 6)
	t[0x86] = op((*CPU).modeZP, (*CPU).stx, 3)
	t[0x96] = op((*CPU).modeZPY, (*CPU).stx, 4)
	t[0x8E] = op((*CPU).modeAbs, (*CPU).stx, 4)
	t[0x84] = op((*CPU).modeZP, (*CPU).sty, 3)
	t[0x94] = op((*CPU).modeZPX, (*CPU).sty, 4)
	t[0x8C] = op((*CPU).modeAbs, (*CPU).sty, 4)

	// register transfers
	t[0xAA] = implied((*CPU).tax, 2)
	t[0xA8] = implied((*CPU).tay, 2)
	t[0xBA] = implied((*CPU).tsx, 2)
	t[0x8A] = implied((*CPU).txa, 2)
	t[0x9A] = implied((*CPU).txs, 2)
	t[0x98] = implied((*CPU).tya, 2)

	// jumps / calls / returns
	t[0x4C] = implied((*CPU).jmpAbs, 3)
	t[0x6C] = implied((*CPU).jmpInd, 5)
	t[0x20] = implied((*CPU).jsr, 6)
	t[0x60] = implied((*CPU).rts, 6)
	t[0x00] = implied((*CPU).brk, 7)
	t[0x40] = implied((*CPU).rti, 6)

	// stack
	t[0x48] = implied((*CPU).pha, 3)
	t[0x08] = implied((*CPU).php, 3)
	t[0x68] = implied((*CPU).pla, 4)
	t[0x28] = implied((*CPU).plp, 4)

	// branches
	t[0x10] = implied((*CPU).bpl, 2)
	t[0x30] = implied((*CPU).bmi, 2)
	t[0x50] = implied((*CPU).bvc, 2)
	t[0x70] = implied((*CPU).bvs, 2)
	t[0x90] = implied((*CPU).bcc, 2)
	t[0xB0] = implied((*CPU).bcs, 2)
	t[0xD0] = implied((*CPU).bne, 2)
	t[0xF0] = implied((*CPU).beq, 2)

	// NOP
	t[0xEA] = implied((*CPU).nop, 2)
}
