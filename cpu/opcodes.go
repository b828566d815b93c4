package cpu

// opdef describes one opcode: its mnemonic, addressing mode, base cycle
// count, whether a page cross during operand resolution costs an extra
// cycle, and whether the opcode is undocumented.
type opdef struct {
	name    string
	mode    AddrMode
	cycles  uint8
	page    bool
	illegal bool
	fn      func(c *CPU, mode AddrMode, addr uint16)
}

// ops maps each of the 256 opcode bytes to its definition.
// Entry format: {name, mode, cycles, page, illegal, fn}.
var ops = [256]opdef{
	0x00: {"BRK", modeImplied, 7, false, false, brk},
	0x01: {"ORA", modeIndirectX, 6, false, false, ora},
	0x02: {"JAM", modeImplied, 2, false, true, jam},
	0x03: {"SLO", modeIndirectX, 8, false, true, slo},
	0x04: {"NOP", modeZeroPage, 3, false, true, nop},
	0x05: {"ORA", modeZeroPage, 3, false, false, ora},
	0x06: {"ASL", modeZeroPage, 5, false, false, asl},
	0x07: {"SLO", modeZeroPage, 5, false, true, slo},
	0x08: {"PHP", modeImplied, 3, false, false, php},
	0x09: {"ORA", modeImmediate, 2, false, false, ora},
	0x0A: {"ASL", modeAccumulator, 2, false, false, asl},
	0x0B: {"ANC", modeImmediate, 2, false, true, anc},
	0x0C: {"NOP", modeAbsolute, 4, false, true, nop},
	0x0D: {"ORA", modeAbsolute, 4, false, false, ora},
	0x0E: {"ASL", modeAbsolute, 6, false, false, asl},
	0x0F: {"SLO", modeAbsolute, 6, false, true, slo},
	0x10: {"BPL", modeRelative, 2, false, false, bpl},
	0x11: {"ORA", modeIndirectY, 5, true, false, ora},
	0x12: {"JAM", modeImplied, 2, false, true, jam},
	0x13: {"SLO", modeIndirectY, 8, false, true, slo},
	0x14: {"NOP", modeZeroPageX, 4, false, true, nop},
	0x15: {"ORA", modeZeroPageX, 4, false, false, ora},
	0x16: {"ASL", modeZeroPageX, 6, false, false, asl},
	0x17: {"SLO", modeZeroPageX, 6, false, true, slo},
	0x18: {"CLC", modeImplied, 2, false, false, clc},
	0x19: {"ORA", modeAbsoluteY, 4, true, false, ora},
	0x1A: {"NOP", modeImplied, 2, false, true, nop},
	0x1B: {"SLO", modeAbsoluteY, 7, false, true, slo},
	0x1C: {"NOP", modeAbsoluteX, 4, true, true, nop},
	0x1D: {"ORA", modeAbsoluteX, 4, true, false, ora},
	0x1E: {"ASL", modeAbsoluteX, 7, false, false, asl},
	0x1F: {"SLO", modeAbsoluteX, 7, false, true, slo},
	0x20: {"JSR", modeAbsolute, 6, false, false, jsr},
	0x21: {"AND", modeIndirectX, 6, false, false, and},
	0x22: {"JAM", modeImplied, 2, false, true, jam},
	0x23: {"RLA", modeIndirectX, 8, false, true, rla},
	0x24: {"BIT", modeZeroPage, 3, false, false, bit},
	0x25: {"AND", modeZeroPage, 3, false, false, and},
	0x26: {"ROL", modeZeroPage, 5, false, false, rol},
	0x27: {"RLA", modeZeroPage, 5, false, true, rla},
	0x28: {"PLP", modeImplied, 4, false, false, plp},
	0x29: {"AND", modeImmediate, 2, false, false, and},
	0x2A: {"ROL", modeAccumulator, 2, false, false, rol},
	0x2B: {"ANC", modeImmediate, 2, false, true, anc},
	0x2C: {"BIT", modeAbsolute, 4, false, false, bit},
	0x2D: {"AND", modeAbsolute, 4, false, false, and},
	0x2E: {"ROL", modeAbsolute, 6, false, false, rol},
	0x2F: {"RLA", modeAbsolute, 6, false, true, rla},
	0x30: {"BMI", modeRelative, 2, false, false, bmi},
	0x31: {"AND", modeIndirectY, 5, true, false, and},
	0x32: {"JAM", modeImplied, 2, false, true, jam},
	0x33: {"RLA", modeIndirectY, 8, false, true, rla},
	0x34: {"NOP", modeZeroPageX, 4, false, true, nop},
	0x35: {"AND", modeZeroPageX, 4, false, false, and},
	0x36: {"ROL", modeZeroPageX, 6, false, false, rol},
	0x37: {"RLA", modeZeroPageX, 6, false, true, rla},
	0x38: {"SEC", modeImplied, 2, false, false, sec},
	0x39: {"AND", modeAbsoluteY, 4, true, false, and},
	0x3A: {"NOP", modeImplied, 2, false, true, nop},
	0x3B: {"RLA", modeAbsoluteY, 7, false, true, rla},
	0x3C: {"NOP", modeAbsoluteX, 4, true, true, nop},
	0x3D: {"AND", modeAbsoluteX, 4, true, false, and},
	0x3E: {"ROL", modeAbsoluteX, 7, false, false, rol},
	0x3F: {"RLA", modeAbsoluteX, 7, false, true, rla},
	0x40: {"RTI", modeImplied, 6, false, false, rti},
	0x41: {"EOR", modeIndirectX, 6, false, false, eor},
	0x42: {"JAM", modeImplied, 2, false, true, jam},
	0x43: {"SRE", modeIndirectX, 8, false, true, sre},
	0x44: {"NOP", modeZeroPage, 3, false, true, nop},
	0x45: {"EOR", modeZeroPage, 3, false, false, eor},
	0x46: {"LSR", modeZeroPage, 5, false, false, lsr},
	0x47: {"SRE", modeZeroPage, 5, false, true, sre},
	0x48: {"PHA", modeImplied, 3, false, false, pha},
	0x49: {"EOR", modeImmediate, 2, false, false, eor},
	0x4A: {"LSR", modeAccumulator, 2, false, false, lsr},
	0x4B: {"ALR", modeImmediate, 2, false, true, alr},
	0x4C: {"JMP", modeAbsolute, 3, false, false, jmp},
	0x4D: {"EOR", modeAbsolute, 4, false, false, eor},
	0x4E: {"LSR", modeAbsolute, 6, false, false, lsr},
	0x4F: {"SRE", modeAbsolute, 6, false, true, sre},
	0x50: {"BVC", modeRelative, 2, false, false, bvc},
	0x51: {"EOR", modeIndirectY, 5, true, false, eor},
	0x52: {"JAM", modeImplied, 2, false, true, jam},
	0x53: {"SRE", modeIndirectY, 8, false, true, sre},
	0x54: {"NOP", modeZeroPageX, 4, false, true, nop},
	0x55: {"EOR", modeZeroPageX, 4, false, false, eor},
	0x56: {"LSR", modeZeroPageX, 6, false, false, lsr},
	0x57: {"SRE", modeZeroPageX, 6, false, true, sre},
	0x58: {"CLI", modeImplied, 2, false, false, cli},
	0x59: {"EOR", modeAbsoluteY, 4, true, false, eor},
	0x5A: {"NOP", modeImplied, 2, false, true, nop},
	0x5B: {"SRE", modeAbsoluteY, 7, false, true, sre},
	0x5C: {"NOP", modeAbsoluteX, 4, true, true, nop},
	0x5D: {"EOR", modeAbsoluteX, 4, true, false, eor},
	0x5E: {"LSR", modeAbsoluteX, 7, false, false, lsr},
	0x5F: {"SRE", modeAbsoluteX, 7, false, true, sre},
	0x60: {"RTS", modeImplied, 6, false, false, rts},
	0x61: {"ADC", modeIndirectX, 6, false, false, adc},
	0x62: {"JAM", modeImplied, 2, false, true, jam},
	0x63: {"RRA", modeIndirectX, 8, false, true, rra},
	0x64: {"NOP", modeZeroPage, 3, false, true, nop},
	0x65: {"ADC", modeZeroPage, 3, false, false, adc},
	0x66: {"ROR", modeZeroPage, 5, false, false, ror},
	0x67: {"RRA", modeZeroPage, 5, false, true, rra},
	0x68: {"PLA", modeImplied, 4, false, false, pla},
	0x69: {"ADC", modeImmediate, 2, false, false, adc},
	0x6A: {"ROR", modeAccumulator, 2, false, false, ror},
	0x6B: {"ARR", modeImmediate, 2, false, true, arr},
	0x6C: {"JMP", modeIndirect, 5, false, false, jmp},
	0x6D: {"ADC", modeAbsolute, 4, false, false, adc},
	0x6E: {"ROR", modeAbsolute, 6, false, false, ror},
	0x6F: {"RRA", modeAbsolute, 6, false, true, rra},
	0x70: {"BVS", modeRelative, 2, false, false, bvs},
	0x71: {"ADC", modeIndirectY, 5, true, false, adc},
	0x72: {"JAM", modeImplied, 2, false, true, jam},
	0x73: {"RRA", modeIndirectY, 8, false, true, rra},
	0x74: {"NOP", modeZeroPageX, 4, false, true, nop},
	0x75: {"ADC", modeZeroPageX, 4, false, false, adc},
	0x76: {"ROR", modeZeroPageX, 6, false, false, ror},
	0x77: {"RRA", modeZeroPageX, 6, false, true, rra},
	0x78: {"SEI", modeImplied, 2, false, false, sei},
	0x79: {"ADC", modeAbsoluteY, 4, true, false, adc},
	0x7A: {"NOP", modeImplied, 2, false, true, nop},
	0x7B: {"RRA", modeAbsoluteY, 7, false, true, rra},
	0x7C: {"NOP", modeAbsoluteX, 4, true, true, nop},
	0x7D: {"ADC", modeAbsoluteX, 4, true, false, adc},
	0x7E: {"ROR", modeAbsoluteX, 7, false, false, ror},
	0x7F: {"RRA", modeAbsoluteX, 7, false, true, rra},
	0x80: {"NOP", modeImmediate, 2, false, true, nop},
	0x81: {"STA", modeIndirectX, 6, false, false, sta},
	0x82: {"NOP", modeImmediate, 2, false, true, nop},
	0x83: {"SAX", modeIndirectX, 6, false, true, sax},
	0x84: {"STY", modeZeroPage, 3, false, false, sty},
	0x85: {"STA", modeZeroPage, 3, false, false, sta},
	0x86: {"STX", modeZeroPage, 3, false, false, stx},
	0x87: {"SAX", modeZeroPage, 3, false, true, sax},
	0x88: {"DEY", modeImplied, 2, false, false, dey},
	0x89: {"NOP", modeImmediate, 2, false, true, nop},
	0x8A: {"TXA", modeImplied, 2, false, false, txa},
	0x8B: {"ANE", modeImmediate, 2, false, true, ane},
	0x8C: {"STY", modeAbsolute, 4, false, false, sty},
	0x8D: {"STA", modeAbsolute, 4, false, false, sta},
	0x8E: {"STX", modeAbsolute, 4, false, false, stx},
	0x8F: {"SAX", modeAbsolute, 4, false, true, sax},
	0x90: {"BCC", modeRelative, 2, false, false, bcc},
	0x91: {"STA", modeIndirectY, 6, false, false, sta},
	0x92: {"JAM", modeImplied, 2, false, true, jam},
	0x93: {"SHA", modeIndirectY, 6, false, true, sha},
	0x94: {"STY", modeZeroPageX, 4, false, false, sty},
	0x95: {"STA", modeZeroPageX, 4, false, false, sta},
	0x96: {"STX", modeZeroPageY, 4, false, false, stx},
	0x97: {"SAX", modeZeroPageY, 4, false, true, sax},
	0x98: {"TYA", modeImplied, 2, false, false, tya},
	0x99: {"STA", modeAbsoluteY, 5, false, false, sta},
	0x9A: {"TXS", modeImplied, 2, false, false, txs},
	0x9B: {"TAS", modeAbsoluteY, 5, false, true, tas},
	0x9C: {"SHY", modeAbsoluteX, 5, false, true, shy},
	0x9D: {"STA", modeAbsoluteX, 5, false, false, sta},
	0x9E: {"SHX", modeAbsoluteY, 5, false, true, shx},
	0x9F: {"SHA", modeAbsoluteY, 5, false, true, sha},
	0xA0: {"LDY", modeImmediate, 2, false, false, ldy},
	0xA1: {"LDA", modeIndirectX, 6, false, false, lda},
	0xA2: {"LDX", modeImmediate, 2, false, false, ldx},
	0xA3: {"LAX", modeIndirectX, 6, false, true, lax},
	0xA4: {"LDY", modeZeroPage, 3, false, false, ldy},
	0xA5: {"LDA", modeZeroPage, 3, false, false, lda},
	0xA6: {"LDX", modeZeroPage, 3, false, false, ldx},
	0xA7: {"LAX", modeZeroPage, 3, false, true, lax},
	0xA8: {"TAY", modeImplied, 2, false, false, tay},
	0xA9: {"LDA", modeImmediate, 2, false, false, lda},
	0xAA: {"TAX", modeImplied, 2, false, false, tax},
	0xAB: {"LXA", modeImmediate, 2, false, true, lxa},
	0xAC: {"LDY", modeAbsolute, 4, false, false, ldy},
	0xAD: {"LDA", modeAbsolute, 4, false, false, lda},
	0xAE: {"LDX", modeAbsolute, 4, false, false, ldx},
	0xAF: {"LAX", modeAbsolute, 4, false, true, lax},
	0xB0: {"BCS", modeRelative, 2, false, false, bcs},
	0xB1: {"LDA", modeIndirectY, 5, true, false, lda},
	0xB2: {"JAM", modeImplied, 2, false, true, jam},
	0xB3: {"LAX", modeIndirectY, 5, true, true, lax},
	0xB4: {"LDY", modeZeroPageX, 4, false, false, ldy},
	0xB5: {"LDA", modeZeroPageX, 4, false, false, lda},
	0xB6: {"LDX", modeZeroPageY, 4, false, false, ldx},
	0xB7: {"LAX", modeZeroPageY, 4, false, true, lax},
	0xB8: {"CLV", modeImplied, 2, false, false, clv},
	0xB9: {"LDA", modeAbsoluteY, 4, true, false, lda},
	0xBA: {"TSX", modeImplied, 2, false, false, tsx},
	0xBB: {"LAS", modeAbsoluteY, 4, true, true, las},
	0xBC: {"LDY", modeAbsoluteX, 4, true, false, ldy},
	0xBD: {"LDA", modeAbsoluteX, 4, true, false, lda},
	0xBE: {"LDX", modeAbsoluteY, 4, true, false, ldx},
	0xBF: {"LAX", modeAbsoluteY, 4, true, true, lax},
	0xC0: {"CPY", modeImmediate, 2, false, false, cpy},
	0xC1: {"CMP", modeIndirectX, 6, false, false, cmp_},
	0xC2: {"NOP", modeImmediate, 2, false, true, nop},
	0xC3: {"DCP", modeIndirectX, 8, false, true, dcp},
	0xC4: {"CPY", modeZeroPage, 3, false, false, cpy},
	0xC5: {"CMP", modeZeroPage, 3, false, false, cmp_},
	0xC6: {"DEC", modeZeroPage, 5, false, false, dec},
	0xC7: {"DCP", modeZeroPage, 5, false, true, dcp},
	0xC8: {"INY", modeImplied, 2, false, false, iny},
	0xC9: {"CMP", modeImmediate, 2, false, false, cmp_},
	0xCA: {"DEX", modeImplied, 2, false, false, dex},
	0xCB: {"SBX", modeImmediate, 2, false, true, sbx},
	0xCC: {"CPY", modeAbsolute, 4, false, false, cpy},
	0xCD: {"CMP", modeAbsolute, 4, false, false, cmp_},
	0xCE: {"DEC", modeAbsolute, 6, false, false, dec},
	0xCF: {"DCP", modeAbsolute, 6, false, true, dcp},
	0xD0: {"BNE", modeRelative, 2, false, false, bne},
	0xD1: {"CMP", modeIndirectY, 5, true, false, cmp_},
	0xD2: {"JAM", modeImplied, 2, false, true, jam},
	0xD3: {"DCP", modeIndirectY, 8, false, true, dcp},
	0xD4: {"NOP", modeZeroPageX, 4, false, true, nop},
	0xD5: {"CMP", modeZeroPageX, 4, false, false, cmp_},
	0xD6: {"DEC", modeZeroPageX, 6, false, false, dec},
	0xD7: {"DCP", modeZeroPageX, 6, false, true, dcp},
	0xD8: {"CLD", modeImplied, 2, false, false, cld},
	0xD9: {"CMP", modeAbsoluteY, 4, true, false, cmp_},
	0xDA: {"NOP", modeImplied, 2, false, true, nop},
	0xDB: {"DCP", modeAbsoluteY, 7, false, true, dcp},
	0xDC: {"NOP", modeAbsoluteX, 4, true, true, nop},
	0xDD: {"CMP", modeAbsoluteX, 4, true, false, cmp_},
	0xDE: {"DEC", modeAbsoluteX, 7, false, false, dec},
	0xDF: {"DCP", modeAbsoluteX, 7, false, true, dcp},
	0xE0: {"CPX", modeImmediate, 2, false, false, cpx},
	0xE1: {"SBC", modeIndirectX, 6, false, false, sbc},
	0xE2: {"NOP", modeImmediate, 2, false, true, nop},
	0xE3: {"ISB", modeIndirectX, 8, false, true, isb},
	0xE4: {"CPX", modeZeroPage, 3, false, false, cpx},
	0xE5: {"SBC", modeZeroPage, 3, false, false, sbc},
	0xE6: {"INC", modeZeroPage, 5, false, false, inc},
	0xE7: {"ISB", modeZeroPage, 5, false, true, isb},
	0xE8: {"INX", modeImplied, 2, false, false, inx},
	0xE9: {"SBC", modeImmediate, 2, false, false, sbc},
	0xEA: {"NOP", modeImplied, 2, false, false, nop},
	0xEB: {"SBC", modeImmediate, 2, false, true, sbc},
	0xEC: {"CPX", modeAbsolute, 4, false, false, cpx},
	0xED: {"SBC", modeAbsolute, 4, false, false, sbc},
	0xEE: {"INC", modeAbsolute, 6, false, false, inc},
	0xEF: {"ISB", modeAbsolute, 6, false, true, isb},
	0xF0: {"BEQ", modeRelative, 2, false, false, beq},
	0xF1: {"SBC", modeIndirectY, 5, true, false, sbc},
	0xF2: {"JAM", modeImplied, 2, false, true, jam},
	0xF3: {"ISB", modeIndirectY, 8, false, true, isb},
	0xF4: {"NOP", modeZeroPageX, 4, false, true, nop},
	0xF5: {"SBC", modeZeroPageX, 4, false, false, sbc},
	0xF6: {"INC", modeZeroPageX, 6, false, false, inc},
	0xF7: {"ISB", modeZeroPageX, 6, false, true, isb},
	0xF8: {"SED", modeImplied, 2, false, false, sed},
	0xF9: {"SBC", modeAbsoluteY, 4, true, false, sbc},
	0xFA: {"NOP", modeImplied, 2, false, true, nop},
	0xFB: {"ISB", modeAbsoluteY, 7, false, true, isb},
	0xFC: {"NOP", modeAbsoluteX, 4, true, true, nop},
	0xFD: {"SBC", modeAbsoluteX, 4, true, false, sbc},
	0xFE: {"INC", modeAbsoluteX, 7, false, false, inc},
	0xFF: {"ISB", modeAbsoluteX, 7, false, true, isb},
}

/* load/store */

func lda(c *CPU, _ AddrMode, addr uint16) {
	c.A = c.Read8(addr)
	c.P.checkNZ(c.A)
}

func ldx(c *CPU, _ AddrMode, addr uint16) {
	c.X = c.Read8(addr)
	c.P.checkNZ(c.X)
}

func ldy(c *CPU, _ AddrMode, addr uint16) {
	c.Y = c.Read8(addr)
	c.P.checkNZ(c.Y)
}

func sta(c *CPU, _ AddrMode, addr uint16) { c.Write8(addr, c.A) }
func stx(c *CPU, _ AddrMode, addr uint16) { c.Write8(addr, c.X) }
func sty(c *CPU, _ AddrMode, addr uint16) { c.Write8(addr, c.Y) }

/* register transfers */

func tax(c *CPU, _ AddrMode, _ uint16) {
	c.X = c.A
	c.P.checkNZ(c.X)
}

func tay(c *CPU, _ AddrMode, _ uint16) {
	c.Y = c.A
	c.P.checkNZ(c.Y)
}

func txa(c *CPU, _ AddrMode, _ uint16) {
	c.A = c.X
	c.P.checkNZ(c.A)
}

func tya(c *CPU, _ AddrMode, _ uint16) {
	c.A = c.Y
	c.P.checkNZ(c.A)
}

func tsx(c *CPU, _ AddrMode, _ uint16) {
	c.X = c.SP
	c.P.checkNZ(c.X)
}

// TXS is the only transfer that does not affect flags.
func txs(c *CPU, _ AddrMode, _ uint16) { c.SP = c.X }

/* stack */

func pha(c *CPU, _ AddrMode, _ uint16) { c.push8(c.A) }

// PHP always pushes with B and the unused bit set.
func php(c *CPU, _ AddrMode, _ uint16) { c.push8(c.P.pack() | Break) }

func pla(c *CPU, _ AddrMode, _ uint16) {
	c.A = c.pull8()
	c.P.checkNZ(c.A)
}

func plp(c *CPU, _ AddrMode, _ uint16) { c.P.unpack(c.pull8()) }

/* arithmetic */

func adc(c *CPU, _ AddrMode, addr uint16) { c.adc(c.Read8(addr)) }
func sbc(c *CPU, _ AddrMode, addr uint16) { c.sbc(c.Read8(addr)) }

// add memory to accumulator with carry. In decimal mode each nibble is
// corrected to 0-9 with carry propagation between nibbles; the overflow
// flag keeps the binary-mode rule, as on the real NMOS part.
func (c *CPU) adc(val uint8) {
	if !c.P.D() {
		sum := uint16(c.A) + uint16(val) + uint16(c.P.ibit(Carry))
		c.P.checkCV(c.A, val, sum)
		c.A = uint8(sum)
		c.P.checkNZ(c.A)
		return
	}

	acc := uint32(c.A)
	add := uint32(val)
	carry := uint32(c.P.ibit(Carry))

	lo := (acc & 0x0f) + (add & 0x0f) + carry

	var carrylo uint32
	if lo >= 0x0a {
		carrylo = 0x10
		lo -= 0x0a
	}

	hi := (acc & 0xf0) + (add & 0xf0) + carrylo

	if hi >= 0xa0 {
		c.P.setFlags(Carry)
		hi -= 0xa0
	} else {
		c.P.clearFlags(Carry)
	}

	v := hi | lo

	c.P.writeFlag(Overflow, (acc^v)&0x80 != 0 && (acc^add)&0x80 == 0)
	c.A = uint8(v)
	c.P.checkNZ(c.A)
}

// subtract memory from accumulator with borrow.
func (c *CPU) sbc(val uint8) {
	if !c.P.D() {
		val ^= 0xff
		sum := uint16(c.A) + uint16(val) + uint16(c.P.ibit(Carry))
		c.P.checkCV(c.A, val, sum)
		c.A = uint8(sum)
		c.P.checkNZ(c.A)
		return
	}

	acc := uint32(c.A)
	sub := uint32(val)
	carry := uint32(c.P.ibit(Carry))

	lo := 0x0f + (acc & 0x0f) - (sub & 0x0f) + carry

	var carrylo uint32
	if lo < 0x10 {
		lo -= 0x06
	} else {
		lo -= 0x10
		carrylo = 0x10
	}

	hi := 0xf0 + (acc & 0xf0) - (sub & 0xf0) + carrylo

	if hi < 0x100 {
		c.P.clearFlags(Carry)
		hi -= 0x60
	} else {
		c.P.setFlags(Carry)
		hi -= 0x100
	}

	v := hi | lo

	c.P.writeFlag(Overflow, (acc^v)&0x80 != 0 && (acc^sub)&0x80 != 0)
	c.A = uint8(v)
	c.P.checkNZ(uint8(v))
}

/* logic */

func and(c *CPU, _ AddrMode, addr uint16) {
	c.A &= c.Read8(addr)
	c.P.checkNZ(c.A)
}

func ora(c *CPU, _ AddrMode, addr uint16) {
	c.A |= c.Read8(addr)
	c.P.checkNZ(c.A)
}

func eor(c *CPU, _ AddrMode, addr uint16) {
	c.A ^= c.Read8(addr)
	c.P.checkNZ(c.A)
}

// test bits in memory with accumulator: N and V come straight from the
// operand, Z from the AND with A.
func bit(c *CPU, _ AddrMode, addr uint16) {
	val := c.Read8(addr)
	c.P &= 0b00111111
	c.P |= P(val & 0b11000000)
	c.P.checkZ(c.A & val)
}

/* shifts and rotates */

// rmw applies f to the accumulator or to memory depending on mode.
func rmw(c *CPU, mode AddrMode, addr uint16, f func(uint8) uint8) {
	if mode == modeAccumulator {
		c.A = f(c.A)
		return
	}
	c.Write8(addr, f(c.Read8(addr)))
}

func asl(c *CPU, mode AddrMode, addr uint16) {
	rmw(c, mode, addr, c.aslv)
}

func (c *CPU) aslv(val uint8) uint8 {
	c.P.writeFlag(Carry, val&0x80 != 0)
	val <<= 1
	c.P.checkNZ(val)
	return val
}

func lsr(c *CPU, mode AddrMode, addr uint16) {
	rmw(c, mode, addr, c.lsrv)
}

func (c *CPU) lsrv(val uint8) uint8 {
	c.P.writeFlag(Carry, val&0x01 != 0)
	val >>= 1
	c.P.checkNZ(val)
	return val
}

func rol(c *CPU, mode AddrMode, addr uint16) {
	rmw(c, mode, addr, c.rolv)
}

func (c *CPU) rolv(val uint8) uint8 {
	carry := val & 0x80
	val <<= 1
	if c.P.C() {
		val |= 1 << 0
	}
	c.P.checkNZ(val)
	c.P.writeFlag(Carry, carry != 0)
	return val
}

func ror(c *CPU, mode AddrMode, addr uint16) {
	rmw(c, mode, addr, c.rorv)
}

func (c *CPU) rorv(val uint8) uint8 {
	carry := val & 0x01
	val >>= 1
	if c.P.C() {
		val |= 1 << 7
	}
	c.P.checkNZ(val)
	c.P.writeFlag(Carry, carry != 0)
	return val
}

/* compare */

// carry set means no borrow, i.e. register >= operand.
func (c *CPU) compare(reg, val uint8) {
	c.P.checkNZ(reg - val)
	c.P.writeFlag(Carry, val <= reg)
}

func cmp_(c *CPU, _ AddrMode, addr uint16) { c.compare(c.A, c.Read8(addr)) }
func cpx(c *CPU, _ AddrMode, addr uint16)  { c.compare(c.X, c.Read8(addr)) }
func cpy(c *CPU, _ AddrMode, addr uint16)  { c.compare(c.Y, c.Read8(addr)) }

/* increment/decrement */

func inc(c *CPU, _ AddrMode, addr uint16) {
	val := c.Read8(addr) + 1
	c.Write8(addr, val)
	c.P.checkNZ(val)
}

func dec(c *CPU, _ AddrMode, addr uint16) {
	val := c.Read8(addr) - 1
	c.Write8(addr, val)
	c.P.checkNZ(val)
}

func inx(c *CPU, _ AddrMode, _ uint16) { c.X++; c.P.checkNZ(c.X) }
func dex(c *CPU, _ AddrMode, _ uint16) { c.X--; c.P.checkNZ(c.X) }
func iny(c *CPU, _ AddrMode, _ uint16) { c.Y++; c.P.checkNZ(c.Y) }
func dey(c *CPU, _ AddrMode, _ uint16) { c.Y--; c.P.checkNZ(c.Y) }

/* branches */

// branch takes the jump when cond holds: one extra cycle, two if the
// target is on another page.
func (c *CPU) branch(cond bool, addr uint16) {
	if !cond {
		return
	}
	c.penalty++
	if pagecrossed(c.PC, addr) {
		c.penalty++
	}
	c.PC = addr
}

func bpl(c *CPU, _ AddrMode, addr uint16) { c.branch(!c.P.N(), addr) }
func bmi(c *CPU, _ AddrMode, addr uint16) { c.branch(c.P.N(), addr) }
func bvc(c *CPU, _ AddrMode, addr uint16) { c.branch(!c.P.V(), addr) }
func bvs(c *CPU, _ AddrMode, addr uint16) { c.branch(c.P.V(), addr) }
func bcc(c *CPU, _ AddrMode, addr uint16) { c.branch(!c.P.C(), addr) }
func bcs(c *CPU, _ AddrMode, addr uint16) { c.branch(c.P.C(), addr) }
func bne(c *CPU, _ AddrMode, addr uint16) { c.branch(!c.P.Z(), addr) }
func beq(c *CPU, _ AddrMode, addr uint16) { c.branch(c.P.Z(), addr) }

/* jumps and calls */

func jmp(c *CPU, _ AddrMode, addr uint16) { c.PC = addr }

// JSR pushes the address of its own last byte; RTS compensates. This
// off-by-one is how the chip works, not a bug.
func jsr(c *CPU, _ AddrMode, addr uint16) {
	c.push16(c.PC - 1)
	c.PC = addr
}

func rts(c *CPU, _ AddrMode, _ uint16) {
	c.PC = c.pull16() + 1
}

func rti(c *CPU, _ AddrMode, _ uint16) {
	c.P.unpack(c.pull8())
	c.PC = c.pull16()
}

// BRK pushes the address of the byte after its padding byte, then the
// status with B set, and vectors through IRQ/BRK.
func brk(c *CPU, _ AddrMode, _ uint16) {
	c.push16(c.PC + 1)
	c.push8(c.P.pack() | Break)
	c.P.setFlags(Interrupt)
	c.PC = c.Read16(IRQVector)
}

/* flag operations */

func clc(c *CPU, _ AddrMode, _ uint16) { c.P.clearFlags(Carry) }
func sec(c *CPU, _ AddrMode, _ uint16) { c.P.setFlags(Carry) }
func cli(c *CPU, _ AddrMode, _ uint16) { c.P.clearFlags(Interrupt) }
func sei(c *CPU, _ AddrMode, _ uint16) { c.P.setFlags(Interrupt) }
func cld(c *CPU, _ AddrMode, _ uint16) { c.P.clearFlags(Decimal) }
func sed(c *CPU, _ AddrMode, _ uint16) { c.P.setFlags(Decimal) }
func clv(c *CPU, _ AddrMode, _ uint16) { c.P.clearFlags(Overflow) }

func nop(_ *CPU, _ AddrMode, _ uint16) {}

/* undocumented instructions */

func slo(c *CPU, mode AddrMode, addr uint16) {
	asl(c, mode, addr)
	ora(c, mode, addr)
}

func rla(c *CPU, mode AddrMode, addr uint16) {
	rol(c, mode, addr)
	and(c, mode, addr)
}

func sre(c *CPU, mode AddrMode, addr uint16) {
	lsr(c, mode, addr)
	eor(c, mode, addr)
}

func rra(c *CPU, mode AddrMode, addr uint16) {
	ror(c, mode, addr)
	adc(c, mode, addr)
}

func sax(c *CPU, _ AddrMode, addr uint16) { c.Write8(addr, c.A&c.X) }

func lax(c *CPU, mode AddrMode, addr uint16) {
	lda(c, mode, addr)
	c.X = c.A
}

func dcp(c *CPU, mode AddrMode, addr uint16) {
	dec(c, mode, addr)
	c.compare(c.A, c.Read8(addr))
}

func isb(c *CPU, mode AddrMode, addr uint16) {
	inc(c, mode, addr)
	c.sbc(c.Read8(addr))
}

func anc(c *CPU, _ AddrMode, addr uint16) {
	c.A &= c.Read8(addr)
	c.P.checkNZ(c.A)
	c.P.writeFlag(Carry, c.P.N())
}

func alr(c *CPU, _ AddrMode, addr uint16) {
	c.A &= c.Read8(addr)
	c.A = c.lsrv(c.A)
}

func arr(c *CPU, _ AddrMode, addr uint16) {
	c.A &= c.Read8(addr)
	c.A >>= 1
	if c.P.C() {
		c.A |= 1 << 7
	}
	c.P.writeFlag(Overflow, ((c.A>>6)^(c.A>>5))&0x01 != 0)
	c.P.checkNZ(c.A)
	c.P.writeFlag(Carry, c.A&(1<<6) != 0)
}

func sbx(c *CPU, _ AddrMode, addr uint16) {
	val := (int16(c.A) & int16(c.X)) - int16(c.Read8(addr))
	c.X = uint8(val)
	c.P.checkNZ(c.X)
	c.P.writeFlag(Carry, val >= 0)
}

func las(c *CPU, _ AddrMode, addr uint16) {
	c.A = c.SP & c.Read8(addr)
	c.X = c.A
	c.SP = c.A
	c.P.checkNZ(c.A)
}

// shstore implements the unstable SHA/SHX/SHY/TAS stores: the value is
// ANDed with the high byte of the unindexed address plus one, and on a
// page cross that value replaces the high byte of the target.
func shstore(c *CPU, addr uint16, idx uint8, val uint8) {
	base := addr - uint16(idx)
	val &= uint8(base>>8) + 1

	waddr := addr
	if pagecrossed(base, addr) {
		waddr = uint16(val)<<8 | addr&0xff
	}
	c.Write8(waddr, val)
}

func shx(c *CPU, _ AddrMode, addr uint16) { shstore(c, addr, c.Y, c.X) }
func shy(c *CPU, _ AddrMode, addr uint16) { shstore(c, addr, c.X, c.Y) }

func sha(c *CPU, _ AddrMode, addr uint16) {
	shstore(c, addr, c.Y, c.A&c.X)
}

func tas(c *CPU, _ AddrMode, addr uint16) {
	c.SP = c.A & c.X
	shstore(c, addr, c.Y, c.A&c.X)
}

func ane(c *CPU, _ AddrMode, addr uint16) {
	// unstable: the magic constant approximates typical silicon.
	c.A = (c.A | 0xEE) & c.X & c.Read8(addr)
	c.P.checkNZ(c.A)
}

func lxa(c *CPU, _ AddrMode, addr uint16) {
	c.A = (c.A | 0xEE) & c.Read8(addr)
	c.X = c.A
	c.P.checkNZ(c.A)
}

func jam(c *CPU, _ AddrMode, _ uint16) { c.halt() }
