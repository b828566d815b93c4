package cpu

//go:generate go tool stringer -type=AddrMode -trimprefix=mode

// AddrMode identifies one of the 13 addressing modes of the 6502.
type AddrMode uint8

const (
	modeImplied AddrMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeRelative
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndirectX
	modeIndirectY
)

// operandSize is the number of operand bytes following the opcode,
// indexed by addressing mode.
var operandSize = [13]uint16{
	modeImplied:     0,
	modeAccumulator: 0,
	modeImmediate:   1,
	modeZeroPage:    1,
	modeZeroPageX:   1,
	modeZeroPageY:   1,
	modeRelative:    1,
	modeAbsolute:    2,
	modeAbsoluteX:   2,
	modeAbsoluteY:   2,
	modeIndirect:    2,
	modeIndirectX:   1,
	modeIndirectY:   1,
}

func pagecrossed(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// operand computes the effective address for the given addressing mode.
// On entry PC points at the first operand byte; on return it has been
// advanced past the operand. crossed reports whether indexing crossed a
// page boundary, for the modes that pay a cycle for it.
func (c *CPU) operand(mode AddrMode) (addr uint16, crossed bool) {
	switch mode {
	case modeImplied, modeAccumulator:
		return 0, false

	case modeImmediate:
		addr = c.PC
		c.PC++
		return addr, false

	case modeZeroPage:
		addr = uint16(c.Read8(c.PC))
		c.PC++
		return addr, false

	case modeZeroPageX:
		// indexing never leaves the zero page.
		addr = uint16(c.Read8(c.PC) + c.X)
		c.PC++
		return addr, false

	case modeZeroPageY:
		addr = uint16(c.Read8(c.PC) + c.Y)
		c.PC++
		return addr, false

	case modeRelative:
		off := int8(c.Read8(c.PC))
		c.PC++
		addr = c.PC + uint16(int16(off))
		return addr, pagecrossed(c.PC, addr)

	case modeAbsolute:
		addr = c.Read16(c.PC)
		c.PC += 2
		return addr, false

	case modeAbsoluteX:
		base := c.Read16(c.PC)
		c.PC += 2
		addr = base + uint16(c.X)
		return addr, pagecrossed(base, addr)

	case modeAbsoluteY:
		base := c.Read16(c.PC)
		c.PC += 2
		addr = base + uint16(c.Y)
		return addr, pagecrossed(base, addr)

	case modeIndirect:
		// Only used by JMP. A vector straddling a page boundary wraps
		// within the page: ($10FF) reads its high byte from $1000.
		ptr := c.Read16(c.PC)
		c.PC += 2
		lo := c.Read8(ptr)
		hi := c.Read8(ptr&0xFF00 | (ptr+1)&0x00FF)
		return uint16(hi)<<8 | uint16(lo), false

	case modeIndirectX:
		ptr := c.Read8(c.PC) + c.X
		c.PC++
		return c.zpr16(ptr), false

	case modeIndirectY:
		base := c.zpr16(c.Read8(c.PC))
		c.PC++
		addr = base + uint16(c.Y)
		return addr, pagecrossed(base, addr)
	}

	panic("unreachable addressing mode")
}

// zpr16 reads a 16-bit pointer from the zero page, wrapping within it.
func (c *CPU) zpr16(zp uint8) uint16 {
	lo := c.Read8(uint16(zp))
	hi := c.Read8(uint16(zp + 1))
	return uint16(hi)<<8 | uint16(lo)
}
