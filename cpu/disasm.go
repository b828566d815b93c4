package cpu

import "fmt"

// Disasm decodes the instruction at pc into its assembly form, also
// returning the instruction length in bytes. Decoding reads the bus but
// never modifies CPU state. Undocumented opcodes get a leading asterisk,
// following the nestest log convention.
func (c *CPU) Disasm(pc uint16) (string, int) {
	opcode := c.Read8(pc)
	op := &ops[opcode]

	name := op.name
	if op.illegal {
		name = "*" + name
	}
	size := 1 + int(operandSize[op.mode])

	switch op.mode {
	case modeImplied:
		return fmt.Sprintf("% 4s", name), size

	case modeAccumulator:
		return fmt.Sprintf("% 4s A", name), size

	case modeImmediate:
		return fmt.Sprintf("% 4s #$%02X", name, c.Read8(pc+1)), size

	case modeZeroPage:
		zp := c.Read8(pc + 1)
		return fmt.Sprintf("% 4s $%02X = %02X", name, zp, c.Read8(uint16(zp))), size

	case modeZeroPageX:
		zp := c.Read8(pc + 1)
		addr := uint16(zp + c.X)
		return fmt.Sprintf("% 4s $%02X,X @ %02X = %02X", name, zp, uint8(addr), c.Read8(addr)), size

	case modeZeroPageY:
		zp := c.Read8(pc + 1)
		addr := uint16(zp + c.Y)
		return fmt.Sprintf("% 4s $%02X,Y @ %02X = %02X", name, zp, uint8(addr), c.Read8(addr)), size

	case modeRelative:
		off := int8(c.Read8(pc + 1))
		dst := pc + 2 + uint16(int16(off))
		return fmt.Sprintf("% 4s $%04X", name, dst), size

	case modeAbsolute:
		addr := c.Read16(pc + 1)
		switch op.name {
		case "JMP", "JSR":
			return fmt.Sprintf("% 4s $%04X", name, addr), size
		default:
			return fmt.Sprintf("% 4s $%04X = %02X", name, addr, c.Read8(addr)), size
		}

	case modeAbsoluteX:
		oper := c.Read16(pc + 1)
		addr := oper + uint16(c.X)
		return fmt.Sprintf("% 4s $%04X,X @ %04X = %02X", name, oper, addr, c.Read8(addr)), size

	case modeAbsoluteY:
		oper := c.Read16(pc + 1)
		addr := oper + uint16(c.Y)
		return fmt.Sprintf("% 4s $%04X,Y @ %04X = %02X", name, oper, addr, c.Read8(addr)), size

	case modeIndirect:
		oper := c.Read16(pc + 1)
		lo := c.Read8(oper)
		hi := c.Read8(oper&0xFF00 | (oper+1)&0x00FF)
		dst := uint16(hi)<<8 | uint16(lo)
		return fmt.Sprintf("% 4s ($%04X) = %04X", name, oper, dst), size

	case modeIndirectX:
		oper := c.Read8(pc + 1)
		zp := oper + c.X
		addr := c.zpr16(zp)
		return fmt.Sprintf("% 4s ($%02X,X) @ %02X = %04X = %02X", name, oper, zp, addr, c.Read8(addr)), size

	case modeIndirectY:
		oper := c.Read8(pc + 1)
		base := c.zpr16(oper)
		addr := base + uint16(c.Y)
		return fmt.Sprintf("% 4s ($%02X),Y = %04X @ %04X = %02X", name, oper, base, addr, c.Read8(addr)), size
	}

	panic("unreachable addressing mode")
}
