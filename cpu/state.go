package cpu

import "mosey/snapshot"

// SaveState captures the complete execution state of the CPU. Memory is
// not included; the host snapshots its own bus devices.
func (c *CPU) SaveState() snapshot.CPU {
	return snapshot.CPU{
		PC:         c.PC,
		SP:         c.SP,
		P:          c.P.pack(),
		A:          c.A,
		X:          c.X,
		Y:          c.Y,
		Cycles:     c.Cycles,
		NMIPending: c.nmiPending,
		IRQLine:    c.irqLine,
		Halted:     c.halted,
	}
}

// LoadState restores state captured by SaveState. The bus, the illegal
// opcode policy and the trace output are left untouched.
func (c *CPU) LoadState(s snapshot.CPU) {
	c.PC = s.PC
	c.SP = s.SP
	c.P = P(s.P) | Unused
	c.A = s.A
	c.X = s.X
	c.Y = s.Y
	c.Cycles = s.Cycles
	c.nmiPending = s.NMIPending
	c.irqLine = s.IRQLine
	c.halted = s.Halted
	c.penalty = 0
}
