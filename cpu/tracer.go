package cpu

import (
	"bytes"
	"fmt"
	"io"
)

// tracer writes one line per executed instruction, in the nestest
// 'golden log' format (minus the PPU column).
type tracer struct {
	bb bytes.Buffer
	w  io.Writer
}

// SetTraceOutput enables execution tracing to w, one line per
// instruction. Pass nil to disable.
func (c *CPU) SetTraceOutput(w io.Writer) {
	if w == nil {
		c.tracer = nil
		return
	}
	c.tracer = &tracer{w: w}
}

// traceOp is called with PC still on the opcode byte, before any state
// has changed.
func (c *CPU) traceOp() {
	if c.tracer == nil {
		return
	}
	c.tracer.op(c)
}

func (t *tracer) op(c *CPU) {
	t.bb.Reset()

	pc := c.PC
	opstr, size := c.Disasm(pc)

	var tmp []byte
	for i := uint16(0); i < uint16(size); i++ {
		tmp = append(tmp, fmt.Sprintf("%02X ", c.Read8(pc+i))...)
	}

	fmt.Fprintf(&t.bb, "%04X  %-9s%-33sA:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d\n",
		pc, tmp, opstr, c.A, c.X, c.Y, c.P.pack(), c.SP, c.Cycles)
	t.w.Write(t.bb.Bytes())
}
