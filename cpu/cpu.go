// Package cpu emulates the MOS 6502/6510 microprocessor: documented and
// undocumented opcodes, cycle accounting with page-boundary and branch
// penalties, decimal mode, and RESET/NMI/IRQ handling. The CPU owns its
// registers and cycle counter; memory is a Bus capability supplied by the
// host, which also drives execution one Step at a time.
package cpu

import (
	"errors"
	"fmt"

	"mosey/log"
)

// Locations reserved for vector pointers.
const (
	NMIVector   = uint16(0xFFFA) // Non-Maskable Interrupt
	ResetVector = uint16(0xFFFC) // Reset
	IRQVector   = uint16(0xFFFE) // Interrupt Request
)

// Cycles consumed by servicing an interrupt or a reset.
const interruptCycles = 7

// Bus is the 16-bit address space the CPU executes against. Both methods
// must always answer: there is no error path, mirroring real address
// decoding. The CPU performs no locking; hosts composing several chips
// around one bus are responsible for serializing access.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// IllegalPolicy selects how the CPU treats undocumented opcodes.
type IllegalPolicy uint8

const (
	// IllegalStop makes Step fail with *OpcodeError, leaving PC on the
	// offending opcode.
	IllegalStop IllegalPolicy = iota

	// IllegalNOP consumes the opcode, its operand bytes and its base
	// cycles, with no other effect.
	IllegalNOP

	// IllegalEmulate runs the undocumented NMOS behavior, including the
	// jam opcodes which halt the CPU.
	IllegalEmulate
)

func (p IllegalPolicy) String() string {
	switch p {
	case IllegalStop:
		return "stop"
	case IllegalNOP:
		return "nop"
	case IllegalEmulate:
		return "emulate"
	}
	return fmt.Sprintf("IllegalPolicy(%d)", uint8(p))
}

func ParseIllegalPolicy(s string) (IllegalPolicy, error) {
	switch s {
	case "stop":
		return IllegalStop, nil
	case "nop":
		return IllegalNOP, nil
	case "emulate":
		return IllegalEmulate, nil
	}
	return 0, fmt.Errorf("unknown illegal opcode policy %q", s)
}

// ErrHalted is returned by Step once the CPU has executed a jam opcode.
// Only Reset brings it back.
var ErrHalted = errors.New("cpu halted")

// OpcodeError reports an undocumented opcode fetched under IllegalStop.
// PC still points at the opcode, so a host may substitute behavior and
// resume.
type OpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("unsupported opcode 0x%02X at $%04X", e.Opcode, e.PC)
}

type CPU struct {
	Bus Bus

	// Illegal is the undocumented opcode policy. The NMOS/CMOS families
	// disagree on what these opcodes do, so there is no correct default
	// beyond failing fast.
	Illegal IllegalPolicy

	// cpu registers
	A, X, Y, SP uint8
	PC          uint16
	P           P

	// Cycles elapsed since the last reset.
	Cycles int64

	// interrupt lines. NMI is edge triggered, IRQ is level triggered.
	nmiPending bool
	irqLine    bool

	halted bool

	// extra cycles recorded by a taken branch during the current step.
	penalty int

	// Non-nil when execution tracing is enabled.
	tracer *tracer
}

// NewCPU creates a CPU at power-up state, attached to bus. Call Reset
// before stepping.
func NewCPU(bus Bus) *CPU {
	return &CPU{
		Bus:     bus,
		Illegal: IllegalStop,
		SP:      0xFD,
		P:       Unused | Interrupt,
	}
}

// Reset reinitializes the CPU: registers cleared, SP=$FD, I set, PC
// loaded from the reset vector. It wins over any pending interrupt and
// restarts the cycle counter at the fixed reset cost.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0x00, 0x00, 0x00
	c.SP = 0xFD
	c.P = Unused | Interrupt
	c.PC = c.Read16(ResetVector)

	c.nmiPending = false
	c.irqLine = false
	c.halted = false
	c.penalty = 0
	c.Cycles = interruptCycles

	log.ModCPU.DebugZ("reset").Hex16("PC", c.PC).End()
}

// AssertNMI signals an edge on the NMI line. The interrupt is serviced at
// the next instruction boundary regardless of the I flag.
func (c *CPU) AssertNMI() { c.nmiPending = true }

// AssertIRQ raises the IRQ line. The line stays asserted until ClearIRQ;
// it is serviced at instruction boundaries while the I flag is clear.
func (c *CPU) AssertIRQ() { c.irqLine = true }

// ClearIRQ lowers the IRQ line.
func (c *CPU) ClearIRQ() { c.irqLine = false }

// IsHalted reports whether a jam opcode stopped the CPU.
func (c *CPU) IsHalted() bool { return c.halted }

// Step services at most one pending interrupt or executes one
// instruction, and returns the cycles consumed. The only failure is an
// undocumented opcode under IllegalStop.
func (c *CPU) Step() (int, error) {
	if c.halted {
		return 0, ErrHalted
	}

	if n := c.serviceInterrupts(); n != 0 {
		c.Cycles += int64(n)
		return n, nil
	}

	opcode := c.Read8(c.PC)
	op := &ops[opcode]

	if op.illegal && c.Illegal == IllegalStop {
		return 0, &OpcodeError{Opcode: opcode, PC: c.PC}
	}

	c.traceOp()

	c.PC++
	addr, crossed := c.operand(op.mode)

	c.penalty = 0
	if !(op.illegal && c.Illegal == IllegalNOP) {
		op.fn(c, op.mode, addr)
	}

	n := int(op.cycles)
	if op.page && crossed {
		n++
	}
	n += c.penalty
	c.Cycles += int64(n)
	return n, nil
}

// Run steps the CPU for at least ncycles cycles, stopping early if the
// CPU halts or an instruction fails.
func (c *CPU) Run(ncycles int64) error {
	until := c.Cycles + ncycles
	for c.Cycles < until {
		if _, err := c.Step(); err != nil {
			return err
		}
		if c.halted {
			log.ModCPU.WarnZ("CPU halted").Hex16("PC", c.PC).End()
			break
		}
	}
	return nil
}

/* interrupt handling */

// serviceInterrupts runs at instruction boundaries only. NMI beats IRQ;
// IRQ is ignored while the I flag is set, but stays pending on its line.
func (c *CPU) serviceInterrupts() int {
	switch {
	case c.nmiPending:
		c.nmiPending = false
		c.interrupt(NMIVector)
	case c.irqLine && !c.P.I():
		c.interrupt(IRQVector)
	default:
		return 0
	}
	return interruptCycles
}

func (c *CPU) interrupt(vector uint16) {
	c.push16(c.PC)
	// hardware interrupts push P with B clear, distinguishing them
	// from BRK.
	c.push8(c.P.pack() &^ Break)
	c.P.setFlags(Interrupt)
	c.PC = c.Read16(vector)

	log.ModCPU.DebugZ("interrupt").Hex16("vector", vector).Hex16("PC", c.PC).End()
}

func (c *CPU) halt() {
	c.halted = true
}

/* bus access */

func (c *CPU) Read8(addr uint16) uint8 {
	return c.Bus.Read(addr)
}

func (c *CPU) Write8(addr uint16, val uint8) {
	c.Bus.Write(addr, val)
}

func (c *CPU) Read16(addr uint16) uint16 {
	lo := c.Read8(addr)
	hi := c.Read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

/* stack operations */

func (c *CPU) push8(val uint8) {
	c.Write8(0x0100+uint16(c.SP), val)
	c.SP--
}

func (c *CPU) push16(val uint16) {
	c.push8(uint8(val >> 8))
	c.push8(uint8(val))
}

func (c *CPU) pull8() uint8 {
	c.SP++
	return c.Read8(0x0100 + uint16(c.SP))
}

func (c *CPU) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return uint16(hi)<<8 | uint16(lo)
}
