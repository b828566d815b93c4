package cpu

// P is the 6502 processor status register.
type P uint8

// Status flag bits.
const (
	Carry = 1 << iota
	Zero
	Interrupt
	Decimal
	Break
	Unused // hardwired, always reads as 1
	Overflow
	Negative
)

func (p P) C() bool { return p&Carry != 0 }
func (p P) Z() bool { return p&Zero != 0 }
func (p P) I() bool { return p&Interrupt != 0 }
func (p P) D() bool { return p&Decimal != 0 }
func (p P) B() bool { return p&Break != 0 }
func (p P) V() bool { return p&Overflow != 0 }
func (p P) N() bool { return p&Negative != 0 }

func (p *P) setFlags(flags uint8)   { *p |= P(flags) }
func (p *P) clearFlags(flags uint8) { *p &= ^P(flags) }

func (p *P) writeFlag(flag uint8, set bool) {
	if set {
		p.setFlags(flag)
	} else {
		p.clearFlags(flag)
	}
}

// ibit returns 0 or 1 depending on whether flag is set.
func (p P) ibit(flag uint8) uint8 {
	if p&P(flag) != 0 {
		return 1
	}
	return 0
}

// pack returns the byte representation, with the unused bit forced to 1.
func (p P) pack() uint8 {
	return uint8(p) | Unused
}

// unpack restores the flags from a byte popped off the stack. The B and
// unused bits only exist on the stacked copy and are not restored.
func (p *P) unpack(v uint8) {
	const mask = uint8(Break | Unused)
	*p = P(uint8(*p)&mask | v&^mask)
	*p |= Unused
}

func (p *P) checkNZ(v uint8) {
	p.writeFlag(Negative, v&0x80 != 0)
	p.writeFlag(Zero, v == 0)
}

func (p *P) checkZ(v uint8) {
	p.writeFlag(Zero, v == 0)
}

// checkCV sets the carry and overflow flags after an addition x+y=sum.
func (p *P) checkCV(x, y uint8, sum uint16) {
	// forward carry or unsigned overflow.
	p.writeFlag(Carry, sum > 0xFF)

	// signed overflow, can only happen if the sign of the sum differs
	// from that of both operands.
	v := (uint16(x) ^ sum) & (uint16(y) ^ sum) & 0x80
	p.writeFlag(Overflow, v != 0)
}

func (p P) String() string {
	const bits = "nvubdizcNVUBDIZC"

	s := make([]byte, 8)
	for i := 0; i < 8; i++ {
		ibit := (uint8(p) & (1 << (7 - i))) >> (7 - i)
		s[i] = bits[i+int(8*ibit)]
	}
	return string(s)
}
