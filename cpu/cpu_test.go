package cpu

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mosey/mem"
)

func TestReset(t *testing.T) {
	cpu := loadCPUWith(t, `
0600: ea
FFFC: 00 06`)

	// loadCPUWith clears the counter, reset again to observe it.
	cpu.A, cpu.X, cpu.Y = 1, 2, 3
	cpu.Reset()

	if cpu.PC != 0x0600 {
		t.Errorf("got PC=$%04X, want $0600", cpu.PC)
	}
	if cpu.SP != 0xFD {
		t.Errorf("got SP=$%02X, want $FD", cpu.SP)
	}
	if cpu.P != Unused|Interrupt {
		t.Errorf("got P=%s, want uI set only", cpu.P)
	}
	if cpu.A != 0 || cpu.X != 0 || cpu.Y != 0 {
		t.Errorf("registers not cleared: A=%02X X=%02X Y=%02X", cpu.A, cpu.X, cpu.Y)
	}
	if cpu.Cycles != 7 {
		t.Errorf("got %d cycles, want 7", cpu.Cycles)
	}
}

func TestResetClearsHalt(t *testing.T) {
	cpu := loadCPUWith(t, `
0600: 02
FFFC: 00 06`)
	cpu.Illegal = IllegalEmulate

	if _, err := cpu.Step(); err != nil {
		t.Fatalf("step: %s", err)
	}
	if !cpu.IsHalted() {
		t.Fatal("cpu not halted")
	}

	cpu.Reset()
	if cpu.IsHalted() {
		t.Fatal("cpu still halted after reset")
	}
	if _, err := cpu.Step(); !cpu.IsHalted() || err != nil {
		t.Fatalf("step after reset: halted=%t err=%v", cpu.IsHalted(), err)
	}
}

func TestNMI(t *testing.T) {
	cpu := loadCPUWith(t, `
0600: ea
FFFA: 00 08
FFFC: 00 06`)

	cpu.AssertNMI()
	n, err := cpu.Step()
	if err != nil {
		t.Fatalf("step: %s", err)
	}
	if n != 7 {
		t.Errorf("got %d cycles, want 7", n)
	}
	if cpu.PC != 0x0800 {
		t.Errorf("got PC=$%04X, want $0800", cpu.PC)
	}
	if !cpu.P.I() {
		t.Error("I flag not set while servicing NMI")
	}
	if cpu.SP != 0xFA {
		t.Errorf("got SP=$%02X, want $FA", cpu.SP)
	}

	// stacked frame: PC hi, PC lo, then P with B clear.
	wantMem8(t, cpu, 0x01FD, 0x06)
	wantMem8(t, cpu, 0x01FC, 0x00)
	wantMem8(t, cpu, 0x01FB, uint8(Unused|Interrupt))

	// the NMI edge was consumed, next step runs code.
	if _, err := cpu.Step(); err != nil {
		t.Fatalf("step: %s", err)
	}
	if cpu.PC == 0x0800 {
		t.Error("NMI serviced twice")
	}
}

func TestIRQMasking(t *testing.T) {
	cpu := loadCPUWith(t, `
0600: 58 ea
FFFC: 00 06
FFFE: 00 09`)

	cpu.AssertIRQ()

	// I is set after reset: the line is ignored, CLI executes.
	if _, err := cpu.Step(); err != nil {
		t.Fatalf("step: %s", err)
	}
	if cpu.PC != 0x0601 {
		t.Errorf("got PC=$%04X, want $0601", cpu.PC)
	}

	// the line is still asserted, now unmasked.
	n, err := cpu.Step()
	if err != nil {
		t.Fatalf("step: %s", err)
	}
	if n != 7 || cpu.PC != 0x0900 {
		t.Errorf("got %d cycles PC=$%04X, want 7 cycles PC=$0900", n, cpu.PC)
	}

	// level triggered: servicing does not clear the line, but I is set
	// again so code runs until ClearIRQ or CLI.
	cpu.ClearIRQ()
	if _, err := cpu.Step(); err != nil {
		t.Fatalf("step: %s", err)
	}
}

func TestNMIBeatsIRQ(t *testing.T) {
	cpu := loadCPUWith(t, `
0600: ea
FFFA: 00 08
FFFC: 00 06
FFFE: 00 09`)

	cpu.P.clearFlags(Interrupt)
	cpu.AssertIRQ()
	cpu.AssertNMI()

	if _, err := cpu.Step(); err != nil {
		t.Fatalf("step: %s", err)
	}
	if cpu.PC != 0x0800 {
		t.Errorf("got PC=$%04X, want NMI vector $0800", cpu.PC)
	}
}

func TestBRKAndRTI(t *testing.T) {
	cpu := loadCPUWith(t, `
0600: 00
0900: 40
FFFC: 00 06
FFFE: 00 09`)

	n, err := cpu.Step()
	if err != nil {
		t.Fatalf("step: %s", err)
	}
	if n != 7 {
		t.Errorf("got %d cycles, want 7", n)
	}
	if cpu.PC != 0x0900 {
		t.Errorf("got PC=$%04X, want $0900", cpu.PC)
	}

	// BRK pushes the address after its padding byte, with B set.
	wantMem8(t, cpu, 0x01FD, 0x06)
	wantMem8(t, cpu, 0x01FC, 0x02)
	wantMem8(t, cpu, 0x01FB, uint8(Break|Unused|Interrupt))

	// RTI returns past the padding byte.
	if _, err := cpu.Step(); err != nil {
		t.Fatalf("step: %s", err)
	}
	if cpu.PC != 0x0602 {
		t.Errorf("got PC=$%04X, want $0602", cpu.PC)
	}
}

func TestIllegalPolicies(t *testing.T) {
	const dump = `
# SLO ($10,X)
0600: 03 10
FFFC: 00 06`

	t.Run("stop", func(t *testing.T) {
		cpu := loadCPUWith(t, dump)

		_, err := cpu.Step()
		var oerr *OpcodeError
		if !errors.As(err, &oerr) {
			t.Fatalf("got %v, want *OpcodeError", err)
		}
		if oerr.Opcode != 0x03 || oerr.PC != 0x0600 {
			t.Errorf("got opcode=%02X PC=$%04X, want opcode=03 PC=$0600", oerr.Opcode, oerr.PC)
		}
		if cpu.PC != 0x0600 {
			t.Errorf("PC advanced to $%04X on failed step", cpu.PC)
		}
		if cpu.Cycles != 0 {
			t.Errorf("cycles consumed on failed step: %d", cpu.Cycles)
		}
	})

	t.Run("nop", func(t *testing.T) {
		cpu := loadCPUWith(t, dump)
		cpu.Illegal = IllegalNOP

		n, err := cpu.Step()
		if err != nil {
			t.Fatalf("step: %s", err)
		}
		if n != 8 {
			t.Errorf("got %d cycles, want the 8 base cycles", n)
		}
		if cpu.PC != 0x0602 {
			t.Errorf("got PC=$%04X, want $0602", cpu.PC)
		}
		if cpu.A != 0 {
			t.Errorf("A modified under nop policy: %02X", cpu.A)
		}
	})

	t.Run("emulate", func(t *testing.T) {
		cpu := loadCPUWith(t, dump)
		cpu.Illegal = IllegalEmulate

		// SLO shifts $1000=$00... still observable through flags.
		if _, err := cpu.Step(); err != nil {
			t.Fatalf("step: %s", err)
		}
		if cpu.PC != 0x0602 {
			t.Errorf("got PC=$%04X, want $0602", cpu.PC)
		}
	})
}

func TestParseIllegalPolicy(t *testing.T) {
	for _, want := range []IllegalPolicy{IllegalStop, IllegalNOP, IllegalEmulate} {
		got, err := ParseIllegalPolicy(want.String())
		if err != nil || got != want {
			t.Errorf("ParseIllegalPolicy(%q) = %v, %v", want.String(), got, err)
		}
	}
	if _, err := ParseIllegalPolicy("bogus"); err == nil {
		t.Error("no error for bogus policy")
	}
}

func TestPHPPLP(t *testing.T) {
	cpu := loadCPUWith(t, `
0600: 08 28
FFFC: 00 06`)

	// PHP stacks P with B and the unused bit forced on.
	if _, err := cpu.Step(); err != nil {
		t.Fatalf("step: %s", err)
	}
	wantMem8(t, cpu, 0x01FD, uint8(Break|Unused|Interrupt))

	// clobber P: PLP must restore everything except B.
	cpu.P = P(Carry|Negative) | Unused
	if _, err := cpu.Step(); err != nil {
		t.Fatalf("step: %s", err)
	}
	if cpu.P != Unused|Interrupt {
		t.Errorf("got P=%s, want uI only", cpu.P)
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		p    P
		want string
	}{
		{0x00, "nvubdizc"},
		{0xFF, "NVUBDIZC"},
		{Unused | Interrupt, "nvUbdIzc"},
		{Negative | Carry, "NvubdizC"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("P(%02X).String() = %q, want %q", uint8(tt.p), got, tt.want)
		}
	}
}

func TestSaveLoadState(t *testing.T) {
	const dump = `
# LDA #$11 / LDX #$22 / LDY #$33 / INX / SED
0600: a9 11 a2 22 a0 33 e8 f8
FFFC: 00 06`

	cpu1 := loadCPUWith(t, dump)
	if _, err := cpu1.Step(); err != nil {
		t.Fatalf("step: %s", err)
	}
	mid := cpu1.SaveState()

	// finish the program on the first CPU.
	runAndCheckState(t, cpu1, 8,
		"A", uint8(0x11),
		"X", uint8(0x23),
		"Y", uint8(0x33),
		"Pd", uint8(1),
	)

	// resume from the middle on a second CPU and catch up.
	cpu2 := loadCPUWith(t, dump)
	cpu2.LoadState(mid)
	if err := cpu2.Run(8); err != nil {
		t.Fatalf("run: %s", err)
	}

	if diff := cmp.Diff(cpu1.SaveState(), cpu2.SaveState()); diff != "" {
		t.Errorf("states diverged after restore (-cpu1 +cpu2):\n%s", diff)
	}
}

func TestStateKeepsInterruptLines(t *testing.T) {
	cpu1 := loadCPUWith(t, `
0600: ea
FFFA: 00 08
FFFC: 00 06`)
	cpu1.AssertNMI()

	ram := mem.NewRAM()
	ram.SetVector(NMIVector, 0x0800)
	cpu2 := NewCPU(ram)
	cpu2.LoadState(cpu1.SaveState())

	if _, err := cpu2.Step(); err != nil {
		t.Fatalf("step: %s", err)
	}
	if cpu2.PC != 0x0800 {
		t.Errorf("got PC=$%04X, want pending NMI serviced at $0800", cpu2.PC)
	}
}
