package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/sync/errgroup"

	"mosey/cpu"
	"mosey/log"
	"mosey/mem"
	"mosey/snapshot"
)

// machine is the minimal host around the CPU core: 64 KiB of flat RAM
// plus the glue to load images and snapshots.
type machine struct {
	cpu *cpu.CPU
	ram *mem.RAM
}

// powerUp builds a machine with the image loaded at addr and the reset
// vector pointing at entry, ready to step.
func powerUp(path string, addr, entry uint16, policy cpu.IllegalPolicy) (*machine, error) {
	ram := mem.NewRAM()
	c := cpu.NewCPU(ram)
	c.Illegal = policy

	if err := ram.LoadFile(path, addr); err != nil {
		return nil, err
	}
	ram.SetVector(cpu.ResetVector, entry)
	c.Reset()

	return &machine{cpu: c, ram: ram}, nil
}

// run steps the CPU until the cycle budget runs out (ncycles <= 0 means
// no budget), the CPU halts, an instruction fails, or ctx is canceled.
func (m *machine) run(ctx context.Context, ncycles int64) error {
	until := int64(-1)
	if ncycles > 0 {
		until = m.cpu.Cycles + ncycles
	}

	for i := 0; ; i++ {
		// checking the context on every step would dominate the loop.
		if i&0x3ff == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
		if until >= 0 && m.cpu.Cycles >= until {
			return nil
		}
		if _, err := m.cpu.Step(); err != nil {
			return err
		}
		if m.cpu.IsHalted() {
			log.ModHost.InfoZ("CPU halted").
				Hex16("PC", m.cpu.PC).
				Int("cycles", m.cpu.Cycles).
				End()
			return nil
		}
	}
}

func (m *machine) saveSnapshot(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	s := &snapshot.State{
		Version: snapshot.Version,
		CPU:     m.cpu.SaveState(),
		RAM:     m.ram.Data[:],
	}
	if err := snapshot.Write(f, s); err != nil {
		return err
	}

	log.ModSnap.InfoZ("snapshot written").String("path", path).End()
	return nil
}

func (m *machine) loadSnapshot(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	s, err := snapshot.Read(f)
	if err != nil {
		return err
	}
	if len(s.RAM) != len(m.ram.Data) {
		return fmt.Errorf("snapshot RAM is %d bytes, want %d", len(s.RAM), len(m.ram.Data))
	}
	copy(m.ram.Data[:], s.RAM)
	m.cpu.LoadState(s.CPU)

	log.ModSnap.InfoZ("snapshot restored").
		String("path", path).
		Hex16("PC", m.cpu.PC).
		End()
	return nil
}

// runMain runs the emulator directly with the given image.
func runMain(args Run) {
	entry := uint16(args.Addr)
	if args.Entry != nil {
		entry = uint16(*args.Entry)
	}

	policy, err := cpu.ParseIllegalPolicy(args.Illegal)
	checkf(err, "bad --illegal value")

	m, err := powerUp(args.ImagePath, uint16(args.Addr), entry, policy)
	checkf(err, "error during power up")

	if args.LoadFrom != "" {
		checkf(m.loadSnapshot(args.LoadFrom), "cannot resume from snapshot")
	}
	if args.Trace != nil {
		m.cpu.SetTraceOutput(args.Trace)
		defer args.Trace.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return m.run(ctx, args.Cycles)
	})

	switch err := g.Wait(); {
	case err == nil:
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "interrupted")
	default:
		checkf(err, "execution stopped")
	}

	if args.SaveTo != "" {
		checkf(m.saveSnapshot(args.SaveTo), "cannot write snapshot")
	}

	c := m.cpu
	fmt.Printf("A:%02X X:%02X Y:%02X SP:%02X P:%s PC:$%04X CYC:%d\n",
		c.A, c.X, c.Y, c.SP, c.P, c.PC, c.Cycles)
}
