package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"mosey/cpu"
)

// monitorMain single-steps a program under keyboard control:
//
//	s      execute one instruction
//	c      run until the CPU halts or an instruction fails
//	r      reset
//	n      assert NMI
//	i      toggle the IRQ line
//	q      quit
func monitorMain(args Monitor) {
	entry := uint16(args.Addr)
	if args.Entry != nil {
		entry = uint16(*args.Entry)
	}

	policy, err := cpu.ParseIllegalPolicy(args.Illegal)
	checkf(err, "bad --illegal value")

	m, err := powerUp(args.ImagePath, uint16(args.Addr), entry, policy)
	checkf(err, "error during power up")

	fd := int(os.Stdin.Fd())
	oldstate, err := term.MakeRaw(fd)
	checkf(err, "cannot switch terminal to raw mode")
	defer term.Restore(fd, oldstate)

	printf("mosey monitor. s:step c:continue r:reset n:nmi i:irq q:quit\n")
	showState(m.cpu)

	buf := make([]byte, 1)
	irq := false
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return
		}

		switch buf[0] {
		case 's':
			if _, err := m.cpu.Step(); err != nil {
				printf("error: %v\n", err)
			}
		case 'c':
			for !m.cpu.IsHalted() {
				if _, err := m.cpu.Step(); err != nil {
					printf("error: %v\n", err)
					break
				}
			}
		case 'r':
			m.cpu.Reset()
		case 'n':
			m.cpu.AssertNMI()
		case 'i':
			if irq = !irq; irq {
				m.cpu.AssertIRQ()
			} else {
				m.cpu.ClearIRQ()
			}
		case 'q', 0x03: // ctrl-c
			return
		default:
			continue
		}
		showState(m.cpu)
	}
}

// printf writes to stdout with the carriage returns raw mode requires.
func printf(format string, args ...any) {
	s := fmt.Sprintf(format, args...)
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			os.Stdout.WriteString("\r\n")
		} else {
			os.Stdout.Write([]byte{s[i]})
		}
	}
}

func showState(c *cpu.CPU) {
	status := ""
	if c.IsHalted() {
		status = "  [halted]"
	}
	asm, _ := c.Disasm(c.PC)
	printf("%04X  %-33s A:%02X X:%02X Y:%02X SP:%02X P:%s CYC:%d%s\n",
		c.PC, asm, c.A, c.X, c.Y, c.SP, c.P, c.Cycles, status)
}
