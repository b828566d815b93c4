// Package snapshot defines the serialized machine state and its codec.
// Snapshots are JSON so they stay inspectable and diffable; RAM is the
// only bulky field and goes in as base64.
package snapshot

import (
	"fmt"
	"io"

	"github.com/go-faster/jx"
)

// Version identifies the snapshot format written by this build.
const Version = 1

type State struct {
	Version int
	CPU     CPU
	RAM     []uint8
}

type CPU struct {
	PC uint16
	SP uint8
	P  uint8
	A  uint8
	X  uint8
	Y  uint8

	Cycles int64

	NMIPending bool
	IRQLine    bool
	Halted     bool
}

// Write serializes s to w.
func Write(w io.Writer, s *State) error {
	var e jx.Encoder
	e.SetIdent(2)
	s.encode(&e)
	_, err := w.Write(e.Bytes())
	return err
}

// Read deserializes a snapshot from r, rejecting unknown versions.
func Read(r io.Reader) (*State, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	s := &State{}
	if err := s.decode(jx.DecodeBytes(data)); err != nil {
		return nil, fmt.Errorf("corrupt snapshot: %w", err)
	}
	if s.Version != Version {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	return s, nil
}

func (s *State) encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("version", func(e *jx.Encoder) { e.Int(s.Version) })
		e.Field("cpu", func(e *jx.Encoder) { s.CPU.encode(e) })
		e.Field("ram", func(e *jx.Encoder) { e.Base64(s.RAM) })
	})
}

func (c *CPU) encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("pc", func(e *jx.Encoder) { e.UInt16(c.PC) })
		e.Field("sp", func(e *jx.Encoder) { e.UInt8(c.SP) })
		e.Field("p", func(e *jx.Encoder) { e.UInt8(c.P) })
		e.Field("a", func(e *jx.Encoder) { e.UInt8(c.A) })
		e.Field("x", func(e *jx.Encoder) { e.UInt8(c.X) })
		e.Field("y", func(e *jx.Encoder) { e.UInt8(c.Y) })
		e.Field("cycles", func(e *jx.Encoder) { e.Int64(c.Cycles) })
		e.Field("nmi_pending", func(e *jx.Encoder) { e.Bool(c.NMIPending) })
		e.Field("irq_line", func(e *jx.Encoder) { e.Bool(c.IRQLine) })
		e.Field("halted", func(e *jx.Encoder) { e.Bool(c.Halted) })
	})
}

func (s *State) decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "version":
			s.Version, err = d.Int()
		case "cpu":
			err = s.CPU.decode(d)
		case "ram":
			s.RAM, err = d.Base64()
		default:
			err = d.Skip()
		}
		return err
	})
}

func (c *CPU) decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "pc":
			c.PC, err = d.UInt16()
		case "sp":
			c.SP, err = d.UInt8()
		case "p":
			c.P, err = d.UInt8()
		case "a":
			c.A, err = d.UInt8()
		case "x":
			c.X, err = d.UInt8()
		case "y":
			c.Y, err = d.UInt8()
		case "cycles":
			c.Cycles, err = d.Int64()
		case "nmi_pending":
			c.NMIPending, err = d.Bool()
		case "irq_line":
			c.IRQLine, err = d.Bool()
		case "halted":
			c.Halted, err = d.Bool()
		default:
			err = d.Skip()
		}
		return err
	})
}
