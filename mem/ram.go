// Package mem provides the memory devices a host wires behind the CPU
// bus: flat RAM covering the whole address space, and a page-granular
// mapping table for composing RAM, ROM and mirrored banks.
package mem

import (
	"fmt"
	"os"

	"mosey/log"
)

// RAM is a flat 64 KiB memory covering the full 16-bit address space.
type RAM struct {
	Data [0x10000]uint8
}

func NewRAM() *RAM { return &RAM{} }

func (r *RAM) Read(addr uint16) uint8       { return r.Data[addr] }
func (r *RAM) Write(addr uint16, val uint8) { r.Data[addr] = val }

// LoadAt copies data into memory starting at addr, wrapping at the top
// of the address space.
func (r *RAM) LoadAt(addr uint16, data []uint8) {
	for i, b := range data {
		r.Data[addr+uint16(i)] = b
	}
}

// SetVector writes a 16-bit little-endian pointer at addr.
func (r *RAM) SetVector(addr uint16, val uint16) {
	r.Data[addr] = uint8(val)
	r.Data[addr+1] = uint8(val >> 8)
}

// LoadFile loads a raw binary image at addr.
func (r *RAM) LoadFile(path string, addr uint16) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(data) > len(r.Data) {
		return fmt.Errorf("%s: image is %d bytes, larger than the address space", path, len(data))
	}
	r.LoadAt(addr, data)

	log.ModMem.InfoZ("loaded image").
		String("path", path).
		Hex16("addr", addr).
		Int("size", int64(len(data))).
		End()
	return nil
}
