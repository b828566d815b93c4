package mem

import "mosey/log"

const pageSize = 0x100

// bank is one mapped region. mask folds accesses into the backing
// slice, which mirrors slices shorter than their mapped range.
type bank struct {
	data     []uint8
	mask     uint16
	base     uint16
	readonly bool
}

// Table routes bus accesses to banks mapped at page granularity.
// Unmapped reads return 0, unmapped writes and writes to read-only
// banks are dropped; all three are logged.
type Table struct {
	Name  string
	pages [0x100]*bank
}

func NewTable(name string) *Table {
	return &Table{Name: name}
}

// MapSlice maps data over [addr,end]. The range must cover whole
// pages. A slice shorter than the range must have a power-of-two
// length and is mirrored across it.
func (t *Table) MapSlice(addr, end uint16, data []uint8, readonly bool) {
	if addr%pageSize != 0 || (uint32(end)+1)%pageSize != 0 {
		panic("mapping is not page aligned")
	}
	if len(data)&(len(data)-1) != 0 {
		panic("memory buffer size is not pow2")
	}

	log.ModMem.DebugZ("mapping slice").
		Hex16("addr", addr).
		Hex16("end", end).
		String("bus", t.Name).
		Bool("ro", readonly).
		End()

	b := &bank{
		data:     data,
		mask:     uint16(len(data) - 1),
		base:     addr,
		readonly: readonly,
	}
	for page := uint32(addr) / pageSize; page <= uint32(end)/pageSize; page++ {
		t.pages[page] = b
	}
}

// Unmap removes any mapping over [begin,end].
func (t *Table) Unmap(begin, end uint16) {
	for page := uint32(begin) / pageSize; page <= uint32(end)/pageSize; page++ {
		t.pages[page] = nil
	}
}

func (t *Table) Read(addr uint16) uint8 {
	b := t.pages[addr>>8]
	if b == nil {
		log.ModMem.ErrorZ("unmapped read").
			String("name", t.Name).
			Hex16("addr", addr).
			End()
		return 0
	}
	return b.data[(addr-b.base)&b.mask]
}

func (t *Table) Write(addr uint16, val uint8) {
	b := t.pages[addr>>8]
	if b == nil {
		log.ModMem.ErrorZ("unmapped write").
			String("name", t.Name).
			Hex16("addr", addr).
			Hex8("val", val).
			End()
		return
	}
	if b.readonly {
		log.ModMem.ErrorZ("write to ROM").
			String("name", t.Name).
			Hex16("addr", addr).
			Hex8("val", val).
			End()
		return
	}
	b.data[(addr-b.base)&b.mask] = val
}
