package mem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRAMLoadAtWraps(t *testing.T) {
	ram := NewRAM()
	ram.LoadAt(0xFFFF, []uint8{0x11, 0x22, 0x33})

	if ram.Data[0xFFFF] != 0x11 || ram.Data[0x0000] != 0x22 || ram.Data[0x0001] != 0x33 {
		t.Errorf("got %02X %02X %02X, want 11 22 33",
			ram.Data[0xFFFF], ram.Data[0x0000], ram.Data[0x0001])
	}
}

func TestRAMSetVector(t *testing.T) {
	ram := NewRAM()
	ram.SetVector(0xFFFC, 0x0600)

	if ram.Read(0xFFFC) != 0x00 || ram.Read(0xFFFD) != 0x06 {
		t.Errorf("got %02X %02X, want 00 06", ram.Read(0xFFFC), ram.Read(0xFFFD))
	}
}

func TestRAMLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.bin")
	if err := os.WriteFile(path, []byte{0xA9, 0x01, 0x00}, 0644); err != nil {
		t.Fatal(err)
	}

	ram := NewRAM()
	if err := ram.LoadFile(path, 0x0600); err != nil {
		t.Fatalf("LoadFile: %s", err)
	}
	if ram.Read(0x0600) != 0xA9 || ram.Read(0x0601) != 0x01 {
		t.Error("image not loaded at $0600")
	}

	if err := ram.LoadFile(filepath.Join(t.TempDir(), "nope.bin"), 0); err == nil {
		t.Error("no error for missing file")
	}
}

func TestTableMapping(t *testing.T) {
	tbl := NewTable("test")
	ram := make([]uint8, 0x800)
	tbl.MapSlice(0x0000, 0x07FF, ram, false)

	tbl.Write(0x0123, 0xAB)
	if got := tbl.Read(0x0123); got != 0xAB {
		t.Errorf("got %02X, want AB", got)
	}
	if ram[0x0123] != 0xAB {
		t.Error("write did not reach backing slice")
	}
}

func TestTableMirroring(t *testing.T) {
	tbl := NewTable("test")
	ram := make([]uint8, 0x800)

	// 2K of RAM mirrored over the first 8K, C64-style bank folding.
	tbl.MapSlice(0x0000, 0x1FFF, ram, false)

	tbl.Write(0x0005, 0x42)
	for _, addr := range []uint16{0x0005, 0x0805, 0x1005, 0x1805} {
		if got := tbl.Read(addr); got != 0x42 {
			t.Errorf("mirror $%04X = %02X, want 42", addr, got)
		}
	}
}

func TestTableReadOnly(t *testing.T) {
	tbl := NewTable("test")
	rom := make([]uint8, 0x1000)
	rom[0x0123] = 0x77
	tbl.MapSlice(0xF000, 0xFFFF, rom, true)

	if got := tbl.Read(0xF123); got != 0x77 {
		t.Errorf("got %02X, want 77", got)
	}

	tbl.Write(0xF123, 0x00)
	if got := tbl.Read(0xF123); got != 0x77 {
		t.Errorf("ROM modified: got %02X, want 77", got)
	}
}

func TestTableUnmapped(t *testing.T) {
	tbl := NewTable("test")
	ram := make([]uint8, 0x100)
	tbl.MapSlice(0x0000, 0x00FF, ram, false)

	if got := tbl.Read(0x8000); got != 0 {
		t.Errorf("unmapped read = %02X, want 0", got)
	}
	tbl.Write(0x8000, 0xFF) // dropped

	tbl.Unmap(0x0000, 0x00FF)
	tbl.Write(0x0000, 0xFF)
	if ram[0] != 0 {
		t.Error("write reached unmapped slice")
	}
}

func TestTablePanics(t *testing.T) {
	mustPanic := func(t *testing.T, f func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Error("no panic")
			}
		}()
		f()
	}

	t.Run("unaligned", func(t *testing.T) {
		tbl := NewTable("test")
		mustPanic(t, func() {
			tbl.MapSlice(0x0010, 0x010F, make([]uint8, 0x100), false)
		})
	})
	t.Run("not pow2", func(t *testing.T) {
		tbl := NewTable("test")
		mustPanic(t, func() {
			tbl.MapSlice(0x0000, 0x02FF, make([]uint8, 0x300), false)
		})
	})
}
