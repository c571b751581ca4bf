package cartridge

import (
	"testing"

	"nesvm/bus"
)

func buildHeader(prgPages, chrPages, flags6, flags7 byte) []byte {
	h := make([]byte, headerSize)
	copy(h, magic)
	h[4] = prgPages
	h[5] = chrPages
	h[6] = flags6
	h[7] = flags7
	return h
}

func TestLoadRejectsBadMagic(t *testing.T) {
	raw := make([]byte, headerSize)
	copy(raw, "XES\x1a")
	if _, err := Load(raw); err != ErrInvalidCartridge {
		t.Fatalf("err = %v, want ErrInvalidCartridge", err)
	}
}

func TestLoadDecodesHeaderFields(t *testing.T) {
	raw := buildHeader(1, 1, 0b0011_0011, 0b0000_0000) // vertical+battery, mapper 3 (low nibble in flags6 bits 7-4)
	raw = append(raw, make([]byte, prgPageSize)...)
	raw = append(raw, make([]byte, chrPageSize)...)

	c, err := Load(raw)
	if err != nil {
		t.Fatal(err)
	}
	if c.Mapper != 3 {
		t.Fatalf("Mapper = %d, want 3", c.Mapper)
	}
	if c.Mirroring != MirrorVertical {
		t.Fatalf("Mirroring = %d, want MirrorVertical", c.Mirroring)
	}
	if !c.Battery {
		t.Fatal("expected Battery = true")
	}
	if len(c.PRG) != prgPageSize || len(c.CHR) != chrPageSize {
		t.Fatalf("PRG/CHR lengths = %d/%d, want %d/%d", len(c.PRG), len(c.CHR), prgPageSize, chrPageSize)
	}
}

func TestLoadSkipsTrainer(t *testing.T) {
	raw := buildHeader(1, 0, 0x04, 0) // trainer present
	raw = append(raw, make([]byte, trainerSize)...)
	prg := make([]byte, prgPageSize)
	prg[0] = 0xEA
	raw = append(raw, prg...)

	c, err := Load(raw)
	if err != nil {
		t.Fatal(err)
	}
	if c.PRG[0] != 0xEA {
		t.Fatalf("PRG[0] = %02x, want 0xEA (trainer should have been skipped)", c.PRG[0])
	}
}

func TestMapNROMMirrors16KBPRG(t *testing.T) {
	prg := make([]byte, prgPageSize)
	prg[0] = 0x42
	c := &Cartridge{PRG: prg, CHR: make([]byte, chrPageSize)}

	cpuBus := bus.New("cpu")
	ppuBus := bus.New("ppu")
	if err := c.MapNROM(cpuBus, ppuBus); err != nil {
		t.Fatal(err)
	}

	if got := cpuBus.Read(0x8000); got != 0x42 {
		t.Fatalf("Read(0x8000) = %02x, want 0x42", got)
	}
	if got := cpuBus.Read(0xC000); got != 0x42 {
		t.Fatalf("Read(0xC000) = %02x, want 0x42 (mirrored bank)", got)
	}
}

func TestMapNROMAllocatesCHRRAMWhenAbsent(t *testing.T) {
	c := &Cartridge{PRG: make([]byte, prgPageSize)}
	cpuBus := bus.New("cpu")
	ppuBus := bus.New("ppu")
	if err := c.MapNROM(cpuBus, ppuBus); err != nil {
		t.Fatal(err)
	}
	ppuBus.Write(0x0000, 0x55)
	if got := ppuBus.Read(0x0000); got != 0x55 {
		t.Fatalf("Read(0x0000) = %02x, want 0x55 (CHR RAM should be writable)", got)
	}
}
