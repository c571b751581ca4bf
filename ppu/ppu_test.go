package ppu

import (
	"testing"

	"nesvm/palette"
)

// flatVRAM is a 16KB byte-addressable VRAM used to exercise the PPU in
// isolation from the bus-region/mirroring machinery.
type flatVRAM struct {
	mem       [0x4000]byte
	listeners []func()
}

func (v *flatVRAM) Read(addr uint16) uint8       { return v.mem[addr&0x3FFF] }
func (v *flatVRAM) Write(addr uint16, val uint8) { v.mem[addr&0x3FFF] = val }
func (v *flatVRAM) Emit(event string) {
	if event != "nmi" {
		return
	}
	for _, fn := range v.listeners {
		fn()
	}
}

func newTestPPU() (*PPU, *flatVRAM) {
	v := &flatVRAM{}
	p := New(v, nil)
	p.Reset()
	return p, v
}

func TestPPUADDRTwoWriteLatch(t *testing.T) {
	p, _ := newTestPPU()
	p.Write(0x2006, 0x21) // high byte
	p.Write(0x2006, 0x08) // low byte
	if p.vramAddr != 0x2108 {
		t.Fatalf("vramAddr = %04x, want 0x2108", p.vramAddr)
	}
}

func TestPPUDATAReadBufferDelay(t *testing.T) {
	p, v := newTestPPU()
	v.mem[0x2108] = 0xAB
	v.mem[0x2109] = 0xCD
	p.Write(0x2006, 0x21)
	p.Write(0x2006, 0x08)

	first := p.Read(0x2007)
	if first != 0 {
		t.Fatalf("first PPUDATA read = %02x, want 0x00 (buffered)", first)
	}
	second := p.Read(0x2007)
	if second != 0xAB {
		t.Fatalf("second PPUDATA read = %02x, want 0xAB", second)
	}
}

func TestPPUDATAPaletteReadHasNoDelay(t *testing.T) {
	p, v := newTestPPU()
	v.mem[0x3F00] = 0x16
	p.Write(0x2006, 0x3F)
	p.Write(0x2006, 0x00)
	if got := p.Read(0x2007); got != 0x16 {
		t.Fatalf("palette PPUDATA read = %02x, want 0x16 (no buffer delay)", got)
	}
}

func TestPPUDATAIncrementMode(t *testing.T) {
	p, _ := newTestPPU()
	p.Write(0x2006, 0x00)
	p.Write(0x2006, 0x00)
	p.Write(0x2000, 0x04) // increment mode = +32
	p.Write(0x2007, 0xFF)
	if p.vramAddr != 32 {
		t.Fatalf("vramAddr after write = %d, want 32", p.vramAddr)
	}
}

func TestPPUSTATUSClearsVBlankAndLatch(t *testing.T) {
	p, _ := newTestPPU()
	p.status |= statusVBlank
	p.writeLatch = true
	val := p.Read(0x2002)
	if val&statusVBlank == 0 {
		t.Fatal("expected VBlank bit set in the read value")
	}
	if p.status&statusVBlank != 0 {
		t.Fatal("expected VBlank flag cleared after reading PPUSTATUS")
	}
	if p.writeLatch {
		t.Fatal("expected write latch cleared after reading PPUSTATUS")
	}
}

func TestVBlankSetAndNMIRaised(t *testing.T) {
	p, v := newTestPPU()
	p.ctrl = ctrlNMIEnable

	var nmiCount int
	v.listeners = append(v.listeners, func() { nmiCount++ })

	p.scanline, p.cycle = vblankStart, 1
	p.Tick() // VBlank set, NMI raised

	if p.status&statusVBlank == 0 {
		t.Fatal("expected VBlank flag set")
	}
	if nmiCount != 1 {
		t.Fatalf("nmiCount = %d, want 1", nmiCount)
	}
}

func TestNMIEnableWhileVBlankActiveRaisesImmediately(t *testing.T) {
	p, v := newTestPPU()
	p.status |= statusVBlank

	var nmiCount int
	v.listeners = append(v.listeners, func() { nmiCount++ })

	p.Write(0x2000, ctrlNMIEnable)
	if nmiCount != 1 {
		t.Fatalf("nmiCount = %d, want 1 (NMI raised immediately on newly-set enable)", nmiCount)
	}
}

func TestPreRenderClearsSpriteZeroHit(t *testing.T) {
	p, _ := newTestPPU()
	p.status |= statusSpriteZero
	p.scanline, p.cycle = preRenderScanline, 0
	p.Tick()
	if p.status&statusSpriteZero != 0 {
		t.Fatal("expected sprite-zero-hit cleared at scanline 261, cycle 0")
	}
}

func TestBackgroundPixelDerivation(t *testing.T) {
	p, v := newTestPPU()
	p.mask = maskBackgroundEnable

	// tile index 1 at nametable (0,0)
	v.mem[0x2000] = 0x01
	// pattern table entry for tile 1: low plane all 1s, high plane all 0s
	// at row 0 -> color index 1 for every pixel in that row.
	v.mem[0x0010] = 0xFF // pattern 1, low plane, row 0
	v.mem[0x0018] = 0x00 // pattern 1, high plane, row 0
	// attribute byte: top-left quadrant selects palette 2
	v.mem[0x23C0] = 0x02
	// palette RAM: palette 2, tidbit 1
	v.mem[0x3F00+2*4+1] = 0x01

	p.renderPixel(0, 0)

	got := p.frame.RGBAAt(0, 0)
	want := palette.Resolve(0x01)
	if got != want {
		t.Fatalf("pixel(0,0) = %+v, want %+v", got, want)
	}
}
