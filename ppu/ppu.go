// Package ppu implements the NES's 2C02 picture processing unit: the
// 341x262 NTSC dot/scanline state machine, its CPU-facing register file,
// and background tile rendering into an RGBA framebuffer.
package ppu

import (
	"image"

	"nesvm/internal/log"
	"nesvm/palette"
	"nesvm/video"
)

const (
	dotsPerScanline   = 341
	scanlinesPerFrame = 262
	visibleScanlines  = 240
	vblankStart       = 241
	preRenderScanline = 261

	frameWidth  = 256
	frameHeight = 240

	patternTable0Base = 0x0000
)

const (
	ctrlNMIEnable     = 1 << 7
	ctrlIncrementMode = 1 << 2

	maskBackgroundEnable = 1 << 3

	statusVBlank     = 1 << 7
	statusSpriteZero = 1 << 6
)

// VRAM is the address space the PPU reads tiles, attributes, and palette
// entries from (pattern tables, nametables, and palette RAM), plus the
// named event channel the PPU raises "nmi" on; the core subscribes the
// CPU's GenerateNMI to that same bus.
type VRAM interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
	Emit(event string)
}

// PPU is addressable by the CPU bus at 0x2000, mirrored through 0x3FFF,
// and drives its own VRAM address space independently.
type PPU struct {
	VRAM VRAM
	Sink video.Sink

	ctrl, mask, status uint8
	oamAddr            uint8

	vramAddr   uint16
	writeLatch bool // false = next write sets the high byte
	readBuffer uint8

	cycle, scanline int

	frame *image.RGBA
}

// New builds a PPU wired to vram for tile/attribute/palette data and sink
// for presenting completed frames.
func New(vram VRAM, sink video.Sink) *PPU {
	return &PPU{
		VRAM:  vram,
		Sink:  sink,
		frame: image.NewRGBA(image.Rect(0, 0, frameWidth, frameHeight)),
	}
}

// Reset returns the PPU to its power-up state.
func (p *PPU) Reset() {
	p.ctrl, p.mask, p.status = 0, 0, 0
	p.oamAddr = 0
	p.vramAddr = 0
	p.writeLatch = false
	p.readBuffer = 0
	p.cycle, p.scanline = 0, 0
}

// StartAddress implements bus.Addressable: the PPU occupies 0x2000-0x2007,
// mirrored through 0x3FFF.
func (p *PPU) StartAddress() uint16 { return 0x2000 }

// Read services a CPU access to the register file, addr%8 selecting one
// of the eight registers per the mirroring across 0x2000-0x3FFF.
func (p *PPU) Read(addr uint16) uint8 {
	switch addr % 8 {
	case 2: // PPUSTATUS
		val := (p.status & 0xE0) | (p.readBuffer & 0x1F)
		p.status &^= statusVBlank
		p.writeLatch = false
		return val
	case 4: // OAMDATA stub
		return 0
	case 7: // PPUDATA
		return p.readData()
	default:
		return 0
	}
}

// Write services a CPU access to the register file.
func (p *PPU) Write(addr uint16, val uint8) {
	switch addr % 8 {
	case 0: // PPUCTRL
		p.writeCtrl(val)
	case 1: // PPUMASK
		p.mask = val
	case 3: // OAMADDR stub
		p.oamAddr = val
	case 4: // OAMDATA stub — OAM write-through is not modeled
	case 5: // PPUSCROLL stub — background scrolling is not modeled
	case 6: // PPUADDR
		p.writeAddr(val)
	case 7: // PPUDATA
		p.writeData(val)
	}
}

func (p *PPU) writeCtrl(val uint8) {
	log.ModPPU.DebugZ("write PPUCTRL").Hex8("val", val).End()

	wasEnabled := p.ctrl&ctrlNMIEnable != 0
	nowEnabled := val&ctrlNMIEnable != 0
	if !wasEnabled && nowEnabled && p.status&statusVBlank != 0 {
		p.raiseNMI()
	}
	if val&0x03 != p.ctrl&0x03 {
		p.vramAddr = 0x2000 + uint16(val&0x03)*0x0400
	}
	p.ctrl = val
}

func (p *PPU) writeAddr(val uint8) {
	if !p.writeLatch {
		p.vramAddr = uint16(val) << 8
	} else {
		p.vramAddr = (p.vramAddr & 0xFF00) | uint16(val)
	}
	p.writeLatch = !p.writeLatch
}

func (p *PPU) readData() uint8 {
	addr := p.vramAddr
	var val uint8
	if addr >= 0x3F00 {
		val = p.VRAM.Read(addr) // palette reads have no read-buffer delay
	} else {
		val = p.readBuffer
		p.readBuffer = p.VRAM.Read(addr)
	}
	p.advanceVRAMAddr()
	return val
}

func (p *PPU) writeData(val uint8) {
	p.VRAM.Write(p.vramAddr, val)
	p.advanceVRAMAddr()
}

func (p *PPU) advanceVRAMAddr() {
	if p.ctrl&ctrlIncrementMode != 0 {
		p.vramAddr += 32
	} else {
		p.vramAddr++
	}
}

func (p *PPU) raiseNMI() {
	p.VRAM.Emit("nmi")
}

// Tick advances the PPU by one dot-cycle: shading a pixel in the visible
// region, and running the VBlank/pre-render edge transitions.
func (p *PPU) Tick() {
	switch {
	case p.scanline >= 0 && p.scanline < visibleScanlines && p.cycle >= 1 && p.cycle <= 256:
		if p.mask&maskBackgroundEnable != 0 {
			p.renderPixel(p.cycle-1, p.scanline)
		}
	case p.scanline == preRenderScanline && p.cycle == 0:
		p.status &^= statusSpriteZero
	case p.scanline == vblankStart && p.cycle == 1:
		p.status |= statusVBlank
		if p.ctrl&ctrlNMIEnable != 0 {
			p.raiseNMI()
		}
		if p.Sink != nil {
			p.Sink.Present(p.frame)
		}
	}

	p.cycle++
	if p.cycle >= dotsPerScanline {
		p.cycle = 0
		p.scanline++
		if p.scanline >= scanlinesPerFrame {
			p.scanline = 0
			p.status &^= statusVBlank
		}
	}
}

func (p *PPU) renderPixel(visibleX, visibleY int) {
	ntX, ntY := visibleX>>3, visibleY>>3
	ntBase := 0x2000 + uint16(p.ctrl&0x03)*0x0400

	tileIndex := p.VRAM.Read(ntBase + uint16(ntY*32+ntX))
	patternAddr := uint16(patternTable0Base) + uint16(tileIndex)<<4

	tileRow := uint16(visibleY % 8)
	lo := p.VRAM.Read(patternAddr + tileRow)
	hi := p.VRAM.Read(patternAddr + tileRow + 8)

	tileX := uint(visibleX % 8)
	colorIndex := bit(hi, 7-tileX)<<1 | bit(lo, 7-tileX)

	attrAddr := ntBase + 0x3C0 + uint16((ntY>>2)*8+(ntX>>2))
	attr := p.VRAM.Read(attrAddr)
	quadrant := uint(ntY%2)*2 + uint(ntX%2)
	paletteIndex := (attr >> (quadrant * 2)) & 0x03

	var entry uint8
	if colorIndex == 0 {
		entry = p.VRAM.Read(0x3F00)
	} else {
		entry = p.VRAM.Read(0x3F00 + uint16(paletteIndex)<<2 + uint16(colorIndex))
	}

	p.frame.Set(visibleX, visibleY, palette.Resolve(entry))
}

func bit(b uint8, n uint) uint8 {
	return (b >> n) & 1
}

// Frame exposes the current (possibly in-progress) framebuffer, used by
// tests and headless rendering.
func (p *PPU) Frame() *image.RGBA { return p.frame }
