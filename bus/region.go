package bus

import "nesvm/internal/log"

// Addressable is a device that occupies a contiguous, optionally mirrored
// window of address space on a Bus.
//
// StartAddress is the base of the window a Bus uses to route accesses to
// this region; the region itself is responsible for wrapping any address
// beyond its own mirror window back onto its backing storage.
type Addressable interface {
	StartAddress() uint16
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// Region is the common addressable-window bookkeeping shared by RAM and
// ROM: it decodes an absolute address into an offset into a backing byte
// buffer, honoring mirroring.
//
//   actualSize = EndAddress - StartAddress + 1
//   mirrorSize = MirrorEndAddress - StartAddress + 1
//
// Every address in [StartAddress, MirrorEndAddress] decodes to offset
// (address - StartAddress) mod actualSize.
type Region struct {
	start      uint16
	end        uint16
	mirrorEnd  uint16
	actualSize int
	name       string
}

// NewRegion builds the offset-decoding bookkeeping for a window. If
// mirrorEnd is zero it defaults to end (no mirroring beyond the physical
// window).
func NewRegion(name string, start, end, mirrorEnd uint16) Region {
	if mirrorEnd == 0 {
		mirrorEnd = end
	}
	return Region{
		name:       name,
		start:      start,
		end:        end,
		mirrorEnd:  mirrorEnd,
		actualSize: int(end-start) + 1,
	}
}

func (r *Region) StartAddress() uint16 { return r.start }
func (r *Region) EndAddress() uint16   { return r.end }
func (r *Region) MirrorEnd() uint16    { return r.mirrorEnd }

// offset decodes addr into the backing buffer, wrapping per the mirror
// invariant regardless of whether addr falls within [start, mirrorEnd] —
// callers (the Bus) are expected to only forward addresses that belong to
// this region.
func (r *Region) offset(addr uint16) int {
	return int(addr-r.start) % r.actualSize
}

// RAM is a mutable, byte-backed Addressable.
type RAM struct {
	Region
	data []byte
}

// NewRAM allocates a zeroed RAM region of actualSize bytes, addressable
// (and mirrored) across [start, mirrorEnd].
func NewRAM(name string, start, end, mirrorEnd uint16) *RAM {
	r := NewRegion(name, start, end, mirrorEnd)
	return &RAM{Region: r, data: make([]byte, r.actualSize)}
}

func (m *RAM) Read(addr uint16) uint8 {
	return m.data[m.offset(addr)]
}

func (m *RAM) Write(addr uint16, val uint8) {
	m.data[m.offset(addr)] = val
}

// Bytes exposes the backing buffer, e.g. so a cartridge loader can copy
// PRG/CHR data in directly.
func (m *RAM) Bytes() []byte { return m.data }

// ROM is a byte-backed Addressable whose writes are dropped (and logged)
// rather than applied.
type ROM struct {
	Region
	data []byte
}

// NewROM wraps an existing buffer (e.g. PRG/CHR data copied from an iNES
// image) as a read-only region. data is copied into a buffer of
// actualSize bytes: a shorter slice is zero-padded, a longer one is
// truncated.
func NewROM(name string, start, end, mirrorEnd uint16, data []byte) *ROM {
	r := NewRegion(name, start, end, mirrorEnd)
	buf := make([]byte, r.actualSize)
	copy(buf, data)
	return &ROM{Region: r, data: buf}
}

func (r *ROM) Read(addr uint16) uint8 {
	return r.data[r.offset(addr)]
}

func (r *ROM) Write(addr uint16, val uint8) {
	log.ModBus.WarnZ("write to ROM dropped").
		Str("region", r.name).
		Hex16("addr", addr).
		Hex8("val", val).
		End()
}

func (r *ROM) Bytes() []byte { return r.data }
