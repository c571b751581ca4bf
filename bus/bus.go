package bus

import (
	"sort"

	"nesvm/internal/log"
)

// Bus multiplexes reads and writes across a set of Addressable regions and
// carries a small named event channel, used exclusively to signal "nmi"
// from the PPU to the CPU.
type Bus struct {
	name    string
	regions []Addressable // sorted by StartAddress, descending

	listeners map[string][]func()
}

// New creates an empty bus. Regions are attached with Map.
func New(name string) *Bus {
	return &Bus{name: name, listeners: make(map[string][]func())}
}

// Map attaches a region to the bus. Reset must be called (or Map must be
// followed by no further Map calls before use) to keep the routing order
// consistent; Map re-sorts immediately so callers never need to remember.
func (b *Bus) Map(r Addressable) {
	b.regions = append(b.regions, r)
	b.Reset()
}

// Reset re-sorts the region list by descending StartAddress. Ties keep
// their relative Map order (stable sort), so of two regions mapped at the
// same start address the one mapped first wins; a later Map at that
// address does not override it.
func (b *Bus) Reset() {
	sort.SliceStable(b.regions, func(i, j int) bool {
		return b.regions[i].StartAddress() > b.regions[j].StartAddress()
	})
}

// find returns the first (highest-start) region whose StartAddress is at
// or below addr, or nil if every region starts above addr.
func (b *Bus) find(addr uint16) Addressable {
	for _, r := range b.regions {
		if r.StartAddress() <= addr {
			return r
		}
	}
	return nil
}

// Read returns 0x00 for any address not covered by a mapped region.
func (b *Bus) Read(addr uint16) uint8 {
	r := b.find(addr)
	if r == nil {
		log.ModBus.WarnZ("read at unmapped address").Hex16("addr", addr).End()
		return 0x00
	}
	return r.Read(addr)
}

// Write silently drops any write to an address not covered by a mapped
// region.
func (b *Bus) Write(addr uint16, val uint8) {
	r := b.find(addr)
	if r == nil {
		log.ModBus.WarnZ("write at unmapped address dropped").
			Hex16("addr", addr).Hex8("val", val).End()
		return
	}
	r.Write(addr, val)
}

// Read16 reads a little-endian word.
func (b *Bus) Read16(addr uint16) uint16 {
	lo := b.Read(addr)
	hi := b.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// Subscribe registers fn to run whenever event is emitted on this bus. The
// core only ever uses this for the PPU bus's "nmi" event.
func (b *Bus) Subscribe(event string, fn func()) {
	b.listeners[event] = append(b.listeners[event], fn)
}

// Emit synchronously invokes every listener subscribed to event, in
// subscription order.
func (b *Bus) Emit(event string) {
	for _, fn := range b.listeners[event] {
		fn()
	}
}
