package ppu

// State is a JSON-serializable snapshot of the PPU's register file and
// dot/scanline position. VRAM contents are owned by whatever backs the
// VRAM interface and are snapshotted separately.
type State struct {
	Ctrl, Mask, Status uint8
	OAMAddr            uint8

	VRAMAddr   uint16
	WriteLatch bool
	ReadBuffer uint8

	Cycle, Scanline int
}

// Snapshot captures p's register file and dot/scanline position.
func (p *PPU) Snapshot() State {
	return State{
		Ctrl: p.ctrl, Mask: p.mask, Status: p.status,
		OAMAddr: p.oamAddr,

		VRAMAddr:   p.vramAddr,
		WriteLatch: p.writeLatch,
		ReadBuffer: p.readBuffer,

		Cycle:    p.cycle,
		Scanline: p.scanline,
	}
}

// Restore replaces p's register file and dot/scanline position with s.
func (p *PPU) Restore(s State) {
	p.ctrl, p.mask, p.status = s.Ctrl, s.Mask, s.Status
	p.oamAddr = s.OAMAddr

	p.vramAddr = s.VRAMAddr
	p.writeLatch = s.WriteLatch
	p.readBuffer = s.ReadBuffer

	p.cycle, p.scanline = s.Cycle, s.Scanline
}
