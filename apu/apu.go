// Package apu is a register-accepting stub for the NES's 2A03 audio
// processing unit: enough to let a ROM write every pulse/triangle/
// noise/DMC register without the bus dropping the access, plus an
// optional sample mixer for the channels that are actually modeled.
package apu

import (
	"nesvm/internal/log"
)

// Register offsets from the APU's base address, 0x4000.
const (
	regSquare1Base  = 0x00
	regSquare2Base  = 0x04
	regTriangleBase = 0x08
	regNoiseBase    = 0x0C
	regDMCBase      = 0x10
	regStatus       = 0x15
	regFrameCounter = 0x17
)

// APU accepts writes to every register in its 0x4000-0x4017 window and
// tracks just enough pulse-channel state to drive a Mixer; the triangle,
// noise, and DMC channels are stubs that never produce samples.
type APU struct {
	Mixer *Mixer

	regs [0x18]uint8

	square1Enabled, square2Enabled bool
}

// New builds an APU. mixer may be nil, in which case register writes are
// still accepted but no samples are ever mixed.
func New(mixer *Mixer) *APU {
	return &APU{Mixer: mixer}
}

// StartAddress implements bus.Addressable.
func (a *APU) StartAddress() uint16 { return 0x4000 }

// Reset silences every channel and clears the register file.
func (a *APU) Reset() {
	for i := range a.regs {
		a.regs[i] = 0
	}
	a.square1Enabled, a.square2Enabled = false, false
	if a.Mixer != nil {
		a.Mixer.Reset()
	}
}

// Read services $4015 (channel-enable status). Real hardware reports
// each channel's length-counter-active bit there; since this stub never
// clocks a length counter, every bit is always silent and the read is 0
// regardless of what was last written. Every other address in the
// window is write-only on real hardware and also reads back as 0.
func (a *APU) Read(addr uint16) uint8 {
	return 0
}

// Write records the register; a $4015 write also latches the two pulse
// channels' enable bits. Nothing is forwarded to the Mixer.
func (a *APU) Write(addr uint16, val uint8) {
	off := addr - 0x4000
	if int(off) < len(a.regs) {
		a.regs[off] = val
	}

	switch off {
	case regStatus:
		a.square1Enabled = val&0x01 != 0
		a.square2Enabled = val&0x02 != 0
	default:
		log.ModAPU.DebugZ("register write").Hex16("addr", addr).Hex8("val", val).End()
	}
}
