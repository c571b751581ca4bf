// Package state serializes a System's CPU, PPU, APU, and RAM state to and
// from JSON, so a run can be paused and resumed byte-for-byte.
package state

import (
	"fmt"

	"github.com/go-faster/jx"

	"nesvm/apu"
	"nesvm/cpu"
	"nesvm/ppu"
)

// version guards against loading a snapshot written by an incompatible
// future layout.
const version = 1

// Snapshot is a JSON-serializable projection of everything a System needs
// to resume execution: CPU registers, PPU registers and dot position, APU
// register file, and the 2KB of internal work RAM. Cartridge PRG/CHR ROM
// is not included — the caller re-supplies the ROM image on load.
type Snapshot struct {
	CPU cpu.State
	PPU ppu.State
	APU apu.State
	RAM [0x0800]byte
}

// Marshal encodes s as JSON.
func Marshal(s Snapshot) ([]byte, error) {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	e.ObjStart()

	e.FieldStart("version")
	e.Int(version)

	e.FieldStart("cpu")
	encodeCPU(e, s.CPU)

	e.FieldStart("ppu")
	encodePPU(e, s.PPU)

	e.FieldStart("apu")
	encodeAPU(e, s.APU)

	e.FieldStart("ram")
	e.Base64(s.RAM[:])

	e.ObjEnd()

	return append([]byte(nil), e.Bytes()...), nil
}

// Unmarshal decodes JSON produced by Marshal back into a Snapshot.
func Unmarshal(data []byte) (Snapshot, error) {
	var s Snapshot
	var gotVersion int

	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "version":
			gotVersion, err = d.Int()
		case "cpu":
			s.CPU, err = decodeCPU(d)
		case "ppu":
			s.PPU, err = decodePPU(d)
		case "apu":
			s.APU, err = decodeAPU(d)
		case "ram":
			var raw []byte
			raw, err = d.Base64()
			if err == nil {
				if len(raw) != len(s.RAM) {
					return fmt.Errorf("state: ram field has %d bytes, want %d", len(raw), len(s.RAM))
				}
				copy(s.RAM[:], raw)
			}
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("state: decode: %w", err)
	}
	if gotVersion != version {
		return Snapshot{}, fmt.Errorf("state: unsupported snapshot version %d, want %d", gotVersion, version)
	}
	return s, nil
}

func encodeCPU(e *jx.Encoder, s cpu.State) {
	e.ObjStart()
	e.FieldStart("a")
	e.UInt8(s.A)
	e.FieldStart("x")
	e.UInt8(s.X)
	e.FieldStart("y")
	e.UInt8(s.Y)
	e.FieldStart("sp")
	e.UInt8(s.SP)
	e.FieldStart("p")
	e.UInt8(s.P)
	e.FieldStart("pc")
	e.UInt16(s.PC)
	e.FieldStart("cycles_remaining")
	e.Int(s.CyclesRemaining)
	e.FieldStart("additional_cycles")
	e.Int(s.AdditionalCycles)
	e.FieldStart("pending_irq")
	e.Bool(s.PendingIRQ)
	e.FieldStart("pending_nmi")
	e.Bool(s.PendingNMI)
	e.ObjEnd()
}

func decodeCPU(d *jx.Decoder) (cpu.State, error) {
	var s cpu.State
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "a":
			s.A, err = d.UInt8()
		case "x":
			s.X, err = d.UInt8()
		case "y":
			s.Y, err = d.UInt8()
		case "sp":
			s.SP, err = d.UInt8()
		case "p":
			s.P, err = d.UInt8()
		case "pc":
			s.PC, err = d.UInt16()
		case "cycles_remaining":
			s.CyclesRemaining, err = d.Int()
		case "additional_cycles":
			s.AdditionalCycles, err = d.Int()
		case "pending_irq":
			s.PendingIRQ, err = d.Bool()
		case "pending_nmi":
			s.PendingNMI, err = d.Bool()
		default:
			err = d.Skip()
		}
		return err
	})
	return s, err
}

func encodePPU(e *jx.Encoder, s ppu.State) {
	e.ObjStart()
	e.FieldStart("ctrl")
	e.UInt8(s.Ctrl)
	e.FieldStart("mask")
	e.UInt8(s.Mask)
	e.FieldStart("status")
	e.UInt8(s.Status)
	e.FieldStart("oam_addr")
	e.UInt8(s.OAMAddr)
	e.FieldStart("vram_addr")
	e.UInt16(s.VRAMAddr)
	e.FieldStart("write_latch")
	e.Bool(s.WriteLatch)
	e.FieldStart("read_buffer")
	e.UInt8(s.ReadBuffer)
	e.FieldStart("cycle")
	e.Int(s.Cycle)
	e.FieldStart("scanline")
	e.Int(s.Scanline)
	e.ObjEnd()
}

func decodePPU(d *jx.Decoder) (ppu.State, error) {
	var s ppu.State
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "ctrl":
			s.Ctrl, err = d.UInt8()
		case "mask":
			s.Mask, err = d.UInt8()
		case "status":
			s.Status, err = d.UInt8()
		case "oam_addr":
			s.OAMAddr, err = d.UInt8()
		case "vram_addr":
			s.VRAMAddr, err = d.UInt16()
		case "write_latch":
			s.WriteLatch, err = d.Bool()
		case "read_buffer":
			s.ReadBuffer, err = d.UInt8()
		case "cycle":
			s.Cycle, err = d.Int()
		case "scanline":
			s.Scanline, err = d.Int()
		default:
			err = d.Skip()
		}
		return err
	})
	return s, err
}

func encodeAPU(e *jx.Encoder, s apu.State) {
	e.ObjStart()
	e.FieldStart("regs")
	e.Base64(s.Regs[:])
	e.FieldStart("square1_enabled")
	e.Bool(s.Square1Enabled)
	e.FieldStart("square2_enabled")
	e.Bool(s.Square2Enabled)
	e.ObjEnd()
}

func decodeAPU(d *jx.Decoder) (apu.State, error) {
	var s apu.State
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "regs":
			var raw []byte
			raw, err = d.Base64()
			if err == nil {
				if len(raw) != len(s.Regs) {
					return fmt.Errorf("state: apu regs field has %d bytes, want %d", len(raw), len(s.Regs))
				}
				copy(s.Regs[:], raw)
			}
		case "square1_enabled":
			s.Square1Enabled, err = d.Bool()
		case "square2_enabled":
			s.Square2Enabled, err = d.Bool()
		default:
			err = d.Skip()
		}
		return err
	})
	return s, err
}
