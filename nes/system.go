// Package nes wires a Bus, Clock, CPU, PPU, cartridge, controllers, and
// APU stub together into a complete, runnable system.
package nes

import (
	"fmt"
	"time"

	"nesvm/apu"
	"nesvm/bus"
	"nesvm/cartridge"
	"nesvm/clock"
	"nesvm/controller"
	"nesvm/cpu"
	"nesvm/input"
	"nesvm/internal/log"
	"nesvm/ppu"
	"nesvm/state"
	"nesvm/video"
)

const (
	cpuDivider = 3
	ppuDivider = 1
)

// frameCounterPort demuxes 0x4017, which is two unrelated registers on
// real hardware sharing one address: a write configures the APU's frame
// counter, while a read returns controller port 2's next serial data
// bit. Bus routes each address to a single Addressable, so this composite
// owns 0x4017 and forwards each direction to the collaborator that
// actually answers for it.
type frameCounterPort struct {
	apu        *apu.APU
	controller *controller.Controller
}

func (p *frameCounterPort) StartAddress() uint16 { return 0x4017 }

func (p *frameCounterPort) Read(addr uint16) uint8 { return p.controller.Read(addr) }

func (p *frameCounterPort) Write(addr uint16, val uint8) { p.apu.Write(addr, val) }

// System owns every collaborator the core needs to run a cartridge:
// the CPU/PPU buses, the master Clock, the CPU and PPU themselves, the
// loaded Cartridge, and the two controller ports.
type System struct {
	CPUBus *bus.Bus
	PPUBus *bus.Bus

	Clock *clock.Clock
	CPU   *cpu.CPU
	PPU   *ppu.PPU
	APU   *apu.APU
	RAM   *bus.RAM

	Controllers [2]*controller.Controller

	Cartridge *cartridge.Cartridge
}

// New decodes rom, maps it onto fresh CPU/PPU buses alongside RAM, the
// PPU register file, the APU stub, and both controller ports, and
// registers the CPU/PPU tick callbacks with a new Clock at their native
// 3:1 ratio. sink and source may be nil, in which case video.Discard and
// input.None are used.
func New(rom []byte, sink video.Sink, source input.Source) (*System, error) {
	cart, err := cartridge.Load(rom)
	if err != nil {
		return nil, fmt.Errorf("nes: %w", err)
	}
	if cart.Mapper != 0 {
		return nil, fmt.Errorf("nes: unsupported mapper %d (only NROM/0 is implemented)", cart.Mapper)
	}

	if sink == nil {
		sink = video.Discard{}
	}
	if source == nil {
		source = input.None{}
	}

	sys := &System{
		CPUBus:    bus.New("cpu"),
		PPUBus:    bus.New("ppu"),
		Cartridge: cart,
	}

	if err := cart.MapNROM(sys.CPUBus, sys.PPUBus); err != nil {
		return nil, fmt.Errorf("nes: %w", err)
	}

	sys.RAM = bus.NewRAM("ram", 0x0000, 0x07FF, 0x1FFF)
	sys.CPUBus.Map(sys.RAM)

	sys.PPU = ppu.New(sys.PPUBus, sink)
	sys.CPUBus.Map(sys.PPU)

	sys.APU = apu.New(nil)
	sys.CPUBus.Map(sys.APU)

	sys.Controllers[0] = controller.New(source, 0)
	sys.Controllers[1] = controller.New(source, 1)
	sys.CPUBus.Map(sys.Controllers[0])
	sys.CPUBus.Map(&frameCounterPort{apu: sys.APU, controller: sys.Controllers[1]})

	sys.CPU = cpu.New(sys.CPUBus)
	sys.PPUBus.Subscribe("nmi", sys.CPU.GenerateNMI)

	sys.Clock = clock.New()
	sys.Clock.Register(sys.CPU.Tick, cpuDivider, 0)
	sys.Clock.Register(sys.PPU.Tick, ppuDivider, 0)

	sys.Reset()

	log.ModEmu.InfoZ("system powered on").
		Hex8("mapper", cart.Mapper).
		End()

	return sys, nil
}

// Reset forwards a reset signal to the CPU and PPU.
func (sys *System) Reset() {
	sys.CPU.Reset()
	sys.PPU.Reset()
}

// Step advances the system by a single Clock step (one PPU dot, and one
// CPU cycle every third step).
func (sys *System) Step() {
	sys.Clock.Step()
}

// StepN advances the system by n Clock steps.
func (sys *System) StepN(n int) {
	sys.Clock.StepN(n)
}

// Run starts the cooperative batch loop described by the Clock, blocking
// until Stop is called. Intended to run on its own goroutine.
func (sys *System) Run(yieldInterval int, yieldDelay time.Duration) {
	sys.Clock.Start(yieldInterval, yieldDelay)
}

// Stop requests the running batch loop to exit at its next batch
// boundary.
func (sys *System) Stop() {
	sys.Clock.Stop()
}

// SaveSnapshot encodes the CPU, PPU, APU, and work-RAM state as JSON.
// Cartridge contents are not included; LoadSnapshot restores into the
// System that loaded the matching ROM.
func (sys *System) SaveSnapshot() ([]byte, error) {
	var snap state.Snapshot
	snap.CPU = sys.CPU.Snapshot()
	snap.PPU = sys.PPU.Snapshot()
	snap.APU = sys.APU.Snapshot()
	copy(snap.RAM[:], sys.RAM.Bytes())
	return state.Marshal(snap)
}

// LoadSnapshot restores the CPU, PPU, APU, and work-RAM state encoded by
// a prior SaveSnapshot call on a System running the same cartridge.
func (sys *System) LoadSnapshot(data []byte) error {
	snap, err := state.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("nes: %w", err)
	}
	sys.CPU.Restore(snap.CPU)
	sys.PPU.Restore(snap.PPU)
	sys.APU.Restore(snap.APU)
	copy(sys.RAM.Bytes(), snap.RAM[:])
	return nil
}
