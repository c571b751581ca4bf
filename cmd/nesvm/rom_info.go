package main

import (
	"fmt"
	"os"

	"nesvm/cartridge"
)

// RomInfoCmd decodes a ROM's iNES header and prints it without powering on
// a System.
type RomInfoCmd struct {
	RomPath string `arg:"" name:"/path/to/rom" help:"ROM image to inspect." required:"true" type:"existingfile"`
}

func (r *RomInfoCmd) Run() error {
	raw, err := os.ReadFile(r.RomPath)
	if err != nil {
		return fmt.Errorf("nesvm: %w", err)
	}

	cart, err := cartridge.Load(raw)
	if err != nil {
		return fmt.Errorf("nesvm: %w", err)
	}

	fmt.Printf("mapper:       %d\n", cart.Mapper)
	fmt.Printf("mirroring:    %s\n", mirroringName(cart.Mirroring))
	fmt.Printf("battery:      %t\n", cart.Battery)
	fmt.Printf("tv system:    %s\n", tvSystemName(cart.PALTVSystem))
	fmt.Printf("prg size:     %d KB\n", len(cart.PRG)/1024)
	fmt.Printf("chr size:     %d KB\n", len(cart.CHR)/1024)
	return nil
}

func mirroringName(m cartridge.Mirroring) string {
	switch m {
	case cartridge.MirrorVertical:
		return "vertical"
	case cartridge.MirrorFourScreen:
		return "four-screen"
	default:
		return "horizontal"
	}
}

func tvSystemName(pal bool) string {
	if pal {
		return "PAL"
	}
	return "NTSC"
}
