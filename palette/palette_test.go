package palette

import "testing"

func TestResolveMasksToSixBits(t *testing.T) {
	if got, want := Resolve(0x0F), System[0x0F]; got != want {
		t.Fatalf("Resolve(0x0F) = %+v, want %+v", got, want)
	}
	// entries >=0x40 don't exist on real palette RAM, but Resolve must not
	// panic: the top two bits are masked off.
	if got, want := Resolve(0x4F), System[0x0F]; got != want {
		t.Fatalf("Resolve(0x4F) = %+v, want %+v (masked to 6 bits)", got, want)
	}
}

func TestSystemPaletteHas64Entries(t *testing.T) {
	if len(System) != 64 {
		t.Fatalf("len(System) = %d, want 64", len(System))
	}
	if System[0x0D] != (System[0x0E]) {
		t.Fatalf("expected the documented black-fill entries to match")
	}
}
