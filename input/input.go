// Package input defines the interface the Controller polls for button
// state, independent of any concrete keyboard/gamepad backend.
package input

// Source reports the live button state for one of the two controller
// ports as 8 bits in shift order: A, B, Select, Start, Up, Down, Left,
// Right (bit 0 first out of the shift register).
type Source interface {
	ButtonState(pad int) uint8
}

// None is a Source that reports every button released, used by tests and
// headless CLI invocations.
type None struct{}

func (None) ButtonState(pad int) uint8 { return 0 }
