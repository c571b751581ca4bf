package apu

// State is a JSON-serializable snapshot of the APU's register file and
// derived channel-enable flags. The Mixer's internal resampler state is
// not snapshotted: a restored APU starts mixing fresh on the next sample.
type State struct {
	Regs                           [0x18]uint8
	Square1Enabled, Square2Enabled bool
}

// Snapshot captures a's register file and channel-enable flags.
func (a *APU) Snapshot() State {
	return State{
		Regs:           a.regs,
		Square1Enabled: a.square1Enabled,
		Square2Enabled: a.square2Enabled,
	}
}

// Restore replaces a's register file and channel-enable flags with s.
func (a *APU) Restore(s State) {
	a.regs = s.Regs
	a.square1Enabled = s.Square1Enabled
	a.square2Enabled = s.Square2Enabled
}
