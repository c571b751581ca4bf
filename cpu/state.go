package cpu

// State is a JSON-serializable snapshot of every register and pending-
// interrupt latch a CPU carries between Tick calls.
type State struct {
	A, X, Y, SP uint8
	P           uint8
	PC          uint16

	CyclesRemaining  int
	AdditionalCycles int

	PendingIRQ bool
	PendingNMI bool
}

// Snapshot captures c's full register and interrupt-latch state. The Bus
// is not part of the snapshot; the caller is responsible for the address
// space (RAM, mapped ROM) a restored CPU runs against.
func (c *CPU) Snapshot() State {
	return State{
		A: c.A, X: c.X, Y: c.Y, SP: c.SP,
		P:  uint8(c.P),
		PC: c.PC,

		CyclesRemaining:  c.cyclesRemaining,
		AdditionalCycles: c.additionalCycles,

		PendingIRQ: c.pendingIRQ,
		PendingNMI: c.pendingNMI,
	}
}

// Restore replaces c's register and interrupt-latch state with s.
func (c *CPU) Restore(s State) {
	c.A, c.X, c.Y, c.SP = s.A, s.X, s.Y, s.SP
	c.P = P(s.P)
	c.PC = s.PC

	c.cyclesRemaining = s.CyclesRemaining
	c.additionalCycles = s.AdditionalCycles

	c.pendingIRQ = s.PendingIRQ
	c.pendingNMI = s.PendingNMI
}
