package cpu

// addressing-mode helpers. Each returns the effective address an
// instruction operates on, bumping additionalCycles for modes that incur
// a page-cross penalty.

func (c *CPU) modeImm() uint16 {
	addr := c.PC
	c.PC++
	return addr
}

func (c *CPU) modeZP() uint16 {
	return uint16(c.fetch8())
}

func (c *CPU) modeZPX() uint16 {
	return uint16(c.fetch8() + c.X)
}

func (c *CPU) modeZPY() uint16 {
	return uint16(c.fetch8() + c.Y)
}

func (c *CPU) modeAbs() uint16 {
	return c.fetch16()
}

func (c *CPU) modeAbsX() uint16 {
	base := c.fetch16()
	addr := base + uint16(c.X)
	if pageCrossed(base, addr) {
		c.additionalCycles++
	}
	return addr
}

func (c *CPU) modeAbsY() uint16 {
	base := c.fetch16()
	addr := base + uint16(c.Y)
	if pageCrossed(base, addr) {
		c.additionalCycles++
	}
	return addr
}

// modeInd resolves (addr), reproducing the 6502 bug where the indirect
// vector's high byte is fetched from the wrong page when the low byte of
// the pointer is 0xFF (used only by the JMP ($addr) instruction).
func (c *CPU) modeInd() uint16 {
	ptr := c.fetch16()
	lo := c.Bus.Read(ptr)
	var hiAddr uint16
	if ptr&0x00FF == 0x00FF {
		hiAddr = ptr & 0xFF00
	} else {
		hiAddr = ptr + 1
	}
	hi := c.Bus.Read(hiAddr)
	return uint16(hi)<<8 | uint16(lo)
}

// modeIndX resolves (zp,X): the zero-page pointer wraps within page zero.
func (c *CPU) modeIndX() uint16 {
	zp := c.fetch8() + c.X
	lo := c.Bus.Read(uint16(zp))
	hi := c.Bus.Read(uint16(zp + 1))
	return uint16(hi)<<8 | uint16(lo)
}

// modeIndY resolves (zp),Y, charging a page-cross cycle when adding Y
// carries into the next page.
func (c *CPU) modeIndY() uint16 {
	zp := c.fetch8()
	lo := c.Bus.Read(uint16(zp))
	hi := c.Bus.Read(uint16(zp + 1))
	base := uint16(hi)<<8 | uint16(lo)
	addr := base + uint16(c.Y)
	if pageCrossed(base, addr) {
		c.additionalCycles++
	}
	return addr
}

// branch reads the signed relative offset and, if taken, adjusts PC and
// charges the extra cycle(s): one for the branch being taken, a second if
// it also crosses a page.
func (c *CPU) branch(taken bool) {
	offset := int8(c.fetch8())
	if !taken {
		return
	}
	c.additionalCycles++
	target := uint16(int32(c.PC) + int32(offset))
	if pageCrossed(c.PC, target) {
		c.additionalCycles++
	}
	c.PC = target
}

func pageCrossed(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}
