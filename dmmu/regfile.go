package dmmu

// Regfile integer register file, x0 is hard-wired to zero.
type Regfile struct {
	x [32]uint32
}

// Read register n.
func (regs *Regfile) Read(n uint8) uint32 {
	if n &= 0x1f; n == Zero {
		return 0
	}
	return regs.x[n]
}

// Write value to register n, writes to x0 are discarded.
func (regs *Regfile) Write(n uint8, value uint32) {
	if n &= 0x1f; n == Zero {
		return
	}
	regs.x[n] = value
}
