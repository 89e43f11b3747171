package lib

// Bit32 alias for uint32, provides bit twiddling methods on 32-bit number.
type Bit32 uint32

// Ones return number of set bits.
func (b Bit32) Ones() int8 {
	b = b - ((b >> 1) & 0x55555555)
	b = (b & 0x33333333) + ((b >> 2) & 0x33333333)
	return int8((((b + (b >> 4)) & 0x0F0F0F0F) * 0x01010101) >> 24)
}

// Zeros return number of cleared bits.
func (b Bit32) Zeros() int8 {
	return 32 - b.Ones()
}

// Isset return whether nth bit is set.
func (b Bit32) Isset(n uint8) bool {
	return (uint32(b) & (1 << n)) != 0
}

// Setbit return b with nth bit set.
func (b Bit32) Setbit(n uint8) uint32 {
	return uint32(b) | (1 << n)
}

// Clearbit return b with nth bit cleared.
func (b Bit32) Clearbit(n uint8) uint32 {
	return uint32(b) &^ (1 << n)
}
