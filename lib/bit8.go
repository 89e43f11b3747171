package lib

import "math/bits"

// Bit8 alias for uint8, provides bit twiddling methods on 8-bit number.
type Bit8 uint8

// Findfirstset return the position of least significant set bit, -1 if
// no bit is set.
func (b Bit8) Findfirstset() int8 {
	if b == 0 {
		return -1
	}
	return int8(bits.TrailingZeros8(uint8(b)))
}

// Clearbit return b with nth bit cleared.
func (b Bit8) Clearbit(n uint8) uint8 {
	return uint8(b) &^ (1 << n)
}

// Setbit return b with nth bit set.
func (b Bit8) Setbit(n uint8) uint8 {
	return uint8(b) | (1 << n)
}

// Ones return number of set bits.
func (b Bit8) Ones() int8 {
	return int8(bits.OnesCount8(uint8(b)))
}

// Zeros return number of cleared bits.
func (b Bit8) Zeros() int8 {
	return 8 - b.Ones()
}
