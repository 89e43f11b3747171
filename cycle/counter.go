package cycle

import "github.com/eisl-nctu/dmm/api"

// Combine low and high words of a 64-bit cycle register and truncate
// the result to 32 bits.
func Combine(lo, hi uint32) api.Ticks {
	cycles64 := (uint64(hi) << 32) + uint64(lo)
	return api.Ticks(cycles64 & 0xFFFFFFFF)
}

// Elapsed ticks between start and end, wrap safe.
func Elapsed(start, end api.Ticks) api.Ticks {
	return end - start
}

// Overhead sample the cost of reading clk, two back to back reads with
// no intervening work.
func Overhead(clk api.Clock) api.Ticks {
	clk1 := clk.Now()
	clk2 := clk.Now()
	return Elapsed(clk1, clk2)
}
