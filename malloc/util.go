package malloc

import "fmt"
import "sort"

// SuitableSize return the smallest chunk size in sorted blocksizes that
// can hold size bytes.
func SuitableSize(blocksizes []int64, size int64) int64 {
	i := sort.Search(len(blocksizes), func(i int) bool {
		return blocksizes[i] >= size
	})
	if i == len(blocksizes) {
		panicerr("size %v greater than configured %v", size, blocksizes[i-1])
	}
	return blocksizes[i]
}

// Blocksizes return chunk sizes between minblock and maxblock, both
// inclusive, spaced so that a request rounded up to the next size still
// meets MEMUtilization on average.
func Blocksizes(minblock, maxblock int64) []int64 {
	if maxblock < minblock {
		panicerr("maxblock %v < minblock %v", maxblock, minblock)
	} else if (minblock % Alignment) != 0 {
		panicerr("minblock %v is not multiple of %v", minblock, Alignment)
	} else if (maxblock % Alignment) != 0 {
		panicerr("maxblock %v is not multiple of %v", maxblock, Alignment)
	}

	sizes := make([]int64, 0, 64)
	for size := minblock; size < maxblock; size = nextblocksize(size) {
		sizes = append(sizes, size)
	}
	return append(sizes, maxblock)
}

// step is the wasted fraction of from, at least 32 and a multiple of 32.
func nextblocksize(from int64) int64 {
	step := int64(float64(from) * (1.0 - MEMUtilization))
	if step <= 32 {
		step = 32
	} else {
		step &^= 0x1f
	}
	next := from + step
	for (float64(from+next)/2.0)/float64(next) > MEMUtilization {
		next += step
	}
	return next
}

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}
