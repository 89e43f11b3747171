package malloc

import s "github.com/bnclabs/gosettings"

// Alignment minblock and maxblocks should be multiples of Alignment.
const Alignment = int64(8)

// MEMUtilization is the ratio between allocated memory to application
// and useful memory allocated from OS.
const MEMUtilization = float64(0.95)

// Maxarenasize maximum size of a memory arena.
const Maxarenasize = int64(1024 * 1024 * 1024)

// Maxpools maximum number of pool sizes allowed in an arena.
const Maxpools = int64(512)

// Maxchunks maximum number of chunks allowed in a pool.
const Maxchunks = int64(65536)

// Defaultbase address of the first pool in an arena.
const Defaultbase = uint64(0x10000000)

// Defaultsettings for arena.
//
// "minblock" (int64, default: <minblock>)
//		Minimum size of a chunk.
//
// "maxblock" (int64, default: <maxblock>)
//		Maximum size of a chunk.
//
// "capacity" (int64, default: 16MB)
//		Memory capacity to be managed by the arena.
//
// "pool.capacity" (int64, default: 1MB)
//		Maximum capacity for a single pool.
//
// "maxpools" (int64, default: Maxpools)
//		Maximum number of pool sizes.
//
// "maxchunks" (int64, default: Maxchunks)
//		Maximum number of chunks in a pool.
//
// "allocator" (string, default: "flist")
//		Allocator algorithm, can be "flist" or "fbit".
//
// "base" (int64, default: Defaultbase)
//		Address of the first pool.
func Defaultsettings(minblock, maxblock int64) s.Settings {
	if minblock > maxblock {
		panicerr("minblock(%v) > maxblock(%v)", minblock, maxblock)
	}
	return s.Settings{
		"minblock":      minblock,
		"maxblock":      maxblock,
		"capacity":      int64(16 * 1024 * 1024),
		"pool.capacity": int64(1024 * 1024),
		"maxpools":      Maxpools,
		"maxchunks":     Maxchunks,
		"allocator":     "flist",
		"base":          int64(Defaultbase),
	}
}
