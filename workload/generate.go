package workload

import "math/rand"

import s "github.com/bnclabs/gosettings"

// Defaultsettings for script generator.
//
// "ops" (int64, default: 1000)
//		Number of records to generate.
//
// "slots" (int64, default: 64)
//		Number of slots, upper bound on live allocations.
//
// "minsize" (int64, default: 1)
//		Smallest allocation in words.
//
// "maxsize" (int64, default: 256)
//		Largest allocation in words.
//
// "seed" (int64, default: 1)
//		Seed for random source, same seed generates same script.
func Defaultsettings() s.Settings {
	return s.Settings{
		"ops":     int64(1000),
		"slots":   int64(64),
		"minsize": int64(1),
		"maxsize": int64(256),
		"seed":    int64(1),
	}
}

// Generate a random but valid script, every Free refers to a live slot.
func Generate(setts s.Settings) Script {
	ops, slots := setts.Int64("ops"), int(setts.Int64("slots"))
	minsize, maxsize := setts.Int64("minsize"), setts.Int64("maxsize")
	if slots <= 0 {
		panicerr("slots %v must be > 0", slots)
	} else if minsize < 0 || maxsize < minsize {
		panicerr("invalid size range [%v,%v]", minsize, maxsize)
	}
	rnd := rand.New(rand.NewSource(setts.Int64("seed")))

	// live holds occupied slots, empty holds the rest.
	live, empty := make([]int, 0, slots), make([]int, 0, slots)
	for slot := 0; slot < slots; slot++ {
		empty = append(empty, slot)
	}
	pick := func(list []int) ([]int, int) {
		i := rnd.Intn(len(list))
		slot := list[i]
		list[i] = list[len(list)-1]
		return list[:len(list)-1], slot
	}

	script := make(Script, 0, ops)
	for i := int64(0); i < ops; i++ {
		alloc := len(live) == 0 || (len(empty) > 0 && rnd.Intn(2) == 0)
		var slot int
		if alloc {
			empty, slot = pick(empty)
			live = append(live, slot)
			size := minsize + rnd.Int63n(maxsize-minsize+1)
			script = append(script, Record{Kind: Alloc, Slot: slot, Size: size})
		} else {
			live, slot = pick(live)
			empty = append(empty, slot)
			script = append(script, Record{Kind: Free, Slot: slot})
		}
	}
	return script
}
