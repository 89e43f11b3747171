package main

import "fmt"
import "flag"

import humanize "github.com/dustin/go-humanize"

import "github.com/eisl-nctu/dmm/malloc"
import "github.com/eisl-nctu/dmm/workload"

var options struct {
	minblock  int
	maxblock  int
	capacity  int
	allocator string
	wordsize  int
	ops       int
	seed      int
}

func argParse() {
	flag.IntVar(&options.minblock, "minblock", 32,
		"minimum block size")
	flag.IntVar(&options.maxblock, "maxblock", 16384,
		"maximum block size")
	flag.IntVar(&options.capacity, "capacity", 16*1024*1024,
		"arena capacity")
	flag.StringVar(&options.allocator, "allocator", "flist",
		"pool algorithm, flist or fbit")
	flag.IntVar(&options.wordsize, "wordsize", 4,
		"bytes per word for script allocations")
	flag.IntVar(&options.ops, "ops", 0,
		"replay a generated script of ops records on the arena")
	flag.IntVar(&options.seed, "seed", 1,
		"seed for generated script")
	flag.Parse()
}

func main() {
	argParse()
	tellutilization()
	if options.ops > 0 {
		tellarena()
	}
}

func tellutilization() {
	sizes := malloc.Blocksizes(int64(options.minblock), int64(options.maxblock))
	fmt.Println(sizes, options.minblock, options.maxblock)
	for i, size := range sizes[1:] {
		u := (float64(sizes[i]+sizes[i+1]) / 2.0) / float64(size)
		fmt.Printf("size %4v, util %v\n", size, u)
	}
	fmt.Printf("total %v size pools\n", len(sizes))
}

// tellarena replay a generated script directly on an arena, without
// timing, and report how pools were used.
func tellarena() {
	setts := malloc.Defaultsettings(int64(options.minblock), int64(options.maxblock))
	setts["capacity"] = int64(options.capacity)
	setts["allocator"] = options.allocator
	arena := malloc.NewArena(setts)
	defer arena.Release()

	wsetts := workload.Defaultsettings()
	wsetts["ops"], wsetts["seed"] = int64(options.ops), int64(options.seed)
	script := workload.Generate(wsetts)

	ptrs, fails := make([]uint64, script.Slots()), 0
	for _, rec := range script {
		switch rec.Kind {
		case workload.Alloc:
			ptr, _, err := arena.Alloc(rec.Size * int64(options.wordsize))
			if err != nil {
				fails++
			}
			ptrs[rec.Slot] = ptr
		case workload.Free:
			if ptrs[rec.Slot] == 0 {
				continue
			} else if err := arena.Free(ptrs[rec.Slot]); err != nil {
				fails++
			}
			ptrs[rec.Slot] = 0
		}
	}

	overhead, useful := arena.Memory()
	fmsg := "arena{mem:{%v,%v} alloc:%v avail:%v steps:%v fails:%v}\n"
	fmt.Printf(fmsg, humanize.Bytes(uint64(overhead)),
		humanize.Bytes(uint64(useful)),
		humanize.Bytes(uint64(arena.Allocated())),
		humanize.Bytes(uint64(arena.Available())), arena.Steps(), fails)
	sizes, zs := arena.Utilization()
	for i, size := range sizes {
		fmt.Printf("size %6v, util %.2f%%\n", size, zs[i])
	}
}
