package malloc

import "fmt"
import "sort"
import "unsafe"

import s "github.com/bnclabs/gosettings"

import "github.com/eisl-nctu/dmm/api"

// Arena defines a large memory block that can be divided into memory pools.
type Arena struct {
	blocksizes []int64             // sorted list of block-sizes in this arena
	mpools     map[int64]Mpoolers // size -> list of Mpooler
	bases      Mpoolers           // all pools sorted by base address
	poolmaker  func(size, numblocks int64, base uint64) Mpooler
	nextbase   uint64 // address for the next pool
	steps      int64  // internal steps taken since creation

	// configuration
	capacity  int64  // memory capacity to be managed by this arena
	minblock  int64  // minimum block size allocatable by arena
	maxblock  int64  // maximum block size allocatable by arena
	pcapacity int64  // maximum capacity for a single pool
	maxpools  int64  // maximum number of pools
	maxchunks int64  // maximum number of chunks allowed in a pool
	allocator string // allocator algorithm
}

// NewArena create a new memory arena.
func NewArena(setts s.Settings) *Arena {
	minblock, maxblock := setts.Int64("minblock"), setts.Int64("maxblock")
	arena := &Arena{
		blocksizes: Blocksizes(minblock, maxblock),
		mpools:     make(map[int64]Mpoolers),
		nextbase:   uint64(setts.Int64("base")),
		// configuration
		minblock:  minblock,
		maxblock:  maxblock,
		capacity:  setts.Int64("capacity"),
		pcapacity: setts.Int64("pool.capacity"),
		maxpools:  setts.Int64("maxpools"),
		maxchunks: setts.Int64("maxchunks"),
		allocator: setts.String("allocator"),
	}
	if int64(len(arena.blocksizes)) > arena.maxpools {
		panicerr("number of pools in arena exeeds %v", arena.maxpools)
	} else if cp := arena.capacity; cp > Maxarenasize {
		panicerr("arena cannot exceed %v bytes (%v)", cp, Maxarenasize)
	} else if arena.nextbase == 0 || (arena.nextbase%uint64(Alignment)) != 0 {
		panicerr("arena base %x must be non-zero and aligned", arena.nextbase)
	}
	switch arena.allocator {
	case "flist":
		arena.poolmaker = flistfactory()
	case "fbit":
		arena.poolmaker = fbitfactory()
	default:
		panicerr("invalid allocator %q", arena.allocator)
	}
	for _, size := range arena.blocksizes {
		arena.mpools[size] = make(Mpoolers, 0, 4)
	}
	return arena
}

//---- operations

// Alloc a chunk of n bytes, return its address and the pool it came from.
func (arena *Arena) Alloc(n int64) (uint64, Mpooler, error) {
	if arena.mpools == nil {
		panicerr("arena released")
	}

	// check argument
	if largest := arena.blocksizes[len(arena.blocksizes)-1]; n > largest {
		fmsg := "%w: alloc size %v exceeds maxblock size %v"
		return 0, nil, fmt.Errorf(fmsg, api.ErrorOutofMemory, n, largest)
	}
	// try to get from existing pool
	size := SuitableSize(arena.blocksizes, n)
	for _, mpool := range arena.mpools[size] {
		arena.steps++
		ptr, steps, ok := mpool.Allocchunk()
		arena.steps += steps
		if ok {
			return ptr, mpool, nil
		}
	}
	// pool exhausted, figure the dimensions and create a new pool.
	numblocks := (arena.capacity / int64(len(arena.blocksizes))) / size
	if int64(numblocks*size) > arena.pcapacity {
		numblocks = arena.pcapacity / size
	}
	if numblocks > arena.maxchunks {
		numblocks = arena.maxchunks
	}
	if numblocks < 8 {
		numblocks = 8
	} else if (numblocks & 0x7) > 0 {
		numblocks = (numblocks >> 3) << 3
	}
	// check whether we are exceeding memory.
	allocated := int64(numblocks * size)
	for _, mpool := range arena.bases {
		_, useful := mpool.Memory()
		allocated += useful
	}
	if allocated > arena.capacity {
		return 0, nil, api.ErrorOutofMemory
	}
	// go ahead, create a new pool.
	mpool := arena.poolmaker(size, numblocks, arena.nextbase)
	arena.nextbase += uint64(numblocks * size)
	ln := len(arena.mpools[size])
	arena.mpools[size] = append(arena.mpools[size], nil)
	copy(arena.mpools[size][1:], arena.mpools[size][:ln])
	arena.mpools[size][0] = mpool
	arena.bases = append(arena.bases, mpool) // bases only grow.
	debugf("malloc: new pool size:%v blocks:%v base:%x\n",
		size, numblocks, mpool.Base())

	ptr, steps, _ := mpool.Allocchunk()
	arena.steps += steps + 1
	return ptr, mpool, nil
}

// Free chunk at ptr back to its pool.
func (arena *Arena) Free(ptr uint64) error {
	if arena.mpools == nil {
		panicerr("arena released")
	}
	mpool, steps := arena.lookup(ptr)
	arena.steps += steps
	if mpool == nil {
		return fmt.Errorf("%w: %x", api.ErrorInvalidHandle, ptr)
	}
	steps, err := mpool.Free(ptr)
	arena.steps += steps
	return err
}

// Release arena and all its pools.
func (arena *Arena) Release() {
	for _, mpool := range arena.bases {
		mpool.Release()
	}
	arena.blocksizes, arena.mpools, arena.bases = nil, nil, nil
}

// binary search pools by base address.
func (arena *Arena) lookup(ptr uint64) (Mpooler, int64) {
	steps := int64(0)
	i := sort.Search(len(arena.bases), func(i int) bool {
		steps++
		return arena.bases[i].Base() > ptr
	})
	if i == 0 {
		return nil, steps
	} else if mpool := arena.bases[i-1]; mpool.Contains(ptr) {
		return mpool, steps
	}
	return nil, steps
}

//---- statistics and maintenance

// Steps return internal steps taken by the arena since creation.
func (arena *Arena) Steps() int64 {
	return arena.steps
}

// Memory return memory overhead and useful memory held by arena.
func (arena *Arena) Memory() (overhead, useful int64) {
	self := int64(unsafe.Sizeof(*arena))
	slicesz := int64(cap(arena.blocksizes) * int(unsafe.Sizeof(int64(1))))
	overhead += self + slicesz
	for _, mpool := range arena.bases {
		x, y := mpool.Memory()
		overhead += x
		useful += y
	}
	return
}

// Allocated return memory handed out to application.
func (arena *Arena) Allocated() int64 {
	allocated := int64(0)
	for _, mpool := range arena.bases {
		allocated += mpool.Allocated()
	}
	return allocated
}

// Available return memory that can still be allocated.
func (arena *Arena) Available() int64 {
	return arena.capacity - arena.Allocated()
}

// Chunksizes return the list of chunk sizes managed by arena.
func (arena *Arena) Chunksizes() []int64 {
	return arena.blocksizes
}

// Utilization map of chunk-size and its pool utilization.
func (arena *Arena) Utilization() ([]int, []float64) {
	var sizes []int
	for _, size := range arena.blocksizes {
		sizes = append(sizes, int(size))
	}
	sort.Ints(sizes)

	ss, zs := make([]int, 0), make([]float64, 0)
	for _, size := range sizes {
		capacity, allocated := float64(0), float64(0)
		for _, mpool := range arena.mpools[int64(size)] {
			_, useful := mpool.Memory()
			capacity += float64(useful)
			allocated += float64(mpool.Allocated())
		}
		if capacity > 0 {
			ss = append(ss, size)
			zs = append(zs, (allocated/capacity)*100)
		}
	}
	return ss, zs
}

// Mpoolers sortable based on base-pointer.
type Mpoolers []Mpooler

func (pools Mpoolers) Len() int {
	return len(pools)
}

func (pools Mpoolers) Less(i, j int) bool {
	return pools[i].Less(pools[j])
}

func (pools Mpoolers) Swap(i, j int) {
	pools[i], pools[j] = pools[j], pools[i]
}
