// Functions and methods are not thread safe.

package malloc

import "fmt"
import "unsafe"

import "github.com/eisl-nctu/dmm/api"
import "github.com/eisl-nctu/dmm/lib"

// poolflist manages a memory block sliced up into equal sized chunks,
// free chunks are kept in a stack of chunk indices.
type poolflist struct {
	// 64-bit aligned stats
	mallocated int64

	capacity int64  // memory managed by this pool
	size     int64  // fixed size blocks in this pool
	base     uint64 // pool's base address
	block    []byte // backing memory
	freelist []uint16
	freeoff  int
	live     []uint8 // bit per chunk, set while allocated
}

func flistfactory() func(size, n int64, base uint64) Mpooler {
	return func(size, n int64, base uint64) Mpooler {
		return newpoolflist(size, n, base)
	}
}

// size of each chunk in the block and no. of chunks in the block.
func newpoolflist(size, n int64, base uint64) *poolflist {
	if n > Maxchunks {
		panicerr("chunks %v exceeds %v", n, Maxchunks)
	}
	capacity := size * n
	pool := &poolflist{
		capacity: capacity,
		size:     size,
		base:     base,
		block:    make([]byte, capacity),
		freelist: make([]uint16, n),
		freeoff:  int(n - 1),
		live:     make([]uint8, (n+7)/8),
	}
	// lowest chunk on top of the stack.
	for i := 0; i < int(n); i++ {
		pool.freelist[i] = uint16(int(n) - 1 - i)
	}
	return pool
}

// Chunksize implement Mpooler{} interface.
func (pool *poolflist) Chunksize() int64 {
	return pool.size
}

// Base implement Mpooler{} interface.
func (pool *poolflist) Base() uint64 {
	return pool.base
}

// Less implement Mpooler{} interface.
func (pool *poolflist) Less(other interface{}) bool {
	return pool.base < other.(Mpooler).Base()
}

// Contains implement Mpooler{} interface.
func (pool *poolflist) Contains(ptr uint64) bool {
	return ptr >= pool.base && ptr < pool.base+uint64(pool.capacity)
}

// Allocchunk implement Mpooler{} interface.
func (pool *poolflist) Allocchunk() (uint64, int64, bool) {
	if pool.block == nil {
		panic(fmt.Errorf("pool already released"))
	} else if pool.mallocated == pool.capacity {
		return 0, 1, false
	}
	nthblock := int64(pool.freelist[pool.freeoff])
	pool.freelist = pool.freelist[:pool.freeoff]
	pool.freeoff--
	pool.live[nthblock/8] = lib.Bit8(pool.live[nthblock/8]).Setbit(uint8(nthblock % 8))
	off := nthblock * pool.size
	initblock(pool.block[off : off+pool.size])
	pool.mallocated += pool.size
	ptr := pool.base + uint64(off)
	if (ptr & uint64(Alignment-1)) != 0 {
		fmsg := "allocated pointer is not %v byte aligned"
		panic(fmt.Errorf(fmsg, Alignment))
	}
	return ptr, 1, true
}

// Free implement Mpooler{} interface.
func (pool *poolflist) Free(ptr uint64) (int64, error) {
	if !pool.Contains(ptr) {
		return 1, fmt.Errorf("%w: %x not in pool", api.ErrorInvalidHandle, ptr)
	}
	diffptr := ptr - pool.base
	if (diffptr % uint64(pool.size)) != 0 {
		fmsg := "%w: poolflist.free(): unaligned pointer: %x,%v"
		return 1, fmt.Errorf(fmsg, api.ErrorInvalidHandle, diffptr, pool.size)
	}
	nthblock := uint16(diffptr / uint64(pool.size))
	byt, bit := pool.live[nthblock/8], uint8(nthblock%8)
	if (byt & (1 << bit)) == 0 {
		fmsg := "%w: poolflist.free(): chunk %x not allocated"
		return 1, fmt.Errorf(fmsg, api.ErrorInvalidHandle, ptr)
	}
	pool.live[nthblock/8] = lib.Bit8(byt).Clearbit(bit)
	pool.freelist = append(pool.freelist, nthblock)
	pool.freeoff++
	pool.mallocated -= pool.size
	return 1, nil
}

// Memory implement Mpooler{} interface.
func (pool *poolflist) Memory() (overhead, useful int64) {
	self := int64(unsafe.Sizeof(*pool))
	slicesz := int64(cap(pool.freelist)*2 + cap(pool.live))
	return slicesz + self, pool.capacity
}

// Allocated implement Mpooler{} interface.
func (pool *poolflist) Allocated() int64 {
	return pool.mallocated
}

// Available implement Mpooler{} interface.
func (pool *poolflist) Available() int64 {
	return pool.capacity - pool.mallocated
}

// Release implement Mpooler{} interface.
func (pool *poolflist) Release() {
	pool.block, pool.freelist, pool.freeoff = nil, nil, -1
	pool.live = nil
	pool.capacity, pool.base = 0, 0
	pool.mallocated = 0
}

//---- local functions

func (pool *poolflist) checkallocated() int64 {
	return pool.capacity - int64(len(pool.freelist))*pool.size
}
