// Functions and methods are not thread safe.

package malloc

import "fmt"
import "unsafe"

import "github.com/eisl-nctu/dmm/api"

// poolfbit manages a memory block sliced up into equal sized chunks,
// free chunks are tracked in a bitmap.
type poolfbit struct {
	// 64-bit aligned stats
	mallocated int64

	capacity int64  // memory managed by this pool
	size     int64  // fixed size blocks in this pool
	base     uint64 // pool's base address
	block    []byte // backing memory
	fbits    *freebits
}

func fbitfactory() func(size, n int64, base uint64) Mpooler {
	return func(size, n int64, base uint64) Mpooler {
		return newpoolfbit(size, n, base)
	}
}

// size of each chunk in the block and no. of chunks in the block.
func newpoolfbit(size, n int64, base uint64) *poolfbit {
	capacity := size * n
	pool := &poolfbit{
		capacity: capacity,
		size:     size,
		base:     base,
		block:    make([]byte, capacity),
		fbits:    newfreebits(n),
	}
	return pool
}

// Chunksize implement Mpooler{} interface.
func (pool *poolfbit) Chunksize() int64 {
	return pool.size
}

// Base implement Mpooler{} interface.
func (pool *poolfbit) Base() uint64 {
	return pool.base
}

// Less implement Mpooler{} interface.
func (pool *poolfbit) Less(other interface{}) bool {
	return pool.base < other.(Mpooler).Base()
}

// Contains implement Mpooler{} interface.
func (pool *poolfbit) Contains(ptr uint64) bool {
	return ptr >= pool.base && ptr < pool.base+uint64(pool.capacity)
}

// Allocchunk implement Mpooler{} interface.
func (pool *poolfbit) Allocchunk() (uint64, int64, bool) {
	if pool.block == nil {
		panic(fmt.Errorf("pool already released"))
	} else if pool.mallocated == pool.capacity {
		return 0, 1, false
	}
	nthblock, steps := pool.fbits.alloc()
	if nthblock < 0 {
		return 0, steps, false
	}
	off := nthblock * pool.size
	initblock(pool.block[off : off+pool.size])
	pool.mallocated += pool.size
	ptr := pool.base + uint64(off)
	if (ptr & uint64(Alignment-1)) != 0 {
		fmsg := "allocated pointer is not %v byte aligned"
		panic(fmt.Errorf(fmsg, Alignment))
	}
	return ptr, steps, true
}

// Free implement Mpooler{} interface.
func (pool *poolfbit) Free(ptr uint64) (int64, error) {
	if !pool.Contains(ptr) {
		return 1, fmt.Errorf("%w: %x not in pool", api.ErrorInvalidHandle, ptr)
	}
	diffptr := ptr - pool.base
	if (diffptr % uint64(pool.size)) != 0 {
		fmsg := "%w: poolfbit.free(): unaligned pointer: %x,%v"
		return 1, fmt.Errorf(fmsg, api.ErrorInvalidHandle, diffptr, pool.size)
	}
	nthblock := int64(diffptr / uint64(pool.size))
	if pool.fbits.isfree(nthblock) {
		fmsg := "%w: poolfbit.free(): double free %x"
		return 1, fmt.Errorf(fmsg, api.ErrorInvalidHandle, ptr)
	}
	pool.fbits.free(nthblock)
	pool.mallocated -= pool.size
	return 1, nil
}

// Memory implement Mpooler{} interface.
func (pool *poolfbit) Memory() (overhead, useful int64) {
	self := int64(unsafe.Sizeof(*pool))
	return pool.fbits.sizeof() + self, pool.capacity
}

// Allocated implement Mpooler{} interface.
func (pool *poolfbit) Allocated() int64 {
	return pool.mallocated
}

// Available implement Mpooler{} interface.
func (pool *poolfbit) Available() int64 {
	return pool.capacity - pool.mallocated
}

// Release implement Mpooler{} interface.
func (pool *poolfbit) Release() {
	pool.block, pool.fbits = nil, nil
	pool.capacity, pool.base = 0, 0
	pool.mallocated = 0
}

//---- local functions

// can be costly operation.
func (pool *poolfbit) checkallocated() int64 {
	return pool.capacity - (pool.fbits.freeblocks() * pool.size)
}
