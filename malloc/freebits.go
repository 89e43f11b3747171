package malloc

import "unsafe"

import "github.com/eisl-nctu/dmm/lib"

// freebits bitmap of free blocks, a set bit marks a free block.
type freebits struct {
	nblocks int64
	freeoff int64 // lowest byte that may have a free block, -1 if none
	bitmap  []uint8
}

func newfreebits(nblocks int64) *freebits {
	if (nblocks & 0x7) != 0 {
		panic("should be multiples of 8")
	}
	fbits := &freebits{nblocks: nblocks, bitmap: make([]uint8, nblocks>>3)}
	for i := range fbits.bitmap {
		fbits.bitmap[i] = 0xff
	}
	return fbits
}

func (fbits *freebits) sizeof() int64 {
	return int64(unsafe.Sizeof(*fbits)) + int64(len(fbits.bitmap))
}

func (fbits *freebits) freeblocks() (n int64) {
	for _, byt := range fbits.bitmap {
		n += int64(lib.Bit8(byt).Ones())
	}
	return
}

// alloc return the lowest free block and the number of bitmap bytes
// visited, -1 if bitmap is exhausted.
func (fbits *freebits) alloc() (nthblock int64, steps int64) {
	if fbits.freeoff < 0 {
		return -1, 1
	}
	for off := fbits.freeoff; off < int64(len(fbits.bitmap)); off++ {
		steps++
		byt := fbits.bitmap[off]
		if byt == 0 {
			continue
		}
		n := lib.Bit8(byt).Findfirstset()
		fbits.bitmap[off] = lib.Bit8(byt).Clearbit(uint8(n))
		fbits.freeoff = off
		return (off << 3) + int64(n), steps
	}
	fbits.freeoff = -1
	return -1, steps
}

func (fbits *freebits) free(nthblock int64) {
	q, r := (nthblock >> 3), uint8(nthblock&0x7)
	fbits.bitmap[q] = lib.Bit8(fbits.bitmap[q]).Setbit(r)
	if fbits.freeoff < 0 || q < fbits.freeoff {
		fbits.freeoff = q
	}
}

func (fbits *freebits) isfree(nthblock int64) bool {
	q, r := (nthblock >> 3), uint8(nthblock&0x7)
	return (fbits.bitmap[q] & (1 << r)) != 0
}
