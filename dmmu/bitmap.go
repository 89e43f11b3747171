package dmmu

import "github.com/eisl-nctu/dmm/lib"

// bitmap of heap blocks, a set bit marks an allocated block.
type bitmap struct {
	nblocks int64
	words   []uint32
}

func newbitmap(nblocks int64) *bitmap {
	if (nblocks & 0x1f) != 0 {
		panicerr("blocks %v should be multiples of 32", nblocks)
	}
	return &bitmap{nblocks: nblocks, words: make([]uint32, nblocks>>5)}
}

// alloc first-fit run of k contiguous free blocks. Return the first
// block of the run, -1 if none, and the number of bitmap words scanned.
func (bm *bitmap) alloc(k int64) (int64, int64) {
	run, start, scanned := int64(0), int64(0), int64(0)
	for w, word := range bm.words {
		scanned++
		if word == 0xFFFFFFFF {
			run = 0
			continue
		} else if word == 0 && run+32 < k {
			if run == 0 {
				start = int64(w) << 5
			}
			run += 32
			continue
		}
		for b := uint8(0); b < 32; b++ {
			if lib.Bit32(word).Isset(b) {
				run = 0
				continue
			}
			if run == 0 {
				start = (int64(w) << 5) + int64(b)
			}
			if run++; run == k {
				bm.mark(start, k)
				return start, scanned
			}
		}
	}
	return -1, scanned
}

func (bm *bitmap) mark(start, k int64) {
	for blk := start; blk < start+k; blk++ {
		w, b := blk>>5, uint8(blk&0x1f)
		bm.words[w] = lib.Bit32(bm.words[w]).Setbit(b)
	}
}

func (bm *bitmap) clear(start, k int64) {
	for blk := start; blk < start+k; blk++ {
		w, b := blk>>5, uint8(blk&0x1f)
		bm.words[w] = lib.Bit32(bm.words[w]).Clearbit(b)
	}
}

func (bm *bitmap) used() (n int64) {
	for _, word := range bm.words {
		n += int64(lib.Bit32(word).Ones())
	}
	return n
}
