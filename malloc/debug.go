//go:build debug

package malloc

var poolblkinit = make([]byte, 1024)

func init() {
	for i := range poolblkinit {
		poolblkinit[i] = 0xff
	}
}

// initblock fill a freshly allocated chunk with 0xff, to catch readers
// of uninitialized memory.
func initblock(block []byte) {
	for len(block) > 0 {
		n := copy(block, poolblkinit)
		block = block[n:]
	}
}
