//go:build riscv64 && dmmhw

package backend

// Implemented in native_riscv64.s. t1 and t2 are caller saved under
// the Go ABI, so the instructions may clobber them freely.

//go:noescape
func nativemalloc(nwords uint32) uint32

//go:noescape
func nativefree(addr uint32)

//go:noescape
func nativecsr() (malloc, free uint32)

func nativeok() error {
	return nil
}
