//go:build !(riscv64 && dmmhw)

package backend

import "github.com/eisl-nctu/dmm/api"

func nativemalloc(nwords uint32) uint32 {
	panic(api.ErrorNoHardware)
}

func nativefree(addr uint32) {
	panic(api.ErrorNoHardware)
}

func nativecsr() (malloc, free uint32) {
	panic(api.ErrorNoHardware)
}

func nativeok() error {
	return api.ErrorNoHardware
}
