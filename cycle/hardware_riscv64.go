//go:build riscv64 && dmmhw

package cycle

import "github.com/eisl-nctu/dmm/api"

// rdcycle read the cycle CSR, implemented in hardware_riscv64.s
//
//go:noescape
func rdcycle() (lo, hi uint32)

type hardware struct{}

// Hardware return the target's cycle register as a counter.
func Hardware() (api.Clock, error) {
	return hardware{}, nil
}

func (hardware) Now() api.Ticks {
	return Combine(rdcycle())
}
