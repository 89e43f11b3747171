//go:build !(riscv64 && dmmhw)

package cycle

import "github.com/eisl-nctu/dmm/api"

// Hardware cycle register is not reachable in this build.
func Hardware() (api.Clock, error) {
	return nil, api.ErrorNoHardware
}
