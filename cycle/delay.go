package cycle

import "github.com/eisl-nctu/dmm/api"

// Delay spin on clk until at least min ticks have elapsed since entry.
// It never yields.
func Delay(clk api.Clock, min api.Ticks) {
	clk1 := clk.Now()
	for {
		if clk2 := clk.Now(); Elapsed(clk1, clk2) >= min {
			return
		}
	}
}
