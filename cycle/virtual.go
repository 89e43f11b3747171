package cycle

import "fmt"

import "github.com/eisl-nctu/dmm/api"

// Virtual emulates a 64-bit machine cycle counter exposed as a pair of
// 32-bit registers. Time moves forward by readcost on every read and by
// explicit calls to Advance. Not thread safe.
type Virtual struct {
	mcycle   uint64
	readcost uint64
}

// NewVirtual create a virtual counter starting at zero, each read costs
// readcost cycles.
func NewVirtual(readcost uint64) *Virtual {
	if readcost == 0 {
		panicerr("virtual clock readcost must be > 0")
	}
	return &Virtual{readcost: readcost}
}

// Now implement api.Clock interface.
func (v *Virtual) Now() api.Ticks {
	lo, hi := uint32(v.mcycle), uint32(v.mcycle>>32)
	v.mcycle += v.readcost
	return Combine(lo, hi)
}

// Advance implement api.Stepper interface.
func (v *Virtual) Advance(n uint64) {
	v.mcycle += n
}

// Set the 64-bit counter to cycles.
func (v *Virtual) Set(cycles uint64) {
	v.mcycle = cycles
}

// Cycles return the full 64-bit counter without charging a read.
func (v *Virtual) Cycles() uint64 {
	return v.mcycle
}

// Readcost return cycles charged for every read.
func (v *Virtual) Readcost() uint64 {
	return v.readcost
}

func (v *Virtual) String() string {
	return fmt.Sprintf("virtual{mcycle:%v readcost:%v}", v.mcycle, v.readcost)
}
