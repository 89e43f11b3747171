package cycle

import "fmt"

import s "github.com/bnclabs/gosettings"

import "github.com/eisl-nctu/dmm/api"

// Defaultsettings for cycle counters.
//
// "clock" (string, default: "virtual")
//		Counter to use, can be "virtual", "monotonic" or "hardware".
//
// "clock.readcost" (int64, default: 1)
//		Cycles charged by the virtual counter for every read.
func Defaultsettings() s.Settings {
	return s.Settings{
		"clock":          "virtual",
		"clock.readcost": int64(1),
	}
}

// New create a counter from settings.
func New(setts s.Settings) (api.Clock, error) {
	switch name := setts.String("clock"); name {
	case "virtual":
		readcost := setts.Int64("clock.readcost")
		if readcost <= 0 {
			return nil, fmt.Errorf("invalid clock.readcost %v", readcost)
		}
		return NewVirtual(uint64(readcost)), nil
	case "monotonic":
		return NewMonotonic(), nil
	case "hardware":
		clk, err := Hardware()
		if err != nil {
			errorf("cycle: hardware counter: %v\n", err)
		}
		return clk, err
	default:
		return nil, fmt.Errorf("unknown clock %q", name)
	}
}

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}
