package backend

import "fmt"

import s "github.com/bnclabs/gosettings"

import "github.com/eisl-nctu/dmm/api"
import "github.com/eisl-nctu/dmm/dmmu"
import "github.com/eisl-nctu/dmm/malloc"

// Defaultsettings for allocator backends.
//
// "backend" (string, default: "software")
//		Backend to benchmark, can be "software" or "hardware". Exactly
//		one backend is exercised per run.
//
// "software.allocator" (string, default: "arena")
//		Heap allocator, can be "arena" or "cznic".
//
// "software.wordsize" (int64, default: 4)
//		Bytes per word, requests are made in words.
//
// "software.cost.alloc" (int64, default: 24)
//		Cycles charged for every allocation on an emulated clock.
//
// "software.cost.free" (int64, default: 16)
//		Cycles charged for every free on an emulated clock.
//
// "software.cost.step" (int64, default: 4)
//		Cycles charged for every internal allocator step on an
//		emulated clock.
//
// "software.arena.*"
//		Settings for malloc.Arena, refer malloc.Defaultsettings().
//
// "hardware.native" (bool, default: false)
//		Execute custom instructions natively, riscv64 builds with tag
//		dmmhw only.
//
// "hardware.dmmu.*"
//		Settings for the emulated allocator unit, refer
//		dmmu.Defaultsettings().
func Defaultsettings() s.Settings {
	setts := s.Settings{
		"backend":             "software",
		"software.allocator":  "arena",
		"software.wordsize":   int64(4),
		"software.cost.alloc": int64(24),
		"software.cost.free":  int64(16),
		"software.cost.step":  int64(4),
		"hardware.native":     false,
	}
	arenasetts := malloc.Defaultsettings(32, 16384).AddPrefix("software.arena.")
	dmmusetts := dmmu.Defaultsettings().AddPrefix("hardware.dmmu.")
	return setts.Mixin(arenasetts, dmmusetts)
}

// New create the backend selected by settings.
func New(clock api.Clock, setts s.Settings) (api.Backend, error) {
	switch name := setts.String("backend"); name {
	case "software":
		sw, err := NewSoftware(clock, setts.Section("software.").Trim("software."))
		if err != nil {
			return nil, err
		}
		return sw, nil

	case "hardware":
		hw, err := NewHardware(clock, setts.Section("hardware.").Trim("hardware."))
		if err != nil {
			return nil, err
		}
		return hw, nil
	}
	return nil, fmt.Errorf("unknown backend %q", setts.String("backend"))
}

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}
