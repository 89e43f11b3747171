package dmm

import s "github.com/bnclabs/gosettings"
import "github.com/cloudfoundry/gosigar"

import "github.com/eisl-nctu/dmm/backend"
import "github.com/eisl-nctu/dmm/cycle"
import "github.com/eisl-nctu/dmm/replay"
import "github.com/eisl-nctu/dmm/workload"

// Maxsoftcapacity upper limit on default software heap capacity.
const Maxsoftcapacity = int64(64 * 1024 * 1024)

// Minsoftcapacity lower limit on default software heap capacity.
const Minsoftcapacity = int64(4 * 1024 * 1024)

// Defaultsettings for a benchmark run, mixin of all component
// settings.
//
// "clock", "clock.*"
//		Cycle counter, refer cycle.Defaultsettings().
//
// "backend", "software.*", "hardware.*"
//		Allocator backend, refer backend.Defaultsettings().
//
// "software.arena.capacity" (int64)
//		Default will be a quarter of free RAM, limited to
//		[Minsoftcapacity, Maxsoftcapacity].
//
// "replay.*"
//		Replayer, refer replay.Defaultsettings().
//
// "workload.*"
//		Script generator, refer workload.Defaultsettings().
func Defaultsettings() s.Settings {
	setts := cycle.Defaultsettings()
	setts = setts.Mixin(
		backend.Defaultsettings(),
		replay.Defaultsettings().AddPrefix("replay."),
		workload.Defaultsettings().AddPrefix("workload."),
	)
	_, _, free := getsysmem()
	capacity := int64(free / 4)
	if capacity > Maxsoftcapacity {
		capacity = Maxsoftcapacity
	} else if capacity < Minsoftcapacity {
		capacity = Minsoftcapacity
	}
	setts["software.arena.capacity"] = capacity
	return setts
}

func getsysmem() (total, used, free uint64) {
	mem := sigar.Mem{}
	mem.Get()
	return mem.Total, mem.Used, mem.Free
}
