package replay

import "errors"
import "fmt"

import s "github.com/bnclabs/gosettings"

import "github.com/eisl-nctu/dmm/api"
import "github.com/eisl-nctu/dmm/cycle"
import "github.com/eisl-nctu/dmm/workload"

// Defaultsettings for replayer.
//
// "idle" (int64, default: 1)
//		Ticks to idle after every record, models processing between
//		consecutive allocator calls.
//
// "settle" (int64, default: 100)
//		Ticks to idle after the run before reading a backend's
//		background execution time.
//
// "strict" (bool, default: false)
//		Stop at the first failed record. By default failures are
//		counted and the run continues.
func Defaultsettings() s.Settings {
	return s.Settings{
		"idle":   int64(1),
		"settle": int64(100),
		"strict": false,
	}
}

// Result of one run.
type Result struct {
	Backend  string
	Ops      int       // records replayed
	Failures int       // records whose backend call failed
	Malloc   api.Ticks // accumulated allocation time
	Free     api.Ticks // accumulated free time

	// background execution time as reported by an api.Profiler backend.
	Background bool
	BgMalloc   api.Ticks
	BgFree     api.Ticks
}

// Replayer drives a backend through a script. Not thread safe.
type Replayer struct {
	clock   api.Clock
	slots   []api.Handle
	mallocs api.Ticks
	frees   api.Ticks

	// configuration
	idle   api.Ticks
	settle api.Ticks
	strict bool
}

// New create a replayer timed by clock.
func New(clock api.Clock, setts s.Settings) *Replayer {
	idle, settle := setts.Int64("idle"), setts.Int64("settle")
	if idle < 0 || settle < 0 {
		panicerr("idle %v and settle %v must be >= 0", idle, settle)
	}
	return &Replayer{
		clock:  clock,
		idle:   api.Ticks(idle),
		settle: api.Ticks(settle),
		strict: setts.Bool("strict"),
	}
}

// Run replay script against backend and return accumulated allocate and
// free time. Error is non-nil when the run stopped early, on an illegal
// instruction or on any failure in strict mode, and Result holds the
// partial timing till then.
func (r *Replayer) Run(script workload.Script, b api.Backend) (Result, error) {
	r.mallocs, r.frees = 0, 0
	r.slots = make([]api.Handle, script.Slots())

	res := Result{Backend: b.Name()}
	for i, rec := range script {
		elapsed, err := r.timeop(rec, b)
		if rec.Kind == workload.Alloc {
			r.mallocs += elapsed
		} else {
			r.frees += elapsed
		}
		res.Ops++

		if err != nil {
			res.Failures++
			warnf("replay: record %v %q: %v\n", i, rec, err)
			fatal := errors.Is(err, api.ErrorIllegalInstruction)
			if fatal || r.strict {
				res.Malloc, res.Free = r.mallocs, r.frees
				return res, fmt.Errorf("record %v %q: %w", i, rec, err)
			}
		}
		cycle.Delay(r.clock, r.idle)
	}
	res.Malloc, res.Free = r.mallocs, r.frees

	if p, ok := b.(api.Profiler); ok {
		cycle.Delay(r.clock, r.settle)
		res.BgMalloc, res.BgFree = p.Background()
		res.Background = true
	}
	debugf("replay: %v ops:%v failures:%v malloc:%v free:%v\n",
		res.Backend, res.Ops, res.Failures, res.Malloc, res.Free)
	return res, nil
}

// Slots return the slot table of the last run.
func (r *Replayer) Slots() []api.Handle {
	return r.slots
}

// timeop time a single record, corrected by a freshly sampled counter
// overhead.
func (r *Replayer) timeop(rec workload.Record, b api.Backend) (api.Ticks, error) {
	overhead := cycle.Overhead(r.clock)
	if rec.Kind == workload.Alloc {
		clk3 := r.clock.Now()
		h, err := b.Alloc(rec.Size)
		r.slots[rec.Slot] = h
		clk4 := r.clock.Now()
		return cycle.Elapsed(clk3, clk4) - overhead, err
	}
	clk3 := r.clock.Now()
	err := b.Free(r.slots[rec.Slot])
	clk4 := r.clock.Now()
	return cycle.Elapsed(clk3, clk4) - overhead, err
}

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}
