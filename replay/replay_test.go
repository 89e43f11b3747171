package replay

import "errors"
import "testing"

import "github.com/stretchr/testify/require"

import "github.com/eisl-nctu/dmm/api"
import "github.com/eisl-nctu/dmm/backend"
import "github.com/eisl-nctu/dmm/cycle"
import "github.com/eisl-nctu/dmm/workload"

// fixedbackend charges a constant latency to a virtual clock for every
// call and hands out increasing handles.
type fixedbackend struct {
	clk     *cycle.Virtual
	latency uint64
	next    api.Handle
	freed   []api.Handle
	failon  workload.Kind
	err     error
}

func (f *fixedbackend) Name() string { return "fixed" }

func (f *fixedbackend) Alloc(nwords int64) (api.Handle, error) {
	f.clk.Advance(f.latency)
	if f.err != nil && f.failon == workload.Alloc {
		return 0, f.err
	}
	f.next++
	return f.next, nil
}

func (f *fixedbackend) Free(h api.Handle) error {
	f.clk.Advance(f.latency)
	f.freed = append(f.freed, h)
	if f.err != nil && f.failon == workload.Free {
		return f.err
	}
	return nil
}

func (f *fixedbackend) Release() {}

func newfixed(readcost, latency uint64) (*cycle.Virtual, *fixedbackend) {
	clk := cycle.NewVirtual(readcost)
	return clk, &fixedbackend{clk: clk, latency: latency}
}

func malloc(slot int, size int64) workload.Record {
	return workload.Record{Kind: workload.Alloc, Slot: slot, Size: size}
}

func free(slot int) workload.Record {
	return workload.Record{Kind: workload.Free, Slot: slot}
}

func TestEmptyScript(t *testing.T) {
	clk, b := newfixed(1, 10)
	res, err := New(clk, Defaultsettings()).Run(workload.Script{}, b)
	require.NoError(t, err)
	require.Equal(t, api.Ticks(0), res.Malloc)
	require.Equal(t, api.Ticks(0), res.Free)
	require.Equal(t, 0, res.Ops)
	require.False(t, res.Background)
}

func TestFixedLatency(t *testing.T) {
	// measured latency per call is readcost+latency = 50, overhead 3.
	clk, b := newfixed(3, 47)
	script := workload.Script{malloc(0, 4), malloc(1, 4), free(0), free(1)}
	res, err := New(clk, Defaultsettings()).Run(script, b)
	require.NoError(t, err)
	require.Equal(t, api.Ticks(2*(50-3)), res.Malloc)
	require.Equal(t, api.Ticks(2*(50-3)), res.Free)
	require.Equal(t, 4, res.Ops)
	require.Equal(t, 0, res.Failures)
	require.Equal(t, "fixed", res.Backend)
}

func TestAllocOnly(t *testing.T) {
	clk, b := newfixed(1, 10)
	script := workload.Script{malloc(0, 1), malloc(1, 2), malloc(2, 3)}
	res, err := New(clk, Defaultsettings()).Run(script, b)
	require.NoError(t, err)
	require.Equal(t, api.Ticks(30), res.Malloc)
	require.Equal(t, api.Ticks(0), res.Free)

	// free only, every free targets an empty slot.
	clk, b = newfixed(1, 10)
	script = workload.Script{free(0), free(1)}
	res, err = New(clk, Defaultsettings()).Run(script, b)
	require.NoError(t, err)
	require.Equal(t, api.Ticks(0), res.Malloc)
	require.Equal(t, api.Ticks(20), res.Free)
	require.Equal(t, []api.Handle{0, 0}, b.freed)
}

func TestSingleOpNonNegative(t *testing.T) {
	for _, latency := range []uint64{0, 1, 5, 1000} {
		for _, rec := range []workload.Record{malloc(0, 1), free(0)} {
			clk, b := newfixed(3, latency)
			res, err := New(clk, Defaultsettings()).Run(workload.Script{rec}, b)
			require.NoError(t, err)
			// a negative interval would wrap to a huge value.
			require.Equal(t, api.Ticks(latency), res.Malloc+res.Free, "%v", rec)
		}
	}
}

func TestSlotReuse(t *testing.T) {
	clk, b := newfixed(1, 10)
	r := New(clk, Defaultsettings())
	script := workload.Script{malloc(0, 4), free(0), malloc(0, 8)}
	_, err := r.Run(script, b)
	require.NoError(t, err)
	require.Equal(t, []api.Handle{1}, b.freed)
	require.Equal(t, []api.Handle{2}, r.Slots())
}

func TestCounterWrap(t *testing.T) {
	script := workload.Script{malloc(0, 4), malloc(1, 4), free(1), free(0)}

	clk, b := newfixed(2, 33)
	ref, err := New(clk, Defaultsettings()).Run(script, b)
	require.NoError(t, err)

	// start close to the 32-bit boundary so that records straddle it.
	clk, b = newfixed(2, 33)
	clk.Set(0xFFFFFFFF - 40)
	res, err := New(clk, Defaultsettings()).Run(script, b)
	require.NoError(t, err)
	require.Equal(t, ref.Malloc, res.Malloc)
	require.Equal(t, ref.Free, res.Free)
	require.Equal(t, api.Ticks(66), res.Malloc)
}

func TestAccumulatorWrap(t *testing.T) {
	// two records of 3 billion cycles overflow 32-bit accumulator.
	clk, b := newfixed(1, 3000000000)
	script := workload.Script{malloc(0, 4), malloc(1, 4)}
	res, err := New(clk, Defaultsettings()).Run(script, b)
	require.NoError(t, err)
	require.Equal(t, api.Ticks(uint32(6000000000&0xFFFFFFFF)), res.Malloc)
}

func TestFailures(t *testing.T) {
	script := workload.Script{malloc(0, 4), malloc(1, 4), free(0)}

	// default mode counts and continues.
	clk, b := newfixed(1, 10)
	b.err, b.failon = api.ErrorOutofMemory, workload.Alloc
	r := New(clk, Defaultsettings())
	res, err := r.Run(script, b)
	require.NoError(t, err)
	require.Equal(t, 3, res.Ops)
	require.Equal(t, 2, res.Failures)
	require.Equal(t, api.Ticks(20), res.Malloc)
	require.Equal(t, []api.Handle{0, 0}, r.Slots())

	// strict mode stops at first failure.
	clk, b = newfixed(1, 10)
	b.err, b.failon = api.ErrorOutofMemory, workload.Alloc
	setts := Defaultsettings()
	setts["strict"] = true
	res, err = New(clk, setts).Run(script, b)
	require.True(t, errors.Is(err, api.ErrorOutofMemory), "got %v", err)
	require.Equal(t, 1, res.Ops)
	require.Equal(t, 1, res.Failures)
	require.Equal(t, api.Ticks(10), res.Malloc)
}

func TestIllegalInstruction(t *testing.T) {
	clk, b := newfixed(1, 10)
	b.err, b.failon = api.ErrorIllegalInstruction, workload.Free
	script := workload.Script{malloc(0, 4), free(0), malloc(1, 4)}
	res, err := New(clk, Defaultsettings()).Run(script, b)
	require.True(t, errors.Is(err, api.ErrorIllegalInstruction), "got %v", err)
	require.Equal(t, 2, res.Ops)
	require.Equal(t, api.Ticks(10), res.Free)
}

func TestBadSettings(t *testing.T) {
	setts := Defaultsettings()
	setts["idle"] = int64(-1)
	require.Panics(t, func() { New(cycle.NewVirtual(1), setts) })
}

func TestSoftwareRepeatable(t *testing.T) {
	script := workload.Generate(workload.Defaultsettings())
	run := func() Result {
		clk := cycle.NewVirtual(1)
		b, err := backend.New(clk, backend.Defaultsettings())
		require.NoError(t, err)
		defer b.Release()
		res, err := New(clk, Defaultsettings()).Run(script, b)
		require.NoError(t, err)
		return res
	}
	first, second := run(), run()
	require.Equal(t, first, second)
	require.Equal(t, "SW", first.Backend)
	require.Equal(t, 0, first.Failures)
	require.NotZero(t, first.Malloc)
	require.NotZero(t, first.Free)
	require.False(t, first.Background)
}

func TestRunResets(t *testing.T) {
	clk, b := newfixed(1, 10)
	r := New(clk, Defaultsettings())

	first := workload.Script{malloc(0, 4), malloc(5, 4), free(0)}
	res1, err := r.Run(first, b)
	require.NoError(t, err)
	require.Len(t, r.Slots(), 6)

	// accumulators start from zero on every run.
	res2, err := r.Run(first, b)
	require.NoError(t, err)
	require.Equal(t, res1, res2)
	require.Equal(t, api.Ticks(20), res2.Malloc)
	require.Equal(t, api.Ticks(10), res2.Free)

	// slot table belongs to the last run.
	second := workload.Script{malloc(1, 4)}
	res3, err := r.Run(second, b)
	require.NoError(t, err)
	require.Equal(t, 1, res3.Ops)
	require.Equal(t, api.Ticks(10), res3.Malloc)
	require.Equal(t, api.Ticks(0), res3.Free)
	require.Len(t, r.Slots(), 2)
	require.Equal(t, []api.Handle{0, 5}, r.Slots())
}

func TestSoftwareRunTwice(t *testing.T) {
	script := workload.Generate(workload.Defaultsettings())
	clk := cycle.NewVirtual(1)
	b, err := backend.New(clk, backend.Defaultsettings())
	require.NoError(t, err)
	defer b.Release()
	r := New(clk, Defaultsettings())

	res1, err := r.Run(script, b)
	require.NoError(t, err)
	res2, err := r.Run(script, b)
	require.NoError(t, err)
	require.Equal(t, res1.Ops, res2.Ops)
	require.Equal(t, 0, res2.Failures)
	// allocations of the first run stay live, timing stays comparable.
	require.InDelta(t, float64(res1.Malloc), float64(res2.Malloc), float64(res1.Malloc)/2)
	require.InDelta(t, float64(res1.Free), float64(res2.Free), float64(res1.Free)/2)
}

func TestMonotonic(t *testing.T) {
	script := workload.Generate(workload.Defaultsettings())
	clk := cycle.NewMonotonic()
	b, err := backend.New(clk, backend.Defaultsettings())
	require.NoError(t, err)
	defer b.Release()
	res, err := New(clk, Defaultsettings()).Run(script, b)
	require.NoError(t, err)
	require.Equal(t, len(script), res.Ops)
	require.Equal(t, 0, res.Failures)
}

func TestHardwareBackground(t *testing.T) {
	script := workload.Generate(workload.Defaultsettings())
	clk := cycle.NewVirtual(1)
	setts := backend.Defaultsettings()
	setts["backend"] = "hardware"
	b, err := backend.New(clk, setts)
	require.NoError(t, err)
	defer b.Release()

	res, err := New(clk, Defaultsettings()).Run(script, b)
	require.NoError(t, err)
	require.Equal(t, "HW", res.Backend)
	require.Equal(t, 0, res.Failures)
	require.True(t, res.Background)
	require.NotZero(t, res.BgMalloc)
	require.NotZero(t, res.BgFree)
}

func BenchmarkReplay(b *testing.B) {
	script := workload.Generate(workload.Defaultsettings())
	clk := cycle.NewVirtual(1)
	be, _ := backend.New(clk, backend.Defaultsettings())
	defer be.Release()
	r := New(clk, Defaultsettings())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Run(script, be)
	}
}
