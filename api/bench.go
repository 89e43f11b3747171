// Package api define types and interfaces shared by the cycle counters,
// allocator backends and the workload replayer.
package api

// Ticks unitless hardware cycle count, truncated to 32 bits. Elapsed
// time is always computed with 32-bit unsigned subtraction so that a
// counter wrap between two samples still yields the right interval.
type Ticks uint32

// Since return ticks elapsed from start till t, wrap safe.
func (t Ticks) Since(start Ticks) Ticks {
	return t - start
}

// Handle opaque value returned by an allocator, typically an address
// in the target's address space. Zero is never a valid allocation.
type Handle uint64

// Clock reads a free running cycle counter.
type Clock interface {
	// Now return the current counter value, lower 32 bits.
	Now() Ticks
}

// Stepper is a Clock whose time advances only when it is read or when
// told to. Emulated backends charge their modelled latency to a Stepper.
type Stepper interface {
	Clock

	// Advance the counter by n cycles.
	Advance(n uint64)
}

// Backend uniform allocate/free capability over an allocator
// implementation.
type Backend interface {
	// Name of the backend, used in reports.
	Name() string

	// Alloc request nwords words of memory. On failure the returned
	// handle is zero and error is non-nil.
	Alloc(nwords int64) (Handle, error)

	// Free memory previously returned by Alloc.
	Free(h Handle) error

	// Release backend and all its resources.
	Release()
}

// Profiler is implemented by backends that keep their own count of
// cycles spent in background execution, independent of the caller's
// measurement.
type Profiler interface {
	// Background return cumulative background execution time spent
	// on allocate and free requests.
	Background() (malloc, free Ticks)
}
