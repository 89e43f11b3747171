package cycle

import "time"

import "github.com/eisl-nctu/dmm/api"

// Monotonic host counter, nanoseconds elapsed since the counter was
// created. Less precise than a cycle register but works everywhere.
type Monotonic struct {
	epoch time.Time
}

// NewMonotonic create a counter anchored at the current instant.
func NewMonotonic() *Monotonic {
	return &Monotonic{epoch: time.Now()}
}

// Now implement api.Clock interface.
func (m *Monotonic) Now() api.Ticks {
	ns := uint64(time.Since(m.epoch).Nanoseconds())
	return Combine(uint32(ns), uint32(ns>>32))
}
