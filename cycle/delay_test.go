package cycle

import "testing"

import "github.com/eisl-nctu/dmm/api"

// countclock records every value it hands out.
type countclock struct {
	now   api.Ticks
	step  api.Ticks
	reads []api.Ticks
}

func (c *countclock) Now() api.Ticks {
	now := c.now
	c.reads = append(c.reads, now)
	c.now += c.step
	return now
}

func TestDelay(t *testing.T) {
	for _, min := range []api.Ticks{0, 1, 2, 7, 100, 1001} {
		for _, step := range []api.Ticks{1, 3, 16} {
			clk := &countclock{step: step}
			Delay(clk, min)
			entry, last := clk.reads[0], clk.reads[len(clk.reads)-1]
			if x := Elapsed(entry, last); x < min {
				t.Errorf("min %v step %v: returned after %v ticks", min, step, x)
			}
			// must not spin longer than one extra read.
			if x := Elapsed(entry, last); x >= min+step && min > 0 {
				t.Errorf("min %v step %v: spun for %v ticks", min, step, x)
			}
		}
	}
}

func TestDelayWrap(t *testing.T) {
	clk := &countclock{now: 0xFFFFFFF0, step: 1}
	Delay(clk, 64)
	entry, last := clk.reads[0], clk.reads[len(clk.reads)-1]
	if x := Elapsed(entry, last); x != 64 {
		t.Errorf("expected %v, got %v", 64, x)
	} else if last != 0x30 {
		t.Errorf("expected %x, got %x", 0x30, last)
	}
}

func TestDelayVirtual(t *testing.T) {
	clk := NewVirtual(1)
	before := clk.Cycles()
	Delay(clk, 100)
	if x := clk.Cycles() - before; x < 100 {
		t.Errorf("expected >= %v, got %v", 100, x)
	}
}

func BenchmarkVirtualNow(b *testing.B) {
	clk := NewVirtual(1)
	for i := 0; i < b.N; i++ {
		clk.Now()
	}
}

func BenchmarkMonotonicNow(b *testing.B) {
	clk := NewMonotonic()
	for i := 0; i < b.N; i++ {
		clk.Now()
	}
}
