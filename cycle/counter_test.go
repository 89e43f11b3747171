package cycle

import "testing"

import "github.com/eisl-nctu/dmm/api"

func TestCombine(t *testing.T) {
	if x := Combine(0x12345678, 0); x != 0x12345678 {
		t.Errorf("expected %x, got %x", 0x12345678, x)
	} else if x = Combine(0x12345678, 0xdeadbeef); x != 0x12345678 {
		t.Errorf("expected %x, got %x", 0x12345678, x)
	} else if x = Combine(0xFFFFFFFF, 0xFFFFFFFF); x != 0xFFFFFFFF {
		t.Errorf("expected %x, got %x", uint32(0xFFFFFFFF), x)
	}
}

func TestElapsedWrap(t *testing.T) {
	start, end := api.Ticks(0xFFFFFFFE), api.Ticks(0x00000002)
	if x := Elapsed(start, end); x != 4 {
		t.Errorf("expected %v, got %v", 4, x)
	} else if x = end.Since(start); x != 4 {
		t.Errorf("expected %v, got %v", 4, x)
	}
	if x := Elapsed(10, 25); x != 15 {
		t.Errorf("expected %v, got %v", 15, x)
	}
}

func TestVirtual(t *testing.T) {
	clk := NewVirtual(3)
	if x := clk.Now(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	} else if x = clk.Now(); x != 3 {
		t.Errorf("expected %v, got %v", 3, x)
	}
	clk.Advance(100)
	if x := clk.Now(); x != 106 {
		t.Errorf("expected %v, got %v", 106, x)
	} else if x := clk.Cycles(); x != 109 {
		t.Errorf("expected %v, got %v", 109, x)
	}
	if x := Overhead(clk); x != 3 {
		t.Errorf("expected %v, got %v", 3, x)
	}

	// counter wraps past 32 bits, high word is discarded.
	clk.Set((uint64(1) << 32) - 2)
	start := clk.Now()
	clk.Advance(1)
	end := clk.Now()
	if start != 0xFFFFFFFE {
		t.Errorf("expected %x, got %x", uint32(0xFFFFFFFE), start)
	} else if end != 2 {
		t.Errorf("expected %v, got %v", 2, end)
	} else if x := Elapsed(start, end); x != 4 {
		t.Errorf("expected %v, got %v", 4, x)
	}

	// panic case
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		NewVirtual(0)
	}()
}

func TestMonotonic(t *testing.T) {
	clk := NewMonotonic()
	clk1 := clk.Now()
	Delay(clk, 1000)
	clk2 := clk.Now()
	if x := Elapsed(clk1, clk2); x < 1000 {
		t.Errorf("expected >= %v, got %v", 1000, x)
	}
}

func TestNew(t *testing.T) {
	setts := Defaultsettings()
	clk, err := New(setts)
	if err != nil {
		t.Fatal(err)
	} else if _, ok := clk.(*Virtual); !ok {
		t.Errorf("unexpected %T", clk)
	}

	setts["clock"] = "monotonic"
	if clk, err = New(setts); err != nil {
		t.Fatal(err)
	} else if _, ok := clk.(*Monotonic); !ok {
		t.Errorf("unexpected %T", clk)
	}

	setts["clock"] = "wallclock"
	if _, err = New(setts); err == nil {
		t.Errorf("expected error")
	}

	setts["clock"], setts["clock.readcost"] = "virtual", int64(0)
	if _, err = New(setts); err == nil {
		t.Errorf("expected error")
	}
}
