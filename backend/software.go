package backend

import "fmt"

import s "github.com/bnclabs/gosettings"
import "github.com/cznic/memory"

import "github.com/eisl-nctu/dmm/api"
import "github.com/eisl-nctu/dmm/malloc"

// Software backend over a conventional heap allocator.
type Software struct {
	stepper api.Stepper // nil when clock is not emulated
	arena   *malloc.Arena
	heap    *memory.Allocator

	// configuration
	allocator string
	wordsize  int64
	costalloc uint64
	costfree  uint64
	coststep  uint64
}

// NewSoftware create a software backend, setts is the "software."
// section of backend settings with prefix trimmed.
func NewSoftware(clock api.Clock, setts s.Settings) (*Software, error) {
	sw := &Software{
		allocator: setts.String("allocator"),
		wordsize:  setts.Int64("wordsize"),
		costalloc: uint64(setts.Int64("cost.alloc")),
		costfree:  uint64(setts.Int64("cost.free")),
		coststep:  uint64(setts.Int64("cost.step")),
	}
	if stepper, ok := clock.(api.Stepper); ok {
		sw.stepper = stepper
	}
	if sw.wordsize <= 0 {
		return nil, fmt.Errorf("invalid software.wordsize %v", sw.wordsize)
	}
	switch sw.allocator {
	case "arena":
		sw.arena = malloc.NewArena(setts.Section("arena.").Trim("arena."))
	case "cznic":
		sw.heap = &memory.Allocator{}
	default:
		return nil, fmt.Errorf("unknown software.allocator %q", sw.allocator)
	}
	return sw, nil
}

// Name implement api.Backend interface.
func (sw *Software) Name() string {
	return "SW"
}

// Alloc implement api.Backend interface.
func (sw *Software) Alloc(nwords int64) (api.Handle, error) {
	sw.mustlive()
	if nwords < 0 {
		sw.charge(sw.costalloc, 0)
		return 0, fmt.Errorf("%w: negative size %v", api.ErrorOutofMemory, nwords)
	}
	nbytes := nwords * sw.wordsize
	if sw.arena != nil {
		before := sw.arena.Steps()
		ptr, _, err := sw.arena.Alloc(nbytes)
		sw.charge(sw.costalloc, sw.arena.Steps()-before)
		return api.Handle(ptr), err
	}
	ptr, err := sw.heap.UintptrMalloc(int(nbytes))
	sw.charge(sw.costalloc, 0)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", api.ErrorOutofMemory, err)
	}
	return api.Handle(ptr), nil
}

// Free implement api.Backend interface. Freeing a zero handle is a
// no-op.
func (sw *Software) Free(h api.Handle) error {
	sw.mustlive()
	if h == 0 {
		sw.charge(sw.costfree, 0)
		return nil
	}
	if sw.arena != nil {
		before := sw.arena.Steps()
		err := sw.arena.Free(uint64(h))
		sw.charge(sw.costfree, sw.arena.Steps()-before)
		return err
	}
	err := sw.heap.UintptrFree(uintptr(h))
	sw.charge(sw.costfree, 0)
	if err != nil {
		return fmt.Errorf("%w: %v", api.ErrorInvalidHandle, err)
	}
	return nil
}

// Release implement api.Backend interface.
func (sw *Software) Release() {
	if sw.arena != nil {
		sw.arena.Release()
		sw.arena = nil
	}
	if sw.heap != nil {
		if err := sw.heap.Close(); err != nil {
			errorf("backend: closing heap: %v\n", err)
		}
		sw.heap = nil
	}
}

// Stats return allocator memory accounting, only for arena.
func (sw *Software) Stats() map[string]interface{} {
	if sw.arena == nil {
		return map[string]interface{}{}
	}
	overhead, useful := sw.arena.Memory()
	return map[string]interface{}{
		"heap.allocated": sw.arena.Allocated(),
		"heap.available": sw.arena.Available(),
		"heap.overhead":  overhead,
		"heap.useful":    useful,
		"heap.steps":     sw.arena.Steps(),
	}
}

func (sw *Software) charge(base uint64, steps int64) {
	if sw.stepper != nil {
		sw.stepper.Advance(base + uint64(steps)*sw.coststep)
	}
}

func (sw *Software) mustlive() {
	if sw.arena == nil && sw.heap == nil {
		panicerr("software backend released")
	}
}
