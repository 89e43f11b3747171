package backend

import "fmt"
import "math"

import s "github.com/bnclabs/gosettings"

import "github.com/eisl-nctu/dmm/api"
import "github.com/eisl-nctu/dmm/dmmu"

// Hardware backend issuing the allocator unit's custom instructions.
type Hardware struct {
	unit   *dmmu.Unit // nil when running natively
	regs   dmmu.Regfile
	native bool
}

// NewHardware create a hardware backend, setts is the "hardware."
// section of backend settings with prefix trimmed.
func NewHardware(clock api.Clock, setts s.Settings) (*Hardware, error) {
	hw := &Hardware{native: setts.Bool("native")}
	if hw.native {
		if err := nativeok(); err != nil {
			return nil, err
		}
		return hw, nil
	}
	hw.unit = dmmu.NewUnit(clock, setts.Section("dmmu.").Trim("dmmu."))
	return hw, nil
}

// Name implement api.Backend interface.
func (hw *Hardware) Name() string {
	return "HW"
}

// Alloc implement api.Backend interface.
func (hw *Hardware) Alloc(nwords int64) (api.Handle, error) {
	hw.mustlive()
	if nwords < 0 || nwords > math.MaxUint32 {
		return 0, fmt.Errorf("%w: size %v", api.ErrorOutofMemory, nwords)
	}
	addr, err := hw.malloc(uint32(nwords))
	if err != nil {
		return 0, err
	} else if addr == 0 {
		return 0, api.ErrorOutofMemory
	}
	return api.Handle(addr), nil
}

// Free implement api.Backend interface. A zero handle is still issued
// to the unit, which ignores it.
func (hw *Hardware) Free(h api.Handle) error {
	hw.mustlive()
	if h > math.MaxUint32 {
		return fmt.Errorf("%w: %x", api.ErrorInvalidHandle, h)
	}
	return hw.free(uint32(h))
}

// Release implement api.Backend interface.
func (hw *Hardware) Release() {
	hw.unit, hw.native = nil, false
}

// Background implement api.Profiler interface, read the allocator
// unit's background time CSRs.
func (hw *Hardware) Background() (malloc, free api.Ticks) {
	hw.mustlive()
	if hw.native {
		m, f := nativecsr()
		return api.Ticks(m), api.Ticks(f)
	}
	m, err := hw.unit.Readcsr(dmmu.CSRMallocTime)
	if err != nil {
		errorf("backend: reading csr %#x: %v\n", dmmu.CSRMallocTime, err)
	}
	f, err := hw.unit.Readcsr(dmmu.CSRFreeTime)
	if err != nil {
		errorf("backend: reading csr %#x: %v\n", dmmu.CSRFreeTime, err)
	}
	return api.Ticks(m), api.Ticks(f)
}

// Stats return allocator unit statistics, empty when native.
func (hw *Hardware) Stats() map[string]interface{} {
	if hw.unit == nil {
		return map[string]interface{}{}
	}
	return hw.unit.Stats()
}

// malloc instruction takes word count in t2 and returns the address in
// t1, t1 is saved and restored around it.
func (hw *Hardware) malloc(nwords uint32) (uint32, error) {
	if hw.native {
		return nativemalloc(nwords), nil
	}
	saved := hw.regs.Read(dmmu.T1)
	hw.regs.Write(dmmu.T2, nwords)
	err := hw.unit.Exec(dmmu.InstMalloc, &hw.regs)
	addr := hw.regs.Read(dmmu.T1)
	hw.regs.Write(dmmu.T1, saved)
	return addr, err
}

// free instruction takes the address in t2.
func (hw *Hardware) free(addr uint32) error {
	if hw.native {
		nativefree(addr)
		return nil
	}
	hw.regs.Write(dmmu.T2, addr)
	return hw.unit.Exec(dmmu.InstFree, &hw.regs)
}

func (hw *Hardware) mustlive() {
	if hw.unit == nil && !hw.native {
		panicerr("hardware backend released")
	}
}
