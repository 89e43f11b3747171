package dmmu

import "fmt"

import s "github.com/bnclabs/gosettings"

import "github.com/eisl-nctu/dmm/api"
import "github.com/eisl-nctu/dmm/cycle"
import "github.com/eisl-nctu/dmm/lib"

// Wordsize in bytes of the target.
const Wordsize = int64(4)

const (
	kindnone = iota
	kindmalloc
	kindfree
)

// peeker is implemented by clocks that can be sampled without charging
// a counter read.
type peeker interface {
	Cycles() uint64
}

// Unit emulated allocator unit.
type Unit struct {
	clock  api.Clock
	heap   *bitmap
	blocks map[uint32]int64 // address -> number of blocks

	// background execution
	busykind  int
	busystart uint64
	busyfor   uint64
	bkgmalloc api.Ticks // committed background time
	bkgfree   api.Ticks

	// stats
	nmallocs int64
	nfrees   int64
	nfails   int64
	nstalls  int64

	// configuration
	base       uint32
	words      int64
	blockwords int64
	issue      uint64
	bitcost    uint64
	scancost   uint64
}

// NewUnit create an allocator unit timed by clock.
func NewUnit(clock api.Clock, setts s.Settings) *Unit {
	u := &Unit{
		clock:  clock,
		blocks: make(map[uint32]int64),
		// configuration
		base:       uint32(setts.Int64("base")),
		words:      setts.Int64("words"),
		blockwords: setts.Int64("blockwords"),
		issue:      uint64(setts.Int64("issue")),
		bitcost:    uint64(setts.Int64("bitcost")),
		scancost:   uint64(setts.Int64("scancost")),
	}
	if u.base == 0 || (int64(u.base)%Wordsize) != 0 {
		panicerr("dmmu base %x must be non-zero and word aligned", u.base)
	} else if u.blockwords <= 0 || (u.words%u.blockwords) != 0 {
		panicerr("dmmu words %v not multiple of blockwords %v",
			u.words, u.blockwords)
	} else if int64(u.base)+u.words*Wordsize > 0xFFFFFFFF {
		panicerr("dmmu heap exceeds 32-bit address space")
	}
	u.heap = newbitmap(u.words / u.blockwords)
	return u
}

// Exec execute a custom instruction word against regs.
func (u *Unit) Exec(word uint32, regs *Regfile) error {
	inst := Decode(word)
	if inst.Opcode != Opcode {
		return fmt.Errorf("%w: %08x", api.ErrorIllegalInstruction, word)
	}
	switch inst.Funct3 {
	case Fmalloc:
		u.settle()
		nwords := int64(regs.Read(inst.Rs1)) + int64(inst.Imm)
		addr, bkg := u.malloc(nwords)
		u.foreground()
		regs.Write(inst.Rd, addr)
		u.background(kindmalloc, bkg)
		return nil

	case Ffree:
		u.settle()
		addr := uint32(int64(regs.Read(inst.Rs1)) + int64(inst.Imm))
		bkg, err := u.free(addr)
		u.foreground()
		u.background(kindfree, bkg)
		return err
	}
	return fmt.Errorf("%w: %08x (%v)", api.ErrorIllegalInstruction, word, inst)
}

// Readcsr return the value of a user CSR.
func (u *Unit) Readcsr(csr uint16) (uint32, error) {
	u.poll()
	switch csr {
	case CSRMallocTime:
		return uint32(u.bkgmalloc), nil
	case CSRFreeTime:
		return uint32(u.bkgfree), nil
	}
	return 0, fmt.Errorf("%w: csr %#x", api.ErrorIllegalInstruction, csr)
}

// Busy return whether background work is still pending.
func (u *Unit) Busy() bool {
	u.poll()
	return u.busykind != kindnone
}

// Stats return unit statistics.
func (u *Unit) Stats() map[string]interface{} {
	used := u.heap.used()
	return map[string]interface{}{
		"n_mallocs":  u.nmallocs,
		"n_frees":    u.nfrees,
		"n_fails":    u.nfails,
		"n_stalls":   u.nstalls,
		"n_live":     int64(len(u.blocks)),
		"heap.used":  used * u.blockwords * Wordsize,
		"heap.total": u.words * Wordsize,
	}
}

//---- local functions

func (u *Unit) malloc(nwords int64) (uint32, uint64) {
	u.nmallocs++
	if nwords < 0 || nwords > u.words {
		u.nfails++
		return 0, u.scancost
	} else if nwords == 0 {
		nwords = 1
	}
	k := lib.Ceil(nwords, u.blockwords)
	blk, scanned := u.heap.alloc(k)
	bkg := uint64(scanned) * u.scancost
	if blk < 0 {
		u.nfails++
		debugf("dmmu: out of memory for %v words\n", nwords)
		return 0, bkg
	}
	addr := u.base + uint32(blk*u.blockwords*Wordsize)
	u.blocks[addr] = k
	return addr, bkg + uint64(k)*u.bitcost
}

func (u *Unit) free(addr uint32) (uint64, error) {
	u.nfrees++
	if addr == 0 { // null, nothing to release
		return 0, nil
	}
	k, ok := u.blocks[addr]
	if !ok {
		u.nfails++
		return u.scancost, fmt.Errorf("%w: %x", api.ErrorInvalidHandle, addr)
	}
	blk := int64(addr-u.base) / (u.blockwords * Wordsize)
	u.heap.clear(blk, k)
	delete(u.blocks, addr)
	return uint64(k) * u.bitcost, nil
}

// foreground charge the issue latency when the clock is emulated.
func (u *Unit) foreground() {
	if stepper, ok := u.clock.(api.Stepper); ok {
		stepper.Advance(u.issue)
	}
}

// background start background work of bkg cycles.
func (u *Unit) background(kind int, bkg uint64) {
	if bkg == 0 {
		return
	}
	u.busykind, u.busystart, u.busyfor = kind, u.now(), bkg
}

// settle stall until pending background work is complete.
func (u *Unit) settle() {
	if u.poll(); u.busykind == kindnone {
		return
	}
	u.nstalls++
	if elapsed := u.elapsed(); elapsed < u.busyfor {
		cycle.Delay(u.clock, api.Ticks(u.busyfor-elapsed))
	}
	u.commit()
}

// poll commit background work if it is complete.
func (u *Unit) poll() {
	if u.busykind != kindnone && u.elapsed() >= u.busyfor {
		u.commit()
	}
}

func (u *Unit) commit() {
	switch u.busykind {
	case kindmalloc:
		u.bkgmalloc += api.Ticks(u.busyfor)
	case kindfree:
		u.bkgfree += api.Ticks(u.busyfor)
	}
	u.busykind, u.busystart, u.busyfor = kindnone, 0, 0
}

// elapsed cycles since background work started, wrap safe.
func (u *Unit) elapsed() uint64 {
	return uint64(api.Ticks(u.now() - u.busystart))
}

func (u *Unit) now() uint64 {
	if p, ok := u.clock.(peeker); ok {
		return p.Cycles()
	}
	return uint64(u.clock.Now())
}
