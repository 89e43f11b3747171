package dmm

import "fmt"
import "strings"

import humanize "github.com/dustin/go-humanize"

import "github.com/eisl-nctu/dmm/replay"

// Report outcome of a benchmark run.
type Report struct {
	replay.Result
	Clock  string
	Allocs int // malloc records in script
	Frees  int // free records in script
}

// String format report the way the board firmware prints it.
func (r Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v - malloc: %d, free: %d\n", r.Backend, r.Malloc, r.Free)
	if r.Background {
		fmsg := "%v bkg - malloc: %d, free: %d\n"
		fmt.Fprintf(&sb, fmsg, r.Backend, r.BgMalloc, r.BgFree)
	}
	return sb.String()
}

// Humanize format report with grouped digits, along with operation
// counts.
func (r Report) Humanize() string {
	var sb strings.Builder
	comma := func(n uint32) string { return humanize.Comma(int64(n)) }
	fmt.Fprintf(&sb, "%v - malloc: %v, free: %v cycles\n",
		r.Backend, comma(uint32(r.Malloc)), comma(uint32(r.Free)))
	if r.Background {
		fmt.Fprintf(&sb, "%v bkg - malloc: %v, free: %v cycles\n",
			r.Backend, comma(uint32(r.BgMalloc)), comma(uint32(r.BgFree)))
	}
	fmsg := "ops: %v (malloc %v, free %v), failures: %v, clock: %v\n"
	fmt.Fprintf(&sb, fmsg, humanize.Comma(int64(r.Ops)), r.Allocs, r.Frees,
		r.Failures, r.Clock)
	return sb.String()
}
