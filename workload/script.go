package workload

import "fmt"
import "io"
import "bufio"

// Kind of operation, values match the mem_ops table of generated
// workloads.
type Kind uint8

const (
	// Free release the allocation held by slot.
	Free Kind = iota
	// Alloc allocate size words and keep the handle in slot.
	Alloc
)

func (kind Kind) String() string {
	switch kind {
	case Free:
		return "free"
	case Alloc:
		return "malloc"
	}
	return fmt.Sprintf("kind(%d)", uint8(kind))
}

// Record single operation in a script. Size is meaningful only for
// Alloc, in words.
type Record struct {
	Kind Kind
	Slot int
	Size int64
}

func (rec Record) String() string {
	if rec.Kind == Alloc {
		return fmt.Sprintf("%v %v %v", rec.Kind, rec.Slot, rec.Size)
	}
	return fmt.Sprintf("%v %v", rec.Kind, rec.Slot)
}

// Script ordered sequence of operations, read-only once built.
type Script []Record

// Slots return number of slots referred by the script, max slot + 1.
func (script Script) Slots() int {
	n := 0
	for _, rec := range script {
		if rec.Slot >= n {
			n = rec.Slot + 1
		}
	}
	return n
}

// Counts return number of Alloc and Free records.
func (script Script) Counts() (nallocs, nfrees int) {
	for _, rec := range script {
		switch rec.Kind {
		case Alloc:
			nallocs++
		case Free:
			nfrees++
		}
	}
	return
}

// Validate that every Free refers to a slot populated by an earlier
// Alloc that is not freed yet. Replayer does not check this, scripts
// are expected to be valid.
func (script Script) Validate() error {
	live := make(map[int]bool)
	for i, rec := range script {
		if rec.Slot < 0 {
			return fmt.Errorf("record %v: negative slot %v", i, rec.Slot)
		}
		switch rec.Kind {
		case Alloc:
			if rec.Size < 0 {
				return fmt.Errorf("record %v: negative size %v", i, rec.Size)
			}
			live[rec.Slot] = true
		case Free:
			if !live[rec.Slot] {
				return fmt.Errorf("record %v: free of empty slot %v", i, rec.Slot)
			}
			delete(live, rec.Slot)
		default:
			return fmt.Errorf("record %v: invalid kind %v", i, rec.Kind)
		}
	}
	return nil
}

// Write script in text format.
func (script Script) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, rec := range script {
		if _, err := fmt.Fprintln(bw, rec.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
