package malloc

import "errors"
import "testing"

import "github.com/eisl-nctu/dmm/api"

func TestNewpoolflist(t *testing.T) {
	size, n := int64(96), int64(Maxchunks)
	mpool := newpoolflist(size, n, Defaultbase)
	if mpool.capacity != size*n {
		t.Errorf("expected %v, got %v", size*n, mpool.capacity)
	} else if mpool.size != size {
		t.Errorf("expected %v, got %v", size, mpool.size)
	} else if mpool.Base() != Defaultbase {
		t.Errorf("expected %x, got %x", Defaultbase, mpool.Base())
	}
}

func TestMpoolAlloc(t *testing.T) {
	size, n := int64(96), int64(56)
	ptrs := make([]uint64, 0, n)
	mpool := newpoolflist(size, n, Defaultbase)
	if x := mpool.checkallocated(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	}
	// allocate
	for i := int64(0); i < n; i++ {
		ptr, _, ok := mpool.Allocchunk()
		alloc, available := mpool.Allocated(), mpool.Available()
		if ok == false {
			t.Errorf("unable to allocate even first block")
		} else if y := (i + 1) * size; alloc != y {
			t.Errorf("expected %v, got %v", y, alloc)
		} else if y = (n - i - 1) * size; available != y {
			t.Errorf("expected %v, got %v", y, available)
		}
		ptrs = append(ptrs, ptr)
	}
	if ptrs[0] != Defaultbase {
		t.Errorf("expected %x, got %x", Defaultbase, ptrs[0])
	}
	if _, _, ok := mpool.Allocchunk(); ok {
		t.Errorf("expected pool to be exhausted")
	} else if mpool.freeoff != -1 {
		t.Errorf("unexpected %v", mpool.freeoff)
	}

	mpool.Free(ptrs[0])
	if mpool.freeoff == -1 {
		t.Errorf("unexpected %v", mpool.freeoff)
	}

	// free
	for i, ptr := range ptrs[1:] {
		j := int64(i) + 1
		if _, err := mpool.Free(ptr); err != nil {
			t.Fatal(err)
		} else if y := (n - j - 1) * size; mpool.Allocated() != y {
			t.Errorf("expected %v, got %v", y, mpool.Allocated())
		}
	}
	if x := mpool.checkallocated(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	}
	mpool.Release()
}

func TestMpoolFreeUnaligned(t *testing.T) {
	mpool := newpoolflist(96, 8, Defaultbase)
	ptr, _, _ := mpool.Allocchunk()
	if _, err := mpool.Free(ptr + 8); err == nil {
		t.Errorf("expected error")
	} else if _, err := mpool.Free(Defaultbase - 8); err == nil {
		t.Errorf("expected error")
	}
}

func TestMpoolDoubleFree(t *testing.T) {
	mpool := newpoolflist(96, 8, Defaultbase)
	ptr, _, _ := mpool.Allocchunk()
	if _, err := mpool.Free(ptr); err != nil {
		t.Fatal(err)
	} else if _, err := mpool.Free(ptr); !errors.Is(err, api.ErrorInvalidHandle) {
		t.Errorf("expected %v, got %v", api.ErrorInvalidHandle, err)
	} else if x := mpool.Allocated(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	}
	// chunk is handed out once.
	ptr1, _, _ := mpool.Allocchunk()
	ptr2, _, _ := mpool.Allocchunk()
	if ptr1 == ptr2 {
		t.Errorf("same chunk %x allocated twice", ptr1)
	}
	// never allocated.
	if _, err := mpool.Free(Defaultbase + 96*5); err == nil {
		t.Errorf("expected error")
	}
}

func BenchmarkMpoolAlloc(b *testing.B) {
	mpool := newpoolflist(96, Maxchunks, Defaultbase)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ptr, _, _ := mpool.Allocchunk()
		mpool.Free(ptr)
	}
}
