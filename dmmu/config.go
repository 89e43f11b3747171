package dmmu

import "fmt"

import s "github.com/bnclabs/gosettings"

// Defaultsettings for allocator unit.
//
// "base" (int64, default: 0x80100000)
//		Byte address of the managed heap.
//
// "words" (int64, default: 65536)
//		Heap size in words.
//
// "blockwords" (int64, default: 4)
//		Allocation granularity in words, one bitmap bit per block.
//
// "issue" (int64, default: 2)
//		Foreground cycles for every malloc and free instruction.
//
// "bitcost" (int64, default: 1)
//		Background cycles to update one block's bit.
//
// "scancost" (int64, default: 1)
//		Background cycles to scan one 32-bit bitmap word.
func Defaultsettings() s.Settings {
	return s.Settings{
		"base":       int64(0x80100000),
		"words":      int64(65536),
		"blockwords": int64(4),
		"issue":      int64(2),
		"bitcost":    int64(1),
		"scancost":   int64(1),
	}
}

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}
