// Package backend adapts allocator implementations to api.Backend.
//
// Software backend calls straight through to a conventional heap
// allocator, either malloc.Arena or the mmap backed allocator from
// github.com/cznic/memory. Hardware backend drives the dmmu allocator
// unit with its two custom instructions, emulated by default or
// executed natively on a riscv64 target built with tag dmmhw.
//
// When the clock used for measurement is an api.Stepper, backends
// charge their modelled latency to it, making runs on a virtual clock
// deterministic.
package backend
