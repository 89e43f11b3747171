// Package replay times allocator backends by replaying an operation
// script against them.
//
// Every record is timed on its own, with the cost of reading the cycle
// counter sampled immediately before it and subtracted from the
// measured interval. Records execute strictly in script order on the
// calling goroutine, with a short idle delay between them.
//
// Accumulators are 32-bit, like the cycle counter, and wrap on
// overflow.
package replay
