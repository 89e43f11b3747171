// Package cycle supplies cycle counters used as the time base for
// allocator latency measurements, and the idle delay built on them.
//
// Counters return the lower 32 bits of a 64-bit free running counter.
// Intervals must be computed with Elapsed(), or Ticks.Since(), which
// subtract in 32-bit unsigned arithmetic and hence stay correct across
// a counter wrap.
//
// Three counters are available:
//
//   hardware  : RISC-V cycle CSR, only on riscv64 with build tag dmmhw.
//   virtual   : deterministic emulation of the mcycle/mcycleh pair,
//               advanced by reads and by emulated backends.
//   monotonic : host fallback, nanoseconds from the Go monotonic clock.
package cycle
