// Package dmm measure allocation and free latency of heap allocators,
// in processor cycles, by replaying an operation script.
//
// api:
//
// Types shared by all packages, cycle ticks, allocation handles,
// clock and backend interfaces, and errors.
//
// cycle:
//
// Cycle counters, hardware, virtual and monotonic, and the idle delay
// built on them.
//
// malloc:
//
// Conventional software heap allocator, an arena of fixed size pools.
//
// dmmu:
//
// Emulated hardware memory management unit executing the custom
// malloc and free instructions.
//
// backend:
//
// Software and hardware allocator backends behind a common interface.
//
// workload:
//
// Operation scripts, text format, parser and generator.
//
// replay:
//
// Replays a script against a backend and accumulates per operation
// latency.
//
// lib:
//
// Bit manipulation helpers used by bitmap allocators.
//
// Typical use:
//
//   setts := dmm.Defaultsettings()
//   setts["backend"] = "hardware"
//   h, err := dmm.New(setts)
//   ...
//   defer h.Close()
//   report, err := h.Run(h.Generate())
//   fmt.Println(report)
package dmm
