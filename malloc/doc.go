// Package malloc supplies a conventional heap allocator used as the
// software backend of the allocator benchmark, with a limited scope:
//
//  * Types and Functions exported by this package are not thread safe.
//  * Memory is allocated in pools, where each pool manages several
//    memory-chunks of same size.
//  * Pools are placed in an emulated address space, starting from a
//    configured base address, and chunks are handed out as addresses
//    in that space. Backing memory is owned by the Go runtime.
//  * Once a pool is created it is not given back until the entire
//    arena is Released.
//  * Memory-chunks allocated by this package will always be 64-bit
//    aligned.
//
// Arena is a bucket space of memory, with a maximum capacity, that
// is empty to begin with and starts filling up as and when new
// allocations are requested by application. Applications are allowed
// to allocate memory chunks whose size fall between a pre-configured
// minimum chunk size and maximum chunk size.
//
// Every arena keeps a running count of internal steps, pools probed and
// free-list or bitmap entries visited, which a caller can use as a
// deterministic cost model for the allocator.
package malloc
