package malloc

// Mpooler to manage chunk pool
type Mpooler interface {
	// Chunksize managed by this pool.
	Chunksize() int64

	// Base address of the pool.
	Base() uint64

	// Less ordering between pools
	Less(pool interface{}) bool

	// Contains whether ptr falls within the pool.
	Contains(ptr uint64) bool

	// Allocchunk allocate a chunk from pool, return the number of
	// internal steps taken.
	Allocchunk() (ptr uint64, steps int64, ok bool)

	// Free chunk back to pool, return the number of internal steps
	// taken.
	Free(ptr uint64) (steps int64, err error)

	// Memory return memory allocated from OS an overhead of managing it.
	Memory() (overhead, useful int64)

	// Allocated return memory allocated from `useful` memory.
	Allocated() (allocated int64)

	// Available return memory available from `useful` memory.
	Available() (available int64)

	// Release this pool and all its resources.
	Release()
}
