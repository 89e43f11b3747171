package api

import "errors"

// ErrorOutofMemory allocator could not satisfy the request.
var ErrorOutofMemory = errors.New("dmm.outofmemory")

// ErrorInvalidHandle free called on a handle not owned by the allocator.
var ErrorInvalidHandle = errors.New("dmm.invalidhandle")

// ErrorIllegalInstruction the hardware unit was handed an instruction it
// cannot decode. This is fatal for a benchmark run.
var ErrorIllegalInstruction = errors.New("dmm.illegalinstruction")

// ErrorNoHardware native cycle counter or custom instructions are not
// available in this build.
var ErrorNoHardware = errors.New("dmm.nohardware")
