package dmm

import "sync/atomic"

import "github.com/bnclabs/golog"

import "github.com/eisl-nctu/dmm/backend"
import "github.com/eisl-nctu/dmm/cycle"
import "github.com/eisl-nctu/dmm/dmmu"
import "github.com/eisl-nctu/dmm/malloc"
import "github.com/eisl-nctu/dmm/replay"

var logok = int64(0)

// LogComponents enable logging. By default logging is disabled,
// if applications want log information for the harness call this
// function with "self" or "dmm" as argument. To enable logging for
// the harness and all of its components call this function with
// "all", or name components like "replay","backend","dmmu".
func LogComponents(components ...string) {
	for _, comp := range components {
		switch comp {
		case "dmm", "self", "all":
			atomic.StoreInt64(&logok, 1)
		}
	}
	cycle.LogComponents(components...)
	malloc.LogComponents(components...)
	dmmu.LogComponents(components...)
	backend.LogComponents(components...)
	replay.LogComponents(components...)
}

func infof(format string, v ...interface{}) {
	if atomic.LoadInt64(&logok) > 0 {
		log.Infof(format, v...)
	}
}

func errorf(format string, v ...interface{}) {
	if atomic.LoadInt64(&logok) > 0 {
		log.Errorf(format, v...)
	}
}
