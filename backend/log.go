package backend

import "sync/atomic"

import "github.com/bnclabs/golog"

var logok = int64(0)

// LogComponents enable logging. By default logging is disabled,
// if applications want log information for backend components
// call this function with "self" or "all" or "backend" as argument.
func LogComponents(components ...string) {
	for _, comp := range components {
		switch comp {
		case "backend", "self", "all":
			atomic.StoreInt64(&logok, 1)
		}
	}
}

func errorf(format string, v ...interface{}) {
	if atomic.LoadInt64(&logok) > 0 {
		log.Errorf(format, v...)
	}
}
