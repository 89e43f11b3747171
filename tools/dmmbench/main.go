package main

import "fmt"
import "flag"
import "os"
import "strings"

import s "github.com/bnclabs/gosettings"
import "github.com/bnclabs/golog"
import humanize "github.com/dustin/go-humanize"

import "github.com/eisl-nctu/dmm"
import "github.com/eisl-nctu/dmm/workload"

var options struct {
	backend   string
	clock     string
	readcost  int
	allocator string
	pool      string
	native    bool
	script    string
	dump      string
	ops       int
	slots     int
	size      [2]int // min, max words
	seed      int
	idle      int
	settle    int
	strict    bool
	humanize  bool
	stats     bool
	log       string
	loglevel  string
}

func argParse() {
	var size string

	flag.StringVar(&options.backend, "backend", "software",
		"allocator to benchmark, software or hardware")
	flag.StringVar(&options.clock, "clock", "virtual",
		"cycle counter, virtual, monotonic or hardware")
	flag.IntVar(&options.readcost, "readcost", 1,
		"cycles charged by virtual counter for every read")
	flag.StringVar(&options.allocator, "allocator", "arena",
		"software heap, arena or cznic")
	flag.StringVar(&options.pool, "pool", "flist",
		"arena pool algorithm, flist or fbit")
	flag.BoolVar(&options.native, "native", false,
		"issue custom instructions natively (riscv64, tag dmmhw)")
	flag.StringVar(&options.script, "script", "",
		"replay script from file, generate one if empty")
	flag.StringVar(&options.dump, "dump", "",
		"write replayed script to file")
	flag.IntVar(&options.ops, "ops", 1000,
		"number of records to generate")
	flag.IntVar(&options.slots, "slots", 64,
		"number of slots for generated script")
	flag.StringVar(&size, "size", "1,256",
		"minsize,maxsize in words for generated allocations")
	flag.IntVar(&options.seed, "seed", 1,
		"seed for generated script")
	flag.IntVar(&options.idle, "idle", 1,
		"ticks to idle between records")
	flag.IntVar(&options.settle, "settle", 100,
		"ticks to idle before reading background time")
	flag.BoolVar(&options.strict, "strict", false,
		"stop at first failed record")
	flag.BoolVar(&options.humanize, "humanize", false,
		"group digits in report")
	flag.BoolVar(&options.stats, "stats", false,
		"print backend statistics after the run")
	flag.StringVar(&options.log, "log", "",
		"comma separated components to log, or all")
	flag.StringVar(&options.loglevel, "loglevel", "info",
		"log level")
	flag.Parse()

	options.size = [2]int{1, 256}
	if size != "" {
		for i, x := range strings.Split(size, ",") {
			if i < 2 {
				fmt.Sscanf(x, "%d", &options.size[i])
			}
		}
	}
	if options.log != "" {
		log.SetLogger(nil, map[string]interface{}{
			"log.level": options.loglevel, "log.flags": "", "log.prefix": "",
			"log.timeformat": "", "log.colorfatal": "red",
			"log.colorerror": "hired", "log.colorwarn": "yellow",
		})
		dmm.LogComponents(strings.Split(options.log, ",")...)
	}
}

func main() {
	argParse()

	h, err := dmm.New(makesettings())
	if err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
	defer h.Close()

	script, err := loadscript(h)
	if err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
	if err := script.Validate(); err != nil {
		fmt.Printf("warning: %v\n", err)
	}
	if options.dump != "" {
		if err := dumpscript(script); err != nil {
			fmt.Printf("%v\n", err)
		}
	}

	report, err := h.Run(script)
	if options.humanize {
		fmt.Print(report.Humanize())
	} else {
		fmt.Print(report)
	}
	if options.stats {
		printstats(h)
	}
	if err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(2)
	}
}

func makesettings() s.Settings {
	setts := dmm.Defaultsettings()
	setts["backend"] = options.backend
	setts["clock"] = options.clock
	setts["clock.readcost"] = int64(options.readcost)
	setts["software.allocator"] = options.allocator
	setts["software.arena.allocator"] = options.pool
	setts["hardware.native"] = options.native
	setts["replay.idle"] = int64(options.idle)
	setts["replay.settle"] = int64(options.settle)
	setts["replay.strict"] = options.strict
	setts["workload.ops"] = int64(options.ops)
	setts["workload.slots"] = int64(options.slots)
	setts["workload.minsize"] = int64(options.size[0])
	setts["workload.maxsize"] = int64(options.size[1])
	setts["workload.seed"] = int64(options.seed)
	return setts
}

func loadscript(h *dmm.Harness) (workload.Script, error) {
	if options.script == "" {
		return h.Generate(), nil
	}
	return dmm.Loadscript(options.script)
}

func dumpscript(script workload.Script) error {
	fd, err := os.Create(options.dump)
	if err != nil {
		return err
	}
	defer fd.Close()
	return script.Write(fd)
}

func printstats(h *dmm.Harness) {
	statser, ok := h.Backend().(interface {
		Stats() map[string]interface{}
	})
	if !ok {
		return
	}
	stats := statser.Stats()
	for _, key := range sortedkeys(stats) {
		val := stats[key]
		if n, ok := val.(int64); ok && strings.HasPrefix(key, "heap.") {
			if key != "heap.steps" {
				val = humanize.Bytes(uint64(n))
			}
		}
		fmt.Printf("%-16v: %v\n", key, val)
	}
}
