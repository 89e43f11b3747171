package dmm

import "fmt"
import "io/ioutil"

import s "github.com/bnclabs/gosettings"

import "github.com/eisl-nctu/dmm/api"
import "github.com/eisl-nctu/dmm/backend"
import "github.com/eisl-nctu/dmm/cycle"
import "github.com/eisl-nctu/dmm/replay"
import "github.com/eisl-nctu/dmm/workload"

// Harness binds a cycle counter, exactly one allocator backend and a
// replayer. Not thread safe.
type Harness struct {
	clock    api.Clock
	backend  api.Backend
	replayer *replay.Replayer

	// configuration
	setts s.Settings
}

// New create a harness from settings, refer Defaultsettings().
func New(setts s.Settings) (*Harness, error) {
	clock, err := cycle.New(setts)
	if err != nil {
		errorf("dmm: clock %q: %v\n", setts.String("clock"), err)
		return nil, err
	}
	b, err := backend.New(clock, setts)
	if err != nil {
		errorf("dmm: backend %q: %v\n", setts.String("backend"), err)
		return nil, err
	}
	h := &Harness{
		clock:    clock,
		backend:  b,
		replayer: replay.New(clock, setts.Section("replay.").Trim("replay.")),
		setts:    setts,
	}
	infof("dmm: clock:%v backend:%v\n", setts.String("clock"), b.Name())
	return h, nil
}

// Generate a script from "workload.*" settings.
func (h *Harness) Generate() workload.Script {
	return workload.Generate(h.setts.Section("workload.").Trim("workload."))
}

// Run replay script on harness' backend.
func (h *Harness) Run(script workload.Script) (Report, error) {
	res, err := h.replayer.Run(script, h.backend)
	report := Report{Result: res, Clock: h.setts.String("clock")}
	report.Allocs, report.Frees = script.Counts()
	if err != nil {
		errorf("dmm: run aborted after %v ops: %v\n", res.Ops, err)
		return report, err
	}
	infof("dmm: %v\n", report)
	return report, nil
}

// Backend return the backend under test.
func (h *Harness) Backend() api.Backend {
	return h.backend
}

// Close release the backend.
func (h *Harness) Close() {
	h.backend.Release()
}

// Loadscript read and parse a script file.
func Loadscript(filename string) (workload.Script, error) {
	text, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	script, err := workload.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", filename, err)
	}
	return script, nil
}
