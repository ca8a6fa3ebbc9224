package checkcore

import (
	"fmt"
	"time"

	"github.com/consol-monitoring/checkcore/pkg/counter"
	"github.com/consol-monitoring/checkcore/pkg/valuestore"
)

const (
	// NAME contains the name of this program.
	NAME = "checkcore"

	// VERSION contains the version number.
	VERSION = "0.2.1"
)

// Flags contains the command line flags.
type Flags struct {
	ConfigFiles []string
	LogLevel    string
	LogFile     string
	StateFile   string
	Verbose     int
	Quiet       bool
	Version     bool
}

// Core wires the config, the value store, the evaluator and the
// in-memory counters together. One Core per monitored host.
type Core struct {
	Config    Config
	Store     *valuestore.Store
	Evaluator *Evaluator

	// Counter caches computed rates and recent samples, shared with
	// the evaluator's rate calculator.
	Counter *counter.Set

	flags    *Flags
	exporter *Exporter
}

// NewCore creates an initialized Core from command line flags.
func NewCore(flags *Flags) (*Core, error) {
	core := &Core{
		Config:  NewConfig(),
		Counter: counter.NewSet(rateCacheRetention, time.Second),
		flags:   flags,
	}

	for _, path := range flags.ConfigFiles {
		if err := core.Config.ReadSettingsFile(path); err != nil {
			return nil, err
		}
	}

	core.applyLogSettings()

	statePath := flags.StateFile
	if statePath == "" {
		statePath, _ = core.Config.Section("/settings/default").GetString("state file")
	}

	store, err := valuestore.New(statePath)
	if err != nil {
		// a broken state file means counters start over, not a fatal
		log.Warnf("%s", err.Error())
	}
	core.Store = store
	core.Evaluator = NewEvaluator(store, core.Counter)

	return core, nil
}

func (core *Core) applyLogSettings() {
	section := core.Config.Section("/settings/default")

	level, _ := section.GetString("log level")
	switch {
	case core.flags.Quiet:
		level = "error"
	case core.flags.Verbose == 1:
		level = "debug"
	case core.flags.Verbose >= 2:
		level = "trace"
	case core.flags.LogLevel != "":
		level = core.flags.LogLevel
	}
	setLogLevel(level)

	file, _ := section.GetString("log file")
	if core.flags.LogFile != "" {
		file = core.flags.LogFile
	}
	setLogFile(file)
}

// RunCheck executes a registered check. Any error becomes an UNKNOWN
// result, a single misbehaving check never terminates the host process.
func (core *Core) RunCheck(name string, args []string) *CheckResult {
	entry, ok := AvailableChecks[name]
	if !ok {
		return &CheckResult{
			State:  CheckExitUnknown,
			Output: fmt.Sprintf("No such check: %s", name),
		}
	}

	res, err := entry.Handler.Check(core, args)
	if err != nil {
		return &CheckResult{
			State:  CheckExitUnknown,
			Output: fmt.Sprintf("%s failed: %s", name, err.Error()),
		}
	}
	if res == nil {
		return &CheckResult{
			State:  CheckExitUnknown,
			Output: fmt.Sprintf("%s returned no result", name),
		}
	}

	if core.exporter != nil {
		core.exporter.Update(name, res)
	}

	return res
}

// PrintVersion prints the version.
func (core *Core) PrintVersion() {
	fmt.Printf("%s v%s\n", NAME, VERSION)
}
