package checkcore

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/consol-monitoring/checkcore/pkg/convert"
	"github.com/consol-monitoring/checkcore/pkg/utils"
)

// daemonCheck is one configured periodic check.
type daemonCheck struct {
	name string
	args []string
}

// RunDaemon runs all configured checks on the configured interval and
// serves the prometheus exporter until the listener fails.
func RunDaemon(core *Core) error {
	section := core.Config.Section("/settings/daemon")

	checks, err := daemonChecks(section)
	if err != nil {
		return err
	}
	if len(checks) == 0 {
		return fmt.Errorf("no checks configured, add check_* entries to [/settings/daemon]")
	}

	intervalStr, _ := section.GetString("interval")
	interval, err := utils.ExpandDuration(intervalStr)
	if err != nil {
		return fmt.Errorf("cannot parse interval: %s", err.Error())
	}

	portStr, _ := section.GetString("port")
	port, err := convert.Int64E(portStr)
	if err != nil {
		return fmt.Errorf("cannot parse port: %s", err.Error())
	}

	exporter := NewExporter()

	go runChecksLoop(core, checks, time.Duration(interval*float64(time.Second)))

	return exporter.Serve(core, port)
}

func runChecksLoop(core *Core, checks []daemonCheck, interval time.Duration) {
	runAll := func() {
		for _, chk := range checks {
			res := core.RunCheck(chk.name, chk.args)
			log.Debugf("%s: %s", chk.name, res.BuildPluginOutput())
		}
	}

	runAll()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		runAll()
	}
}

// daemonChecks reads the configured check command lines, every key
// starting with "check" holds one command.
func daemonChecks(section *ConfigSection) ([]daemonCheck, error) {
	keys := make([]string, 0, len(*section))
	for key := range *section {
		if strings.HasPrefix(key, "check") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	checks := make([]daemonCheck, 0, len(keys))
	for _, key := range keys {
		command := (*section)[key]
		name, args, err := ParseCommand(command)
		if err != nil {
			return nil, fmt.Errorf("%s: %s", key, err.Error())
		}
		checks = append(checks, daemonCheck{name: name, args: args})
	}

	return checks, nil
}
