package checkcore

import (
	"fmt"
	"strconv"
	"time"

	netinfo "github.com/shirou/gopsutil/v3/net"
)

func init() {
	AvailableChecks["check_netrate"] = CheckEntry{"check_netrate", new(CheckNetRate)}
}

// ItemDiscoverer is implemented by checks that can enumerate their
// monitorable items.
type ItemDiscoverer interface {
	Discover(core *Core, args []string) ([]Item, error)
}

// CheckNetRate checks the traffic rates of the local network
// interfaces, interface byte counters run through the rate tracking.
//
// Arguments:
//
//	device=<name>       only check this interface
//	levels=<warn,crit>  upper levels on the byte rate per second
type CheckNetRate struct{}

func (l *CheckNetRate) Check(core *Core, rawArgs []string) (*CheckResult, error) {
	args := ParseArgs(rawArgs)

	table, err := l.counterTable()
	if err != nil {
		return nil, err
	}

	levels := core.Config.CheckSection("check_netrate").GetLevels("levels", false)
	if def, ok := args["levels"]; ok {
		levels, err = ParseLevels(def, false)
		if err != nil {
			return nil, err
		}
	}

	now := float64(time.Now().UnixNano()) / 1e9
	results := make([]*CheckResult, 0, len(table.Rows))

	for _, row := range table.Rows {
		device, _ := table.Field(row, "device")
		if only, ok := args["device"]; ok && only != device {
			continue
		}

		for _, metric := range []string{"bytes_recv", "bytes_sent"} {
			value, err := table.FloatField(row, metric)
			if err != nil {
				results = append(results, core.Evaluator.Unknown(&EvalOptions{Label: device}, err.Error()))

				continue
			}

			results = append(results, core.Evaluator.CheckRate(value, &EvalOptions{
				Name:      fmt.Sprintf("%s %s", device, metric),
				Label:     fmt.Sprintf("%s %s", device, metric),
				Unit:      "B/s",
				Format:    "%.1f",
				Levels:    levels,
				CounterID: CounterID("check_netrate", device, metric),
				Timestamp: now,
			}))
		}
	}

	if len(results) == 0 {
		return &CheckResult{
			State:  CheckExitUnknown,
			Output: "check_netrate failed to find any interfaces",
		}, nil
	}

	return Combine(results...), nil
}

// Discover lists the network interfaces as items, the current counter
// readings become the discovery time baselines.
func (l *CheckNetRate) Discover(_ *Core, _ []string) ([]Item, error) {
	table, err := l.counterTable()
	if err != nil {
		return nil, err
	}

	return Discover(table, []string{"device"}, []string{"bytes_recv", "bytes_sent"}), nil
}

// counterTable normalizes the interface counters into a table.
func (l *CheckNetRate) counterTable() (*Table, error) {
	counters, err := netinfo.IOCounters(true)
	if err != nil {
		return nil, fmt.Errorf("net.IOCounters: %s", err.Error())
	}

	table := &Table{
		Columns: []string{"device", "bytes_recv", "bytes_sent"},
	}
	for _, nic := range counters {
		table.Rows = append(table.Rows, []string{
			nic.Name,
			strconv.FormatUint(nic.BytesRecv, 10),
			strconv.FormatUint(nic.BytesSent, 10),
		})
	}

	return table, nil
}
