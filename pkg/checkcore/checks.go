package checkcore

import (
	"fmt"
	"strings"
)

type CheckEntry struct {
	Name    string
	Handler CheckHandler
}

// CheckHandler runs a single check.
type CheckHandler interface {
	Check(core *Core, args []string) (*CheckResult, error)
}

// AvailableChecks contains all registered checks.
var AvailableChecks = make(map[string]CheckEntry)

const (
	// CheckExitOK is used for normal exits.
	CheckExitOK = int64(0)

	// CheckExitWarning is used for warnings.
	CheckExitWarning = int64(1)

	// CheckExitCritical is used for critical errors.
	CheckExitCritical = int64(2)

	// CheckExitUnknown is used for when the check runs into a problem itself.
	CheckExitUnknown = int64(3)
)

// CheckResult is the result of a single check run.
type CheckResult struct {
	State   int64
	Output  string
	Metrics []*CheckMetric
}

func (cr *CheckResult) StateString() string {
	return StateString(cr.State)
}

// StateString returns the string corresponding to a monitoring plugin exit code.
func StateString(state int64) string {
	switch state {
	case CheckExitOK:
		return "OK"
	case CheckExitWarning:
		return "WARNING"
	case CheckExitCritical:
		return "CRITICAL"
	}

	return "UNKNOWN"
}

// WorstState returns the numerically highest of the given states.
func WorstState(states ...int64) int64 {
	worst := CheckExitOK
	for _, state := range states {
		if state > worst {
			worst = state
		}
	}

	return worst
}

// Combine merges multiple results into one, the aggregate state is the
// worst individual state and every individual message is kept.
func Combine(results ...*CheckResult) *CheckResult {
	combined := &CheckResult{State: CheckExitOK}
	outputs := make([]string, 0, len(results))

	for _, res := range results {
		if res == nil {
			continue
		}
		combined.State = WorstState(combined.State, res.State)
		if res.Output != "" {
			outputs = append(outputs, res.Output)
		}
		combined.Metrics = append(combined.Metrics, res.Metrics...)
	}

	combined.Output = strings.Join(outputs, ", ")

	return combined
}

// BuildPluginOutput returns the result in standard monitoring plugin
// format: "STATE - output |perfdata".
func (cr *CheckResult) BuildPluginOutput() string {
	output := fmt.Sprintf("%s - %s", cr.StateString(), cr.Output)
	if len(cr.Metrics) == 0 {
		return output
	}

	perf := make([]string, 0, len(cr.Metrics))
	for _, metric := range cr.Metrics {
		perf = append(perf, metric.String())
	}

	return output + " |" + strings.Join(perf, " ")
}

// CheckMetric contains a single performance value.
type CheckMetric struct {
	Name     string
	Unit     string
	Value    float64
	Warning  *float64
	Critical *float64
	Min      *float64
	Max      *float64
}

// String returns the metric as naemon perfdata string, unset bounds
// stay empty.
func (m *CheckMetric) String() string {
	perf := fmt.Sprintf("'%s'=%s%s", m.Name, floatString(m.Value), m.Unit)

	perf += ";" + optFloatString(m.Warning)
	perf += ";" + optFloatString(m.Critical)
	perf += ";" + optFloatString(m.Min)
	perf += ";" + optFloatString(m.Max)

	// trim trailing unset fields
	return strings.TrimRight(perf, ";")
}

func floatString(val float64) string {
	str := fmt.Sprintf("%f", val)
	if strings.Contains(str, ".") {
		str = strings.TrimRight(str, "0")
		str = strings.TrimSuffix(str, ".")
	}

	return str
}

func optFloatString(val *float64) string {
	if val == nil {
		return ""
	}

	return floatString(*val)
}
