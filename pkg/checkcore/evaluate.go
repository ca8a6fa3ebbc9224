package checkcore

import (
	"fmt"
	"strings"
	"time"

	"github.com/consol-monitoring/checkcore/pkg/convert"
	"github.com/consol-monitoring/checkcore/pkg/counter"
	"github.com/consol-monitoring/checkcore/pkg/valuestore"
)

// EvalOptions control how a single metric is evaluated and rendered.
type EvalOptions struct {
	// Name is the perfdata metric name, empty skips the metric.
	Name string

	// Label is prepended to the message, ex.: "Core 0".
	Label string

	// Unit is appended to the rendered value in the message, ex.: "°C".
	Unit string

	// PerfUnit is the perfdata unit, usually empty, "%" or "B".
	PerfUnit string

	// Format renders the value, default is "%.2f".
	Format string

	Levels *Levels

	// Reference is the capacity value percent levels resolve against.
	Reference *float64

	Min *float64
	Max *float64

	// CounterID identifies the counter for rate conversion and for
	// predictive baselines.
	CounterID string

	// Timestamp of the sample in unix seconds, zero means now.
	Timestamp float64
}

func (opts *EvalOptions) format() string {
	if opts.Format == "" {
		return "%.2f"
	}

	return opts.Format
}

func (opts *EvalOptions) render(value float64) string {
	str := fmt.Sprintf(opts.format(), value)
	switch opts.Unit {
	case "", "%":
		return str + opts.Unit
	default:
		return str + " " + opts.Unit
	}
}

func (opts *EvalOptions) timestamp() float64 {
	if opts.Timestamp == 0 {
		return float64(time.Now().UnixNano()) / 1e9
	}

	return opts.Timestamp
}

// Evaluator turns raw readings into check results. It is stateless per
// invocation, all cross invocation state lives in the value store and
// is mediated through the rate calculator.
type Evaluator struct {
	rates   *RateCalculator
	average *Average
}

// NewEvaluator creates an Evaluator on top of the given value store,
// the counter set caches the computed rates and recent samples.
func NewEvaluator(store *valuestore.Store, cache *counter.Set) *Evaluator {
	return &Evaluator{
		rates:   NewRateCalculator(store, cache),
		average: NewAverage(),
	}
}

// Rates exposes the rate calculator for callers that only need rates.
func (ev *Evaluator) Rates() *RateCalculator {
	return ev.rates
}

// CheckLevels evaluates a plain value against the configured levels
// and returns a single metric result. Configuration errors yield an
// UNKNOWN result, never a panic or a crash.
func (ev *Evaluator) CheckLevels(value float64, opts *EvalOptions) *CheckResult {
	levels := opts.Levels
	suffix := ""

	if levels != nil && levels.Kind == LevelsPredictive {
		resolved, info, err := ev.resolvePredictive(value, levels, opts)
		if err != nil {
			return ev.Unknown(opts, err.Error())
		}
		levels = resolved
		suffix = info
	}

	res, err := levels.Check(value, opts.Reference)
	if err != nil {
		return ev.Unknown(opts, err.Error())
	}

	output := opts.render(value)
	if opts.Label != "" {
		output = opts.Label + ": " + output
	}
	output += suffix

	if res.State != CheckExitOK {
		output += ev.levelsInfo(res, opts)
	}

	result := &CheckResult{
		State:  res.State,
		Output: output,
	}

	if opts.Name != "" {
		result.Metrics = append(result.Metrics, &CheckMetric{
			Name:     opts.Name,
			Unit:     opts.PerfUnit,
			Value:    value,
			Warning:  res.Warn(),
			Critical: res.Crit(),
			Min:      opts.Min,
			Max:      opts.Max,
		})
	}

	return result
}

// CheckRate converts the counter sample into a rate first, then applies
// the levels. First samples and clock anomalies report OK with the raw
// value, rate tracking problems are routine and never alert.
func (ev *Evaluator) CheckRate(value float64, opts *EvalOptions) *CheckResult {
	if opts.CounterID == "" {
		return ev.Unknown(opts, "rate evaluation requires a counter id")
	}

	rate, ok, first := ev.rates.Rate(opts.CounterID, value, opts.timestamp())
	switch {
	case first:
		output := fmt.Sprintf("%s (counter initialized)", fmt.Sprintf(opts.format(), value))
		if opts.Label != "" {
			output = opts.Label + ": " + output
		}

		return &CheckResult{State: CheckExitOK, Output: output}
	case !ok:
		output := "no rate yet, waiting for the next sample"
		if opts.Label != "" {
			output = opts.Label + ": " + output
		}

		return &CheckResult{State: CheckExitOK, Output: output}
	}

	return ev.CheckLevels(rate, opts)
}

// CheckValue evaluates a raw table field, non numeric input yields an
// UNKNOWN result instead of being silently coerced.
func (ev *Evaluator) CheckValue(raw interface{}, opts *EvalOptions) *CheckResult {
	value, err := convert.Float64E(raw)
	if err != nil {
		return ev.Unknown(opts, err.Error())
	}

	return ev.CheckLevels(value, opts)
}

// Unknown builds an UNKNOWN result with a descriptive message.
func (ev *Evaluator) Unknown(opts *EvalOptions, message string) *CheckResult {
	if opts != nil && opts.Label != "" {
		message = opts.Label + ": " + message
	}

	return &CheckResult{
		State:  CheckExitUnknown,
		Output: message,
	}
}

// levelsInfo renders the violated thresholds, ex.: " (warn/crit at 60.0 °C/70.0 °C)".
func (ev *Evaluator) levelsInfo(res *LevelsResult, opts *EvalOptions) string {
	preposition := "at"
	warn, crit := res.WarnUpper, res.CritUpper
	if res.Lower {
		preposition = "below"
		warn, crit = res.WarnLower, res.CritLower
	}

	warnStr := "never"
	if warn != nil {
		warnStr = opts.render(*warn)
	}
	critStr := "never"
	if crit != nil {
		critStr = opts.render(*crit)
	}

	return fmt.Sprintf(" (warn/crit %s %s/%s)", preposition, warnStr, critStr)
}

// resolvePredictive turns predictive levels into fixed levels around
// the moving baseline of this counter.
func (ev *Evaluator) resolvePredictive(value float64, levels *Levels, opts *EvalOptions) (resolved *Levels, info string, err error) {
	if opts.CounterID == "" {
		return nil, "", fmt.Errorf("predictive levels require a counter id")
	}

	backlog := levels.Backlog
	if backlog <= 0 {
		backlog = 15
	}

	baseline := ev.average.Update(opts.CounterID+".avg", opts.timestamp(), value, backlog)

	resolved = &Levels{
		Kind: LevelsFixed,
		Warn: baseline * (1 + levels.Warn/100),
		Crit: baseline * (1 + levels.Crit/100),
	}

	info = fmt.Sprintf(" (predicted reference: %s)", strings.TrimSpace(fmt.Sprintf(opts.format(), baseline)))

	return resolved, info, nil
}
