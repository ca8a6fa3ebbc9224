package checkcore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/consol-monitoring/checkcore/pkg/utils"
	"github.com/dustin/go-humanize"
)

// LevelsKind selects how a Levels definition is interpreted.
type LevelsKind uint8

const (
	// LevelsNone means no levels are configured, the value is always OK.
	LevelsNone LevelsKind = iota

	// LevelsFixed are absolute upper levels, higher is worse.
	LevelsFixed

	// LevelsFixedLower are absolute lower levels, lower is worse.
	LevelsFixedLower

	// LevelsPercent are upper levels relative to a reference value.
	LevelsPercent

	// LevelsDevice are levels reported by the monitored device itself,
	// zero acts as the "unsupported" sentinel per bound.
	LevelsDevice

	// LevelsPredictive are upper levels relative to a moving baseline.
	LevelsPredictive
)

// Levels describes when a value is warning or critical.
type Levels struct {
	Kind LevelsKind

	Warn float64
	Crit float64

	// lower bounds, used by device reported levels
	WarnLower float64
	CritLower float64

	// configured levels used when the device does not report its own
	Fallback *Levels

	// averaging horizon in minutes for predictive levels
	Backlog float64
}

func (l *Levels) String() string {
	switch {
	case l == nil || l.Kind == LevelsNone:
		return "none"
	case l.Kind == LevelsPercent:
		return fmt.Sprintf("%s%%/%s%%", floatString(l.Warn), floatString(l.Crit))
	default:
		return fmt.Sprintf("%s/%s", floatString(l.Warn), floatString(l.Crit))
	}
}

// LevelsResult is the outcome of checking a value against levels.
type LevelsResult struct {
	State     int64
	WarnUpper *float64
	CritUpper *float64
	WarnLower *float64
	CritLower *float64

	// Lower is true when the lower bound pair caused a non-OK state.
	Lower bool
}

// Warn returns the threshold to attach to perfdata, upper levels win
// when both pairs exist.
func (r *LevelsResult) Warn() *float64 {
	if r.WarnUpper != nil {
		return r.WarnUpper
	}

	return r.WarnLower
}

// Crit returns the threshold to attach to perfdata, upper levels win
// when both pairs exist.
func (r *LevelsResult) Crit() *float64 {
	if r.CritUpper != nil {
		return r.CritUpper
	}

	return r.CritLower
}

// Check evaluates a value against the levels and returns the resulting
// state along with the effective warn/crit thresholds.
// Inverted warn/crit pairs are not reordered, the crit condition is
// evaluated first so a misconfiguration degrades toward the more severe
// state instead of masking it.
func (l *Levels) Check(value float64, reference *float64) (*LevelsResult, error) {
	res := &LevelsResult{State: CheckExitOK}
	if l == nil || l.Kind == LevelsNone {
		return res, nil
	}

	switch l.Kind {
	case LevelsFixed:
		res.WarnUpper, res.CritUpper = &l.Warn, &l.Crit
	case LevelsFixedLower:
		res.WarnLower, res.CritLower = &l.Warn, &l.Crit
	case LevelsPercent:
		if reference == nil {
			return nil, fmt.Errorf("percent levels require a reference value")
		}
		warnVal := l.Warn / 100 * *reference
		critVal := l.Crit / 100 * *reference
		res.WarnUpper, res.CritUpper = &warnVal, &critVal
	case LevelsDevice:
		res.WarnUpper, res.CritUpper, res.WarnLower, res.CritLower = l.deviceBounds()
	case LevelsPredictive:
		return nil, fmt.Errorf("predictive levels need a baseline, use Evaluator.CheckLevels")
	case LevelsNone:
	}

	res.State, res.Lower = checkBounds(value, res.WarnUpper, res.CritUpper, res.WarnLower, res.CritLower)

	return res, nil
}

// deviceBounds resolves device reported levels, zero means the device
// does not support this bound and the configured fallback applies.
func (l *Levels) deviceBounds() (warnUpper, critUpper, warnLower, critLower *float64) {
	var fbWarnUpper, fbCritUpper, fbWarnLower, fbCritLower *float64
	if fb := l.Fallback; fb != nil {
		switch fb.Kind {
		case LevelsFixed:
			fbWarnUpper, fbCritUpper = &fb.Warn, &fb.Crit
		case LevelsFixedLower:
			fbWarnLower, fbCritLower = &fb.Warn, &fb.Crit
		case LevelsNone, LevelsPercent, LevelsDevice, LevelsPredictive:
		}
	}

	warnUpper = pickBound(l.Warn, fbWarnUpper)
	critUpper = pickBound(l.Crit, fbCritUpper)
	warnLower = pickBound(l.WarnLower, fbWarnLower)
	critLower = pickBound(l.CritLower, fbCritLower)

	return warnUpper, critUpper, warnLower, critLower
}

func pickBound(device float64, fallback *float64) *float64 {
	if device != 0 {
		val := device

		return &val
	}

	return fallback
}

// checkBounds compares a value against optional upper and lower bound
// pairs, boundaries are inclusive on the bad side.
func checkBounds(value float64, warnUpper, critUpper, warnLower, critLower *float64) (state int64, lower bool) {
	switch {
	case critUpper != nil && value >= *critUpper:
		return CheckExitCritical, false
	case critLower != nil && value <= *critLower:
		return CheckExitCritical, true
	case warnUpper != nil && value >= *warnUpper:
		return CheckExitWarning, false
	case warnLower != nil && value <= *warnLower:
		return CheckExitWarning, true
	}

	return CheckExitOK, false
}

// DeviceLevels builds levels from device reported thresholds, zero
// values mark bounds the device does not support. The configured
// fallback applies for unsupported bounds.
func DeviceLevels(warn, crit, warnLower, critLower float64, fallback *Levels) *Levels {
	return &Levels{
		Kind:      LevelsDevice,
		Warn:      warn,
		Crit:      crit,
		WarnLower: warnLower,
		CritLower: critLower,
		Fallback:  fallback,
	}
}

// PredictiveLevels builds levels relative to an exponential moving
// baseline, warn/crit are percentages above the baseline.
func PredictiveLevels(warnPct, critPct, backlogMinutes float64) *Levels {
	return &Levels{
		Kind:    LevelsPredictive,
		Warn:    warnPct,
		Crit:    critPct,
		Backlog: backlogMinutes,
	}
}

// ParseLevels parses an operator supplied levels definition like
// "60,70", "80%,90%", "2GB,1GB" or "5m,10m". Use lower for levels
// where too low is bad.
func ParseLevels(def string, lower bool) (*Levels, error) {
	def = strings.TrimSpace(def)
	if def == "" || def == "none" {
		return &Levels{Kind: LevelsNone}, nil
	}

	parts := strings.SplitN(def, ",", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("cannot parse levels, expected 'warn,crit': %s", def)
	}

	warn, warnPct, err := parseLevelValue(parts[0])
	if err != nil {
		return nil, err
	}
	crit, critPct, err := parseLevelValue(parts[1])
	if err != nil {
		return nil, err
	}

	if warnPct != critPct {
		return nil, fmt.Errorf("cannot mix percent and absolute levels: %s", def)
	}

	levels := &Levels{Warn: warn, Crit: crit}

	switch {
	case warnPct && lower:
		return nil, fmt.Errorf("percent levels are upper levels only: %s", def)
	case warnPct:
		levels.Kind = LevelsPercent
	case lower:
		levels.Kind = LevelsFixedLower
	default:
		levels.Kind = LevelsFixed
	}

	return levels, nil
}

// parseLevelValue parses a single level with optional unit suffix.
func parseLevelValue(val string) (num float64, percent bool, err error) {
	val = strings.TrimSpace(val)

	if strings.HasSuffix(val, "%") {
		num, err = strconv.ParseFloat(strings.TrimSuffix(val, "%"), 64)
		if err != nil {
			return 0, false, fmt.Errorf("cannot parse level: %s", val)
		}

		return num, true, nil
	}

	switch {
	case strings.HasSuffix(val, "KB"),
		strings.HasSuffix(val, "MB"),
		strings.HasSuffix(val, "GB"),
		strings.HasSuffix(val, "TB"),
		strings.HasSuffix(val, "PB"):
		bytes, err := humanize.ParseBytes(val)
		if err != nil {
			return 0, false, fmt.Errorf("cannot parse level: %s", val)
		}

		return float64(bytes), false, nil
	case strings.HasSuffix(val, "ms"),
		strings.HasSuffix(val, "s"),
		strings.HasSuffix(val, "m"),
		strings.HasSuffix(val, "h"),
		strings.HasSuffix(val, "d"):
		num, err = utils.ExpandDuration(val)
		if err != nil {
			return 0, false, fmt.Errorf("cannot parse level: %s", val)
		}

		return num, false, nil
	}

	num, err = strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false, fmt.Errorf("cannot parse level: %s", val)
	}

	return num, false, nil
}
