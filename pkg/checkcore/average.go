package checkcore

import (
	"math"
	"sync"
)

// averageState holds the running exponential moving average of one
// metric, kept in memory only, baselines rebuild after a restart.
type averageState struct {
	startTime float64
	lastTime  float64
	average   float64
}

// Average maintains exponential moving averages per key, used as the
// baseline for predictive levels.
type Average struct {
	lock sync.Mutex
	data map[string]averageState
}

// NewAverage creates an empty Average.
func NewAverage() *Average {
	return &Average{
		data: make(map[string]averageState),
	}
}

// Update folds a new sample into the moving average and returns the
// updated average. The weight is chosen so the values of the backlog
// horizon make up half of the result for long running series, young
// series converge faster.
func (a *Average) Update(key string, timestamp, value, backlogMinutes float64) float64 {
	a.lock.Lock()
	defer a.lock.Unlock()

	state, ok := a.data[key]
	if !ok {
		a.data[key] = averageState{startTime: timestamp, lastTime: timestamp, average: value}

		return value
	}

	timeDiff := timestamp - state.lastTime
	if timeDiff <= 0 {
		// tolerate time anomalies of the sampled system
		return state.average
	}

	backlogCount := (backlogMinutes * 60.0) / timeDiff
	backlogWeight := math.Pow(0.5, math.Min(1, (timestamp-state.startTime)/(2*backlogMinutes*60.0)))
	weight := math.Pow(1-backlogWeight, 1.0/backlogCount)

	state.average = (1-weight)*value + weight*state.average
	state.lastTime = timestamp
	a.data[key] = state

	return state.average
}

// Forget drops the average for a key.
func (a *Average) Forget(key string) {
	a.lock.Lock()
	defer a.lock.Unlock()

	delete(a.data, key)
}
