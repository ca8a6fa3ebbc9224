package checkcore

import (
	"testing"
	"time"

	"github.com/consol-monitoring/checkcore/pkg/counter"
	"github.com/consol-monitoring/checkcore/pkg/valuestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRates(t *testing.T) *RateCalculator {
	t.Helper()

	store, err := valuestore.New("")
	require.NoError(t, err)

	return NewRateCalculator(store, counter.NewSet(time.Hour, time.Second))
}

func TestRateFirstSample(t *testing.T) {
	rc := newTestRates(t)

	rate, ok, first := rc.Rate("net.eth0.bytes_in", 1000, 100)
	assert.False(t, ok, "first sample yields no rate")
	assert.True(t, first)
	assert.InDelta(t, 0.0, rate, 0.00001)

	// the sample is stored verbatim
	state, found := rc.store.Get("net.eth0.bytes_in")
	require.True(t, found)
	assert.InDelta(t, 1000.0, state.LastValue, 0.00001)
	assert.InDelta(t, 100.0, state.LastTimestamp, 0.00001)
}

func TestRateSecondSample(t *testing.T) {
	rc := newTestRates(t)

	rc.Rate("x", 1000, 100)
	rate, ok, first := rc.Rate("x", 1050, 110)
	require.True(t, ok)
	assert.False(t, first)
	assert.InDelta(t, 5.0, rate, 0.00001, "rate is (1050-1000)/(110-100)")
}

func TestRateZeroDuration(t *testing.T) {
	rc := newTestRates(t)

	rc.Rate("y", 1000, 100)

	// identical sample repeated, no rate has been computed yet
	rate, ok, first := rc.Rate("y", 1000, 100)
	assert.False(t, ok, "zero duration yields no rate")
	assert.False(t, first)
	assert.InDelta(t, 0.0, rate, 0.00001)

	// stored state is untouched, a later sample still gets a clean delta
	rate, ok, _ = rc.Rate("y", 1050, 110)
	require.True(t, ok)
	assert.InDelta(t, 5.0, rate, 0.00001)
}

func TestRateZeroDurationCached(t *testing.T) {
	rc := newTestRates(t)

	rc.Rate("z", 1000, 100)
	rate, ok, _ := rc.Rate("z", 1050, 110)
	require.True(t, ok)
	require.InDelta(t, 5.0, rate, 0.00001)

	// duplicate sample returns the previously computed rate
	rate, ok, _ = rc.Rate("z", 1050, 110)
	assert.True(t, ok, "cached rate answers duplicate samples")
	assert.InDelta(t, 5.0, rate, 0.00001)
}

func TestRateClockWentBackwards(t *testing.T) {
	rc := newTestRates(t)

	rc.Rate("c", 1000, 100)
	_, ok, _ := rc.Rate("c", 1100, 90)
	assert.False(t, ok, "negative duration yields no rate")

	state, found := rc.store.Get("c")
	require.True(t, found)
	assert.InDelta(t, 100.0, state.LastTimestamp, 0.00001, "timestamp only advances")
}

func TestRateCounterReset(t *testing.T) {
	rc := newTestRates(t)

	rc.Rate("r", 1000, 100)
	rate, ok, _ := rc.Rate("r", 300, 110)
	require.True(t, ok)
	assert.InDelta(t, 30.0, rate, 0.00001, "reset counter uses the new value as delta")
}

func TestRateCounterWrap32Bit(t *testing.T) {
	rc := newTestRates(t)

	rc.Rate("wrap", 4000000000, 100)
	rate, ok, _ := rc.Rate("wrap", 50, 110)
	require.True(t, ok)
	assert.InDelta(t, 5.0, rate, 0.00001, "wrapped counter yields 50/10, not a huge negative rate")
}

func TestRateCacheSharedWithCore(t *testing.T) {
	core := StartTestCore(t)

	opts := &EvalOptions{CounterID: "check_table.eth0.bytes", Timestamp: 100}
	core.Evaluator.CheckRate(1000, opts)
	opts.Timestamp = 110
	core.Evaluator.CheckRate(1050, opts)

	// the evaluator caches computed rates in the core counter set
	cached := core.Counter.Get("rates", "check_table.eth0.bytes")
	require.NotNil(t, cached)
	last, ok := cached.GetLast()
	require.True(t, ok)
	assert.InDelta(t, 5.0, last.Value, 0.00001)
}

func TestCounterID(t *testing.T) {
	assert.Equal(t, "check_netrate.eth0.bytes_in", CounterID("check_netrate", "eth0", "bytes_in"))
}
