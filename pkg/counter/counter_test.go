package counter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter(t *testing.T) {
	cntr := NewCounter(time.Minute, time.Second)

	_, ok := cntr.GetLast()
	assert.False(t, ok, "empty counter has no last value")

	cntr.Set(10)
	cntr.Set(20)

	last, ok := cntr.GetLast()
	require.True(t, ok)
	assert.InDelta(t, 20.0, last.Value, 0.00001)

	assert.InDelta(t, 15.0, cntr.AvgForDuration(time.Minute), 0.00001)
}

func TestCounterWrapAround(t *testing.T) {
	cntr := NewCounter(3*time.Second, time.Second)

	for i := 0; i < 10; i++ {
		cntr.Set(float64(i))
	}

	last, ok := cntr.GetLast()
	require.True(t, ok)
	assert.InDelta(t, 9.0, last.Value, 0.00001, "ring buffer keeps latest value")
}

func TestSet(t *testing.T) {
	set := NewSet(time.Minute, time.Second)

	assert.Nil(t, set.Get("net", "eth0"))

	set.Set("net", "eth0", 100)
	set.Set("net", "eth1", 200)

	require.NotNil(t, set.Get("net", "eth0"))
	assert.ElementsMatch(t, []string{"eth0", "eth1"}, set.Keys("net"))

	last, ok := set.Get("net", "eth1").GetLast()
	require.True(t, ok)
	assert.InDelta(t, 200.0, last.Value, 0.00001)
}
