package checkcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageFirstSample(t *testing.T) {
	avg := NewAverage()

	assert.InDelta(t, 10.0, avg.Update("key", 100, 10.0, 15), 0.0001, "first sample becomes the baseline")
}

func TestAverageConverges(t *testing.T) {
	avg := NewAverage()

	avg.Update("key", 0, 10.0, 15)
	last := 10.0
	for i := 1; i <= 200; i++ {
		last = avg.Update("key", float64(i*60), 50.0, 15)
	}

	assert.Greater(t, last, 45.0, "a constant series pulls the average toward its value")
	assert.LessOrEqual(t, last, 50.0)
}

func TestAverageSmoothsSpikes(t *testing.T) {
	avg := NewAverage()

	avg.Update("key", 0, 10.0, 15)
	for i := 1; i <= 60; i++ {
		avg.Update("key", float64(i*60), 10.0, 15)
	}
	spiked := avg.Update("key", 61*60, 1000.0, 15)

	assert.Less(t, spiked, 300.0, "a single spike moves the baseline only partially")
	assert.Greater(t, spiked, 10.0)
}

func TestAverageTimeAnomaly(t *testing.T) {
	avg := NewAverage()

	avg.Update("key", 100, 10.0, 15)
	avg.Update("key", 160, 20.0, 15)
	before := avg.Update("key", 220, 20.0, 15)

	assert.InDelta(t, before, avg.Update("key", 200, 500.0, 15), 0.0001, "backwards clocks leave the average untouched")
}

func TestAverageForget(t *testing.T) {
	avg := NewAverage()

	avg.Update("key", 100, 10.0, 15)
	avg.Update("key", 160, 90.0, 15)
	avg.Forget("key")

	assert.InDelta(t, 55.0, avg.Update("key", 220, 55.0, 15), 0.0001, "forgotten keys restart from scratch")
}
