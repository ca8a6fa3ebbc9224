package counter

import (
	"math"
	"sync"
	"time"
)

// Counter is the container for a single timeseries of performance values
// it uses a fixed size storage backend
type Counter struct {
	lock    sync.RWMutex
	data    []Value
	current int64
	size    int64
}

// Value is a single entry of a Counter
type Value struct {
	UnixMilli int64
	Value     float64
}

// NewCounter creates a new Counter with given retention time and interval
func NewCounter(retentionTime, interval time.Duration) *Counter {
	retentionMilli := retentionTime.Milliseconds()
	intervalMilli := interval.Milliseconds()

	// round retention time to a multiple of interval
	retention := int64(math.Ceil(float64(retentionMilli)/float64(intervalMilli))) * intervalMilli
	size := retention / intervalMilli

	return &Counter{
		data:    make([]Value, size),
		size:    size,
		current: -1,
	}
}

// Set adds a new value with current timestamp
func (c *Counter) Set(val float64) {
	c.SetAt(time.Now(), val)
}

// SetAt adds a new value with given timestamp
func (c *Counter) SetAt(ts time.Time, val float64) {
	c.lock.Lock()
	c.current++
	if c.current == c.size {
		c.current = 0
	}
	c.data[c.current].UnixMilli = ts.UTC().UnixMilli()
	c.data[c.current].Value = val
	c.lock.Unlock()
}

// GetLast returns last (latest) value
func (c *Counter) GetLast() (val Value, ok bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	if c.current == -1 {
		return val, false
	}

	return c.data[c.current], true
}

// AvgForDuration returns avg value for given duration
func (c *Counter) AvgForDuration(duration time.Duration) float64 {
	useAfter := time.Now().UTC().Add(-duration).UnixMilli()

	c.lock.RLock()
	defer c.lock.RUnlock()

	sum := float64(0)
	count := float64(0)

	idx := c.current
	if idx == -1 {
		return 0
	}
	for seen := int64(0); seen < c.size; seen++ {
		if c.data[idx].UnixMilli <= useAfter {
			break
		}
		sum += c.data[idx].Value
		count++

		idx--
		if idx < 0 {
			idx = c.size - 1
		}
	}

	if count == 0 {
		return 0
	}

	return sum / count
}
