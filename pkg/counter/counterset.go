package counter

import (
	"sync"
	"time"
)

// Set is a concurrency safe collection of named Counters grouped by
// category, counters are created on demand.
type Set struct {
	lock          sync.Mutex
	counter       map[string]map[string]*Counter
	retentionTime time.Duration
	interval      time.Duration
}

// NewSet creates an empty Set, counters added later use the given
// retention time and interval.
func NewSet(retentionTime, interval time.Duration) *Set {
	return &Set{
		counter:       make(map[string]map[string]*Counter),
		retentionTime: retentionTime,
		interval:      interval,
	}
}

// Get returns the counter for given category / key or nil if there is none.
func (cs *Set) Get(category, key string) *Counter {
	cs.lock.Lock()
	defer cs.lock.Unlock()

	if cat, ok := cs.counter[category]; ok {
		return cat[key]
	}

	return nil
}

// GetOrCreate returns the counter for given category / key, creating it
// on first use.
func (cs *Set) GetOrCreate(category, key string) *Counter {
	cs.lock.Lock()
	defer cs.lock.Unlock()

	cat, ok := cs.counter[category]
	if !ok {
		cat = make(map[string]*Counter)
		cs.counter[category] = cat
	}
	cntr, ok := cat[key]
	if !ok {
		cntr = NewCounter(cs.retentionTime, cs.interval)
		cat[key] = cntr
	}

	return cntr
}

// Set stores a value in the counter for given category / key.
func (cs *Set) Set(category, key string, value float64) {
	cs.GetOrCreate(category, key).Set(value)
}

// Keys returns all counter keys for given category.
func (cs *Set) Keys(category string) (keys []string) {
	cs.lock.Lock()
	defer cs.lock.Unlock()

	if cat, ok := cs.counter[category]; ok {
		for key := range cat {
			keys = append(keys, key)
		}
	}

	return keys
}
