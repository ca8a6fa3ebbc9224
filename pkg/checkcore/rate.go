package checkcore

import (
	"fmt"
	"time"

	"github.com/consol-monitoring/checkcore/pkg/counter"
	"github.com/consol-monitoring/checkcore/pkg/valuestore"
)

// rateCacheRetention controls how long computed rates are kept in
// memory to answer repeated samples within the same instant.
const rateCacheRetention = 15 * time.Minute

// RateCalculator converts raw counter samples into rates per second,
// persisting the previous sample per counter id in the value store.
type RateCalculator struct {
	store *valuestore.Store
	cache *counter.Set
}

// NewRateCalculator creates a RateCalculator on top of the given store,
// computed rates are cached in the given counter set.
func NewRateCalculator(store *valuestore.Store, cache *counter.Set) *RateCalculator {
	return &RateCalculator{
		store: store,
		cache: cache,
	}
}

// CounterID derives the stable storage key for a logical counter.
func CounterID(check, item, metric string) string {
	return fmt.Sprintf("%s.%s.%s", check, item, metric)
}

// Rate returns the rate per second for the given counter sample.
// The first sample for a counter id yields ok=false / first=true, the
// caller should report the raw value then. Counter resets and clock
// anomalies never produce an error, they degrade to a fresh start or
// to the previously computed rate.
func (rc *RateCalculator) Rate(counterID string, value, timestamp float64) (rate float64, ok, first bool) {
	last, found := rc.store.Get(counterID)
	if !found {
		rc.setState(counterID, value, timestamp)

		return 0, false, true
	}

	deltaT := timestamp - last.LastTimestamp
	if deltaT <= 0 {
		// clock went backwards or duplicate sample, keep the stored
		// state untouched and reuse the last computed rate if there
		// is one
		if cached := rc.cache.Get("rates", counterID); cached != nil {
			if lastRate, hasRate := cached.GetLast(); hasRate {
				return lastRate.Value, true, false
			}
		}

		return 0, false, false
	}

	delta := value - last.LastValue
	if value < last.LastValue {
		// counter reset, most likely a reboot or a 32-bit wraparound,
		// the new value alone is the best delta estimate
		delta = value
	}

	rate = delta / deltaT

	rc.setState(counterID, value, timestamp)
	rc.cache.Set("rates", counterID, rate)

	return rate, true, false
}

func (rc *RateCalculator) setState(counterID string, value, timestamp float64) {
	err := rc.store.Set(counterID, valuestore.RateState{
		LastValue:     value,
		LastTimestamp: timestamp,
	})
	if err != nil {
		// persistence failure degrades to first-sample behavior on the
		// next cycle, the current evaluation continues
		log.Debugf("cannot persist counter %s: %s", counterID, err.Error())
	}
}
