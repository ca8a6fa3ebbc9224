package valuestore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

// RateState is the persisted state of a single counter, it holds the
// last observed raw value along with its sample timestamp.
type RateState struct {
	LastValue     float64 `json:"last_value"`
	LastTimestamp float64 `json:"last_timestamp"`
}

// Store is a durable key/value store for RateState entries, keyed by
// counter id. Entries survive process restarts by writing a json state
// file. An empty path creates a memory-only store.
type Store struct {
	lock sync.RWMutex
	path string
	data map[string]RateState
}

// New creates a Store backed by the given state file. A missing or
// unreadable file results in an empty store, the error is returned for
// logging purposes only, the store is usable either way.
func New(path string) (*Store, error) {
	store := &Store{
		path: path,
		data: make(map[string]RateState),
	}

	if path == "" {
		return store, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}

		return store, fmt.Errorf("cannot read state file %s: %s", path, err.Error())
	}

	if err := json.Unmarshal(raw, &store.data); err != nil {
		// treat corrupt state like a fresh start, counters will reinitialize
		store.data = make(map[string]RateState)

		return store, fmt.Errorf("discarding corrupt state file %s: %s", path, err.Error())
	}

	return store, nil
}

// Get returns the stored state for a counter id.
func (s *Store) Get(counterID string) (state RateState, ok bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	state, ok = s.data[counterID]

	return state, ok
}

// Set overwrites the state for a counter id and persists the store.
func (s *Store) Set(counterID string, state RateState) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.data[counterID] = state

	return s.save()
}

// Delete removes a single counter id, used by the inventory layer once
// an item is confirmed gone.
func (s *Store) Delete(counterID string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.data, counterID)

	return s.save()
}

// Prune drops all entries the keep callback rejects and returns the
// number of removed entries.
func (s *Store) Prune(keep func(counterID string) bool) (removed int, err error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	for id := range s.data {
		if !keep(id) {
			delete(s.data, id)
			removed++
		}
	}

	if removed > 0 {
		err = s.save()
	}

	return removed, err
}

// Len returns the number of stored counters.
func (s *Store) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.data)
}

// save writes the state file atomically, callers must hold the lock.
func (s *Store) save() error {
	if s.path == "" {
		return nil
	}

	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("cannot marshal state: %s", err.Error())
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("cannot create temporary state file: %s", err.Error())
	}

	tmpName := tmpFile.Name()
	if _, err := tmpFile.Write(raw); err != nil {
		tmpFile.Close()
		os.Remove(tmpName)

		return fmt.Errorf("cannot write state file %s: %s", tmpName, err.Error())
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpName)

		return fmt.Errorf("cannot close state file %s: %s", tmpName, err.Error())
	}

	// rename is atomic, readers never see a partial state file
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)

		return fmt.Errorf("cannot replace state file %s: %s", s.path, err.Error())
	}

	return nil
}
