package checkcore

import (
	"testing"
	"time"

	"github.com/consol-monitoring/checkcore/pkg/counter"
	"github.com/consol-monitoring/checkcore/pkg/valuestore"
	"github.com/stretchr/testify/require"
)

// StartTestCore creates a Core with a memory-only value store.
func StartTestCore(t *testing.T) *Core {
	t.Helper()

	store, err := valuestore.New("")
	require.NoError(t, err)

	cache := counter.NewSet(time.Hour, time.Second)

	return &Core{
		Config:    NewConfig(),
		Store:     store,
		Evaluator: NewEvaluator(store, cache),
		Counter:   cache,
		flags:     &Flags{},
	}
}

func floatP(val float64) *float64 {
	return &val
}
