package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandDuration(t *testing.T) {
	tests := []struct {
		in  string
		res float64
	}{
		{"2d", 172800},
		{"1m", 60},
		{"10s", 10},
		{"100ms", 0.1},
		{"5", 5},
	}

	for _, tst := range tests {
		res, err := ExpandDuration(tst.in)
		require.NoErrorf(t, err, "ExpandDuration(%s)", tst.in)
		assert.InDeltaf(t, tst.res, res, 0.00001, "ExpandDuration(%s) -> %v", tst.in, tst.res)
	}

	_, err := ExpandDuration("5x")
	assert.Error(t, err, "unknown suffix returns error")
}

func TestToPrecision(t *testing.T) {
	assert.InDelta(t, 1.23, ToPrecision(1.2345, 2), 0.00001)
	assert.InDelta(t, 1.0, ToPrecision(1.0001, 2), 0.00001)
}

func TestFieldsN(t *testing.T) {
	assert.Equal(t, []string{"coretemp", "core 0"}, FieldsN("coretemp core 0", 2))
	assert.Equal(t, []string{"a", "b", "c"}, FieldsN("a b c", 5))
	assert.Nil(t, FieldsN("a b", 0))
}
