package checkcore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTableFileTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sensors.tsv")
	data := "name\ttemperature\ncoretemp\t62.0\nacpitz\t47.0\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	table, err := LoadTableFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "temperature"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"acpitz", "47.0"}, table.Rows[1])
}

func TestLoadTableFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sensors.json")
	data := `{"columns":["name","temperature"],"rows":[["coretemp","62.0"]]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	table, err := LoadTableFile(path)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "coretemp", table.Rows[0][0])
}

func TestLoadTableFileErrors(t *testing.T) {
	_, err := LoadTableFile(filepath.Join(t.TempDir(), "missing.tsv"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "short.tsv")
	require.NoError(t, os.WriteFile(path, []byte("a\tb\n1\n"), 0o600))
	_, err = LoadTableFile(path)
	require.Error(t, err, "rows must match the header width")

	empty := filepath.Join(t.TempDir(), "empty.tsv")
	require.NoError(t, os.WriteFile(empty, []byte("\n\n"), 0o600))
	_, err = LoadTableFile(empty)
	require.Error(t, err, "a table needs a header line")
}

func TestTableFields(t *testing.T) {
	table := &Table{
		Columns: []string{"name", "temperature"},
		Rows:    [][]string{{"coretemp", "62.0"}, {"acpitz", "n/a"}},
	}

	val, ok := table.Field(table.Rows[0], "name")
	assert.True(t, ok)
	assert.Equal(t, "coretemp", val)

	_, ok = table.Field(table.Rows[0], "nosuchcolumn")
	assert.False(t, ok)

	num, err := table.FloatField(table.Rows[0], "temperature")
	require.NoError(t, err)
	assert.InDelta(t, 62.0, num, 0.0001)

	_, err = table.FloatField(table.Rows[1], "temperature")
	require.Error(t, err, "non numeric fields are never coerced")
}
