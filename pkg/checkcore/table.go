package checkcore

import (
	"fmt"
	"os"
	"strings"

	"github.com/consol-monitoring/checkcore/pkg/convert"
	"github.com/goccy/go-json"
)

// Table is a normalized table as produced by the external per-check
// parsers: ordered rows of string fields with named columns. The core
// never parses raw transport payloads itself.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ColumnIndex returns the index of a named column or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}

	return -1
}

// Field returns the named field of a row.
func (t *Table) Field(row []string, name string) (val string, ok bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 || idx >= len(row) {
		return "", false
	}

	return row[idx], true
}

// FloatField returns the named field of a row as float64, absent or
// non-numeric fields return an error for the UNKNOWN path.
func (t *Table) FloatField(row []string, name string) (float64, error) {
	raw, ok := t.Field(row, name)
	if !ok {
		return 0, fmt.Errorf("row has no field %s", name)
	}

	val, err := convert.Float64E(raw)
	if err != nil {
		return 0, fmt.Errorf("field %s: %s", name, err.Error())
	}

	return val, nil
}

// LoadTableFile reads a normalized table from a json file (an object
// with "columns" and "rows") or from a tab separated file with a
// header line.
func LoadTableFile(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read table file %s: %s", path, err.Error())
	}

	if strings.HasSuffix(path, ".json") {
		table := &Table{}
		if err := json.Unmarshal(raw, table); err != nil {
			return nil, fmt.Errorf("cannot parse table file %s: %s", path, err.Error())
		}

		return table, nil
	}

	return parseTSV(string(raw))
}

func parseTSV(data string) (*Table, error) {
	table := &Table{}

	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if table.Columns == nil {
			table.Columns = fields

			continue
		}
		if len(fields) != len(table.Columns) {
			return nil, fmt.Errorf("row has %d fields, header has %d: %s", len(fields), len(table.Columns), line)
		}
		table.Rows = append(table.Rows, fields)
	}

	if table.Columns == nil {
		return nil, fmt.Errorf("table has no header line")
	}

	return table, nil
}
