package checkcore

import (
	"fmt"
	"strings"
)

func init() {
	AvailableChecks["check_table"] = CheckEntry{"check_table", new(CheckTable)}
}

// CheckTable evaluates one column of a normalized table against
// configured or device reported levels, one result per discovered item.
//
// Arguments:
//
//	table=<path>           table file (.json or tab separated)
//	column=<name>          the metric column to evaluate
//	key=<field[,field]>    fields building the item id (default: first column)
//	item=<id>              only check this item
//	levels=<warn,crit>     upper levels
//	levels_lower=<w,c>     lower levels
//	reference=<column>     reference column for percent levels
//	device_warn=<column>   device reported warn level column (0 = unsupported)
//	device_crit=<column>   device reported crit level column
//	device_warn_lower=<column>
//	device_crit_lower=<column>
//	rate=1                 convert the value into a rate per second
//	timestamp=<column>     sample time column for rate conversion
//	unit=, format=, perfunit=  output formatting
type CheckTable struct{}

func (l *CheckTable) Check(core *Core, rawArgs []string) (*CheckResult, error) {
	args := ParseArgs(rawArgs)

	tablePath, ok := args["table"]
	if !ok {
		return nil, fmt.Errorf("usage: check_table table=<path> column=<name>")
	}
	column, ok := args["column"]
	if !ok {
		return nil, fmt.Errorf("usage: check_table table=<path> column=<name>")
	}

	table, err := LoadTableFile(tablePath)
	if err != nil {
		return nil, err
	}

	levels, err := l.configuredLevels(core, args)
	if err != nil {
		return nil, err
	}

	keyFields := []string{table.Columns[0]}
	if keys, ok := args["key"]; ok {
		keyFields = strings.Split(keys, ",")
	}

	// ids are derived the same way discovery derives them, so results
	// stay attached to the discovered items across polls
	duplicates := map[string]int{}
	results := make([]*CheckResult, 0, len(table.Rows))
	for _, row := range table.Rows {
		id := itemID(table, row, keyFields)
		if id == "" {
			continue
		}
		if num, ok := duplicates[id]; ok {
			duplicates[id] = num + 1
			id = fmt.Sprintf("%s.%d", id, num)
		} else {
			duplicates[id] = 1
		}
		if only, ok := args["item"]; ok && only != id {
			continue
		}
		results = append(results, l.checkRow(core, table, row, id, column, levels, args))
	}

	if len(results) == 0 {
		return &CheckResult{
			State:  CheckExitUnknown,
			Output: "check_table failed to find any matching items",
		}, nil
	}

	return Combine(results...), nil
}

// Discover lists the table rows as items, discovery time parameters
// are copied from the columns named in params=<col[,col]>.
func (l *CheckTable) Discover(_ *Core, rawArgs []string) ([]Item, error) {
	args := ParseArgs(rawArgs)

	tablePath, ok := args["table"]
	if !ok {
		return nil, fmt.Errorf("usage: check_table table=<path>")
	}

	table, err := LoadTableFile(tablePath)
	if err != nil {
		return nil, err
	}

	keyFields := []string{table.Columns[0]}
	if keys, ok := args["key"]; ok {
		keyFields = strings.Split(keys, ",")
	}
	var paramFields []string
	if params, ok := args["params"]; ok {
		paramFields = strings.Split(params, ",")
	}

	return Discover(table, keyFields, paramFields), nil
}

// configuredLevels builds the operator supplied levels from check
// arguments, falling back to the check config section.
func (l *CheckTable) configuredLevels(core *Core, args map[string]string) (*Levels, error) {
	section := core.Config.CheckSection("check_table")

	if def, ok := args["levels"]; ok {
		return ParseLevels(def, false)
	}
	if def, ok := args["levels_lower"]; ok {
		return ParseLevels(def, true)
	}
	if _, ok := (*section)["levels"]; ok {
		return section.GetLevels("levels", false), nil
	}
	if _, ok := (*section)["levels_lower"]; ok {
		return section.GetLevels("levels_lower", true), nil
	}

	return &Levels{Kind: LevelsNone}, nil
}

func (l *CheckTable) checkRow(core *Core, table *Table, row []string, item, column string, configured *Levels, args map[string]string) *CheckResult {
	opts := &EvalOptions{
		Name:      fmt.Sprintf("%s %s", item, column),
		Label:     item,
		Unit:      args["unit"],
		PerfUnit:  args["perfunit"],
		Format:    args["format"],
		Levels:    configured,
		CounterID: CounterID("check_table", item, column),
	}

	// device reported levels override the configured ones per bound
	if device := l.deviceLevels(table, row, configured, args); device != nil {
		opts.Levels = device
	}

	if refCol, ok := args["reference"]; ok {
		ref, err := table.FloatField(row, refCol)
		if err != nil {
			return core.Evaluator.Unknown(opts, err.Error())
		}
		opts.Reference = &ref
	}

	if tsCol, ok := args["timestamp"]; ok {
		ts, err := table.FloatField(row, tsCol)
		if err != nil {
			return core.Evaluator.Unknown(opts, err.Error())
		}
		opts.Timestamp = ts
	}

	value, err := table.FloatField(row, column)
	if err != nil {
		return core.Evaluator.Unknown(opts, err.Error())
	}

	if args["rate"] == "1" {
		return core.Evaluator.CheckRate(value, opts)
	}

	return core.Evaluator.CheckLevels(value, opts)
}

// deviceLevels reads device reported thresholds from the given table
// columns, missing columns or zero values count as unsupported.
func (l *CheckTable) deviceLevels(table *Table, row []string, fallback *Levels, args map[string]string) *Levels {
	cols := []string{"device_warn", "device_crit", "device_warn_lower", "device_crit_lower"}
	vals := make([]float64, len(cols))
	found := false

	for i, arg := range cols {
		col, ok := args[arg]
		if !ok {
			continue
		}
		val, err := table.FloatField(row, col)
		if err != nil {
			continue
		}
		vals[i] = val
		found = true
	}

	if !found {
		return nil
	}

	return DeviceLevels(vals[0], vals[1], vals[2], vals[3], fallback)
}
