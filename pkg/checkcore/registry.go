package checkcore

import (
	"fmt"
	"strings"
)

// Item is a discovered monitorable entity. The id is derived from
// table fields only, so repeated discovery over the same table yields
// the same ids and status history stays attached across polls.
type Item struct {
	ID     string
	Params map[string]string
}

// Discover produces one Item per table row. The id joins the given key
// fields, discovery time parameters are copied from the param fields
// and handed to later check runs unchanged. Duplicate ids get a stable
// ".N" suffix in row order.
func Discover(table *Table, keyFields, paramFields []string) []Item {
	items := make([]Item, 0, len(table.Rows))
	duplicates := map[string]int{}

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

		item := Item{
			ID:     id,
			Params: map[string]string{},
		}
		for _, field := range paramFields {
			if val, ok := table.Field(row, field); ok {
				item.Params[field] = val
			}
		}

		items = append(items, item)
	}

	return items
}

// itemID builds a deterministic item id from the key fields of a row.
func itemID(table *Table, row []string, keyFields []string) string {
	parts := make([]string, 0, len(keyFields))
	for _, field := range keyFields {
		val, ok := table.Field(row, field)
		if !ok || val == "" {
			continue
		}
		parts = append(parts, strings.ReplaceAll(strings.TrimSpace(val), " ", "_"))
	}

	return strings.Join(parts, "_")
}
