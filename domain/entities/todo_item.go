package entities

import (
	"fmt"
	"strings"
)

// TodoItem is a row of the currently filtered list. Position is 1-based and
// only valid until the list or the filter changes.
type TodoItem struct {
	Position int    `json:"position"`
	Text     string `json:"text"`
}

// FilterState is one of the list views offered in the footer.
type FilterState string

const (
	FilterAll       FilterState = "All"
	FilterActive    FilterState = "Active"
	FilterCompleted FilterState = "Completed"
)

// ParseFilterState matches a filter by its display name, ignoring case
func ParseFilterState(name string) (FilterState, error) {
	for _, f := range []FilterState{FilterAll, FilterActive, FilterCompleted} {
		if strings.EqualFold(string(f), strings.TrimSpace(name)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q", name)
}
