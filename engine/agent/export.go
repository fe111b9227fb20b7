package agent

import "sort"

// TableEntry is one learned (state, action) estimate, exported for the
// results sink. Visits is zero for tables that do not track visits.
type TableEntry struct {
	State  string
	Action string
	Value  float64
	Visits uint64
}

// ValueReporter is implemented by learning agents that can dump their
// value table.
type ValueReporter interface {
	TableSnapshot() []TableEntry
}

// snapshotTable collects entries from a table walker and sorts them by
// (state, action) so exports are deterministic regardless of map order.
func snapshotTable(walk func(yield func(state, action string, value float64, visits uint64))) []TableEntry {
	var entries []TableEntry
	walk(func(state, action string, value float64, visits uint64) {
		entries = append(entries, TableEntry{State: state, Action: action, Value: value, Visits: visits})
	})
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].State != entries[j].State {
			return entries[i].State < entries[j].State
		}
		return entries[i].Action < entries[j].Action
	})
	return entries
}
