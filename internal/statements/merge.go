package statements

import (
	"sort"

	"github.com/auszug-dev/auszug/internal/model"
)

// Merge combines previously persisted transactions with freshly
// extracted ones, drops exact duplicates, and orders the result by
// date. Existing transactions come first so they win when the same
// key shows up in both inputs.
//
// Dates compare as raw strings, not calendar dates; an empty date
// sorts before everything else. The sort is stable, so equal dates
// keep their first-seen order.
func Merge(existing, fresh []model.Transaction) []model.Transaction {
	merged := make([]model.Transaction, 0, len(existing)+len(fresh))
	seen := make(map[string]bool, len(existing)+len(fresh))

	for _, txn := range existing {
		if key := txn.Key(); !seen[key] {
			seen[key] = true
			merged = append(merged, txn)
		}
	}
	for _, txn := range fresh {
		if key := txn.Key(); !seen[key] {
			seen[key] = true
			merged = append(merged, txn)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date < merged[j].Date
	})
	return merged
}
