package analytics

import (
	"sort"

	"github.com/decisio/decisio/pkg/types"
)

// GroupByParent groups records into version lineages keyed by parent id
// (or the record's own id for originals), each sorted ascending by version.
func GroupByParent(records []types.Record) map[string][]types.Record {
	groups := map[string][]types.Record{}
	for _, r := range records {
		key := r.ParentID
		if key == "" {
			key = r.DecisionID
		}
		groups[key] = append(groups[key], r)
	}
	for key := range groups {
		group := groups[key]
		sort.SliceStable(group, func(i, j int) bool { return group[i].Version < group[j].Version })
		groups[key] = group
	}
	return groups
}
