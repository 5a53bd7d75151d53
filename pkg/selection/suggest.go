package selection

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/matzehuels/orgchart/pkg/org"
)

// Suggestion is one autocompletion candidate.
type Suggestion struct {
	Employee org.Employee `json:"employee"`
	Distance int          `json:"distance"`
}

// Suggest returns up to limit employees whose full name fuzzily contains
// query, best first. A non-positive limit returns every match.
func Suggest(employees []org.Employee, query string, limit int) []Suggestion {
	if query == "" || len(employees) == 0 {
		return nil
	}
	names := make([]string, len(employees))
	for i, e := range employees {
		names[i] = e.FullName()
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}
	out := make([]Suggestion, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, Suggestion{Employee: employees[r.OriginalIndex], Distance: r.Distance})
	}
	return out
}
