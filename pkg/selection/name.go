package selection

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/orgchart/pkg/org"
)

// Tier identifies which name rule produced a match.
type Tier int

const (
	TierNone Tier = iota
	TierExact
	TierPrefix
	TierFirstName
	TierLastName
	TierSubstring
	TierID
)

var tierNames = map[Tier]string{
	TierNone:      "none",
	TierExact:     "exact",
	TierPrefix:    "prefix",
	TierFirstName: "first_name",
	TierLastName:  "last_name",
	TierSubstring: "substring",
	TierID:        "id",
}

func (t Tier) String() string {
	if s, ok := tierNames[t]; ok {
		return s
	}
	return "unknown"
}

// MarshalText encodes the tier by name.
func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Match is a selected employee.
type Match struct {
	Employee org.Employee `json:"employee"`
	Index    int          `json:"index"`
	Tier     Tier         `json:"tier"`
}

type nameKey struct {
	full, first, last string
}

type tierRule struct {
	tier  Tier
	match func(k nameKey, q string) bool
}

var nameTiers = []tierRule{
	{TierExact, func(k nameKey, q string) bool { return k.full != "" && k.full == q }},
	{TierPrefix, func(k nameKey, q string) bool { return hasWordPrefix(q, k.full) }},
	{TierFirstName, func(k nameKey, q string) bool { return k.first != "" && k.first == q }},
	{TierLastName, func(k nameKey, q string) bool { return k.last != "" && k.last == q }},
	{TierSubstring, func(k nameKey, q string) bool { return strings.Contains(k.full, q) }},
}

// ByName selects an employee by name. Ties within a tier go to the earliest
// employee in the list.
func ByName(employees []org.Employee, query string) (Match, bool) {
	q := Fold(query)
	if q == "" {
		return Match{}, false
	}

	keys := make([]nameKey, len(employees))
	for i, e := range employees {
		keys[i] = nameKey{
			full:  Fold(e.FullName()),
			first: Fold(e.GivenName()),
			last:  Fold(e.FamilyName()),
		}
	}

	for _, rule := range nameTiers {
		for i, k := range keys {
			if rule.match(k, q) {
				return Match{Employee: employees[i], Index: i, Tier: rule.tier}, true
			}
		}
	}
	return Match{}, false
}

// ByID selects the employee with the given ID.
func ByID(employees []org.Employee, id string) (Match, bool) {
	if id == "" {
		return Match{}, false
	}
	for i, e := range employees {
		if e.ID == id {
			return Match{Employee: e, Index: i, Tier: TierID}, true
		}
	}
	return Match{}, false
}

// hasWordPrefix reports whether s starts with prefix and the prefix ends on a
// word boundary. Equal strings are handled by the exact tier.
func hasWordPrefix(s, prefix string) bool {
	if prefix == "" || len(s) <= len(prefix) || !strings.HasPrefix(s, prefix) {
		return false
	}
	next, _ := utf8.DecodeRuneInString(s[len(prefix):])
	return !unicode.IsLetter(next) && !unicode.IsDigit(next)
}
