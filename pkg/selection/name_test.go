package selection

import (
	"testing"

	"github.com/matzehuels/orgchart/pkg/org"
)

func people() []org.Employee {
	return []org.Employee{
		{ID: "e1", Name: "Jean Dupont", Title: "DRH"},
		{ID: "e2", Name: "Jean Martin"},
		{ID: "e3", Name: "Hélène Lefèvre"},
		{ID: "e4", FirstName: "Marc", LastName: "Jeanneau"},
		{ID: "e5", Name: "Dupont"},
	}
}

func TestByName(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantID   string
		wantTier Tier
		wantOK   bool
	}{
		{"ExactFullName", "Jean Martin", "e2", TierExact, true},
		{"ExactCaseInsensitive", "jean MARTIN", "e2", TierExact, true},
		{"ExactAccentInsensitive", "helene lefevre", "e3", TierExact, true},
		{"ExactWhitespaceCollapsed", "  Jean   Dupont ", "e1", TierExact, true},
		{"ExactSingleWordBeatsLastName", "Dupont", "e5", TierExact, true},
		{"PrefixWithSuffix", "Jean Dupont, DRH", "e1", TierPrefix, true},
		{"PrefixNeedsWordBoundary", "Jean Martineau", "", TierNone, false},
		{"FirstNameListOrder", "Jean", "e1", TierFirstName, true},
		{"FirstNameFromFields", "marc", "e4", TierFirstName, true},
		{"LastName", "Lefevre", "e3", TierLastName, true},
		{"Substring", "jean dup", "e1", TierSubstring, true},
		{"SubstringInsideWord", "neau", "e4", TierSubstring, true},
		{"NoMatch", "Zoé", "", TierNone, false},
		{"Blank", "   ", "", TierNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := ByName(people(), tt.query)
			if ok != tt.wantOK {
				t.Fatalf("ByName(%q) ok = %v, want %v", tt.query, ok, tt.wantOK)
			}
			if m.Employee.ID != tt.wantID {
				t.Errorf("ByName(%q) = %s, want %s", tt.query, m.Employee.ID, tt.wantID)
			}
			if m.Tier != tt.wantTier {
				t.Errorf("ByName(%q) tier = %s, want %s", tt.query, m.Tier, tt.wantTier)
			}
		})
	}
}

func TestByNameLastNameTier(t *testing.T) {
	emps := []org.Employee{
		{ID: "a", Name: "Jean Dupont"},
		{ID: "b", Name: "Jean Martin"},
	}

	m, ok := ByName(emps, "Dupont")
	if !ok || m.Employee.ID != "a" || m.Tier != TierLastName {
		t.Errorf("ByName(Dupont) = %+v, %v; want a via last_name", m, ok)
	}
	if m.Index != 0 {
		t.Errorf("Index = %d, want 0", m.Index)
	}
}

func TestByNameEmptyList(t *testing.T) {
	if _, ok := ByName(nil, "Jean"); ok {
		t.Error("ByName(nil) should not match")
	}
}

func TestByID(t *testing.T) {
	m, ok := ByID(people(), "e3")
	if !ok || m.Employee.Name != "Hélène Lefèvre" || m.Tier != TierID || m.Index != 2 {
		t.Errorf("ByID(e3) = %+v, %v", m, ok)
	}
	if _, ok := ByID(people(), "missing"); ok {
		t.Error("ByID(missing) should not match")
	}
	if _, ok := ByID(people(), ""); ok {
		t.Error("ByID(\"\") should not match")
	}
}

func TestFold(t *testing.T) {
	tests := map[string]string{
		"Hélène":           "helene",
		"  JEAN   Dupont ": "jean dupont",
		"Ærøskøbing":       "ærøskøbing",
		"François-Xavier":  "francois-xavier",
		"":                 "",
	}
	for in, want := range tests {
		if got := Fold(in); got != want {
			t.Errorf("Fold(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTierString(t *testing.T) {
	if TierFirstName.String() != "first_name" {
		t.Errorf("TierFirstName = %q", TierFirstName.String())
	}
	if Tier(99).String() != "unknown" {
		t.Errorf("Tier(99) = %q", Tier(99).String())
	}
}
