package layout

import (
	"fmt"
	"testing"

	"github.com/matzehuels/orgchart/pkg/org"
)

// chainChart returns n employees each reporting to the previous one.
func chainChart(t *testing.T, n int) *org.Chart {
	t.Helper()
	emps := make([]org.Employee, n)
	for i := range n {
		emps[i] = org.Employee{ID: fmt.Sprintf("c%d", i), Name: fmt.Sprintf("Chain %d", i)}
		if i > 0 {
			emps[i].ManagerID = fmt.Sprintf("c%d", i-1)
		}
	}
	return mustChart(t, emps)
}

// balancedChart returns a complete tree with the given branching factor and depth.
func balancedChart(t *testing.T, branch, depth int) *org.Chart {
	t.Helper()
	emps := []org.Employee{{ID: "r", Name: "Root"}}
	level := []string{"r"}
	for d := 1; d <= depth; d++ {
		var next []string
		for _, parent := range level {
			for b := range branch {
				id := fmt.Sprintf("%s.%d", parent, b)
				emps = append(emps, org.Employee{ID: id, Name: id, ManagerID: parent})
				next = append(next, id)
			}
		}
		level = next
	}
	return mustChart(t, emps)
}

// skewedChart has one deep wide branch next to single leaves.
func skewedChart(t *testing.T) *org.Chart {
	t.Helper()
	emps := []org.Employee{
		{ID: "ceo", Name: "CEO"},
		{ID: "a", Name: "A", ManagerID: "ceo"},
		{ID: "b", Name: "B", ManagerID: "ceo"},
		{ID: "c", Name: "C", ManagerID: "ceo"},
	}
	for i := range 6 {
		id := fmt.Sprintf("b%d", i)
		emps = append(emps, org.Employee{ID: id, Name: id, ManagerID: "b"})
	}
	for i := range 3 {
		emps = append(emps, org.Employee{ID: fmt.Sprintf("b0-%d", i), Name: "x", ManagerID: "b0"})
	}
	return mustChart(t, emps)
}

func mustChart(t *testing.T, emps []org.Employee) *org.Chart {
	t.Helper()
	c, err := org.NewChart(emps)
	if err != nil {
		t.Fatalf("NewChart: %v", err)
	}
	return c
}
