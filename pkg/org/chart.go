package org

import (
	"fmt"
	"slices"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
)

var (
	// ErrInvalidEmployeeID is returned by [NewChart] when an employee has an
	// empty ID.
	ErrInvalidEmployeeID = orgerrors.New(orgerrors.ErrCodeInvalidEmployee, "employee ID must not be empty")

	// ErrDuplicateEmployeeID is returned by [NewChart] when two employees
	// share an ID.
	ErrDuplicateEmployeeID = orgerrors.New(orgerrors.ErrCodeDuplicateEmployee, "duplicate employee ID")
)

// Chart indexes a flat employee list by ID and by manager.
//
// The zero value is an empty chart. Use [NewChart] to build one from data.
type Chart struct {
	employees []Employee
	index     map[string]int      // id -> position in employees
	children  map[string][]string // manager id -> direct report ids, input order
	parent    map[string]string   // id -> resolved manager id
	roots     []string
}

// NewChart builds the manager index in one pass over employees.
// Returns an error wrapping [ErrInvalidEmployeeID] or [ErrDuplicateEmployeeID]
// when IDs are missing or repeated. Dangling and self-referencing manager IDs
// are not errors; those employees become roots.
func NewChart(employees []Employee) (*Chart, error) {
	c := &Chart{
		employees: slices.Clone(employees),
		index:     make(map[string]int, len(employees)),
		children:  make(map[string][]string),
		parent:    make(map[string]string),
	}

	for i, e := range c.employees {
		if e.ID == "" {
			return nil, fmt.Errorf("employee %d (%q): %w", i, e.FullName(), ErrInvalidEmployeeID)
		}
		if _, dup := c.index[e.ID]; dup {
			return nil, fmt.Errorf("%q: %w", e.ID, ErrDuplicateEmployeeID)
		}
		c.index[e.ID] = i
	}

	for _, e := range c.employees {
		if _, known := c.index[e.ManagerID]; e.HasManager() && known {
			c.parent[e.ID] = e.ManagerID
			c.children[e.ManagerID] = append(c.children[e.ManagerID], e.ID)
			continue
		}
		c.roots = append(c.roots, e.ID)
	}
	return c, nil
}

// MustChart is like [NewChart] but panics on error. Intended for tests and
// examples with literal data.
func MustChart(employees []Employee) *Chart {
	c, err := NewChart(employees)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of employees.
func (c *Chart) Len() int { return len(c.employees) }

// Employees returns a copy of the employee list in input order.
func (c *Chart) Employees() []Employee { return slices.Clone(c.employees) }

// Employee returns the employee with the given ID.
func (c *Chart) Employee(id string) (Employee, bool) {
	i, ok := c.index[id]
	if !ok {
		return Employee{}, false
	}
	return c.employees[i], true
}

// Roots returns the IDs of employees without a resolvable manager, in input order.
func (c *Chart) Roots() []string { return slices.Clone(c.roots) }

// Children returns the IDs of id's direct reports, in input order.
func (c *Chart) Children(id string) []string { return slices.Clone(c.children[id]) }

// ChildCount returns the number of direct reports of id.
func (c *Chart) ChildCount(id string) int { return len(c.children[id]) }

// Manager returns id's resolved manager. Employees that are roots have none.
func (c *Chart) Manager(id string) (Employee, bool) {
	pid, ok := c.parent[id]
	if !ok {
		return Employee{}, false
	}
	return c.Employee(pid)
}

// Tree reports the chart's single root when the chart is one connected
// hierarchy: exactly one root, and every employee reachable from it.
// Otherwise ok is false and callers should fall back to a flat layout.
func (c *Chart) Tree() (root string, ok bool) {
	if len(c.roots) != 1 {
		return "", false
	}
	root = c.roots[0]
	reached := 0
	c.Walk(root, func(Employee, int) bool {
		reached++
		return true
	})
	return root, reached == len(c.employees)
}

// Walk visits root and its reports depth-first in pre-order, passing each
// employee's depth relative to root. Returning false from fn skips the
// employee's reports. Each employee is visited at most once.
func (c *Chart) Walk(root string, fn func(e Employee, depth int) bool) {
	if _, ok := c.index[root]; !ok {
		return
	}
	visited := make(map[string]bool, len(c.employees))
	var visit func(id string, depth int)
	visit = func(id string, depth int) {
		if visited[id] {
			return
		}
		visited[id] = true
		if !fn(c.employees[c.index[id]], depth) {
			return
		}
		for _, kid := range c.children[id] {
			visit(kid, depth+1)
		}
	}
	visit(root, 0)
}

// Depth returns the number of manager links between id and its root.
// ok is false if id is unknown or the manager chain loops back on itself.
func (c *Chart) Depth(id string) (depth int, ok bool) {
	if _, known := c.index[id]; !known {
		return 0, false
	}
	seen := map[string]bool{id: true}
	for {
		pid, has := c.parent[id]
		if !has {
			return depth, true
		}
		if seen[pid] {
			return depth, false
		}
		seen[pid] = true
		id = pid
		depth++
	}
}

// Chain returns the IDs from id up through its managers to its root,
// starting with id itself. The walk stops early on a manager cycle.
func (c *Chart) Chain(id string) []string {
	if _, known := c.index[id]; !known {
		return nil
	}
	chain := []string{id}
	seen := map[string]bool{id: true}
	for {
		pid, has := c.parent[id]
		if !has || seen[pid] {
			return chain
		}
		seen[pid] = true
		chain = append(chain, pid)
		id = pid
	}
}
