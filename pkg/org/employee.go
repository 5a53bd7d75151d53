package org

import "strings"

// Employee is a single directory record.
//
// Name is the display name. FirstName and LastName are optional; when they
// are empty, [Employee.GivenName] and [Employee.FamilyName] derive them from
// Name by splitting on whitespace.
type Employee struct {
	ID         string `json:"id" yaml:"id" bson:"id"`
	Name       string `json:"name" yaml:"name" bson:"name"`
	FirstName  string `json:"first_name,omitempty" yaml:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty" yaml:"last_name,omitempty" bson:"last_name,omitempty"`
	Title      string `json:"title,omitempty" yaml:"title,omitempty" bson:"title,omitempty"`
	Department string `json:"department,omitempty" yaml:"department,omitempty" bson:"department,omitempty"`
	ManagerID  string `json:"manager_id,omitempty" yaml:"manager_id,omitempty" bson:"manager_id,omitempty"`
}

// FullName returns Name, or FirstName and LastName joined when Name is empty.
func (e Employee) FullName() string {
	if e.Name != "" {
		return e.Name
	}
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// GivenName returns FirstName, or the first word of the full name.
func (e Employee) GivenName() string {
	if e.FirstName != "" {
		return e.FirstName
	}
	if fields := strings.Fields(e.FullName()); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// FamilyName returns LastName, or the last word of a multi-word full name.
// Single-word names have no family name.
func (e Employee) FamilyName() string {
	if e.LastName != "" {
		return e.LastName
	}
	if fields := strings.Fields(e.FullName()); len(fields) > 1 {
		return fields[len(fields)-1]
	}
	return ""
}

// HasManager reports whether the record names a manager other than itself.
func (e Employee) HasManager() bool {
	return e.ManagerID != "" && e.ManagerID != e.ID
}
