package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/org"
)

// =============================================================================
// Employee Serialization API
// =============================================================================

// ReadEmployeesFile reads an employee list from a JSON or YAML file.
func ReadEmployeesFile(path string) ([]org.Employee, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "employee file not found: %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	emps, err := UnmarshalEmployees(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return emps, nil
}

// ReadEmployees decodes an employee list from r.
func ReadEmployees(r io.Reader, format string) ([]org.Employee, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return UnmarshalEmployees(data, format)
}

// UnmarshalEmployees decodes either a bare list or a [Directory] object.
func UnmarshalEmployees(data []byte, format string) ([]org.Employee, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []org.Employee{}, nil
	}

	var (
		list []org.Employee
		dir  Directory
		err  error
	)
	switch format {
	case FormatJSON:
		if trimmed[0] == '[' {
			err = json.Unmarshal(trimmed, &list)
		} else {
			err = json.Unmarshal(trimmed, &dir)
			list = dir.Employees
		}
	case FormatYAML:
		var node yaml.Node
		if err = yaml.Unmarshal(trimmed, &node); err == nil && len(node.Content) > 0 {
			if node.Content[0].Kind == yaml.SequenceNode {
				err = node.Content[0].Decode(&list)
			} else {
				err = node.Content[0].Decode(&dir)
				list = dir.Employees
			}
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode employees (%s)", format)
	}
	if list == nil {
		list = []org.Employee{}
	}
	return list, nil
}

// MarshalEmployees encodes employees as a [Directory] object.
func MarshalEmployees(emps []org.Employee, format string) ([]byte, error) {
	dir := Directory{Employees: emps}
	switch format {
	case FormatJSON:
		return json.MarshalIndent(dir, "", "  ")
	case FormatYAML:
		return yaml.Marshal(dir)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
}

// WriteEmployeesFile writes employees to path in the format implied by its
// extension. The file is created with 0644 permissions.
func WriteEmployeesFile(emps []org.Employee, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := MarshalEmployees(emps, format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadChartFile reads an employee file and builds its chart.
func ReadChartFile(path string) (*org.Chart, error) {
	emps, err := ReadEmployeesFile(path)
	if err != nil {
		return nil, err
	}
	return org.NewChart(emps)
}
