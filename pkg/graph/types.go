package graph

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/org"
)

// =============================================================================
// Constants
// =============================================================================

// File formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// =============================================================================
// Directory - Employee List Serialization
// =============================================================================

// Directory is the object form of an employee file.
type Directory struct {
	Employees []org.Employee `json:"employees" yaml:"employees" bson:"employees"`
}

// FormatFromPath returns the file format implied by the path's extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported employee file %q (want .json, .yaml or .yml)", path)
	}
}
