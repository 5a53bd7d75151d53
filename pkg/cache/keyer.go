package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/matzehuels/orgchart/pkg/org"
)

// Keyer builds cache keys. Implementations must produce keys that change
// whenever any input that affects the cached value changes.
type Keyer interface {
	// DirectoryKey identifies a directory snapshot from a source.
	DirectoryKey(source, location string) string
	// LayoutKey identifies a layout of a chart under a profile.
	LayoutKey(chartHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the layout inputs besides the chart itself.
type LayoutKeyOpts struct {
	Profile string `json:"profile"`
}

// ArtifactKeyOpts holds the render inputs besides the layout itself.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Hovered string `json:"hovered,omitempty"`
	Engine  string `json:"engine,omitempty"`
}

// DefaultKeyer produces keys of the form "<kind>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) DirectoryKey(source, location string) string {
	return hashKey("directory", source, location)
}

func (DefaultKeyer) LayoutKey(chartHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", chartHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// ScopedKeyer prefixes every key of an inner Keyer, so that several
// deployments can share one Redis instance.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "orgchart:prod:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return ScopedKeyer{inner: inner, prefix: prefix}
}

func (k ScopedKeyer) DirectoryKey(source, location string) string {
	return k.prefix + k.inner.DirectoryKey(source, location)
}

func (k ScopedKeyer) LayoutKey(chartHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(chartHash, opts)
}

func (k ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

// hashKey joins kind and the SHA-256 of the JSON-encoded parts.
func hashKey(kind string, parts ...any) string {
	h := sha256.New()
	_ = json.NewEncoder(h).Encode(parts)
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashEmployees returns the content hash of a directory snapshot. Order
// matters: it decides sibling order in the layout.
func HashEmployees(emps []org.Employee) string {
	if emps == nil {
		emps = []org.Employee{}
	}
	return hashKey("employees", emps)
}
