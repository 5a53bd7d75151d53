package directory

import (
	"context"
	"slices"
	"time"

	"github.com/matzehuels/orgchart/pkg/cache"
	"github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/httputil"
	"github.com/matzehuels/orgchart/pkg/org"
)

// Source kinds.
const (
	KindFile  = "file"
	KindHTTP  = "http"
	KindMongo = "mongo"
)

// Source provides the employee list.
type Source interface {
	// Employees returns every employee in directory order.
	Employees(ctx context.Context) ([]org.Employee, error)
	// Name describes the source for logs, e.g. "file:staff.yaml".
	Name() string
}

// Config selects and configures a source.
type Config struct {
	Kind       string        `toml:"kind"`
	Path       string        `toml:"path"`
	URL        string        `toml:"url"`
	Token      string        `toml:"token"`
	Timeout    time.Duration `toml:"timeout"`
	MongoURI   string        `toml:"mongo_uri"`
	Database   string        `toml:"database"`
	Collection string        `toml:"collection"`
}

// Open returns the source described by cfg. The cache and keyer are used by
// remote sources; nil values disable caching.
func Open(ctx context.Context, cfg Config, c cache.Cache, keyer cache.Keyer) (Source, error) {
	switch cfg.Kind {
	case KindFile, "":
		if cfg.Path == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "file directory source needs a path")
		}
		return NewFileSource(cfg.Path), nil
	case KindHTTP:
		if cfg.URL == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "http directory source needs a url")
		}
		opts := []httputil.Option{httputil.WithBearerToken(cfg.Token)}
		if c != nil {
			opts = append(opts, httputil.WithCache(c))
		}
		return NewHTTPSource(cfg.URL, keyer, opts...), nil
	case KindMongo:
		src, err := DialMongo(ctx, cfg.MongoURI, cfg.Database, cfg.Collection)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown directory source kind %q", cfg.Kind)
	}
}

// Close releases resources held by src, if it holds any.
func Close(ctx context.Context, src Source) error {
	if c, ok := src.(interface{ Close(context.Context) error }); ok {
		return c.Close(ctx)
	}
	return nil
}

// ===== File =====

// FileSource reads a JSON or YAML employee file on every call.
type FileSource struct {
	path string
}

// NewFileSource returns a source backed by the file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Employees(ctx context.Context) ([]org.Employee, error) {
	return graph.ReadEmployeesFile(s.path)
}

func (s *FileSource) Name() string { return KindFile + ":" + s.path }

// ===== Static =====

// StaticSource serves a fixed list.
type StaticSource struct {
	employees []org.Employee
}

// NewStaticSource returns a source serving a copy of emps.
func NewStaticSource(emps []org.Employee) *StaticSource {
	return &StaticSource{employees: slices.Clone(emps)}
}

func (s *StaticSource) Employees(ctx context.Context) ([]org.Employee, error) {
	return slices.Clone(s.employees), nil
}

func (s *StaticSource) Name() string { return "static" }
