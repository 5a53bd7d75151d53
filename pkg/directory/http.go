package directory

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/matzehuels/orgchart/pkg/cache"
	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/httputil"
	"github.com/matzehuels/orgchart/pkg/org"
)

// HTTPSource fetches GET <base>/employees. The response is either a JSON
// list of employees or an object with an "employees" list.
type HTTPSource struct {
	base    string
	client  *httputil.Client
	keyer   cache.Keyer
	Refresh bool
}

// NewHTTPSource returns a source reading from the API at base.
func NewHTTPSource(base string, keyer cache.Keyer, opts ...httputil.Option) *HTTPSource {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &HTTPSource{
		base:   strings.TrimRight(base, "/"),
		client: httputil.NewClient(opts...),
		keyer:  keyer,
	}
}

func (s *HTTPSource) Employees(ctx context.Context) ([]org.Employee, error) {
	url := s.base + "/employees"
	var raw json.RawMessage
	key := s.keyer.DirectoryKey(KindHTTP, url)
	err := s.client.Cached(ctx, key, cache.TTLDirectory, s.Refresh, &raw, func(ctx context.Context) error {
		return s.client.GetJSON(ctx, url, &raw)
	})
	if err != nil {
		return nil, err
	}
	return graph.UnmarshalEmployees(raw, graph.FormatJSON)
}

func (s *HTTPSource) Name() string { return KindHTTP + ":" + s.base }
