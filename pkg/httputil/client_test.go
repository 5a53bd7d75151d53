package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/orgchart/pkg/cache"
	"github.com/matzehuels/orgchart/pkg/errors"
)

func TestClientGetJSON(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"name":"Jean Dupont"}`))
	}))
	defer srv.Close()

	c := NewClient(WithBearerToken("s3cret"), WithRetry(3, time.Millisecond))
	var got struct{ Name string }
	if err := c.GetJSON(context.Background(), srv.URL, &got); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if got.Name != "Jean Dupont" {
		t.Errorf("Name = %q", got.Name)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2 (one retry after 502)", calls.Load())
	}
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   errors.Code
		calls  int32
	}{
		{"NotFound", http.StatusNotFound, "", errors.ErrCodeNotFound, 1},
		{"Unauthorized", http.StatusUnauthorized, "", errors.ErrCodeUnauthorized, 1},
		{"RateLimited", http.StatusTooManyRequests, "", errors.ErrCodeRateLimited, 2},
		{"ServerError", http.StatusInternalServerError, "", errors.ErrCodeNetwork, 2},
		{"BadJSON", http.StatusOK, "{", errors.ErrCodeInvalidFormat, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(WithRetry(2, time.Millisecond))
			var v any
			err := c.GetJSON(context.Background(), srv.URL, &v)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want code %s", err, tt.want)
			}
			if calls.Load() != tt.calls {
				t.Errorf("calls = %d, want %d", calls.Load(), tt.calls)
			}
		})
	}
}

func TestClientCached(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := NewClient(WithCache(fc))

	fetches := 0
	fetch := func(v *[]string) func(context.Context) error {
		return func(context.Context) error {
			fetches++
			*v = []string{"e1", "e2"}
			return nil
		}
	}

	var first, second, third []string
	if err := c.Cached(ctx, "k", time.Hour, false, &first, fetch(&first)); err != nil {
		t.Fatal(err)
	}
	if err := c.Cached(ctx, "k", time.Hour, false, &second, fetch(&second)); err != nil {
		t.Fatal(err)
	}
	if fetches != 1 || len(second) != 2 {
		t.Errorf("second call fetched=%d value=%v, want cache hit", fetches, second)
	}
	if err := c.Cached(ctx, "k", time.Hour, true, &third, fetch(&third)); err != nil {
		t.Fatal(err)
	}
	if fetches != 2 {
		t.Errorf("refresh should bypass cache, fetches=%d", fetches)
	}
}
