package httputil

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

var errReset = errors.New("connection reset")

func TestTransient(t *testing.T) {
	if Transient(nil) != nil {
		t.Error("Transient(nil) != nil")
	}
	err := Transient(errReset)
	if !IsTransient(err) || !errors.Is(err, errReset) {
		t.Errorf("Transient(%v) lost its cause or mark", err)
	}
	if err.Error() != errReset.Error() {
		t.Errorf("message = %q", err.Error())
	}
	if IsTransient(errReset) {
		t.Error("plain error reported as transient")
	}
}

func TestBackoffDo(t *testing.T) {
	b := Backoff{Attempts: 3, Delay: time.Millisecond}
	tests := []struct {
		name      string
		failures  int   // transient failures before success
		permanent error // returned on the first call when set
		wantCalls int
		wantErr   bool
	}{
		{"FirstTry", 0, nil, 1, false},
		{"RecoversOnRetry", 2, nil, 3, false},
		{"Exhausted", 5, nil, 3, true},
		{"Permanent", 0, errReset, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := b.Do(context.Background(), func() error {
				calls++
				if tt.permanent != nil {
					return tt.permanent
				}
				if calls <= tt.failures {
					return Transient(errReset)
				}
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestBackoffZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_ = Backoff{}.Do(context.Background(), func() error { calls++; return Transient(errReset) })
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestBackoffCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Backoff{Attempts: 3, Delay: time.Hour}.Do(ctx, func() error { return Transient(errReset) })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestBackoffMaxCapsServerHint(t *testing.T) {
	b := Backoff{Attempts: 2, Delay: time.Millisecond, Max: 5 * time.Millisecond}
	start := time.Now()
	calls := 0
	_ = b.Do(context.Background(), func() error {
		calls++
		return &TransientError{Err: errReset, After: time.Hour}
	})
	if calls != 2 || time.Since(start) > time.Second {
		t.Errorf("calls = %d after %v", calls, time.Since(start))
	}
}

func TestRetryAfter(t *testing.T) {
	tests := map[string]time.Duration{
		"":                              0,
		"3":                             3 * time.Second,
		"-1":                            0,
		"Wed, 21 Oct 2015 07:28:00 GMT": 0,
	}
	for v, want := range tests {
		h := http.Header{}
		if v != "" {
			h.Set("Retry-After", v)
		}
		if got := retryAfter(h); got != want {
			t.Errorf("retryAfter(%q) = %v, want %v", v, got, want)
		}
	}
}
