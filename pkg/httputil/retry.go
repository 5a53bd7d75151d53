package httputil

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"
)

// Backoff retries transient failures with a doubling delay.
type Backoff struct {
	Attempts int           // total tries, at least 1
	Delay    time.Duration // wait before the second try
	Max      time.Duration // cap on any single wait; 0 means no cap
}

// DefaultBackoff is used by clients built without [WithRetry].
var DefaultBackoff = Backoff{Attempts: 3, Delay: time.Second, Max: 30 * time.Second}

// TransientError marks a failure worth another try. After, when set, is
// the server's requested wait and replaces the computed delay.
type TransientError struct {
	Err   error
	After time.Duration
}

func (e *TransientError) Error() string { return e.Err.Error() }
func (e *TransientError) Unwrap() error { return e.Err }

// Transient marks err as retryable. A nil err stays nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// IsTransient reports whether err carries a TransientError.
func IsTransient(err error) bool {
	var t *TransientError
	return errors.As(err, &t)
}

// Do calls fn until it succeeds, returns a non-transient error, or the
// attempts run out. The last error is returned; a cancelled ctx returns
// ctx.Err() instead of waiting.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	wait := b.Delay
	for attempt := 1; ; attempt++ {
		err := fn()
		var t *TransientError
		if err == nil || !errors.As(err, &t) || attempt >= b.Attempts {
			return err
		}

		d := wait
		if t.After > 0 {
			d = t.After
		}
		if b.Max > 0 {
			d = min(d, b.Max)
		}
		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait *= 2
	}
}

// retryAfter reads a Retry-After header given in seconds. HTTP dates and
// malformed values yield 0.
func retryAfter(h http.Header) time.Duration {
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
