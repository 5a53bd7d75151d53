// Package httputil provides the HTTP client used by remote directory sources.
//
// # Client
//
// [Client] performs JSON GET requests with default headers (for example a
// bearer token), classifies response codes into coded errors and retries
// transient failures:
//
//   - Network errors and 5xx responses are retried
//   - 429 responses are retried and reported as rate limited
//   - 401 and 403 responses fail immediately as unauthorized
//   - 404 responses fail immediately as not found
//
// [Client.Cached] wraps a fetch with a [cache.Cache] lookup so repeated
// directory reads within the TTL hit the cache instead of the network.
//
// # Retry
//
// [Backoff.Do] runs a function up to a fixed number of attempts, doubling
// the wait each time. Only errors marked with [Transient] are retried. A
// 429 or 5xx response carrying Retry-After waits as long as the server
// asks, bounded by [Backoff.Max].
package httputil
