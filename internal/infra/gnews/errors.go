package gnews

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrFetchFailed is the only error Fetch returns. The underlying cause is logged
// and never exposed to callers.
var ErrFetchFailed = errors.New("failed to fetch news from GNews API")

// errBodyTooLarge is logged when the upstream response exceeds MaxBodySize.
var errBodyTooLarge = errors.New("response body too large")

// statusError records a non-2xx upstream response.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected upstream status %d", e.code)
}

// breakerSuccess keeps 4xx answers other than 429 from tripping the circuit: the
// upstream is up and rejected the request itself, e.g. for a bad token.
func breakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 400 && se.code < 500 && se.code != http.StatusTooManyRequests
	}
	return false
}
