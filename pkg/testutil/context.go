package testutil

import (
	"net/http"
	"time"

	"visitmap/pkg/requestcontext"
)

// WithRequestTime pins the request clock, as the request-time middleware would.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
