package testutil

import (
	"net/http"
	"time"

	"appr/pkg/requestcontext"
)

// WithRequestTime pins the request-scoped clock the way the middleware does.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
