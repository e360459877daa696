package testutil

import (
	"net/http"
	"time"

	"lendgate/pkg/requestcontext"
)

// WithCallerID adds an authenticated caller ID to the request context.
// This simulates what the auth middleware would do for authenticated requests.
func WithCallerID(req *http.Request, callerID string) *http.Request {
	ctx := requestcontext.WithCallerID(req.Context(), callerID)
	return req.WithContext(ctx)
}

// WithRequestID adds a correlation ID to the request context.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	ctx := requestcontext.WithRequestID(req.Context(), requestID)
	return req.WithContext(ctx)
}

// WithFixedTime pins the request time so window-based checks are
// deterministic.
func WithFixedTime(req *http.Request, t time.Time) *http.Request {
	ctx := requestcontext.WithTime(req.Context(), t)
	return req.WithContext(ctx)
}
