package testutil

import (
	"context"
	"net/http"

	"riskgate/internal/platform/middleware"
)

// WithRequestID adds a request ID to the request context, simulating what the
// RequestID middleware does for routed requests.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.ContextKeyRequestID, requestID)
	return req.WithContext(ctx)
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
