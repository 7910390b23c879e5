package httpserver

import (
	"net/http"
	"time"
)

// New builds the process HTTP server. Per-route timeouts live in the
// middleware chain; only the header read is bounded here.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
