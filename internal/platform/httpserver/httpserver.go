package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server for handler. A zero readHeaderTimeout falls back
// to five seconds so slow clients cannot hold connections open.
func New(addr string, handler http.Handler, readHeaderTimeout time.Duration) *http.Server {
	if readHeaderTimeout <= 0 {
		readHeaderTimeout = 5 * time.Second
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       2 * time.Minute,
	}
}
