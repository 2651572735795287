package httpserver

import (
	"log/slog"
	"net/http"
	"time"
)

// New builds the API server. Frames are small JSON documents, so the write
// timeout only needs to cover slow store reads behind /map/frame. Server-level
// errors (TLS handshakes, hijack failures) go to logger instead of the std log.
func New(addr string, handler http.Handler, logger *slog.Logger) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if logger != nil {
		srv.ErrorLog = slog.NewLogLogger(logger.Handler(), slog.LevelError)
	}
	return srv
}
