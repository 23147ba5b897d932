package client

import (
	"log/slog"
	"net/http"
	"time"
)

// loggingTransport logs each request with method, path, status, and
// duration.
type loggingTransport struct {
	next http.RoundTripper
	log  *slog.Logger
}

func (t *loggingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(r)
	elapsed := time.Since(start).Round(time.Millisecond)
	if err != nil {
		t.log.Warn("request failed", "method", r.Method, "path", r.URL.RequestURI(), "duration", elapsed, "error", err)
		return nil, err
	}
	t.log.Debug("request", "method", r.Method, "path", r.URL.RequestURI(), "status", resp.StatusCode, "duration", elapsed)
	return resp, nil
}
