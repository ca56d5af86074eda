package httpclient

import (
	"log/slog"
	"net/http"
	"time"
)

// loggingTransport logs every round trip and records it in Metrics.
//
// The log level follows the outcome:
//   - 2xx/3xx: Info
//   - 4xx: Warn
//   - 5xx or no response: Error
//
// Logging goes through the Context-aware slog methods so the request_id set
// on the request context is attached by the handler.
type loggingTransport struct {
	next    http.RoundTripper
	logger  *slog.Logger
	metrics *Metrics
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	latency := time.Since(start)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	t.metrics.observeRequest(req.Method, status, latency)

	attrs := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status", status),
		slog.Duration("latency", latency),
		slog.String("request_id", req.Header.Get(requestIDHeader)),
	}

	ctx := req.Context()
	msg := "api request"

	switch {
	case err != nil:
		attrs = append(attrs, slog.Any("error", err))
		t.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	case status >= 500:
		t.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	case status >= 400:
		t.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
	default:
		t.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
	}

	return resp, err
}
