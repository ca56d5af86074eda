package apitest

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func setupMiddlewareRouter(log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(requestID(), accessLog(log), recovery(log))
	r.GET("/panic", func(*gin.Context) {
		panic("test panic")
	})
	r.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(requestIDKey))
	})
	return r
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		wantSame bool
	}{
		{"echoes client id", "3f1c2a9e-0d4b-4c55-9a3e-7a1b2c3d4e5f", true},
		{"replaces malformed id", "bad id!", false},
		{"assigns when missing", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupMiddlewareRouter(slog.New(slog.DiscardHandler))
			req := httptest.NewRequest(http.MethodGet, "/ok", nil)
			if tt.incoming != "" {
				req.Header.Set(requestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(requestIDHeader)
			if got == "" {
				t.Fatal("response has no request id")
			}
			if (got == tt.incoming) != tt.wantSame {
				t.Errorf("request id = %q, incoming %q", got, tt.incoming)
			}
			if w.Body.String() != got {
				t.Errorf("context id = %q, header id = %q", w.Body.String(), got)
			}
		})
	}
}

func TestRecovery_PanicReturnsEnvelope(t *testing.T) {
	var logBuf bytes.Buffer
	r := setupMiddlewareRouter(newTestLogger(&logBuf))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Code != http.StatusInternalServerError || env.Message == "" {
		t.Errorf("envelope = %+v", env)
	}

	logs := logBuf.String()
	if !strings.Contains(logs, "panic recovered") || !strings.Contains(logs, "test panic") {
		t.Errorf("panic not logged: %s", logs)
	}
	if !strings.Contains(logs, "level=ERROR") || !strings.Contains(logs, "status=500") {
		t.Errorf("access log missing error line: %s", logs)
	}
}

func TestAccessLog_Levels(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "level=INFO"},
		{http.StatusNotFound, "level=WARN"},
		{http.StatusBadGateway, "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var logBuf bytes.Buffer
			r := gin.New()
			r.Use(accessLog(newTestLogger(&logBuf)))
			r.GET("/x", func(c *gin.Context) { c.Status(tt.status) })

			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
			if !strings.Contains(logBuf.String(), tt.level) {
				t.Errorf("log = %q, want %s", logBuf.String(), tt.level)
			}
		})
	}
}
