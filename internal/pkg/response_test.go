package pkg

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newResponseTestContext creates a gin context backed by an httptest.ResponseRecorder.
func newResponseTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

// newResponseTestContextWithBody creates a gin context with a JSON request body.
func newResponseTestContextWithBody(body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return resp
}

func TestSuccess(t *testing.T) {
	c, w := newResponseTestContext()

	Success(c, map[string]string{"greeting": "hello"})

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Code != http.StatusOK {
		t.Errorf("expected code %d, got %d", http.StatusOK, resp.Code)
	}
	if resp.Message != "success" {
		t.Errorf("expected message %q, got %q", "success", resp.Message)
	}
	if resp.Data == nil {
		t.Error("expected non-nil data")
	}
}

func TestSuccessMessage_NilData(t *testing.T) {
	c, w := newResponseTestContext()

	SuccessMessage(c, "logged out", nil)

	resp := decodeResponse(t, w)
	if resp.Message != "logged out" {
		t.Errorf("expected message %q, got %q", "logged out", resp.Message)
	}
	if resp.Data != nil {
		t.Errorf("expected nil data, got %v", resp.Data)
	}
}

func TestFail_KeepsHTTP200(t *testing.T) {
	c, w := newResponseTestContext()

	Fail(c, http.StatusUnauthorized, "wrong username or password")

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("expected code %d, got %d", http.StatusUnauthorized, resp.Code)
	}
	if resp.Message != "wrong username or password" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestAbort(t *testing.T) {
	c, w := newResponseTestContext()

	Abort(c, http.StatusForbidden, "forbidden")

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
	if !c.IsAborted() {
		t.Error("expected context to be aborted")
	}
	resp := decodeResponse(t, w)
	if resp.Code != http.StatusForbidden {
		t.Errorf("expected code %d, got %d", http.StatusForbidden, resp.Code)
	}
}

type bindInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

func TestBindAndValidate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantFields []string
		wantMsg    string
	}{
		{name: "valid", body: `{"name":"Alice","email":"alice@example.com"}`, wantOK: true},
		{name: "invalid json", body: `{"invalid json`, wantMsg: "bad request"},
		{name: "missing fields", body: `{}`, wantFields: []string{"name", "email"}, wantMsg: "validation error"},
		{name: "invalid email", body: `{"name":"Alice","email":"nope"}`, wantFields: []string{"email"}, wantMsg: "validation error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newResponseTestContextWithBody(tt.body)

			var input bindInput
			ok := BindAndValidate(c, &input)
			if ok != tt.wantOK {
				t.Fatalf("BindAndValidate() = %v; want %v", ok, tt.wantOK)
			}
			if tt.wantOK {
				return
			}
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
			}

			var resp ValidationErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.Message != tt.wantMsg {
				t.Errorf("message = %q; want %q", resp.Message, tt.wantMsg)
			}
			for _, f := range tt.wantFields {
				if _, ok := resp.Errors[f]; !ok {
					t.Errorf("expected error for field %q, got %v", f, resp.Errors)
				}
			}
			if len(resp.Errors) != len(tt.wantFields) {
				t.Errorf("errors = %v; want fields %v", resp.Errors, tt.wantFields)
			}
		})
	}
}
