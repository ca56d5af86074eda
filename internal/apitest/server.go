// Package apitest provides fake travel backends for tests: a recording
// Server with canned replies and a stateful Backend that implements the
// authentication, favorites and browse endpoints.
package apitest

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/simp-lee/waystar/internal/pkg"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Call is one request received by a Server.
type Call struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Decode unmarshals the JSON request body into v.
func (c Call) Decode(v any) error {
	return json.Unmarshal(c.Body, v)
}

// FormFiles returns the file names uploaded under field in a multipart body.
func (c Call) FormFiles(field string) []string {
	_, params, err := mime.ParseMediaType(c.Header.Get("Content-Type"))
	if err != nil {
		return nil
	}
	r := multipart.NewReader(bytes.NewReader(c.Body), params["boundary"])
	var names []string
	for {
		part, err := r.NextPart()
		if err != nil {
			return names
		}
		if part.FormName() == field {
			names = append(names, part.FileName())
		}
	}
}

type reply struct {
	status int
	body   any
}

// Server records every request and answers with canned replies. Requests
// without a registered reply get an empty success envelope.
type Server struct {
	*httptest.Server

	t       testing.TB
	mu      sync.Mutex
	calls   []Call
	replies map[string]reply
}

// NewServer starts a Server that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{t: t, replies: make(map[string]reply)}

	r := gin.New()
	r.Any("/*path", s.handle)
	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

func (s *Server) handle(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	call := Call{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Query:  c.Request.URL.Query(),
		Header: c.Request.Header.Clone(),
		Body:   body,
	}

	s.mu.Lock()
	s.calls = append(s.calls, call)
	rep, ok := s.replies[call.Method+" "+call.Path]
	s.mu.Unlock()

	if !ok {
		pkg.Success(c, nil)
		return
	}
	c.JSON(rep.status, rep.body)
}

func (s *Server) set(method, path string, status int, body any) {
	s.mu.Lock()
	s.replies[method+" "+path] = reply{status: status, body: body}
	s.mu.Unlock()
}

// Data replies to method and path with a success envelope carrying data.
func (s *Server) Data(method, path string, data any) {
	s.set(method, path, http.StatusOK, pkg.Response{Code: http.StatusOK, Message: "success", Data: data})
}

// Fail replies with HTTP 200 and a failure code inside the envelope.
func (s *Server) Fail(method, path string, code int, message string) {
	s.set(method, path, http.StatusOK, pkg.Response{Code: code, Message: message})
}

// Status replies with a non-2xx HTTP status.
func (s *Server) Status(method, path string, status int, message string) {
	s.set(method, path, status, pkg.Response{Code: status, Message: message})
}

// Calls returns a copy of the requests received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// Last returns the most recent request and fails the test if there is none.
func (s *Server) Last() Call {
	s.t.Helper()
	calls := s.Calls()
	if len(calls) == 0 {
		s.t.Fatal("apitest: no request received")
	}
	return calls[len(calls)-1]
}
