// Package httpclient is the typed HTTP client used by every API module. It
// attaches credentials and request ids, maps failed responses to
// *domain.AppError, and reports failures to a Notifier.
package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/simp-lee/logger"
	"golang.org/x/time/rate"

	"github.com/simp-lee/waystar/internal/domain"
)

const (
	DefaultBaseURL = "http://localhost:8080"
	DefaultTimeout = 15 * time.Second

	requestIDHeader = "X-Request-ID"
	contentTypeJSON = "application/json;charset=utf-8"
)

// TokenSource supplies the bearer token for outgoing requests. An empty
// token means the request is sent without an Authorization header.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// Options configures a Client. Zero values fall back to the defaults.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string

	Tokens         TokenSource
	Notifier       Notifier
	OnUnauthorized UnauthorizedHandler
	Policy         UnauthorizedPolicy

	// NotifyOtherStatuses reports statuses other than 401/403/404/500.
	NotifyOtherStatuses bool
	// NotifyRequestErrors reports requests that could not be built.
	NotifyRequestErrors bool

	Limiter   *rate.Limiter
	Metrics   *Metrics
	Logger    *slog.Logger
	Transport http.RoundTripper
}

// Client sends requests to the backend.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string

	tokens              TokenSource
	notifier            Notifier
	unauthorized        UnauthorizedHandler
	policy              UnauthorizedPolicy
	notifyOtherStatuses bool
	notifyRequestErrors bool

	limiter *rate.Limiter
	metrics *Metrics
	logger  *slog.Logger
}

// New builds a Client from opts.
func New(opts Options) (*Client, error) {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", opts.BaseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = NewLogNotifier(log)
	}

	next := opts.Transport
	if next == nil {
		next = http.DefaultTransport
	}

	return &Client{
		baseURL:   strings.TrimRight(u.String(), "/"),
		userAgent: opts.UserAgent,
		http: &http.Client{
			Timeout:   timeout,
			Transport: &loggingTransport{next: next, logger: log, metrics: opts.Metrics},
		},
		tokens:              opts.Tokens,
		notifier:            notifier,
		unauthorized:        opts.OnUnauthorized,
		policy:              opts.Policy,
		notifyOtherStatuses: opts.NotifyOtherStatuses,
		notifyRequestErrors: opts.NotifyRequestErrors,
		limiter:             opts.Limiter,
		metrics:             opts.Metrics,
		logger:              log,
	}, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Metrics returns the metrics sink, which may be nil.
func (c *Client) Metrics() *Metrics { return c.metrics }

type sendOptions struct {
	auth   bool
	silent bool
}

// Do sends a JSON request and returns the raw response for 2xx/3xx statuses.
// Any other outcome is returned as a *domain.AppError. The caller closes the
// response body.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	reader, contentType, err := encodeJSON(body)
	if err != nil {
		return nil, c.requestError(ctx, method, path, err)
	}
	return c.send(ctx, method, path, query, reader, contentType, sendOptions{auth: true})
}

// Download fetches a binary resource. The response is returned unparsed.
func (c *Client) Download(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	return c.send(ctx, http.MethodGet, path, query, nil, "", sendOptions{auth: true})
}

// Send posts body as JSON without credentials and discards the response.
// Failures are returned but never notified.
func (c *Client) Send(ctx context.Context, path string, body any) error {
	reader, contentType, err := encodeJSON(body)
	if err != nil {
		return domain.NewAppError(domain.CodeRequest, domain.ErrRequest.Message, err)
	}
	resp, err := c.send(ctx, http.MethodPost, path, nil, reader, contentType, sendOptions{silent: true})
	if err != nil {
		return err
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, so sendOptions) (*http.Response, error) {
	id := uuid.NewString()
	ctx = logger.WithContextAttrs(ctx, slog.String("request_id", id))

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, c.failRequest(ctx, method, path, err, so)
	}
	req.Header.Set(requestIDHeader, id)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	if so.auth && c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, c.failRequest(ctx, method, path, fmt.Errorf("read token: %w", err), so)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, c.failRequest(ctx, method, path, fmt.Errorf("rate limit: %w", err), so)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if !so.silent && ctx.Err() == nil {
			c.notify(ctx, domain.ErrNetwork.Message)
		}
		return nil, domain.NewAppError(domain.CodeNetwork, domain.ErrNetwork.Message, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close()
		if so.silent {
			return nil, domain.NewStatusError(resp.StatusCode, readMessage(resp.Body))
		}
		return nil, c.statusError(ctx, resp)
	}
	return resp, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	target := c.baseURL + path
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		target += sep + query.Encode()
	}
	return http.NewRequestWithContext(ctx, method, target, body)
}

func (c *Client) failRequest(ctx context.Context, method, path string, err error, so sendOptions) error {
	if so.silent {
		return domain.NewAppError(domain.CodeRequest, domain.ErrRequest.Message, err)
	}
	return c.requestError(ctx, method, path, err)
}

// requestError handles a request that never left the client.
func (c *Client) requestError(ctx context.Context, method, path string, err error) error {
	c.logger.ErrorContext(ctx, "request configuration error",
		slog.String("method", method),
		slog.String("path", path),
		slog.Any("error", err),
	)
	if c.notifyRequestErrors {
		c.notify(ctx, domain.ErrRequest.Message)
	}
	return domain.NewAppError(domain.CodeRequest, domain.ErrRequest.Message, err)
}

func (c *Client) notify(ctx context.Context, message string) {
	if c.notifier != nil {
		c.notifier.Error(ctx, message)
	}
}

func encodeJSON(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("encode body: %w", err)
	}
	return bytes.NewReader(b), contentTypeJSON, nil
}

// readMessage extracts the "message" field of an error body, if any.
func readMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(b) == 0 {
		return ""
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b, &body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Message)
}

var errEmptyBody = errors.New("empty response body")
