package httpclient

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/simp-lee/waystar/internal/domain"
)

// Notifier surfaces user-facing error messages.
type Notifier interface {
	Error(ctx context.Context, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, message string)

func (f NotifierFunc) Error(ctx context.Context, message string) { f(ctx, message) }

// LogNotifier writes notifications to a slog.Logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a Notifier that logs at Warn level.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Error(ctx context.Context, message string) {
	n.logger.WarnContext(ctx, "notify", slog.String("message", message))
}

// UnauthorizedHandler clears credentials after a 401 response.
type UnauthorizedHandler interface {
	HandleUnauthorized(ctx context.Context, message string)
}

// UnauthorizedFunc adapts a function to UnauthorizedHandler.
type UnauthorizedFunc func(ctx context.Context, message string)

func (f UnauthorizedFunc) HandleUnauthorized(ctx context.Context, message string) { f(ctx, message) }

// UnauthorizedPolicy decides whether a 401 response ends the session.
type UnauthorizedPolicy int

const (
	// AlwaysClear ends the session on every 401.
	AlwaysClear UnauthorizedPolicy = iota
	// ClearOnAuthMessage ends the session only when the server message is
	// about login, authentication, tokens or expiry.
	ClearOnAuthMessage
)

var authKeywords = []string{"登录", "认证", "token", "过期", "login", "authentic", "expired"}

func (p UnauthorizedPolicy) shouldClear(message string) bool {
	if p == AlwaysClear {
		return true
	}
	lower := strings.ToLower(message)
	for _, kw := range authKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (p UnauthorizedPolicy) String() string {
	switch p {
	case AlwaysClear:
		return "always_clear"
	case ClearOnAuthMessage:
		return "clear_on_auth_message"
	default:
		return fmt.Sprintf("UnauthorizedPolicy(%d)", int(p))
	}
}

const (
	msgLoginExpired = "login expired, please log in again"
	msgUnauthorized = "unauthorized"
)

// statusError maps a failed response to an AppError and runs the
// notification and unauthorized side effects.
func (c *Client) statusError(ctx context.Context, resp *http.Response) error {
	status := resp.StatusCode
	serverMsg := readMessage(resp.Body)
	appErr := domain.NewStatusError(status, serverMsg)

	switch status {
	case http.StatusUnauthorized:
		if c.policy.shouldClear(serverMsg) {
			appErr.Message = orDefault(serverMsg, msgLoginExpired)
			c.notify(ctx, appErr.Message)
			if c.unauthorized != nil {
				c.unauthorized.HandleUnauthorized(ctx, appErr.Message)
			}
		} else {
			appErr.Message = orDefault(serverMsg, msgUnauthorized)
			c.notify(ctx, appErr.Message)
		}
	case http.StatusForbidden:
		appErr.Message = domain.ErrForbidden.Message
		c.notify(ctx, appErr.Message)
	case http.StatusNotFound:
		appErr.Message = domain.ErrNotFound.Message
		c.notify(ctx, appErr.Message)
	case http.StatusInternalServerError:
		appErr.Message = orDefault(serverMsg, domain.ErrServer.Message)
		c.notify(ctx, appErr.Message)
	default:
		appErr.Message = orDefault(serverMsg, fmt.Sprintf("request failed: %d", status))
		if c.notifyOtherStatuses {
			c.notify(ctx, appErr.Message)
		}
	}
	return appErr
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
