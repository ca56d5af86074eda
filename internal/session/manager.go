// Package session keeps the signed-in state of a site: the bearer token in
// the cookie jar and the profile snapshot in local storage.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/simp-lee/waystar/internal/httpclient"
	"github.com/simp-lee/waystar/internal/storage"
)

// Credentials is a sign-in form.
type Credentials struct {
	Username   string
	Password   string
	RememberMe bool
}

// Authenticator performs the remote side of a session for profile type P.
type Authenticator[P any] interface {
	Login(ctx context.Context, creds Credentials) (token string, profile *P, err error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*P, error)
}

// Manager holds the token and profile of one site. It is safe for
// concurrent use.
type Manager[P any] struct {
	auth   Authenticator[P]
	jar    *storage.Jar
	local  *storage.Local
	opts   Options
	logger *slog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	token   string
	profile *P

	redirected atomic.Bool
}

// NewManager creates a Manager. Call Restore to load persisted state.
func NewManager[P any](auth Authenticator[P], jar *storage.Jar, local *storage.Local, opts Options, logger *slog.Logger) *Manager[P] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager[P]{
		auth:   auth,
		jar:    jar,
		local:  local,
		opts:   opts,
		logger: logger.With("component", "session", "profile_key", opts.ProfileKey),
		now:    time.Now,
	}
}

// AddListener registers l for session start and clear events.
func (m *Manager[P]) AddListener(l Listener) {
	m.mu.Lock()
	m.opts.Listeners = append(m.opts.Listeners, l)
	m.mu.Unlock()
}

// Restore loads the token cookie and the profile snapshot. A snapshot that
// cannot be decoded ends the session.
func (m *Manager[P]) Restore(ctx context.Context) error {
	token, err := m.jar.Lookup(ctx, TokenCookie)
	if err != nil {
		return fmt.Errorf("restore token: %w", err)
	}

	var profile P
	var snapshot *P
	switch err := m.local.GetJSON(ctx, m.opts.ProfileKey, &profile); {
	case err == nil:
		snapshot = &profile
	case errors.Is(err, storage.ErrNotFound):
	default:
		m.logger.Warn("discarding unreadable profile snapshot", "error", err)
		return m.clear(ctx)
	}

	m.mu.Lock()
	m.token = token
	m.profile = snapshot
	m.mu.Unlock()

	if token != "" {
		m.started(ctx)
	}
	return nil
}

// Login signs in, persists the token and profile and notifies listeners.
func (m *Manager[P]) Login(ctx context.Context, creds Credentials) (*P, error) {
	token, profile, err := m.auth.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	ttl := m.opts.DefaultTTL
	if creds.RememberMe {
		ttl = m.opts.RememberTTL
	}
	if err := m.jar.Set(ctx, TokenCookie, token, ttl); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}
	if err := m.saveProfile(ctx, profile); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	m.redirected.Store(false)

	m.logger.Info("signed in", "remember_me", creds.RememberMe, "cookie_ttl", ttl.String())
	m.started(ctx)
	return profile, nil
}

// Logout signs out remotely, then clears local state whatever the remote
// outcome and navigates to the redirect route. The remote error is returned
// for reporting.
func (m *Manager[P]) Logout(ctx context.Context) error {
	var remoteErr error
	if m.Token() != "" {
		remoteErr = m.auth.Logout(ctx)
		if remoteErr != nil {
			m.logger.Warn("remote logout failed", "error", remoteErr)
		}
	}
	if err := m.clear(ctx); err != nil {
		return errors.Join(remoteErr, err)
	}
	if m.opts.Navigator != nil {
		m.opts.Navigator.Navigate(ctx, m.opts.Redirect)
	}
	return remoteErr
}

// FetchCurrent reloads the profile from the backend. Any failure ends the
// session.
func (m *Manager[P]) FetchCurrent(ctx context.Context) (*P, error) {
	profile, err := m.auth.Current(ctx)
	if err == nil && profile == nil {
		err = errors.New("empty profile")
	}
	if err != nil {
		m.logger.Warn("fetching current profile failed", "error", err)
		if clearErr := m.clear(ctx); clearErr != nil {
			m.logger.Error("clearing session failed", "error", clearErr)
		}
		return nil, err
	}
	if err := m.saveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Refresh refetches the profile when a token is present.
func (m *Manager[P]) Refresh(ctx context.Context) bool {
	if m.Token() == "" {
		return false
	}
	_, err := m.FetchCurrent(ctx)
	return err == nil
}

// Token returns the current token or "".
func (m *Manager[P]) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Profile returns a copy of the profile snapshot, or nil.
func (m *Manager[P]) Profile() *P {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.profile == nil {
		return nil
	}
	p := *m.profile
	return &p
}

// IsLoggedIn reports whether a token is held. The profile may still be
// missing, as after a legacy token migration.
func (m *Manager[P]) IsLoggedIn() bool {
	return m.Token() != ""
}

// TokenExpired reports whether the token's exp claim has passed. The
// signature is not verified. A token without exp counts as expired.
func (m *Manager[P]) TokenExpired() bool {
	exp, ok := expiry(m.Token())
	return !ok || !m.now().Before(exp)
}

// TokenRemaining returns the time until the token expires, or zero.
func (m *Manager[P]) TokenRemaining() time.Duration {
	exp, ok := expiry(m.Token())
	if !ok {
		return 0
	}
	return max(exp.Sub(m.now()), 0)
}

// HandleUnauthorized ends the session after the backend rejected the
// token and navigates to the redirect route. Repeated calls navigate only
// once until the next login.
func (m *Manager[P]) HandleUnauthorized(ctx context.Context, message string) {
	m.logger.Warn("session rejected by backend", "message", message)
	if err := m.clear(ctx); err != nil {
		m.logger.Error("clearing session failed", "error", err)
	}
	if m.opts.Navigator != nil && m.redirected.CompareAndSwap(false, true) {
		m.opts.Navigator.Navigate(ctx, m.opts.Redirect)
	}
}

func (m *Manager[P]) saveProfile(ctx context.Context, profile *P) error {
	if err := m.local.SetJSON(ctx, m.opts.ProfileKey, profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	m.mu.Lock()
	if profile != nil {
		p := *profile
		m.profile = &p
	} else {
		m.profile = nil
	}
	m.mu.Unlock()
	return nil
}

// clear removes all persisted credentials and notifies listeners.
func (m *Manager[P]) clear(ctx context.Context) error {
	m.mu.Lock()
	m.token = ""
	m.profile = nil
	m.mu.Unlock()

	errs := []error{
		m.jar.Delete(ctx, TokenCookie),
		m.local.Delete(ctx, m.opts.ProfileKey),
	}
	if m.opts.ClearLegacyToken {
		errs = append(errs, m.local.Delete(ctx, legacyTokenKey))
	}

	for _, l := range m.listeners() {
		l.SessionCleared(ctx)
	}
	return errors.Join(errs...)
}

func (m *Manager[P]) started(ctx context.Context) {
	for _, l := range m.listeners() {
		l.SessionStarted(ctx)
	}
}

func (m *Manager[P]) listeners() []Listener {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Listener(nil), m.opts.Listeners...)
}

func expiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Tokens returns a token source reading the token cookie from jar on every
// request.
func Tokens(jar *storage.Jar) httpclient.TokenSource {
	return httpclient.TokenFunc(func(ctx context.Context) (string, error) {
		return jar.Lookup(ctx, TokenCookie)
	})
}
