package session

import (
	"context"
	"time"
)

// TokenCookie is the cookie holding the bearer token on both sites.
const TokenCookie = "token"

// legacyTokenKey is where older public site builds kept the token.
const legacyTokenKey = "token"

// Listener is told when a session starts or ends.
type Listener interface {
	SessionStarted(ctx context.Context)
	SessionCleared(ctx context.Context)
}

// Navigator moves the user to another route, e.g. the login page.
type Navigator interface {
	Navigate(ctx context.Context, route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, route string)

func (f NavigatorFunc) Navigate(ctx context.Context, route string) { f(ctx, route) }

// Options configures a Manager.
type Options struct {
	// ProfileKey is the local storage key of the profile snapshot.
	ProfileKey string
	// RememberTTL is the token cookie lifetime when remember-me is set.
	RememberTTL time.Duration
	// DefaultTTL is the lifetime otherwise. Zero makes a session cookie.
	DefaultTTL time.Duration
	// Redirect is the route visited after the backend rejects the token.
	Redirect string
	// ClearLegacyToken also removes the pre-cookie token on logout.
	ClearLegacyToken bool

	Listeners []Listener
	Navigator Navigator
}

// UserOptions returns the public site preset.
func UserOptions() Options {
	return Options{
		ProfileKey:       "userInfo",
		RememberTTL:      7 * 24 * time.Hour,
		DefaultTTL:       24 * time.Hour,
		Redirect:         "/",
		ClearLegacyToken: true,
	}
}

// AdminOptions returns the dashboard preset. Without remember-me the token
// is a session cookie.
func AdminOptions() Options {
	return Options{
		ProfileKey:  "user",
		RememberTTL: 30 * 24 * time.Hour,
		Redirect:    "/login",
	}
}
