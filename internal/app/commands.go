package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"syscall"
	"time"

	"github.com/simp-lee/waystar/internal/config"
	"github.com/simp-lee/waystar/internal/domain"
	"github.com/simp-lee/waystar/internal/module/user"
	"github.com/simp-lee/waystar/internal/session"
	"github.com/simp-lee/waystar/internal/tracker"
)

var (
	// ErrNotSignedIn is returned by operations that need a session.
	ErrNotSignedIn = errors.New("not signed in")
	// ErrWrongSite is returned when an operation belongs to the other site.
	ErrWrongSite = errors.New("operation not available for this session site")
)

// Identity is the site-independent view of the signed-in account.
type Identity struct {
	ID             int64
	Username       string
	Name           string
	Email          string
	Avatar         string
	Permissions    []string
	TokenRemaining time.Duration
}

// MigrateToken moves a legacy local token into the cookie jar and reloads
// the user session from it. New already does this once at startup.
func (a *App) MigrateToken(ctx context.Context) (bool, error) {
	moved, err := session.MigrateLegacyToken(ctx, a.Jar, a.Local, a.logger.Logger)
	if err != nil || !moved || a.UserSession == nil {
		return moved, err
	}
	if err := a.UserSession.Restore(ctx); err != nil {
		return moved, fmt.Errorf("restore session: %w", err)
	}
	return moved, nil
}

// Login signs in on the configured site.
func (a *App) Login(ctx context.Context, creds session.Credentials) (*Identity, error) {
	if a.AdminSession != nil {
		if _, err := a.AdminSession.Login(ctx, creds); err != nil {
			return nil, err
		}
	} else if _, err := a.UserSession.Login(ctx, creds); err != nil {
		return nil, err
	}
	return a.identity(), nil
}

// Logout signs out. Local state is cleared even when the backend call fails.
func (a *App) Logout(ctx context.Context) error {
	if a.AdminSession != nil {
		return a.AdminSession.Logout(ctx)
	}
	return a.UserSession.Logout(ctx)
}

// WhoAmI refreshes the profile from the backend and returns it.
func (a *App) WhoAmI(ctx context.Context) (*Identity, error) {
	var ok bool
	if a.AdminSession != nil {
		ok = a.AdminSession.Refresh(ctx)
	} else {
		ok = a.UserSession.Refresh(ctx)
	}
	if !ok {
		return nil, ErrNotSignedIn
	}
	return a.identity(), nil
}

func (a *App) identity() *Identity {
	if a.AdminSession != nil {
		p := a.AdminSession.Profile()
		if p == nil {
			return nil
		}
		return &Identity{
			ID:             p.AdminID,
			Username:       p.Username,
			Name:           p.FullName,
			Email:          p.Email,
			Avatar:         p.Avatar,
			Permissions:    p.Permissions,
			TokenRemaining: a.AdminSession.TokenRemaining(),
		}
	}

	p := a.UserSession.Profile()
	if p == nil {
		return nil
	}
	return &Identity{
		ID:             p.UserID,
		Username:       p.Username,
		Name:           p.FullName,
		Email:          p.Email,
		Avatar:         user.AvatarURL(a.cfg.API.AssetBaseURL, p.Avatar),
		TokenRemaining: a.UserSession.TokenRemaining(),
	}
}

func (a *App) requireUser() error {
	if a.UserSession == nil {
		return ErrWrongSite
	}
	if !a.UserSession.IsLoggedIn() {
		return ErrNotSignedIn
	}
	return nil
}

// FavoriteCards returns the cards of the user's favorited attractions.
func (a *App) FavoriteCards(ctx context.Context) ([]domain.AttractionCard, error) {
	if err := a.requireUser(); err != nil {
		return nil, err
	}
	if err := a.Favorites.Initialize(ctx); err != nil {
		return nil, err
	}
	return a.Modules.Public.Batch(ctx, a.Favorites.IDs())
}

// ToggleFavorite flips the favorite state of an attraction.
func (a *App) ToggleFavorite(ctx context.Context, attractionID int64) (bool, error) {
	if err := a.requireUser(); err != nil {
		return false, err
	}
	if err := a.Favorites.Initialize(ctx); err != nil {
		return false, err
	}
	return a.Favorites.Toggle(ctx, attractionID)
}

// Slideshows returns the home page carousel.
func (a *App) Slideshows(ctx context.Context) ([]domain.Slideshow, error) {
	return a.Modules.Slideshow.Public(ctx)
}

// Track times a visit to an attraction until SIGINT or SIGTERM, then
// reports the remainder. A failed final report is handed to the beacon.
func (a *App) Track(attractionID int64, deviceInfo string) error {
	if err := a.requireUser(); err != nil {
		return err
	}
	profile := a.UserSession.Profile()
	if profile == nil {
		return ErrNotSignedIn
	}

	tr, err := tracker.New(tracker.Config{
		UserID:       profile.UserID,
		AttractionID: attractionID,
		Interval:     config.Duration(a.cfg.Tracker.Interval, tracker.DefaultInterval),
		DeviceInfo:   deviceInfo,
		Reporter:     a.Modules.Browse,
		Beacon:       a.Beacon,
		Metrics:      a.Metrics,
		Logger:       a.logger.Logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tr.Start()
	a.logger.Info("tracking browse time, press Ctrl+C to stop", slog.Int64("attraction_id", attractionID))
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), config.Duration(a.cfg.API.Timeout, 15*time.Second))
	defer cancel()
	if err := tr.Stop(stopCtx); err != nil {
		tr.Flush()
		return fmt.Errorf("final browse report: %w", err)
	}
	return nil
}
