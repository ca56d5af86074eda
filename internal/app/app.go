// Package app wires the client: logging, persistence, the HTTP client, the
// API modules and the session, favorites and tracker state holders.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/simp-lee/logger"
	"golang.org/x/time/rate"

	"github.com/simp-lee/waystar/internal/config"
	"github.com/simp-lee/waystar/internal/domain"
	"github.com/simp-lee/waystar/internal/favorites"
	"github.com/simp-lee/waystar/internal/httpclient"
	"github.com/simp-lee/waystar/internal/module/admin"
	"github.com/simp-lee/waystar/internal/module/attraction"
	"github.com/simp-lee/waystar/internal/module/auth"
	"github.com/simp-lee/waystar/internal/module/browse"
	"github.com/simp-lee/waystar/internal/module/city"
	"github.com/simp-lee/waystar/internal/module/oplog"
	"github.com/simp-lee/waystar/internal/module/permission"
	"github.com/simp-lee/waystar/internal/module/role"
	"github.com/simp-lee/waystar/internal/module/slideshow"
	"github.com/simp-lee/waystar/internal/module/upload"
	"github.com/simp-lee/waystar/internal/module/user"
	"github.com/simp-lee/waystar/internal/session"
	"github.com/simp-lee/waystar/internal/storage"
	"github.com/simp-lee/waystar/internal/tracker"
)

// Modules groups the API services.
type Modules struct {
	Auth       auth.Service
	Account    user.AccountService
	Admin      admin.Service
	Role       role.Service
	Permission permission.Service
	OpLog      oplog.Service
	Attraction attraction.Service
	Public     attraction.PublicService
	City       city.Service
	Slideshow  slideshow.Service
	User       user.Service
	Upload     upload.Service
	Browse     browse.Service
}

// App holds the wired client. Exactly one of UserSession and AdminSession
// is set, following session.site.
type App struct {
	cfg      *config.Config
	logger   *logger.Logger
	store    storage.Store
	registry *prometheus.Registry

	Jar     *storage.Jar
	Local   *storage.Local
	Client  *httpclient.Client
	Metrics *httpclient.Metrics
	Modules Modules

	UserSession  *session.Manager[domain.UserInfo]
	AdminSession *session.Manager[domain.AdminSession]
	Favorites    *favorites.Cache
	Beacon       *tracker.HTTPBeacon

	// Navigator receives the redirect after the backend rejects the token.
	navigate func(ctx context.Context, route string)
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// New creates and wires an App from cfg and restores the persisted session.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	success := false

	// 1. Setup logger.
	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	defer func() {
		if success {
			return
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()

	// 2. Open persistence for cookies and local state.
	store, err := storage.Open(&cfg.Storage, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if success {
			return
		}
		if err := store.Close(); err != nil {
			slog.Error("storage close error", slog.Any("error", err))
		}
	}()

	a := &App{
		cfg:    cfg,
		logger: log,
		store:  store,
		Jar:    storage.NewJar(store),
		Local:  storage.NewLocal(store),
	}
	a.navigate = func(ctx context.Context, route string) {
		log.InfoContext(ctx, "session ended, please sign in again", slog.String("route", route))
	}

	// 3. Metrics and the HTTP client.
	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		a.Metrics = httpclient.NewMetrics(a.registry)
	}
	a.Client, err = httpclient.New(a.clientOptions())
	if err != nil {
		return nil, fmt.Errorf("setup http client: %w", err)
	}

	// 4. API modules.
	a.Modules = newModules(a.Client, cfg.API.AdminPrefix)

	// 5. Session state for the configured site.
	if err := a.setupSession(ctx); err != nil {
		return nil, err
	}

	a.Beacon = tracker.NewHTTPBeacon(a.Client, tracker.HTTPBeaconOptions{
		Path:    browse.RecordPath,
		Queue:   cfg.Tracker.BeaconQueue,
		Timeout: config.Duration(cfg.Tracker.BeaconTimeout, 5*time.Second),
		Metrics: a.Metrics,
		Logger:  log.Logger,
	})

	success = true
	log.Debug("client ready",
		slog.String("base_url", a.Client.BaseURL()),
		slog.String("site", cfg.Session.Site),
		slog.String("storage", cfg.Storage.Driver),
	)
	return a, nil
}

func (a *App) clientOptions() httpclient.Options {
	cfg := a.cfg
	opts := httpclient.Options{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        config.Duration(cfg.API.Timeout, httpclient.DefaultTimeout),
		UserAgent:      cfg.API.UserAgent,
		Tokens:         session.Tokens(a.Jar),
		OnUnauthorized: httpclient.UnauthorizedFunc(a.handleUnauthorized),
		Metrics:        a.Metrics,
		Logger:         a.logger.Logger,
	}
	if cfg.API.RateLimit.Enabled {
		opts.Limiter = rate.NewLimiter(rate.Limit(cfg.API.RateLimit.RPS), cfg.API.RateLimit.Burst)
	}

	// The public site tolerates 401s unrelated to the session and reports
	// every failure. The dashboard clears on any 401.
	if cfg.Session.Site == config.SiteUser {
		opts.Policy = httpclient.ClearOnAuthMessage
		opts.NotifyOtherStatuses = true
		opts.NotifyRequestErrors = true
	} else {
		opts.Policy = httpclient.AlwaysClear
	}
	return opts
}

func newModules(c *httpclient.Client, adminPrefix string) Modules {
	return Modules{
		Auth:       auth.NewService(c),
		Account:    user.NewAccountService(c),
		Admin:      admin.NewService(c, adminPrefix),
		Role:       role.NewService(c, adminPrefix),
		Permission: permission.NewService(c, adminPrefix),
		OpLog:      oplog.NewService(c, adminPrefix),
		Attraction: attraction.NewService(c, adminPrefix),
		Public:     attraction.NewPublicService(c),
		City:       city.NewService(c),
		Slideshow:  slideshow.NewService(c),
		User:       user.NewService(c, adminPrefix),
		Upload:     upload.NewService(c),
		Browse:     browse.NewService(c),
	}
}

func (a *App) setupSession(ctx context.Context) error {
	cfg := a.cfg
	nav := session.NavigatorFunc(func(ctx context.Context, route string) { a.navigate(ctx, route) })

	switch cfg.Session.Site {
	case config.SiteAdmin:
		opts := sessionOptions(session.AdminOptions(), &cfg.Session, nav)
		authn := &session.AdminAuthenticator{Admin: a.Modules.Admin}
		a.AdminSession = session.NewManager[domain.AdminSession](authn, a.Jar, a.Local, opts, a.logger.Logger)
		authn.Snapshot = a.AdminSession.Profile
		if err := a.AdminSession.Restore(ctx); err != nil {
			return fmt.Errorf("restore session: %w", err)
		}
	default:
		// Older builds kept the token in local state. Failures are logged
		// by the migration and do not block startup.
		_, _ = session.MigrateLegacyToken(ctx, a.Jar, a.Local, a.logger.Logger)

		fav, err := favorites.New(ctx, a.Modules.Public, a.Local, a.logger.Logger)
		if err != nil {
			return fmt.Errorf("setup favorites: %w", err)
		}
		a.Favorites = fav

		opts := sessionOptions(session.UserOptions(), &cfg.Session, nav)
		opts.Listeners = append(opts.Listeners, fav)
		a.UserSession = session.NewManager[domain.UserInfo](session.UserAuthenticator{Auth: a.Modules.Auth},
			a.Jar, a.Local, opts, a.logger.Logger)
		if err := a.UserSession.Restore(ctx); err != nil {
			return fmt.Errorf("restore session: %w", err)
		}
	}
	return nil
}

func sessionOptions(opts session.Options, cfg *config.SessionConfig, nav session.Navigator) session.Options {
	opts.RememberTTL = config.Duration(cfg.RememberTTL, opts.RememberTTL)
	opts.DefaultTTL = config.Duration(cfg.DefaultTTL, opts.DefaultTTL)
	opts.Navigator = nav
	return opts
}

func (a *App) handleUnauthorized(ctx context.Context, message string) {
	switch {
	case a.UserSession != nil:
		a.UserSession.HandleUnauthorized(ctx, message)
	case a.AdminSession != nil:
		a.AdminSession.HandleUnauthorized(ctx, message)
	}
}

// SetNavigator replaces the default redirect handler, which only logs.
func (a *App) SetNavigator(fn func(ctx context.Context, route string)) {
	if fn != nil {
		a.navigate = fn
	}
}

// Close drains the beacon and releases storage and the logger.
func (a *App) Close() error {
	if a == nil {
		return nil
	}

	var errs []error
	if a.Beacon != nil {
		ctx, cancel := context.WithTimeout(context.Background(), config.Duration(a.cfg.Tracker.BeaconTimeout, 5*time.Second))
		if err := a.Beacon.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("drain beacon: %w", err))
		}
		cancel()
	}

	a.logMetrics()

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close storage: %w", err))
		}
	}
	if a.logger != nil {
		if err := a.logger.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}
	return errors.Join(errs...)
}

// logMetrics writes the collected counters at debug level.
func (a *App) logMetrics() {
	if a.registry == nil || a.logger == nil {
		return
	}
	families, err := a.registry.Gather()
	if err != nil {
		a.logger.Warn("gather metrics failed", slog.Any("error", err))
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			attrs := []any{slog.String("metric", mf.GetName())}
			for _, lp := range m.GetLabel() {
				attrs = append(attrs, slog.String(lp.GetName(), lp.GetValue()))
			}
			switch {
			case m.GetCounter() != nil:
				attrs = append(attrs, slog.Float64("value", m.GetCounter().GetValue()))
			case m.GetHistogram() != nil:
				attrs = append(attrs,
					slog.Uint64("count", m.GetHistogram().GetSampleCount()),
					slog.Float64("sum", m.GetHistogram().GetSampleSum()),
				)
			}
			a.logger.Debug("metric", attrs...)
		}
	}
}
