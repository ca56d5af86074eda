package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/simp-lee/waystar/internal/apitest"
	"github.com/simp-lee/waystar/internal/domain"
	"github.com/simp-lee/waystar/internal/httpclient"
	"github.com/simp-lee/waystar/internal/module/admin"
	"github.com/simp-lee/waystar/internal/module/auth"
	"github.com/simp-lee/waystar/internal/storage"
)

type recordingListener struct {
	mu      sync.Mutex
	started int
	cleared int
}

func (l *recordingListener) SessionStarted(context.Context) {
	l.mu.Lock()
	l.started++
	l.mu.Unlock()
}

func (l *recordingListener) SessionCleared(context.Context) {
	l.mu.Lock()
	l.cleared++
	l.mu.Unlock()
}

func (l *recordingListener) counts() (int, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.started, l.cleared
}

type fixture struct {
	backend  *apitest.Backend
	store    *storage.Memory
	jar      *storage.Jar
	local    *storage.Local
	listener *recordingListener
	routes   []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := storage.NewMemory()
	return &fixture{
		backend:  apitest.NewBackend(t),
		store:    store,
		jar:      storage.NewJar(store),
		local:    storage.NewLocal(store),
		listener: &recordingListener{},
	}
}

func (f *fixture) client(t *testing.T, onUnauthorized httpclient.UnauthorizedHandler) *httpclient.Client {
	t.Helper()
	client, err := httpclient.New(httpclient.Options{
		BaseURL:        f.backend.URL,
		Logger:         slog.New(slog.DiscardHandler),
		Tokens:         Tokens(f.jar),
		OnUnauthorized: onUnauthorized,
	})
	if err != nil {
		t.Fatalf("httpclient.New() error = %v", err)
	}
	return client
}

func (f *fixture) options(base Options) Options {
	base.Listeners = []Listener{f.listener}
	base.Navigator = NavigatorFunc(func(_ context.Context, route string) {
		f.routes = append(f.routes, route)
	})
	return base
}

func (f *fixture) userManager(t *testing.T) *Manager[domain.UserInfo] {
	t.Helper()
	var mgr *Manager[domain.UserInfo]
	client := f.client(t, httpclient.UnauthorizedFunc(func(ctx context.Context, msg string) {
		mgr.HandleUnauthorized(ctx, msg)
	}))
	mgr = NewManager[domain.UserInfo](UserAuthenticator{Auth: auth.NewService(client)},
		f.jar, f.local, f.options(UserOptions()), slog.New(slog.DiscardHandler))
	return mgr
}

func (f *fixture) adminManager(t *testing.T) *Manager[domain.AdminSession] {
	t.Helper()
	var mgr *Manager[domain.AdminSession]
	client := f.client(t, httpclient.UnauthorizedFunc(func(ctx context.Context, msg string) {
		mgr.HandleUnauthorized(ctx, msg)
	}))
	authn := &AdminAuthenticator{Admin: admin.NewService(client, apitest.DefaultAdminPrefix)}
	mgr = NewManager[domain.AdminSession](authn, f.jar, f.local, f.options(AdminOptions()), slog.New(slog.DiscardHandler))
	authn.Snapshot = mgr.Profile
	return mgr
}

func TestManager_UserLoginPersists(t *testing.T) {
	f := newFixture(t)
	f.backend.AddUser("alice", "secret1", domain.UserInfo{Email: "alice@example.com"})
	ctx := context.Background()

	mgr := f.userManager(t)
	profile, err := mgr.Login(ctx, Credentials{Username: "alice", Password: "secret1", RememberMe: true})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if profile.Username != "alice" || profile.Email != "alice@example.com" {
		t.Errorf("Login() profile = %+v", profile)
	}
	if !mgr.IsLoggedIn() {
		t.Error("IsLoggedIn() = false after login")
	}
	if started, _ := f.listener.counts(); started != 1 {
		t.Errorf("SessionStarted calls = %d, want 1", started)
	}

	// A second manager over the same store sees the session.
	restored := f.userManager(t)
	if err := restored.Restore(ctx); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if restored.Token() != mgr.Token() {
		t.Error("Restore() did not load the token cookie")
	}
	if p := restored.Profile(); p == nil || p.UserID != profile.UserID {
		t.Errorf("Restore() profile = %+v", p)
	}

	info, err := restored.FetchCurrent(ctx)
	if err != nil {
		t.Fatalf("FetchCurrent() error = %v", err)
	}
	if info.Email != "alice@example.com" {
		t.Errorf("FetchCurrent() = %+v", info)
	}
}

func TestManager_CookieLifetime(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		remember   bool
		persistent bool
	}{
		{"user remember", UserOptions(), true, true},
		{"user default", UserOptions(), false, true},
		{"admin remember", AdminOptions(), true, true},
		{"admin session cookie", AdminOptions(), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.backend.AddUser("alice", "secret1", domain.UserInfo{})
			f.backend.AddAdmin("root", "secret1")
			ctx := context.Background()

			var err error
			if tt.opts.ProfileKey == UserOptions().ProfileKey {
				_, err = f.userManager(t).Login(ctx, Credentials{Username: "alice", Password: "secret1", RememberMe: tt.remember})
			} else {
				_, err = f.adminManager(t).Login(ctx, Credentials{Username: "root", Password: "secret1", RememberMe: tt.remember})
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}

			// A fresh jar over the same store only sees persisted cookies.
			token, err := storage.NewJar(f.store).Lookup(ctx, TokenCookie)
			if err != nil {
				t.Fatalf("Lookup() error = %v", err)
			}
			if got := token != ""; got != tt.persistent {
				t.Errorf("cookie persisted = %v, want %v", got, tt.persistent)
			}
		})
	}
}

func TestManager_LoginFailureLeavesNoState(t *testing.T) {
	f := newFixture(t)
	f.backend.AddUser("alice", "secret1", domain.UserInfo{})
	ctx := context.Background()

	mgr := f.userManager(t)
	if _, err := mgr.Login(ctx, Credentials{Username: "alice", Password: "wrong"}); err == nil {
		t.Fatal("Login() with wrong password succeeded")
	}
	if mgr.IsLoggedIn() {
		t.Error("IsLoggedIn() = true after failed login")
	}
	if _, err := f.local.GetString(ctx, "userInfo"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("profile stored after failed login: %v", err)
	}
}

func TestManager_LogoutClearsEvenWhenRemoteFails(t *testing.T) {
	f := newFixture(t)
	f.backend.AddUser("alice", "secret1", domain.UserInfo{})
	ctx := context.Background()

	mgr := f.userManager(t)
	if _, err := mgr.Login(ctx, Credentials{Username: "alice", Password: "secret1"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if err := f.local.SetString(ctx, "token", "legacy"); err != nil {
		t.Fatal(err)
	}

	f.backend.FailNext(http.MethodPost, "/api/user/logout", http.StatusInternalServerError, "boom")
	err := mgr.Logout(ctx)
	if err == nil {
		t.Fatal("Logout() error = nil, want remote failure")
	}
	if mgr.IsLoggedIn() || mgr.Profile() != nil {
		t.Error("Logout() left local state behind")
	}
	if v, _ := f.jar.Lookup(ctx, TokenCookie); v != "" {
		t.Errorf("token cookie = %q after logout", v)
	}
	if _, err := f.local.GetString(ctx, "token"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("legacy token kept after logout: %v", err)
	}
	if _, cleared := f.listener.counts(); cleared != 1 {
		t.Errorf("SessionCleared calls = %d, want 1", cleared)
	}
	if len(f.routes) != 1 || f.routes[0] != "/" {
		t.Errorf("navigations = %v, want [/]", f.routes)
	}
}

func TestManager_AdminLogoutNavigatesToLogin(t *testing.T) {
	f := newFixture(t)
	f.backend.AddAdmin("root", "secret1", "user:read")
	ctx := context.Background()

	mgr := f.adminManager(t)
	if _, err := mgr.Login(ctx, Credentials{Username: "root", Password: "secret1"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if err := mgr.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if len(f.routes) != 1 || f.routes[0] != "/login" {
		t.Errorf("navigations = %v, want [/login]", f.routes)
	}
}

func TestManager_LogoutRevokesToken(t *testing.T) {
	f := newFixture(t)
	f.backend.AddUser("alice", "secret1", domain.UserInfo{})
	ctx := context.Background()

	mgr := f.userManager(t)
	if _, err := mgr.Login(ctx, Credentials{Username: "alice", Password: "secret1"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	token := mgr.Token()
	if err := mgr.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	// Reusing the revoked token is rejected and clears the session again.
	if err := f.jar.Set(ctx, TokenCookie, token, time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := mgr.Restore(ctx); err != nil {
		t.Fatal(err)
	}
	if mgr.Refresh(ctx) {
		t.Error("Refresh() with revoked token = true")
	}
	if mgr.IsLoggedIn() {
		t.Error("IsLoggedIn() = true after rejected refresh")
	}
}

func TestManager_UnauthorizedRedirectsOnce(t *testing.T) {
	f := newFixture(t)
	id := f.backend.AddUser("alice", "secret1", domain.UserInfo{})
	ctx := context.Background()

	if err := f.jar.Set(ctx, TokenCookie, f.backend.Token(id, "alice", -time.Minute), time.Hour); err != nil {
		t.Fatal(err)
	}
	mgr := f.userManager(t)
	if err := mgr.Restore(ctx); err != nil {
		t.Fatal(err)
	}

	for range 2 {
		if _, err := mgr.FetchCurrent(ctx); err == nil {
			t.Fatal("FetchCurrent() with expired token succeeded")
		}
	}
	if len(f.routes) != 1 || f.routes[0] != "/" {
		t.Errorf("navigations = %v, want [/]", f.routes)
	}

	if _, err := mgr.Login(ctx, Credentials{Username: "alice", Password: "secret1"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	mgr.HandleUnauthorized(ctx, "expired")
	if len(f.routes) != 2 {
		t.Errorf("navigations after re-login = %v, want a second redirect", f.routes)
	}
}

func TestManager_RestoreDiscardsCorruptProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if err := f.jar.Set(ctx, TokenCookie, "tok", time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := f.local.SetString(ctx, "userInfo", "{not json"); err != nil {
		t.Fatal(err)
	}

	mgr := f.userManager(t)
	if err := mgr.Restore(ctx); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if mgr.IsLoggedIn() {
		t.Error("IsLoggedIn() = true with corrupt profile")
	}
	if v, _ := f.jar.Lookup(ctx, TokenCookie); v != "" {
		t.Errorf("token cookie = %q, want cleared", v)
	}
}

func TestManager_AdminPermissionsRefresh(t *testing.T) {
	f := newFixture(t)
	f.backend.AddAdmin("root", "secret1", "attraction:read", "user:write")
	ctx := context.Background()

	mgr := f.adminManager(t)
	sess, err := mgr.Login(ctx, Credentials{Username: "root", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if sess.Avatar == "" {
		t.Error("Login() session has no avatar")
	}

	refreshed, err := mgr.FetchCurrent(ctx)
	if err != nil {
		t.Fatalf("FetchCurrent() error = %v", err)
	}
	if refreshed.Username != "root" || !refreshed.HasPermission("user:write") {
		t.Errorf("FetchCurrent() = %+v", refreshed)
	}
}

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestManager_TokenExpiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		token     string
		expired   bool
		remaining time.Duration
	}{
		{"empty", "", true, 0},
		{"garbage", "not-a-jwt", true, 0},
		{"no exp", signed(t, jwt.MapClaims{"sub": "1"}), true, 0},
		{"future", signed(t, jwt.MapClaims{"exp": now.Add(90 * time.Second).Unix()}), false, 90 * time.Second},
		{"past", signed(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()}), true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			mgr := f.userManager(t)
			mgr.now = func() time.Time { return now }
			mgr.token = tt.token

			if got := mgr.TokenExpired(); got != tt.expired {
				t.Errorf("TokenExpired() = %v, want %v", got, tt.expired)
			}
			if got := mgr.TokenRemaining(); got != tt.remaining {
				t.Errorf("TokenRemaining() = %v, want %v", got, tt.remaining)
			}
		})
	}
}
