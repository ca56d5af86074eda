package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/simp-lee/waystar/internal/storage"
)

// LegacyTokenTTL is the cookie lifetime given to migrated tokens.
const LegacyTokenTTL = 7 * 24 * time.Hour

// MigrateLegacyToken moves a token left in local storage by older builds
// into the token cookie. It does nothing when there is no local token or a
// cookie is already set, so running it repeatedly is safe.
func MigrateLegacyToken(ctx context.Context, jar *storage.Jar, local *storage.Local, logger *slog.Logger) (bool, error) {
	if logger == nil {
		logger = slog.Default()
	}

	legacy, err := local.GetString(ctx, legacyTokenKey)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && legacy == "") {
		return false, nil
	}
	if err != nil {
		logger.Error("token migration failed", "error", err)
		return false, fmt.Errorf("read legacy token: %w", err)
	}

	current, err := jar.Lookup(ctx, TokenCookie)
	if err != nil {
		logger.Error("token migration failed", "error", err)
		return false, fmt.Errorf("read token cookie: %w", err)
	}
	if current != "" {
		return false, nil
	}

	if err := jar.Set(ctx, TokenCookie, legacy, LegacyTokenTTL); err != nil {
		logger.Error("token migration failed", "error", err)
		return false, fmt.Errorf("write token cookie: %w", err)
	}
	if err := local.Delete(ctx, legacyTokenKey); err != nil {
		logger.Error("token migration failed", "error", err)
		return false, fmt.Errorf("remove legacy token: %w", err)
	}
	logger.Info("legacy token migrated to cookie")
	return true, nil
}
