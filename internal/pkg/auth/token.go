// internal/pkg/auth/token.go
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/your-org/tableside/internal/infrastructure/storage"
)

// TokenKey is the fixed storage key for the kitchen admin credential
const TokenKey = "adminToken"

// TokenHolder caches the single admin credential gating kitchen dashboard
// access. Presence of a non-empty token is the sole authorization signal; the
// backend validates it on every privileged call.
type TokenHolder struct {
	storage storage.Store
	logger  *logrus.Logger
	now     func() time.Time
}

// NewTokenHolder creates a new token holder
func NewTokenHolder(store storage.Store, logger *logrus.Logger) *TokenHolder {
	return &TokenHolder{
		storage: store,
		logger:  logger,
		now:     time.Now,
	}
}

// Token returns the stored credential, or empty when absent. A credential
// that parses as a JWT with an elapsed exp claim is cleared and treated as
// absent; opaque credentials are returned as-is.
func (h *TokenHolder) Token(ctx context.Context) string {
	value, err := h.storage.Get(ctx, TokenKey)
	if errors.Is(err, storage.ErrNotFound) {
		return ""
	} else if err != nil {
		h.logger.WithError(err).Warn("Failed to read admin token from storage")
		return ""
	}

	if h.expired(value) {
		h.logger.Info("Stored admin token expired, clearing")
		if err := h.ClearToken(ctx); err != nil {
			h.logger.WithError(err).Warn("Failed to clear expired admin token")
		}
		return ""
	}

	return value
}

// HasToken reports whether a usable credential is stored
func (h *TokenHolder) HasToken(ctx context.Context) bool {
	return h.Token(ctx) != ""
}

// SetToken stores the credential
func (h *TokenHolder) SetToken(ctx context.Context, token string) error {
	return h.storage.Set(ctx, TokenKey, token)
}

// ClearToken removes the credential
func (h *TokenHolder) ClearToken(ctx context.Context) error {
	return h.storage.Delete(ctx, TokenKey)
}

// expired reports whether token is a JWT whose exp claim has elapsed. Tokens
// that are not JWTs never expire client-side.
func (h *TokenHolder) expired(token string) bool {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	expiresAt, err := claims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return false
	}

	return h.now().After(expiresAt.Time)
}
