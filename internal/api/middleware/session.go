package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/backoffice/internal/core/ports"
	"github.com/99minutos/backoffice/internal/core/session"
	"github.com/99minutos/backoffice/pkg/logger"
)

// ContextCookie carries the signed browser context ID.
const ContextCookie = "bo_ctx"

// SessionConfig configures the Session middleware.
type SessionConfig struct {
	Secret  []byte
	TTL     time.Duration
	Secure  bool
	Storage ports.ContextStorage
	Log     zerolog.Logger
	// OnStore, when set, is called with every store before the handler runs.
	OnStore func(*session.Store)
	// Carry lists the context keys moved to the new context on rotation.
	Carry []string
}

// Session identifies the browser context from its cookie, minting a new
// one when the cookie is missing or invalid, and attaches a loaded
// session.Store to the request context.
//
// An authenticated context is kept alive by every request: the user is
// rewritten and the cookie reissued, so both expire TTL after the last
// request rather than TTL after login.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextID, ok := parseContextCookie(c, cfg.Secret)
			if !ok {
				var err error
				contextID, err = issueContextCookie(c, cfg, uuid.NewString())
				if err != nil {
					return err
				}
			}

			req := c.Request()
			store := session.NewStore(cfg.Storage, contextID, logger.ForBrowserContext(cfg.Log, contextID))
			user, err := store.Load(req.Context())
			if err != nil {
				return err
			}
			if ok && user != nil {
				refresh(c, cfg, store)
			}
			attachStore(c, cfg, store)
			return next(c)
		}
	}
}

// RotateContext returns a function that moves the request onto a freshly
// minted browser context. The keys in cfg.Carry follow it; everything else
// stored under the old context, the user included, is dropped. Login calls
// it before saving the user.
func RotateContext(cfg SessionConfig) func(echo.Context) (*session.Store, error) {
	return func(c echo.Context) (*session.Store, error) {
		ctx := c.Request().Context()
		oldID := session.FromContext(ctx).ContextID()

		newID, err := issueContextCookie(c, cfg, uuid.NewString())
		if err != nil {
			return nil, err
		}
		for _, key := range cfg.Carry {
			raw, err := cfg.Storage.Get(ctx, oldID, key)
			if errors.Is(err, ports.ErrStorageMiss) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("rotate context: %w", err)
			}
			if err := cfg.Storage.Set(ctx, newID, key, raw); err != nil {
				return nil, fmt.Errorf("rotate context: %w", err)
			}
			if err := cfg.Storage.Delete(ctx, oldID, key); err != nil {
				return nil, fmt.Errorf("rotate context: %w", err)
			}
		}
		if err := cfg.Storage.Delete(ctx, oldID, session.StorageKey); err != nil {
			return nil, fmt.Errorf("rotate context: %w", err)
		}

		store := session.NewStore(cfg.Storage, newID, logger.ForBrowserContext(cfg.Log, newID))
		attachStore(c, cfg, store)
		cfg.Log.Debug().Str("from", oldID).Str("to", newID).Msg("browser context rotated")
		return store, nil
	}
}

func attachStore(c echo.Context, cfg SessionConfig, store *session.Store) {
	if cfg.OnStore != nil {
		cfg.OnStore(store)
	}
	req := c.Request()
	c.SetRequest(req.WithContext(session.WithStore(req.Context(), store)))
}

// refresh restarts the expiry of an authenticated context. Failures are
// logged; the request still has a valid session.
func refresh(c echo.Context, cfg SessionConfig, store *session.Store) {
	if err := store.Touch(c.Request().Context()); err != nil {
		cfg.Log.Warn().Err(err).Str("context_id", store.ContextID()).Msg("session expiry not refreshed")
		return
	}
	if _, err := issueContextCookie(c, cfg, store.ContextID()); err != nil {
		cfg.Log.Warn().Err(err).Str("context_id", store.ContextID()).Msg("context cookie not refreshed")
	}
}

func parseContextCookie(c echo.Context, secret []byte) (string, bool) {
	cookie, err := c.Cookie(ContextCookie)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", false
	}
	if _, err := uuid.Parse(claims.ID); err != nil {
		return "", false
	}
	return claims.ID, true
}

func issueContextCookie(c echo.Context, cfg SessionConfig, id string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("sign context cookie: %w", err)
	}

	c.SetCookie(&http.Cookie{
		Name:     ContextCookie,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}
