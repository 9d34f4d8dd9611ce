package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"docsite/internal/auth"
)

// SessionStatus is the outcome of resolving the caller's session.
type SessionStatus int

const (
	StatusUnauthenticated SessionStatus = iota
	// StatusLoading means a token was presented but its revocation state is unknown.
	StatusLoading
	StatusAuthenticated
)

func (s SessionStatus) String() string {
	switch s {
	case StatusAuthenticated:
		return "authenticated"
	case StatusLoading:
		return "loading"
	default:
		return "unauthenticated"
	}
}

const sessionLocalKey = "session"

// Session is what SessionResolver stores in locals for each request.
type Session struct {
	Status SessionStatus
	Claims *auth.Claims
	Token  string
}

// SessionConfig wires the session middleware.
type SessionConfig struct {
	Sessions   *auth.Sessions
	Revoker    auth.TokenRevoker
	CookieName string
	Logger     zerolog.Logger
}

// SessionResolver resolves the session token of every request. It never rejects;
// guards decide what to do with the status.
func SessionResolver(cfg SessionConfig) fiber.Handler {
	if cfg.Revoker == nil {
		cfg.Revoker = auth.NoopRevoker{}
	}
	log := cfg.Logger.With().Str("component", "session").Logger()

	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c, cfg.CookieName)
		s := ResolveSession(c.UserContext(), cfg.Sessions, cfg.Revoker, token)
		if s.Status == StatusLoading {
			log.Warn().
				Str("request_id", RequestIDFrom(c)).
				Str("path", c.Path()).
				Msg("session revocation state unavailable")
		}
		c.Locals(sessionLocalKey, s)
		return c.Next()
	}
}

// ResolveSession validates token and checks it against the revocation store.
func ResolveSession(ctx context.Context, sessions *auth.Sessions, revoker auth.TokenRevoker, token string) Session {
	if token == "" {
		return Session{Status: StatusUnauthenticated}
	}
	claims, err := sessions.Validate(token)
	if err != nil {
		return Session{Status: StatusUnauthenticated}
	}
	revoked, err := revoker.IsRevoked(ctx, claims.ID)
	switch {
	case errors.Is(err, auth.ErrSessionUnverifiable):
		return Session{Status: StatusLoading, Token: token}
	case err != nil, revoked:
		return Session{Status: StatusUnauthenticated}
	}
	return Session{Status: StatusAuthenticated, Claims: claims, Token: token}
}

// SessionFrom returns the session resolved for c; requests that did not pass through
// SessionResolver are unauthenticated.
func SessionFrom(c *fiber.Ctx) Session {
	s, _ := c.Locals(sessionLocalKey).(Session)
	return s
}

// RequireSession rejects API requests without an authenticated session:
// 401 when there is none, 503 when it cannot be verified.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch SessionFrom(c).Status {
		case StatusAuthenticated:
			return c.Next()
		case StatusLoading:
			return fiber.NewError(fiber.StatusServiceUnavailable, "Session cannot be verified right now")
		default:
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}
	}
}

// tokenFromRequest prefers an Authorization bearer token over the session cookie.
func tokenFromRequest(c *fiber.Ctx, cookieName string) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		if scheme, tok, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(tok)
		}
	}
	if cookieName == "" {
		return ""
	}
	return c.Cookies(cookieName)
}
