package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsite/internal/auth"
	"docsite/internal/i18n"
	"docsite/internal/model"
)

const testCookie = "session_token"

type sessionFixture struct {
	app      *fiber.App
	sessions *auth.Sessions
	redis    *miniredis.Miniredis
	revoker  *auth.RedisRevoker
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	f := &sessionFixture{
		sessions: auth.NewSessions("test-secret", time.Hour),
		redis:    mr,
		revoker:  auth.NewRedisRevoker(client),
	}

	app := fiber.New()
	app.Use(Locale(LocaleConfig{Default: i18n.English, CookieName: "preferred_language"}))
	app.Use(SessionResolver(SessionConfig{
		Sessions:   f.sessions,
		Revoker:    f.revoker,
		CookieName: testCookie,
		Logger:     zerolog.Nop(),
	}))
	app.Use(AdminGuard(nil))

	app.Get("/:locale/admin/*", func(c *fiber.Ctx) error {
		return c.SendString("admin:" + SessionFrom(c).Claims.Username)
	})
	app.Get("/:locale/admin", func(c *fiber.Ctx) error {
		return c.SendString("admin:" + SessionFrom(c).Claims.Username)
	})
	app.Get("/api/private", RequireSession(), func(c *fiber.Ctx) error {
		return c.SendString(SessionFrom(c).Status.String())
	})
	f.app = app
	return f
}

func (f *sessionFixture) token(t *testing.T) (string, *auth.Claims) {
	t.Helper()
	tok, claims, err := f.sessions.Issue(model.User{ID: 1, Username: "admin", Name: "Administrator"})
	require.NoError(t, err)
	return tok, claims
}

func TestAdminGuard(t *testing.T) {
	f := newSessionFixture(t)

	t.Run("unauthenticated redirects to locale login", func(t *testing.T) {
		resp, err := f.app.Test(httptest.NewRequest("GET", "/ja/admin/edit/3", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/ja/login?callbackUrl=%2Fja%2Fadmin%2Fedit%2F3", resp.Header.Get("Location"))
	})

	t.Run("cookie session passes", func(t *testing.T) {
		tok, _ := f.token(t)
		req := httptest.NewRequest("GET", "/en/admin", nil)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: tok})

		resp, err := f.app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "admin:admin", readBody(t, resp.Body))
	})

	t.Run("tampered token redirects", func(t *testing.T) {
		tok, _ := f.token(t)
		req := httptest.NewRequest("GET", "/en/admin", nil)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: tok + "x"})

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	})

	t.Run("revoked token redirects", func(t *testing.T) {
		tok, claims := f.token(t)
		require.NoError(t, f.revoker.Revoke(context.Background(), claims.ID, claims.ExpiresAt.Time))

		req := httptest.NewRequest("GET", "/en/admin", nil)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: tok})

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	})
}

func TestRequireSession(t *testing.T) {
	f := newSessionFixture(t)

	resp, err := f.app.Test(httptest.NewRequest("GET", "/api/private", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	tok, _ := f.token(t)
	req := httptest.NewRequest("GET", "/api/private", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err = f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "authenticated", readBody(t, resp.Body))
}

func TestSession_LoadingWhenRedisDown(t *testing.T) {
	f := newSessionFixture(t)
	tok, _ := f.token(t)
	f.redis.Close()

	req := httptest.NewRequest("GET", "/en/admin", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: tok})
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "Loading...", readBody(t, resp.Body))

	req = httptest.NewRequest("GET", "/api/private", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err = f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestResolveSession_NoToken(t *testing.T) {
	s := ResolveSession(context.Background(), auth.NewSessions("k", time.Hour), auth.NoopRevoker{}, "")
	assert.Equal(t, StatusUnauthenticated, s.Status)
	assert.Nil(t, s.Claims)
}
