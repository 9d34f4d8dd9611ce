package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsite/internal/i18n"
)

func TestResolveLocale(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		query  string
		cookie string
		want   LocaleDecision
	}{
		{name: "root to default", path: "/", want: LocaleDecision{Redirect: "/en"}},
		{name: "root to cookie", path: "/", cookie: "ja", want: LocaleDecision{Redirect: "/ja"}},
		{name: "supported locale passes", path: "/en/docs/intro", want: LocaleDecision{Locale: i18n.English}},
		{name: "matching cookie passes", path: "/ja/docs", cookie: "ja", want: LocaleDecision{Locale: i18n.Japanese}},
		{name: "cookie wins over url", path: "/en/docs/intro", query: "a=1&b=2", cookie: "ja", want: LocaleDecision{Redirect: "/ja/docs/intro?a=1&b=2"}},
		{name: "cookie wins on bare locale", path: "/en", cookie: "ja", want: LocaleDecision{Redirect: "/ja"}},
		{name: "unsupported locale replaced", path: "/fr/docs/x", want: LocaleDecision{Redirect: "/en/docs/x"}},
		{name: "unsupported locale replaced by cookie", path: "/de/docs/x", query: "q=1", cookie: "ja", want: LocaleDecision{Redirect: "/ja/docs/x?q=1"}},
		{name: "unprefixed path gets prefix", path: "/docs/getting-started", want: LocaleDecision{Redirect: "/en/docs/getting-started"}},
		{name: "legacy login", path: "/login", query: "callbackUrl=%2Fadmin", want: LocaleDecision{Redirect: "/en/login?callbackUrl=%2Fadmin"}},
		{name: "legacy admin", path: "/admin/edit/3", cookie: "ja", want: LocaleDecision{Redirect: "/ja/admin/edit/3"}},
		{name: "malformed cookie ignored", path: "/ja/docs", cookie: "xx-YY", want: LocaleDecision{Locale: i18n.Japanese}},
		{name: "uppercase cookie ignored", path: "/", cookie: "JA", want: LocaleDecision{Redirect: "/en"}},
		{name: "api skipped", path: "/api/documents", want: LocaleDecision{Skip: true}},
		{name: "uploads skipped", path: "/uploads/a.png", want: LocaleDecision{Skip: true}},
		{name: "health skipped", path: "/health", want: LocaleDecision{Skip: true}},
		{name: "metrics skipped", path: "/metrics", want: LocaleDecision{Skip: true}},
		{name: "swagger skipped", path: "/swagger/index.html", want: LocaleDecision{Skip: true}},
		{name: "asset extension skipped", path: "/favicon.ico", want: LocaleDecision{Skip: true}},
		{name: "uuid segment skipped", path: "/files/3f2504e0-4f89-11d3-9a0c-0305e82c3301", want: LocaleDecision{Skip: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveLocale(tt.path, tt.query, tt.cookie, i18n.English)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveLocale_InvalidDefaultFallsBack(t *testing.T) {
	got := ResolveLocale("/", "", "", i18n.Locale("zz"))
	assert.Equal(t, "/en", got.Redirect)
}

func TestIsAdminPath(t *testing.T) {
	assert.True(t, IsAdminPath("/en/admin"))
	assert.True(t, IsAdminPath("/ja/admin/edit/4"))
	assert.False(t, IsAdminPath("/en/administrators"))
	assert.False(t, IsAdminPath("/en/docs/admin-guide"))
}

func newLocaleApp() *fiber.App {
	app := fiber.New()
	app.Use(Locale(LocaleConfig{Default: i18n.English, CookieName: "preferred_language"}))
	app.Get("/:locale/docs", func(c *fiber.Ctx) error {
		return c.SendString(LocaleFrom(c).String() + "|" + i18n.FromContext(c.UserContext()).String())
	})
	app.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.SendString(LocaleFrom(c).String())
	})
	return app
}

func TestLocale_Middleware(t *testing.T) {
	app := newLocaleApp()

	t.Run("redirects with 302 and keeps query", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/fr/docs?page=2", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/en/docs?page=2", resp.Header.Get("Location"))
	})

	t.Run("cookie preference redirects", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/en/docs", nil)
		req.AddCookie(&http.Cookie{Name: "preferred_language", Value: "ja"})
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/ja/docs", resp.Header.Get("Location"))
	})

	t.Run("threads locale into locals and context", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/ja/docs", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "ja|ja", readBody(t, resp.Body))
	})

	t.Run("api passes through with default", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/ping", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "en", readBody(t, resp.Body))
	})
}
