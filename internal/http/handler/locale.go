package handler

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"docsite/internal/i18n"
)

const localeCookieMaxAge = 365 * 24 * time.Hour

// SetLocale stores the preferred locale and redirects to next rewritten for that locale.
// Document pages are not assumed to exist in every locale, so they fall back to the locale home.
// @Summary  Switch locale
// @Tags     locale
// @Param    code  query  string  true   "Locale code"
// @Param    next  query  string  false  "Local path to return to"
// @Success  302
// @Failure  400  {object}  errorPayload
// @Router   /api/locale [get]
func SetLocale(cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l, ok := i18n.Parse(c.Query("code"))
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Unsupported locale")
		}

		c.Cookie(&fiber.Cookie{
			Name:     cookieName,
			Value:    l.String(),
			Path:     "/",
			Expires:  time.Now().Add(localeCookieMaxAge),
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return c.Redirect(switchLocalePath(c.Query("next"), l), fiber.StatusFound)
	}
}

func switchLocalePath(next string, l i18n.Locale) string {
	home := "/" + l.String()
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return home
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return home
	}

	segs := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	if !i18n.IsSupported(segs[0]) {
		return home
	}
	if len(segs) > 1 && segs[1] == "docs" {
		return home
	}
	segs[0] = l.String()
	out := "/" + strings.Join(segs, "/")
	if u.RawQuery != "" {
		out += "?" + u.RawQuery
	}
	return out
}
