package middleware

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"

	"docsite/internal/i18n"
)

// LocaleLocalKey stores the resolved i18n.Locale in Fiber's context locals.
const LocaleLocalKey = "locale"

var (
	uuidPattern         = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
	localeShapedPattern = regexp.MustCompile(`^[a-z]{2}$`)
	adminPathPattern    = regexp.MustCompile(`^/[\w-]+/admin(/|$)`)
)

var skippedPrefixes = []string{"/api/", "/uploads/", "/static/", "/swagger"}

var skippedPaths = map[string]bool{
	"/api":     true,
	"/metrics": true,
	"/health":  true,
	"/healthz": true,
}

var assetExtensions = map[string]bool{
	".css": true, ".js": true, ".map": true, ".json": true, ".txt": true, ".xml": true,
	".ico": true, ".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".svg": true,
	".webp": true, ".bmp": true, ".tiff": true, ".avif": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
}

// LocaleDecision is the result of ResolveLocale. Exactly one of Skip, Redirect or
// Locale is meaningful.
type LocaleDecision struct {
	Skip     bool
	Redirect string
	Locale   i18n.Locale
}

// ResolveLocale decides whether a request path is already addressed under the
// caller's locale. cookie is the raw preference cookie; unsupported values count
// as absent. Redirect targets keep the rest of the path and rawQuery.
func ResolveLocale(p, rawQuery, cookie string, def i18n.Locale) LocaleDecision {
	if !i18n.IsSupported(string(def)) {
		def = i18n.Default
	}
	if skipLocale(p) {
		return LocaleDecision{Skip: true}
	}

	cookieLocale, hasCookie := i18n.Parse(cookie)
	preferred := def
	if hasCookie {
		preferred = cookieLocale
	}

	if p == "" || p == "/" {
		return redirectTo("/"+preferred.String(), rawQuery)
	}

	first, rest, _ := strings.Cut(strings.TrimPrefix(p, "/"), "/")

	if l, ok := i18n.Parse(first); ok {
		if hasCookie && cookieLocale != l {
			return redirectTo(join(cookieLocale, rest), rawQuery)
		}
		return LocaleDecision{Locale: l}
	}

	switch {
	case p == "/login" || strings.HasPrefix(p, "/admin"):
		return redirectTo("/"+preferred.String()+p, rawQuery)
	case localeShapedPattern.MatchString(first):
		return redirectTo(join(preferred, rest), rawQuery)
	default:
		return redirectTo("/"+preferred.String()+p, rawQuery)
	}
}

func join(l i18n.Locale, rest string) string {
	if rest == "" {
		return "/" + l.String()
	}
	return "/" + l.String() + "/" + rest
}

func redirectTo(target, rawQuery string) LocaleDecision {
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	return LocaleDecision{Redirect: target}
}

func skipLocale(p string) bool {
	if skippedPaths[p] {
		return true
	}
	for _, prefix := range skippedPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	if assetExtensions[strings.ToLower(path.Ext(p))] {
		return true
	}
	return uuidPattern.MatchString(p)
}

// LocaleConfig wires the locale middleware.
type LocaleConfig struct {
	Default    i18n.Locale
	CookieName string
}

// Locale redirects page requests to their canonical /{locale}/... URL and stores the
// resolved locale in locals and in the request context.
func Locale(cfg LocaleConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cookie string
		if cfg.CookieName != "" {
			cookie = c.Cookies(cfg.CookieName)
		}
		d := ResolveLocale(c.Path(), string(c.Request().URI().QueryString()), cookie, cfg.Default)
		switch {
		case d.Skip:
			return c.Next()
		case d.Redirect != "":
			return c.Redirect(d.Redirect, fiber.StatusFound)
		}

		c.Locals(LocaleLocalKey, d.Locale)
		c.SetUserContext(i18n.WithLocale(c.UserContext(), d.Locale))
		return c.Next()
	}
}

// LocaleFrom returns the locale stored by Locale, or the default locale.
func LocaleFrom(c *fiber.Ctx) i18n.Locale {
	if l, ok := c.Locals(LocaleLocalKey).(i18n.Locale); ok {
		return l
	}
	return i18n.FromContext(c.UserContext())
}

// IsAdminPath reports whether p addresses a locale-prefixed admin page.
func IsAdminPath(p string) bool {
	return adminPathPattern.MatchString(p)
}

// AdminGuard protects admin pages. It must run after Locale and SessionResolver.
// Unauthenticated callers are sent to the login page of the current locale with a
// callbackUrl; unverifiable sessions get the loading handler (503 by default).
func AdminGuard(loading fiber.Handler) fiber.Handler {
	if loading == nil {
		loading = func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusServiceUnavailable).SendString("Loading...")
		}
	}
	return func(c *fiber.Ctx) error {
		p := c.Path()
		if !IsAdminPath(p) {
			return c.Next()
		}
		switch SessionFrom(c).Status {
		case StatusAuthenticated:
			return c.Next()
		case StatusLoading:
			return loading(c)
		default:
			target := "/" + LocaleFrom(c).String() + "/login?callbackUrl=" + url.QueryEscape(p)
			return c.Redirect(target, fiber.StatusFound)
		}
	}
}
