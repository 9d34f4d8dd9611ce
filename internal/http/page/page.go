// Package page serves the server-rendered site: public docs pages under /{locale}
// and the admin CMS behind the session guard.
package page

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"docsite/internal/auth"
	"docsite/internal/http/middleware"
	"docsite/internal/i18n"
	"docsite/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageNames lists the templates rendered on top of layout.html.
var pageNames = []string{
	"home", "doc", "search", "login", "notfound", "loading",
	"admin_list", "admin_form", "admin_settings",
}

// Config wires the page handlers.
type Config struct {
	Documents    service.DocumentService
	Credentials  service.CredentialService
	Sessions     *auth.Sessions
	Revoker      auth.TokenRevoker
	CookieName   string
	CookieSecure bool
	MaxUploads   int
	Logger       zerolog.Logger
}

// Pages renders HTML responses.
type Pages struct {
	cfg       Config
	log       zerolog.Logger
	templates map[string]*template.Template
}

// New parses the embedded templates.
func New(cfg Config) (*Pages, error) {
	if cfg.Revoker == nil {
		cfg.Revoker = auth.NoopRevoker{}
	}
	if cfg.MaxUploads <= 0 {
		cfg.MaxUploads = service.MaxUploadFiles
	}
	funcs := template.FuncMap{
		"date": func(t time.Time) string { return t.Format("2006-01-02") },
		"add":  func(a, b int) int { return a + b },
		"sub":  func(a, b int) int { return a - b },
	}

	p := &Pages{cfg: cfg, log: cfg.Logger.With().Str("component", "page").Logger(), templates: map[string]*template.Template{}}
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		p.templates[name] = t
	}
	return p, nil
}

// view is the data every template receives.
type view struct {
	Locale        i18n.Locale
	Locales       []i18n.Locale
	T             *i18n.Translations
	Title         string
	Path          string
	Current       string
	Authenticated bool
	UserName      string
	Data          any
}

func (p *Pages) newView(c *fiber.Ctx, title string, data any) view {
	l := middleware.LocaleFrom(c)
	s := middleware.SessionFrom(c)
	v := view{
		Locale:        l,
		Locales:       i18n.Supported(),
		T:             i18n.For(l),
		Title:         title,
		Path:          c.Path(),
		Current:       c.OriginalURL(),
		Authenticated: s.Status == middleware.StatusAuthenticated,
		Data:          data,
	}
	if s.Claims != nil {
		v.UserName = s.Claims.Name
	}
	return v
}

func (p *Pages) render(c *fiber.Ctx, status int, name, title string, data any) error {
	t, ok := p.templates[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", p.newView(c, title, data)); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

func tr(c *fiber.Ctx) *i18n.Translations {
	return i18n.For(middleware.LocaleFrom(c))
}

// localPath builds /{locale}/{parts...}.
func localPath(l i18n.Locale, parts ...string) string {
	return "/" + l.String() + strings.TrimSuffix("/"+strings.Join(parts, "/"), "/")
}

// safeCallback accepts only same-site absolute paths.
func safeCallback(raw, fallback string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, `\`) {
		return fallback
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	return raw
}

// Register mounts every page route. It must run after the API routes so that
// /{locale} patterns never shadow them.
func (p *Pages) Register(app *fiber.App) {
	get := func(path string, h fiber.Handler) { app.Get(path, localized(h)) }
	post := func(path string, h fiber.Handler) { app.Post(path, localized(h)) }

	get("/:locale", p.Home)
	get("/:locale/docs", p.DocsIndex)
	get("/:locale/docs/:slug", p.Doc)
	get("/:locale/search", p.Search)

	get("/:locale/login", p.LoginForm)
	post("/:locale/login", p.Login)
	post("/:locale/logout", p.Logout)

	get("/:locale/admin", p.AdminList)
	get("/:locale/admin/new", p.AdminNew)
	post("/:locale/admin/new", p.AdminCreate)
	get("/:locale/admin/edit/:id", p.AdminEdit)
	post("/:locale/admin/edit/:id", p.AdminUpdate)
	post("/:locale/admin/delete/:id", p.AdminDelete)
	get("/:locale/admin/settings", p.AdminSettings)
	post("/:locale/admin/settings", p.AdminChangePassword)

	get("/:locale/*", p.NotFound)
}

// localized skips to the next route unless the first path segment is a supported locale.
func localized(h fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !i18n.IsSupported(c.Params("locale")) {
			return c.Next()
		}
		return h(c)
	}
}
