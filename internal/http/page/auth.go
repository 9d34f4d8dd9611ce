package page

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"docsite/internal/http/middleware"
	"docsite/internal/service"
)

type loginView struct {
	Username    string
	CallbackURL string
	Error       string
}

func (p *Pages) callback(c *fiber.Ctx, raw string) string {
	return safeCallback(raw, localPath(middleware.LocaleFrom(c), "admin"))
}

// LoginForm renders the sign-in form. Signed-in users go straight to the callback.
func (p *Pages) LoginForm(c *fiber.Ctx) error {
	cb := p.callback(c, c.Query("callbackUrl"))
	if middleware.SessionFrom(c).Status == middleware.StatusAuthenticated {
		return c.Redirect(cb, fiber.StatusFound)
	}
	return p.render(c, fiber.StatusOK, "login", tr(c).AdminLogin, loginView{CallbackURL: cb})
}

// Login verifies the submitted credentials and sets the session cookie.
func (p *Pages) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	form := loginView{Username: username, CallbackURL: p.callback(c, c.FormValue("callbackUrl"))}

	if username == "" || password == "" {
		form.Error = tr(c).FieldsRequired
		return p.render(c, fiber.StatusBadRequest, "login", tr(c).AdminLogin, form)
	}

	user, err := p.cfg.Credentials.Verify(c.UserContext(), username, password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		p.log.Info().
			Str("event", "login_failed").
			Str("request_id", middleware.RequestIDFrom(c)).
			Str("username", username).
			Msg("login rejected")
		form.Error = tr(c).InvalidCredentials
		return p.render(c, fiber.StatusUnauthorized, "login", tr(c).AdminLogin, form)
	}
	if err != nil {
		p.log.Error().Err(err).Str("request_id", middleware.RequestIDFrom(c)).Msg("login failed")
		form.Error = tr(c).LoginError
		return p.render(c, fiber.StatusInternalServerError, "login", tr(c).AdminLogin, form)
	}

	token, claims, err := p.cfg.Sessions.Issue(*user)
	if err != nil {
		return err
	}
	c.Cookie(p.sessionCookie(token, claims.ExpiresAt.Time))
	return c.Redirect(form.CallbackURL, fiber.StatusSeeOther)
}

// Logout revokes the session when possible, clears the cookie and returns home.
func (p *Pages) Logout(c *fiber.Ctx) error {
	if claims := middleware.SessionFrom(c).Claims; claims != nil {
		if err := p.cfg.Revoker.Revoke(c.UserContext(), claims.ID, claims.ExpiresAt.Time); err != nil {
			p.log.Warn().Err(err).Str("request_id", middleware.RequestIDFrom(c)).Msg("failed to revoke session token")
		}
	}
	c.Cookie(p.sessionCookie("", time.Unix(0, 0)))
	return c.Redirect(localPath(middleware.LocaleFrom(c)), fiber.StatusSeeOther)
}

func (p *Pages) sessionCookie(value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     p.cfg.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   p.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
