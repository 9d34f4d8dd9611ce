package handler

import (
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"docsite/internal/auth"
	"docsite/internal/http/middleware"
	"docsite/internal/model"
	"docsite/internal/service"
)

// MinPasswordLength applies to new passwords set through reset-password.
const MinPasswordLength = 8

// AuthHandler serves login, logout, session and password endpoints.
type AuthHandler struct {
	Credentials  service.CredentialService
	Sessions     *auth.Sessions
	Revoker      auth.TokenRevoker
	CookieName   string
	CookieSecure bool
	Log          zerolog.Logger
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token     string     `json:"token,omitempty"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      model.User `json:"user"`
}

type resetPasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Login verifies credentials and issues a session token in the body and an HttpOnly cookie.
//
// @Summary  Log in
// @Tags     auth
// @Accept   json
// @Param    body body loginRequest true "credentials"
// @Success  200 {object} sessionResponse
// @Failure  401 {object} errorPayload
// @Router   /api/auth/login [post]
func (h *AuthHandler) Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		}
		if req.Username == "" || req.Password == "" {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Username and password are required")
		}

		user, err := h.Credentials.Verify(c.UserContext(), req.Username, req.Password)
		if err != nil {
			h.Log.Info().
				Str("event", "login_failed").
				Str("request_id", middleware.RequestIDFrom(c)).
				Str("username", req.Username).
				Str("ip", c.IP()).
				Msg("login rejected")
			return respondError(c, err, "")
		}

		token, claims, err := h.Sessions.Issue(*user)
		if err != nil {
			return err
		}
		c.Cookie(h.cookie(token, claims.ExpiresAt.Time))

		h.Log.Info().
			Str("event", "login").
			Str("request_id", middleware.RequestIDFrom(c)).
			Int64("user_id", user.ID).
			Msg("session issued")

		return c.JSON(sessionResponse{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: *user})
	}
}

// Logout revokes the current token when a revocation store is configured and clears
// the session cookie. It succeeds without a session.
//
// @Summary  Log out
// @Tags     auth
// @Success  200 {object} map[string]bool
// @Router   /api/auth/logout [post]
func (h *AuthHandler) Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claims := middleware.SessionFrom(c).Claims; claims != nil && h.Revoker != nil {
			if err := h.Revoker.Revoke(c.UserContext(), claims.ID, claims.ExpiresAt.Time); err != nil {
				h.Log.Warn().
					Err(err).
					Str("request_id", middleware.RequestIDFrom(c)).
					Msg("failed to revoke session token")
			}
		}
		c.Cookie(h.cookie("", time.Unix(0, 0)))
		return c.JSON(fiber.Map{"success": true})
	}
}

// Session returns the user behind the current session.
//
// @Summary  Current session
// @Tags     auth
// @Success  200 {object} sessionResponse
// @Failure  401 {object} errorPayload
// @Router   /api/auth/session [get]
func (h *AuthHandler) Session() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := middleware.SessionFrom(c).Claims
		if claims == nil {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		}
		return c.JSON(sessionResponse{
			ExpiresAt: claims.ExpiresAt.Time,
			User:      model.User{ID: claims.UserID, Username: claims.Username, Name: claims.Name},
		})
	}
}

// ResetPassword changes the caller's password.
//
// @Summary  Change password
// @Tags     auth
// @Accept   json
// @Param    body body resetPasswordRequest true "passwords"
// @Success  200 {object} map[string]string
// @Failure  400 {object} errorPayload
// @Router   /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := middleware.SessionFrom(c).Claims
		if claims == nil {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		}

		var req resetPasswordRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		}
		if req.CurrentPassword == "" || req.NewPassword == "" {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Current password and new password are required")
		}
		if utf8.RuneCountInString(req.NewPassword) < MinPasswordLength {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "New password must be at least 8 characters long")
		}

		msg, err := h.Credentials.UpdatePassword(c.UserContext(), claims.UserID, req.CurrentPassword, req.NewPassword)
		if err != nil {
			return respondError(c, err, "")
		}
		return c.JSON(fiber.Map{"message": msg})
	}
}

func (h *AuthHandler) cookie(value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     h.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
