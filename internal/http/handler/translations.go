package handler

import (
	"github.com/gofiber/fiber/v2"

	"docsite/internal/i18n"
)

// GetTranslations returns the UI strings of ?locale, falling back to def for
// unknown codes.
//
// @Summary  UI translations
// @Tags     i18n
// @Param    locale query string false "locale code"
// @Success  200 {object} i18n.Translations
// @Router   /api/translations [get]
func GetTranslations(def i18n.Locale) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(i18n.For(i18n.ParseOr(c.Query("locale"), def)))
	}
}
