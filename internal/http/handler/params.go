package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"docsite/internal/service"
)

// pageFromQuery reads page and limit, defaulting to 1 and 20. Bounds are checked by
// the service; non-numeric values are rejected here.
func pageFromQuery(c *fiber.Ctx) (service.Page, bool) {
	p := service.Page{Page: service.DefaultPage, Limit: service.DefaultLimit}
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, false
		}
		p.Page = n
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, false
		}
		p.Limit = n
	}
	return p, true
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
