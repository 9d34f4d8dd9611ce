package handler

import (
	"github.com/gofiber/fiber/v2"

	"docsite/internal/http/middleware"
	"docsite/internal/i18n"
	"docsite/internal/model"
	"docsite/internal/service"
)

const documentNotFound = "Document not found"

// ListDocuments returns one page of documents.
//
// @Summary  List documents
// @Tags     documents
// @Param    page          query int    false "page (default 1)"
// @Param    limit         query int    false "page size (1-100, default 20)"
// @Param    language      query string false "locale filter"
// @Param    publishedOnly query bool   false "only published documents (always true without a session)"
// @Success  200 {object} service.DocumentListResult
// @Failure  400 {object} errorPayload
// @Router   /api/documents [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, ok := pageFromQuery(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Invalid pagination parameters")
		}
		// Drafts are listed for signed-in callers only.
		publishedOnly := c.QueryBool("publishedOnly", false) ||
			middleware.SessionFrom(c).Status != middleware.StatusAuthenticated
		res, err := svc.List(c.UserContext(), service.DocumentListQuery{
			Language:      c.Query("language"),
			PublishedOnly: publishedOnly,
			Page:          page,
		})
		if err != nil {
			return respondError(c, err, documentNotFound)
		}
		return c.JSON(res)
	}
}

// CountDocuments returns total, published and unpublished counts.
//
// @Summary  Count documents
// @Tags     documents
// @Param    language query string false "locale filter"
// @Success  200 {object} model.DocumentCounts
// @Router   /api/documents/count [get]
func CountDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		counts, err := svc.Count(c.UserContext(), c.Query("language"))
		if err != nil {
			return respondError(c, err, documentNotFound)
		}
		return c.JSON(counts)
	}
}

// GetDocument looks a document up by numeric ID or, otherwise, by slug within the
// language given by ?language. Unpublished documents require a session.
//
// @Summary  Get a document
// @Tags     documents
// @Param    idOrSlug path  string true  "numeric id or slug"
// @Param    language query string false "locale used for slug lookups"
// @Success  200 {object} model.Document
// @Failure  401 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /api/documents/{idOrSlug} [get]
func GetDocument(svc service.DocumentService, def i18n.Locale) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("idOrSlug")

		var (
			doc *model.Document
			err error
		)
		if id, ok := parseID(key); ok {
			doc, err = svc.Get(c.UserContext(), id)
		} else {
			doc, err = svc.GetBySlug(c.UserContext(), key, i18n.ParseOr(c.Query("language"), def))
		}
		if err != nil {
			return respondError(c, err, documentNotFound)
		}

		if !doc.Published {
			switch middleware.SessionFrom(c).Status {
			case middleware.StatusAuthenticated:
			case middleware.StatusLoading:
				return writeError(c, fiber.StatusServiceUnavailable, "SESSION_UNVERIFIABLE", "Session cannot be verified right now")
			default:
				return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
			}
		}
		return c.JSON(doc)
	}
}

// CreateDocument stores a new document.
//
// @Summary  Create a document
// @Tags     documents
// @Accept   json
// @Param    body body service.DocumentInput true "document"
// @Success  201 {object} model.Document
// @Failure  400 {object} errorPayload
// @Failure  409 {object} errorPayload
// @Router   /api/documents [post]
func CreateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.DocumentInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		}
		doc, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return respondError(c, err, documentNotFound)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// UpdateDocument replaces the editable fields of a document. Its language is kept.
//
// @Summary  Update a document
// @Tags     documents
// @Accept   json
// @Param    id   path int                   true "document id"
// @Param    body body service.DocumentInput true "document"
// @Success  200 {object} model.Document
// @Failure  404 {object} errorPayload
// @Failure  409 {object} errorPayload
// @Router   /api/documents/{id} [put]
func UpdateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c.Params("id"))
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var in service.DocumentInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		}
		doc, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return respondError(c, err, documentNotFound)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument removes a document permanently.
//
// @Summary  Delete a document
// @Tags     documents
// @Param    id path int true "document id"
// @Success  200 {object} map[string]bool
// @Failure  404 {object} errorPayload
// @Router   /api/documents/{id} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c.Params("id"))
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return respondError(c, err, documentNotFound)
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// SearchDocuments runs a published-only search.
//
// @Summary  Search documents
// @Tags     documents
// @Param    q        query string false "search text"
// @Param    language query string false "locale filter"
// @Success  200 {array} model.SearchResult
// @Router   /api/search [get]
func SearchDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		results, err := svc.Search(c.UserContext(), c.Query("q"), c.Query("language"))
		if err != nil {
			return respondError(c, err, documentNotFound)
		}
		if results == nil {
			results = []model.SearchResult{}
		}
		return c.JSON(results)
	}
}
