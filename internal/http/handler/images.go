package handler

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"docsite/internal/http/middleware"
	"docsite/internal/model"
	"docsite/internal/service"
	"docsite/internal/storage"
)

const imageNotFound = "Image not found"

// ListImages returns one page of uploaded images, newest first.
//
// @Summary  List images
// @Tags     images
// @Param    page  query int false "page (default 1)"
// @Param    limit query int false "page size (1-100, default 20)"
// @Success  200 {object} service.ImageListResult
// @Failure  400 {object} errorPayload
// @Router   /api/images [get]
func ListImages(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, ok := pageFromQuery(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Invalid pagination parameters")
		}
		res, err := svc.List(c.UserContext(), page)
		if err != nil {
			return respondError(c, err, imageNotFound)
		}
		return c.JSON(res)
	}
}

// UploadImages stores the image parts of a multipart/form-data request (field name: files).
// Non-image parts are skipped; the response lists the images that were stored.
//
// @Summary  Upload images
// @Tags     images
// @Accept   multipart/form-data
// @Param    files formData file true "image files (up to 5)"
// @Success  201 {array} model.Image
// @Failure  400 {object} errorPayload
// @Router   /api/images [post]
func UploadImages(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := middleware.SessionFrom(c).Claims
		if claims == nil {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		}

		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "No files uploaded")
		}

		headers := form.File["files"]
		files := make([]service.UploadFile, 0, len(headers))
		for _, fh := range headers {
			files = append(files, uploadFile(fh))
		}

		images, err := svc.Upload(c.UserContext(), files, claims.UserID)
		if err != nil {
			return respondError(c, err, imageNotFound)
		}
		if images == nil {
			images = []model.Image{}
		}
		return c.Status(fiber.StatusCreated).JSON(images)
	}
}

func uploadFile(fh *multipart.FileHeader) service.UploadFile {
	return service.UploadFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Open: func() (io.ReadSeekCloser, error) {
			return fh.Open()
		},
	}
}

// DeleteImage removes an image row and then, best effort, its file.
//
// @Summary  Delete an image
// @Tags     images
// @Param    id query int true "image id"
// @Success  200 {object} map[string]bool
// @Failure  404 {object} errorPayload
// @Router   /api/images [delete]
func DeleteImage(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Query("id")
		if raw == "" {
			return writeError(c, fiber.StatusBadRequest, "ID_REQUIRED", "Image ID is required")
		}
		id, ok := parseID(raw)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return respondError(c, err, imageNotFound)
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// ServeUpload streams a stored image binary.
func ServeUpload(store storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("filename")
		if !storage.ValidKey(key) || storage.IsTemp(key) {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", imageNotFound)
		}

		rc, info, err := store.Get(c.UserContext(), key)
		if err != nil {
			if errors.Is(err, storage.ErrObjectNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", imageNotFound)
			}
			return err
		}

		if info.ContentType != "" {
			c.Set(fiber.HeaderContentType, info.ContentType)
		}
		c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")
		c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
		if info.Size > 0 {
			return c.SendStream(rc, int(info.Size))
		}
		return c.SendStream(rc)
	}
}
