package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"docsite/internal/model"
	"docsite/internal/repository"
	"docsite/internal/storage"
)

// MaxUploadFiles is the default per-request upload limit.
const MaxUploadFiles = 5

// imageFormats maps the decoder's format name to the stored extension and type.
// Stored keys never take the client's extension.
var imageFormats = map[string]struct{ ext, mime string }{
	"png":  {".png", "image/png"},
	"jpeg": {".jpg", "image/jpeg"},
	"gif":  {".gif", "image/gif"},
	"webp": {".webp", "image/webp"},
	"bmp":  {".bmp", "image/bmp"},
	"tiff": {".tiff", "image/tiff"},
}

// UploadFile is one file of a multipart upload.
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadSeekCloser, error)
}

// ImageListResult is the service-level DTO for paginated images.
type ImageListResult struct {
	Images     []model.Image `json:"images"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
}

// ReconcileReport describes what a reconciliation pass found and did.
type ReconcileReport struct {
	RemovedOrphans []string `json:"removed_orphans"`
	RemovedTemp    []string `json:"removed_temp"`
	KeptRecent     []string `json:"kept_recent"`
	MissingFiles   []string `json:"missing_files"`
}

// ImageService defines the use cases for uploaded images.
type ImageService interface {
	List(ctx context.Context, p Page) (*ImageListResult, error)

	// Upload stores every image among files and returns the created rows.
	// Non-image files and images whose header cannot be decoded are skipped.
	Upload(ctx context.Context, files []UploadFile, uploadedBy int64) ([]model.Image, error)

	// Delete removes the row, then the binary. A failed binary removal is only logged.
	Delete(ctx context.Context, id int64) error

	// Reconcile removes stored binaries without a row once they are older than grace
	// and reports rows whose binary is gone.
	Reconcile(ctx context.Context, grace time.Duration) (*ReconcileReport, error)
}

type imageService struct {
	repo     repository.ImageRepository
	store    storage.Storage
	maxFiles int
	log      zerolog.Logger
	now      func() time.Time
}

// NewImageService constructs a new ImageService.
func NewImageService(repo repository.ImageRepository, store storage.Storage, maxFiles int, log zerolog.Logger) ImageService {
	if maxFiles <= 0 {
		maxFiles = MaxUploadFiles
	}
	return &imageService{
		repo:     repo,
		store:    store,
		maxFiles: maxFiles,
		log:      log.With().Str("component", "images").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *imageService) List(ctx context.Context, p Page) (*ImageListResult, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	res, err := s.repo.List(ctx, p.query())
	if err != nil {
		return nil, err
	}
	return &ImageListResult{
		Images:     res.Items,
		Total:      res.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages(res.Total, p.Limit),
	}, nil
}

// Upload writes each binary before inserting its row and removes the binary when
// the insert fails. The file count is checked before anything is read.
func (s *imageService) Upload(ctx context.Context, files []UploadFile, uploadedBy int64) ([]model.Image, error) {
	if len(files) == 0 {
		return nil, invalid("No files uploaded")
	}
	if len(files) > s.maxFiles {
		return nil, invalid("You can only upload up to %d files at once", s.maxFiles)
	}

	out := make([]model.Image, 0, len(files))
	for _, f := range files {
		img, err := s.uploadOne(ctx, f, uploadedBy)
		if err != nil {
			return out, err
		}
		if img != nil {
			out = append(out, *img)
		}
	}
	return out, nil
}

func (s *imageService) uploadOne(ctx context.Context, f UploadFile, uploadedBy int64) (*model.Image, error) {
	r, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %q: %w", f.Filename, err)
	}
	defer r.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read upload %q: %w", f.Filename, err)
	}
	contentType := f.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(head[:n])
	}
	if !strings.HasPrefix(contentType, "image/") {
		s.log.Debug().Str("filename", f.Filename).Str("content_type", contentType).Msg("skipping non-image upload")
		return nil, nil
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload %q: %w", f.Filename, err)
	}
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		s.log.Warn().Err(err).Str("filename", f.Filename).Str("content_type", contentType).Msg("skipping undecodable image")
		return nil, nil
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload %q: %w", f.Filename, err)
	}

	kind, ok := imageFormats[format]
	if !ok {
		s.log.Warn().Str("filename", f.Filename).Str("format", format).Msg("skipping unsupported image format")
		return nil, nil
	}
	contentType = kind.mime
	key := uuid.NewString() + kind.ext
	size := f.Size
	if size <= 0 {
		size = -1
	}

	obj, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata:    map[string]string{"original-filename": f.Filename},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	var by *int64
	if uploadedBy > 0 {
		by = &uploadedBy
	}
	stored, err := s.repo.Create(ctx, &model.Image{
		Filename:         key,
		OriginalFilename: f.Filename,
		FilePath:         "/uploads/" + key,
		FileSize:         obj.Size,
		Width:            cfg.Width,
		Height:           cfg.Height,
		MimeType:         contentType,
		UploadedBy:       by,
		CreatedAt:        s.now(),
	})
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *imageService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrIDRequired
	}
	img, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	if err := s.store.Delete(ctx, img.Filename); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		s.log.Error().Err(err).Int64("image_id", id).Str("filename", img.Filename).Msg("failed to delete image file")
	}
	return nil
}

func (s *imageService) Reconcile(ctx context.Context, grace time.Duration) (*ReconcileReport, error) {
	names, err := s.repo.Filenames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list image rows: %w", err)
	}
	objects, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stored images: %w", err)
	}

	rows := make(map[string]bool, len(names))
	for _, n := range names {
		rows[n] = true
	}
	stored := make(map[string]bool, len(objects))
	report := &ReconcileReport{}
	cutoff := s.now().Add(-grace)

	for _, obj := range objects {
		stored[obj.Key] = true
		if rows[obj.Key] {
			continue
		}
		if obj.LastModified.After(cutoff) {
			report.KeptRecent = append(report.KeptRecent, obj.Key)
			continue
		}
		if err := s.store.Delete(ctx, obj.Key); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
			return report, fmt.Errorf("remove %s: %w", obj.Key, err)
		}
		if storage.IsTemp(obj.Key) {
			report.RemovedTemp = append(report.RemovedTemp, obj.Key)
		} else {
			report.RemovedOrphans = append(report.RemovedOrphans, obj.Key)
		}
		s.log.Info().Str("key", obj.Key).Msg("removed unreferenced image file")
	}

	for _, n := range names {
		if !stored[n] {
			report.MissingFiles = append(report.MissingFiles, n)
			s.log.Warn().Str("filename", n).Msg("image row has no stored file")
		}
	}
	return report, nil
}
