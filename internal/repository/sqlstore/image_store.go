package sqlstore

import (
	"context"
	"database/sql"

	"docsite/internal/model"
	"docsite/internal/repository"
)

// ImageStore is a database/sql implementation of repository.ImageRepository.
type ImageStore struct {
	db *sql.DB
}

func NewImageStore(db *sql.DB) *ImageStore {
	return &ImageStore{db: db}
}

var _ repository.ImageRepository = (*ImageStore)(nil)

const imageColumns = `id, filename, original_filename, file_path, file_size, width, height, mime_type, uploaded_by, created_at`

func scanImage(s rowScanner) (*model.Image, error) {
	var img model.Image
	if err := s.Scan(
		&img.ID,
		&img.Filename,
		&img.OriginalFilename,
		&img.FilePath,
		&img.FileSize,
		&img.Width,
		&img.Height,
		&img.MimeType,
		&img.UploadedBy,
		&img.CreatedAt,
	); err != nil {
		return nil, err
	}
	img.URL = img.FilePath
	return &img, nil
}

// Create inserts an image metadata row and returns it with its generated ID.
func (r *ImageStore) Create(ctx context.Context, img *model.Image) (*model.Image, error) {
	const q = `
		INSERT INTO images (filename, original_filename, file_path, file_size, width, height, mime_type, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var id int64
	if err := r.db.QueryRowContext(ctx, q,
		img.Filename,
		img.OriginalFilename,
		img.FilePath,
		img.FileSize,
		img.Width,
		img.Height,
		img.MimeType,
		img.UploadedBy,
		img.CreatedAt,
	).Scan(&id); err != nil {
		if IsUniqueViolation(err) {
			return nil, repository.ErrConflict
		}
		return nil, err
	}

	out := *img
	out.ID = id
	out.URL = out.FilePath
	return &out, nil
}

func (r *ImageStore) FindByID(ctx context.Context, id int64) (*model.Image, error) {
	q := `SELECT ` + imageColumns + ` FROM images WHERE id = $1`
	return scanImage(r.db.QueryRowContext(ctx, q, id))
}

// List returns images newest first with LIMIT/OFFSET pagination and a total count.
func (r *ImageStore) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Image], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM images`).Scan(&total); err != nil {
		return nil, err
	}

	q := `SELECT ` + imageColumns + ` FROM images ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Image, 0)
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Image]{Items: items, Total: total}, nil
}

// Delete removes an image row and returns sql.ErrNoRows when nothing was deleted.
func (r *ImageStore) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ImageStore) Filenames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT filename FROM images`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
