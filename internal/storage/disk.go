package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// diskStorage keeps objects as files in one directory.
type diskStorage struct {
	fs afero.Fs
}

// NewDisk stores objects under dir on the OS filesystem, creating it when missing.
func NewDisk(dir string) (Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return NewDiskFs(afero.NewBasePathFs(osFs, dir)), nil
}

// NewDiskFs stores objects at the root of fsys.
func NewDiskFs(fsys afero.Fs) Storage {
	return &diskStorage{fs: fsys}
}

// Put writes to a temp file first and renames it into place once fully written.
func (d *diskStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	if !ValidKey(key) {
		return ObjectInfo{}, ErrInvalidKey
	}
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}

	tmp := TempPrefix + uuid.NewString() + ".tmp"
	f, err := d.fs.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("create temp file: %w", err)
	}
	n, err := io.Copy(f, r)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = d.fs.Remove(tmp)
		return ObjectInfo{}, fmt.Errorf("write object: %w", err)
	}
	if opt.Size >= 0 && opt.Size != n {
		_ = d.fs.Remove(tmp)
		return ObjectInfo{}, fmt.Errorf("write object: size mismatch: expected %d, wrote %d", opt.Size, n)
	}
	if err := d.fs.Rename(tmp, key); err != nil {
		_ = d.fs.Remove(tmp)
		return ObjectInfo{}, fmt.Errorf("commit object: %w", err)
	}

	st, err := d.fs.Stat(key)
	if err != nil {
		return ObjectInfo{}, err
	}
	return d.info(key, st, opt.ContentType), nil
}

func (d *diskStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	if !ValidKey(key) || IsTemp(key) {
		return nil, ObjectInfo{}, ErrObjectNotFound
	}
	f, err := d.fs.Open(key)
	if err != nil {
		return nil, ObjectInfo{}, mapNotExist(err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, err
	}
	if st.IsDir() {
		f.Close()
		return nil, ObjectInfo{}, ErrObjectNotFound
	}
	return f, d.info(key, st, ""), nil
}

func (d *diskStorage) Delete(ctx context.Context, key string) error {
	if !ValidKey(key) {
		return ErrInvalidKey
	}
	return mapNotExist(d.fs.Remove(key))
}

func (d *diskStorage) List(ctx context.Context) ([]ObjectInfo, error) {
	entries, err := afero.ReadDir(d.fs, "/")
	if err != nil {
		return nil, err
	}
	out := make([]ObjectInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		out = append(out, d.info(e.Name(), e, ""))
	}
	return out, nil
}

func (d *diskStorage) info(key string, st fs.FileInfo, contentType string) ObjectInfo {
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(key))
	}
	return ObjectInfo{
		Key:          key,
		Size:         st.Size(),
		ContentType:  contentType,
		LastModified: st.ModTime(),
	}
}

func mapNotExist(err error) error {
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return ErrObjectNotFound
	}
	return err
}
