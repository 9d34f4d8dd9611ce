package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsite/internal/config"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestDisk_PutGetDelete(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := NewDiskFs(fsys)
	ctx := context.Background()

	info, err := s.Put(ctx, "a.png", bytes.NewReader([]byte("pngdata")), PutObjectOptions{Size: 7, ContentType: "image/png"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), info.Size)
	assert.Equal(t, "image/png", info.ContentType)

	rc, got, err := s.Get(ctx, "a.png")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "pngdata", string(body))
	assert.Equal(t, "image/png", got.ContentType)

	require.NoError(t, s.Delete(ctx, "a.png"))
	_, _, err = s.Get(ctx, "a.png")
	assert.ErrorIs(t, err, ErrObjectNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "a.png"), ErrObjectNotFound)
}

func TestDisk_PutFailureLeavesNothing(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := NewDiskFs(fsys)
	ctx := context.Background()

	_, err := s.Put(ctx, "b.png", failingReader{}, PutObjectOptions{Size: -1})
	assert.Error(t, err)

	_, err = s.Put(ctx, "c.png", strings.NewReader("short"), PutObjectOptions{Size: 100})
	assert.Error(t, err)

	objs, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, objs)
}

func TestDisk_RejectsPathKeys(t *testing.T) {
	s := NewDiskFs(afero.NewMemMapFs())
	ctx := context.Background()

	for _, key := range []string{"", "..", "../etc/passwd", "dir/a.png", `dir\a.png`} {
		_, err := s.Put(ctx, key, strings.NewReader("x"), PutObjectOptions{Size: -1})
		assert.ErrorIs(t, err, ErrInvalidKey, key)
		_, _, err = s.Get(ctx, key)
		assert.ErrorIs(t, err, ErrObjectNotFound, key)
	}
}

func TestDisk_ListAndTempObjects(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := NewDiskFs(fsys)
	ctx := context.Background()

	_, err := s.Put(ctx, "a.jpg", strings.NewReader("x"), PutObjectOptions{Size: -1})
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fsys, TempPrefix+"stale.tmp", []byte("partial"), 0o644))

	objs, err := s.List(ctx)
	require.NoError(t, err)
	keys := make([]string, 0, len(objs))
	for _, o := range objs {
		keys = append(keys, o.Key)
	}
	assert.ElementsMatch(t, []string{"a.jpg", TempPrefix + "stale.tmp"}, keys)

	_, _, err = s.Get(ctx, TempPrefix+"stale.tmp")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestNewDisk_CreatesDirectory(t *testing.T) {
	dir := t.TempDir() + "/uploads"
	s, err := NewDisk(dir)
	require.NoError(t, err)

	_, err = s.Put(context.Background(), "x.gif", strings.NewReader("GIF89a"), PutObjectOptions{Size: 6})
	require.NoError(t, err)
	assert.FileExists(t, dir+"/x.gif")
}

func TestOpen(t *testing.T) {
	s, err := Open(config.StorageConfig{Driver: "disk", UploadDir: t.TempDir()}, config.MinIOConfig{})
	require.NoError(t, err)
	assert.NotNil(t, s)

	_, err = Open(config.StorageConfig{Driver: "minio"}, config.MinIOConfig{})
	assert.ErrorContains(t, err, "minio endpoint is required")

	_, err = Open(config.StorageConfig{Driver: "ftp"}, config.MinIOConfig{})
	assert.ErrorContains(t, err, "unsupported storage driver")
}
