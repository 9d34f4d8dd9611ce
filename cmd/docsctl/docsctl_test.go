package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsite/internal/config"
)

func TestResetDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.db")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path+"-wal", []byte("x"), 0o644))

	require.NoError(t, resetDatabase(config.DatabaseConfig{Driver: "sqlite3", Path: path}))
	assert.NoFileExists(t, path)
	assert.NoFileExists(t, path+"-wal")

	assert.Error(t, resetDatabase(config.DatabaseConfig{Driver: "postgres"}))
}

func TestSeedCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DB_PATH", filepath.Join(dir, "site.db"))
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCMD.SetOut(&out)
	rootCMD.SetArgs([]string{"seed", "--reset"})
	require.NoError(t, rootCMD.Execute())
	assert.Contains(t, out.String(), "admin created: true, documents created: 2")

	out.Reset()
	rootCMD.SetArgs([]string{"seed", "--reset=false"})
	require.NoError(t, rootCMD.Execute())
	assert.Contains(t, out.String(), "admin created: false, documents created: 0")
}

func TestReconcileCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DB_PATH", filepath.Join(dir, "site.db"))
	t.Setenv("STORAGE_DRIVER", "disk")
	t.Setenv("UPLOAD_DIR", filepath.Join(dir, "uploads"))
	t.Setenv("LOG_LEVEL", "error")

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "uploads"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "uploads", "orphan.png"), []byte("x"), 0o644))

	var out bytes.Buffer
	rootCMD.SetOut(&out)
	rootCMD.SetArgs([]string{"reconcile-images", "--grace", "0s"})
	require.NoError(t, rootCMD.Execute())
	assert.Contains(t, out.String(), `"orphan.png"`)
	assert.NoFileExists(t, filepath.Join(dir, "uploads", "orphan.png"))
}
