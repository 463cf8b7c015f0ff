package main

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/pierrec/lz4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var payload = []byte("SQLite format 3\x00 registry payload")

func TestUnpackArchivePlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.db")
	require.NoError(t, os.WriteFile(path, payload, 0644))

	got, cleanup, err := unpackArchive(path, t.TempDir())
	require.NoError(t, err)
	cleanup()

	assert.Equal(t, path, got)
	_, err = os.Stat(path)
	assert.NoError(t, err, "plain files are never removed")
}

func TestUnpackArchiveZip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "registry.zip")
	f, err := os.Create(archive)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("readme.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("hi"))
	require.NoError(t, err)
	w, err = zw.Create("data/registry.db")
	require.NoError(t, err)
	_, err = w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	assertUnpacked(t, archive)
}

func TestUnpackArchiveEmptyZip(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "empty.zip")
	f, err := os.Create(archive)
	require.NoError(t, err)
	require.NoError(t, zip.NewWriter(f).Close())
	require.NoError(t, f.Close())

	_, _, err = unpackArchive(archive, t.TempDir())
	assert.Error(t, err)
}

func TestUnpackArchiveGzip(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "registry.db")
	require.NoError(t, os.WriteFile(plain, payload, 0644))
	gzipFile(t, plain, plain+".gz")

	assertUnpacked(t, plain+".gz")
}

func TestUnpackArchiveLz4(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "registry.db.lz4")
	f, err := os.Create(archive)
	require.NoError(t, err)
	zw := lz4.NewWriter(f)
	_, err = zw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	assertUnpacked(t, archive)
}

func TestUnpackArchiveCorruptGzip(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "broken.db.gz")
	require.NoError(t, os.WriteFile(archive, []byte("not gzip"), 0644))

	_, _, err := unpackArchive(archive, t.TempDir())
	assert.Error(t, err)
}

func assertUnpacked(t *testing.T, archive string) {
	t.Helper()
	dest := t.TempDir()

	path, cleanup, err := unpackArchive(archive, dest)
	require.NoError(t, err)
	assert.Equal(t, dest, filepath.Dir(path))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	cleanup()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(archive)
	assert.NoError(t, err, "archive is kept")
}
