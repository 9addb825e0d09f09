package zipstore

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tempResidue lists leftover scratch files from interrupted saves.
func tempResidue(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".zipstore-*"))
	require.NoError(t, err)
	return matches
}

func TestSave_WritesReadableArchive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "archive.zip")
	entries := []Entry{
		{Name: "a.txt", Data: []byte("hi")},
		{Name: "b.txt", Data: []byte("bye")},
	}

	require.NoError(t, Save(context.Background(), target, entries))

	zr, err := zip.OpenReader(target)
	require.NoError(t, err)
	defer zr.Close()
	require.Len(t, zr.File, 2)

	for i, e := range entries {
		f := zr.File[i]
		assert.Equal(t, e.Name, f.Name)

		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		assert.Equal(t, e.Data, content)
	}

	assert.Empty(t, tempResidue(t, dir))
}

func TestSave_Empty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "sub", "archive.zip")

	err := Save(context.Background(), target, nil)
	require.ErrorIs(t, err, ErrEmptyArchive)

	// A refused save leaves no file and no directory behind.
	assert.NoFileExists(t, target)
	assert.NoDirExists(t, filepath.Join(dir, "sub"))
}

func TestSave_CreatesParentDirs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "deep", "nested", "archive.zip")

	err := Save(context.Background(), target, []Entry{{Name: "a.txt", Data: []byte("hi")}})
	require.NoError(t, err)
	assert.FileExists(t, target)
}

func TestSave_OverwritesExisting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "archive.zip")
	require.NoError(t, os.WriteFile(target, []byte("not a zip"), 0o600))

	err := Save(context.Background(), target, []Entry{{Name: "a.txt", Data: []byte("hi")}})
	require.NoError(t, err)

	zr, err := zip.OpenReader(target)
	require.NoError(t, err)
	defer zr.Close()
	require.Len(t, zr.File, 1)
	assert.Equal(t, "a.txt", zr.File[0].Name)
}

func TestSave_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	target := filepath.Join(dir, "archive.zip")

	err := Save(ctx, target, []Entry{{Name: "a.txt", Data: []byte("hi")}})
	require.ErrorIs(t, err, context.Canceled)

	// An interrupted save leaves the destination untouched and cleans
	// up its scratch file.
	assert.NoFileExists(t, target)
	assert.Empty(t, tempResidue(t, dir))
}

func TestSave_Logger(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	dir := t.TempDir()
	target := filepath.Join(dir, "archive.zip")

	err := Save(context.Background(), target, []Entry{{Name: "a.txt", Data: []byte("hi")}}, WithLogger(logger))
	require.NoError(t, err)

	out := logBuf.String()
	assert.Contains(t, out, "saving archive")
	assert.Contains(t, out, "archive saved")
}
