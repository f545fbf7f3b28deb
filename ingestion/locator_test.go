package ingestion

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touchFile(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestLocateExportFindsNewestCandidate(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	touchFile(t, dir, "export.zip", now.Add(-2*time.Hour))
	want := touchFile(t, dir, "health_export.xml", now.Add(-1*time.Hour))
	touchFile(t, dir, "notes.txt", now)

	got, ok := LocateExport(dir)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestLocateExportIgnoresNonMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	touchFile(t, dir, "backup.zip", now)
	touchFile(t, dir, "export.csv", now)

	_, ok := LocateExport(dir)
	assert.False(t, ok)
}

func TestLocateExportSkipsMissingDirectories(t *testing.T) {
	dir := t.TempDir()
	want := touchFile(t, dir, "export.zip", time.Now())

	got, ok := LocateExport(filepath.Join(dir, "does-not-exist"), dir)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestLocateExportNoCandidates(t *testing.T) {
	_, ok := LocateExport(t.TempDir())
	assert.False(t, ok)
}
