package ingestion

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeZip builds a zip archive with the given entry names, each
// holding its own name as content.
func writeZip(t *testing.T, path string, entries ...string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for _, name := range entries {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

// writeZipFromFile builds a zip archive holding one entry whose content
// is copied from an existing file.
func writeZipFromFile(t *testing.T, path, entryName, srcPath string) {
	t.Helper()
	content, err := os.ReadFile(srcPath)
	require.NoError(t, err)

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	entry, err := w.Create(entryName)
	require.NoError(t, err)
	_, err = entry.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func TestExtractPassesThroughBareDocument(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "export.xml")
	require.NoError(t, os.WriteFile(doc, []byte("<HealthData/>"), 0o644))

	got, cleanup, err := Extract(doc)
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, doc, got)
}

func TestExtractMissingDocument(t *testing.T) {
	_, cleanup, err := Extract(filepath.Join(t.TempDir(), "absent.xml"))
	defer cleanup()

	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
}

func TestExtractFromArchiveRoot(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "export.zip")
	writeZip(t, archive, "export.xml", "export_cda.xml")

	got, cleanup, err := Extract(archive)
	require.NoError(t, err)
	defer cleanup()

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "export.xml", string(content))
}

func TestExtractFromArchiveOneLevelDeep(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "export.zip")
	writeZip(t, archive, "apple_health_export/export.xml", "apple_health_export/workout-routes/route.gpx")

	got, cleanup, err := Extract(archive)
	require.NoError(t, err)
	defer cleanup()

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "apple_health_export/export.xml", string(content))
}

func TestExtractNoDocumentInArchive(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "export.zip")
	writeZip(t, archive, "readme.txt", "too/deep/export.xml")

	_, cleanup, err := Extract(archive)
	defer cleanup()

	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestExtractAmbiguousArchive(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "export.zip")
	writeZip(t, archive, "export.xml", "backup/export.xml")

	_, cleanup, err := Extract(archive)
	defer cleanup()

	assert.ErrorIs(t, err, ErrAmbiguousDocument)
}

func TestExtractCorruptArchive(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "export.zip")
	require.NoError(t, os.WriteFile(archive, []byte("not a zip"), 0o644))

	_, cleanup, err := Extract(archive)
	defer cleanup()

	assert.ErrorIs(t, err, ErrCorruptArchive)

	var extractErr *ExtractionError
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, archive, extractErr.Path)
}

func TestExtractCleanupRemovesScratch(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "export.zip")
	writeZip(t, archive, "export.xml")

	got, cleanup, err := Extract(archive)
	require.NoError(t, err)

	_, err = os.Stat(got)
	require.NoError(t, err)

	cleanup()

	_, err = os.Stat(got)
	assert.True(t, os.IsNotExist(err))
}
