package ingestion

import (
	"archive/zip"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// canonicalDocumentName is the data document inside an export bundle.
const canonicalDocumentName = "export.xml"

// Extract resolves an input path to the canonical data document.
//
// A .zip input is searched for exactly one canonical document at the
// archive root or one directory level deep; that entry is unpacked into
// a scratch directory. Any other input is assumed to already be the
// canonical document and is returned unchanged.
//
// The returned cleanup func removes the scratch directory and must be
// called exactly once; it is safe to call when no scratch was created.
// On error the scratch area has already been removed.
func Extract(input string) (string, func(), error) {
	noop := func() {}

	if strings.ToLower(filepath.Ext(input)) != ".zip" {
		if _, err := os.Stat(input); err != nil {
			return "", noop, &ExtractionError{Path: input, Err: err}
		}
		return input, noop, nil
	}

	archive, err := zip.OpenReader(input)
	if err != nil {
		return "", noop, &ExtractionError{Path: input, Err: ErrCorruptArchive}
	}
	defer archive.Close()

	var candidate *zip.File
	for _, f := range archive.File {
		if !isCanonicalEntry(f.Name) {
			continue
		}
		if candidate != nil {
			return "", noop, &ExtractionError{Path: input, Err: ErrAmbiguousDocument}
		}
		candidate = f
	}
	if candidate == nil {
		return "", noop, &ExtractionError{Path: input, Err: ErrNoDocument}
	}

	scratch, err := os.MkdirTemp("", "vitalis-extract-*")
	if err != nil {
		return "", noop, &ExtractionError{Path: input, Err: err}
	}
	cleanup := func() {
		if err := os.RemoveAll(scratch); err != nil {
			slog.Default().Warn("failed to remove scratch directory", "dir", scratch, "err", err)
		}
	}

	docPath := filepath.Join(scratch, canonicalDocumentName)
	if err := copyZipEntry(candidate, docPath); err != nil {
		cleanup()
		return "", noop, &ExtractionError{Path: input, Err: err}
	}

	return docPath, cleanup, nil
}

// isCanonicalEntry reports whether a zip entry is the canonical document
// at the root or exactly one directory level deep.
func isCanonicalEntry(name string) bool {
	// Zip entry names always use forward slashes.
	parts := strings.Split(strings.TrimSuffix(name, "/"), "/")
	if len(parts) == 0 || len(parts) > 2 {
		return false
	}
	return strings.EqualFold(parts[len(parts)-1], canonicalDocumentName)
}

func copyZipEntry(entry *zip.File, dst string) error {
	src, err := entry.Open()
	if err != nil {
		return ErrCorruptArchive
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return ErrCorruptArchive
	}
	return out.Close()
}
