package ingestion

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocateExport scans candidate directories for a health export archive
// or a bare canonical document. Candidates are files whose name contains
// "export" or "health" (case-insensitive) with a .zip or .xml extension.
// Among matches the most recently modified file wins.
//
// Absence is not an error: ingestion is optional at startup. The second
// return value reports whether a candidate was found.
func LocateExport(dirs ...string) (string, bool) {
	logger := slog.Default().With("component", "archive-locator")

	var best string
	var bestTime time.Time

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			// Missing or unreadable candidate directories are normal.
			logger.Debug("skipping candidate directory", "dir", dir, "err", err)
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if !matchesExportName(entry.Name()) {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				logger.Debug("skipping unreadable candidate", "name", entry.Name(), "err", err)
				continue
			}
			if best == "" || info.ModTime().After(bestTime) {
				best = filepath.Join(dir, entry.Name())
				bestTime = info.ModTime()
			}
		}
	}

	if best == "" {
		return "", false
	}
	logger.Debug("located export candidate", "path", best, "modified", bestTime)
	return best, true
}

// matchesExportName reports whether a file name looks like a health export.
func matchesExportName(name string) bool {
	lower := strings.ToLower(name)

	switch filepath.Ext(lower) {
	case ".zip", ".xml":
	default:
		return false
	}

	return strings.Contains(lower, "export") || strings.Contains(lower, "health")
}
