package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrHealthRepositoryRequired is returned when a health repository is not provided.
	ErrHealthRepositoryRequired = errors.New("health repository required")

	// ErrRunRepositoryRequired is returned when a run repository is not provided.
	ErrRunRepositoryRequired = errors.New("run repository required")

	// ErrIngestionInProgress is returned when a second run is started while
	// one is active. Concurrent runs are rejected, never queued.
	ErrIngestionInProgress = errors.New("ingestion already in progress")

	// ErrNoDocument indicates the archive holds no canonical document.
	ErrNoDocument = errors.New("no canonical document found")

	// ErrAmbiguousDocument indicates the archive holds more than one
	// candidate canonical document.
	ErrAmbiguousDocument = errors.New("multiple canonical documents found")

	// ErrCorruptArchive indicates the export bundle could not be read.
	ErrCorruptArchive = errors.New("corrupt or unreadable archive")
)

// ExtractionError is a fatal source-document failure. The run aborts and
// the store is left untouched.
type ExtractionError struct {
	Path string // The archive or document that failed
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// DatabaseError is a fatal store failure during staging or commit. The
// previously committed dataset remains authoritative.
type DatabaseError struct {
	Op  string // "stage" or "commit"
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database %s failed: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}
