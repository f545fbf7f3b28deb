package badger

import (
	"bytes"
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/oklog/ulid/v2"
	"github.com/poiesic/vitalis/core"
	"github.com/poiesic/vitalis/storage"
)

// RunRepository implements storage.RunRepository for BadgerDB.
// Runs live outside the dataset generations so the audit trail survives
// every overwrite.
type RunRepository struct {
	backend *Backend
}

var _ storage.RunRepository = (*RunRepository)(nil)

// NewRunRepository creates a new RunRepository.
func NewRunRepository(backend *Backend) *RunRepository {
	return &RunRepository{backend: backend}
}

// Close releases repository resources. The backend is owned by the caller.
func (r *RunRepository) Close() error {
	return nil
}

// AppendRun stores a new ingestion run record.
// Assigns a ULID if the run has no ID yet.
func (r *RunRepository) AppendRun(ctx context.Context, run *core.IngestionRun) error {
	if run.Id == "" {
		run.Id = ulid.Make().String()
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeRunKey(run.Id), storage.MarshalIngestionRun(run)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// UpdateRun overwrites an existing run record.
func (r *RunRepository) UpdateRun(ctx context.Context, run *core.IngestionRun) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRunKey(run.Id)
		if _, err := tx.Get(key); err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		if err := tx.Set(key, storage.MarshalIngestionRun(run)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetRun retrieves a run by its ULID.
func (r *RunRepository) GetRun(ctx context.Context, id string) (*core.IngestionRun, error) {
	var result *core.IngestionRun
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeRunKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			result, err = storage.UnmarshalIngestionRun(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListRuns retrieves up to limit runs, most recent first.
// ULID keys sort by creation time, so a reverse scan yields newest first.
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]*core.IngestionRun, error) {
	var results []*core.IngestionRun
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := []byte(runPrefix + ":")

		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek past the highest possible run key ("z" > any Crockford base32 digit).
		seekKey := []byte(runPrefix + ":" + "zzzzzzzzzzzzzzzzzzzzzzzzzz")

		for iter.Seek(seekKey); iter.Valid() && len(results) < limit; iter.Next() {
			key := iter.Item().Key()
			if !bytes.HasPrefix(key, prefix) {
				break
			}
			var run *core.IngestionRun
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				run, err = storage.UnmarshalIngestionRun(val)
				return err
			}); err != nil {
				return err
			}
			results = append(results, run)
		}
		return nil
	}, false)

	return results, err
}
