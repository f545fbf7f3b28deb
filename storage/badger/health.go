package badger

import (
	"bytes"
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/oklog/ulid/v2"
	"github.com/poiesic/vitalis/core"
	"github.com/poiesic/vitalis/storage"
)

// HealthRepository implements storage.HealthRepository for BadgerDB.
//
// The committed dataset lives under a generation prefix; the meta:active
// key names the generation readers should see. Staging writes a fresh
// generation and commits by flipping that pointer in a single
// transaction, so readers never observe a mix of two source documents.
type HealthRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.HealthRepository = (*HealthRepository)(nil)

// NewHealthRepository creates a new HealthRepository.
func NewHealthRepository(backend *Backend) (*HealthRepository, error) {
	if backend == nil {
		return nil, storage.ErrStorageClosed
	}
	return &HealthRepository{
		backend: backend,
		logger:  slog.Default().With("component", "health-repository"),
	}, nil
}

// Close releases repository resources. The backend is owned by the caller.
func (r *HealthRepository) Close() error {
	return nil
}

// RecordsByType retrieves records of one metric type within a time range.
func (r *HealthRepository) RecordsByType(ctx context.Context, metricType string, start, end time.Time) ([]*core.HealthRecord, error) {
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}

	var results []*core.HealthRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		gen, err := activeGeneration(tx)
		if err != nil {
			return err
		}
		if gen == "" {
			return nil
		}

		startKey := makePartialRecordTypeKey(gen, metricType, start)
		endKey := makePartialRecordTypeKey(gen, metricType, end)
		prefix := recordTypeIndexPrefix(gen, metricType)

		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if slices.Compare(key, endKey) >= 0 {
				break
			}

			record, err := r.readIndexedRecord(tx, gen, iter.Item())
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)

	return results, err
}

// LatestRecord retrieves the most recent record of a metric type.
func (r *HealthRepository) LatestRecord(ctx context.Context, metricType string) (*core.HealthRecord, error) {
	var result *core.HealthRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		gen, err := activeGeneration(tx)
		if err != nil {
			return err
		}
		if gen == "" {
			return storage.ErrNotFound
		}

		prefix := recordTypeIndexPrefix(gen, metricType)

		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek past the last possible key for this type, then step back.
		seekKey := makePartialRecordTypeKey(gen, metricType,
			time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))

		for iter.Seek(seekKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if !bytes.HasPrefix(key, prefix) {
				break
			}
			result, err = r.readIndexedRecord(tx, gen, iter.Item())
			if err != nil {
				return err
			}
			if result != nil {
				return nil
			}
		}
		return storage.ErrNotFound
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecentWorkouts retrieves up to limit workouts, most recent first.
func (r *HealthRepository) RecentWorkouts(ctx context.Context, limit int) ([]*core.Workout, error) {
	var results []*core.Workout
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		gen, err := activeGeneration(tx)
		if err != nil {
			return err
		}
		if gen == "" {
			return nil
		}

		prefix := []byte(workoutDatePrefix + ":" + gen + ":")

		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		seekKey := makePartialWorkoutDateKey(gen,
			time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))

		for iter.Seek(seekKey); iter.Valid() && len(results) < limit; iter.Next() {
			key := iter.Item().Key()
			if !bytes.HasPrefix(key, prefix) {
				break
			}

			workout, err := r.readIndexedWorkout(tx, gen, iter.Item())
			if err != nil {
				return err
			}
			if workout != nil {
				results = append(results, workout)
			}
		}
		return nil
	}, false)

	return results, err
}

// WorkoutsByRange retrieves workouts within a time range, oldest first.
func (r *HealthRepository) WorkoutsByRange(ctx context.Context, start, end time.Time) ([]*core.Workout, error) {
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}

	var results []*core.Workout
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		gen, err := activeGeneration(tx)
		if err != nil {
			return err
		}
		if gen == "" {
			return nil
		}

		startKey := makePartialWorkoutDateKey(gen, start)
		endKey := makePartialWorkoutDateKey(gen, end)

		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(workoutDatePrefix + ":" + gen + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if slices.Compare(key, endKey) >= 0 {
				break
			}

			workout, err := r.readIndexedWorkout(tx, gen, iter.Item())
			if err != nil {
				return err
			}
			if workout != nil {
				results = append(results, workout)
			}
		}
		return nil
	}, false)

	return results, err
}

// MetricTypeCounts returns the number of committed records per metric type.
func (r *HealthRepository) MetricTypeCounts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		gen, err := activeGeneration(tx)
		if err != nil {
			return err
		}
		if gen == "" {
			return nil
		}

		prefix := []byte(recordTypePrefix + ":" + gen + ":")

		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			rest := key[len(prefix):]
			sep := bytes.IndexByte(rest, 0)
			if sep < 0 {
				continue
			}
			counts[string(rest[:sep])]++
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// Counts returns the committed record and workout totals.
func (r *HealthRepository) Counts(ctx context.Context) (int, int, error) {
	var records, workouts int
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		gen, err := activeGeneration(tx)
		if err != nil {
			return err
		}
		if gen == "" {
			return nil
		}

		records, err = countKeys(tx, []byte(recordPrefix+":"+gen+":"))
		if err != nil {
			return err
		}
		workouts, err = countKeys(tx, []byte(workoutPrefix+":"+gen+":"))
		return err
	}, false)
	return records, workouts, err
}

// NewStaging opens the write path for the next dataset generation.
func (r *HealthRepository) NewStaging(ctx context.Context) (storage.Staging, error) {
	if err := r.purgeStaleGenerations(); err != nil {
		return nil, err
	}

	gen := ulid.Make().String()
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeGenerationKey(gen), []byte{}); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("opened staging generation", "generation", gen)
	return &staging{repo: r, gen: gen}, nil
}

// purgeStaleGenerations removes every registered generation except the
// committed one. Stale generations are left behind when a run crashes
// between staging and commit.
func (r *HealthRepository) purgeStaleGenerations() error {
	var active string
	var stale []string

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		active, err = activeGeneration(tx)
		if err != nil {
			return err
		}

		prefix := []byte(generationPrefix + ":")
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			gen := string(iter.Item().Key()[len(prefix):])
			if gen != active {
				stale = append(stale, gen)
			}
		}
		return nil
	}, false)
	if err != nil {
		return err
	}

	for _, gen := range stale {
		r.logger.Warn("purging stale dataset generation", "generation", gen)
		if err := r.backend.DeletePrefixes(generationDataPrefixes(gen)...); err != nil {
			return err
		}
	}
	return nil
}

// readIndexedRecord resolves an index entry to its full record.
func (r *HealthRepository) readIndexedRecord(tx *badger.Txn, gen string, item *badger.Item) (*core.HealthRecord, error) {
	var id core.ID
	if err := item.Value(func(val []byte) error {
		var err error
		id, err = storage.UnmarshalID(val)
		return err
	}); err != nil {
		return nil, err
	}
	return readRecord(tx, makeRecordKey(gen, id))
}

// readIndexedWorkout resolves an index entry to its full workout.
func (r *HealthRepository) readIndexedWorkout(tx *badger.Txn, gen string, item *badger.Item) (*core.Workout, error) {
	var id core.ID
	if err := item.Value(func(val []byte) error {
		var err error
		id, err = storage.UnmarshalID(val)
		return err
	}); err != nil {
		return nil, err
	}
	return readWorkout(tx, makeWorkoutKey(gen, id))
}

func readRecord(tx *badger.Txn, key []byte) (*core.HealthRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}
	var record *core.HealthRecord
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalHealthRecord(val)
		return err
	})
	return record, err
}

func readWorkout(tx *badger.Txn, key []byte) (*core.Workout, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}
	var workout *core.Workout
	err = item.Value(func(val []byte) error {
		var err error
		workout, err = storage.UnmarshalWorkout(val)
		return err
	})
	return workout, err
}

func countKeys(tx *badger.Txn, prefix []byte) (int, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	count := 0
	for iter.Seek(prefix); iter.Valid(); iter.Next() {
		count++
	}
	return count, nil
}

// staging implements storage.Staging on top of a pending generation.
type staging struct {
	repo *HealthRepository
	gen  string

	mu     sync.Mutex
	closed bool
}

var _ storage.Staging = (*staging)(nil)

// StageRecords writes records into the pending generation.
// Each call is its own transaction; keys are content-addressed, so
// concurrent flush workers never conflict on distinct entries.
func (s *staging) StageRecords(ctx context.Context, records ...*core.HealthRecord) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	return s.repo.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			key := makeRecordKey(s.gen, record.Id)
			if err := tx.Set(key, storage.MarshalHealthRecord(record)); err != nil {
				return err
			}

			idBytes := storage.MarshalID(record.Id)
			if err := tx.Set(makeRecordDateKey(s.gen, record.StartTime, record.Id), idBytes); err != nil {
				return err
			}
			if err := tx.Set(makeRecordTypeKey(s.gen, record.MetricType, record.StartTime, record.Id), idBytes); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// StageWorkouts writes workouts into the pending generation.
func (s *staging) StageWorkouts(ctx context.Context, workouts ...*core.Workout) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	return s.repo.backend.WithTx(func(tx *badger.Txn) error {
		for _, workout := range workouts {
			key := makeWorkoutKey(s.gen, workout.Id)
			if err := tx.Set(key, storage.MarshalWorkout(workout)); err != nil {
				return err
			}
			if err := tx.Set(makeWorkoutDateKey(s.gen, workout.StartTime, workout.Id), storage.MarshalID(workout.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Commit atomically replaces the active dataset with the staged generation.
func (s *staging) Commit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrStagingClosed
	}

	var previous string
	err := s.repo.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		previous, err = activeGeneration(tx)
		if err != nil {
			return err
		}
		if err := tx.Set([]byte(metaActiveKey), []byte(s.gen)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}
	s.closed = true

	// The swap is durable; removing the superseded generation is cleanup.
	// Deletes go through write transactions, so a reader that resolved
	// the old generation before the flip keeps its snapshot. A failure
	// here is logged and retried by the next run's stale purge.
	if previous != "" {
		if err := s.repo.backend.DeletePrefixes(generationDataPrefixes(previous)...); err != nil {
			s.repo.logger.Warn("failed to purge superseded generation",
				"generation", previous, "err", err)
		}
	}

	s.repo.logger.Info("committed dataset generation", "generation", s.gen)
	return nil
}

// Discard abandons the staged generation and removes its data.
func (s *staging) Discard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.repo.backend.DeletePrefixes(generationDataPrefixes(s.gen)...)
}

func (s *staging) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrStagingClosed
	}
	return nil
}
