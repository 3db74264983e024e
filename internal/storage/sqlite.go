package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
)

// createdAtLayout is fixed width so that created_at sorts lexically in time order
const createdAtLayout = "2006-01-02T15:04:05.000000000Z"

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return svmerrors.NewStorageError("sqlite store", "init", errors.New("sqlite path is required"))
	}
	if s.db != nil {
		return nil
	}

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return svmerrors.NewStorageError("sqlite store", "init", err)
		}
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return svmerrors.NewStorageError("sqlite store", "open", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return svmerrors.NewStorageError("sqlite store", "ping", err)
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return svmerrors.NewStorageError("sqlite store", "migrate", err)
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run RunRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeRun(run)
	if err != nil {
		return svmerrors.NewStorageError("sqlite store", "encode run", err)
	}

	summary := run.Summary()
	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, dataset, c, gamma, best_fitness, support_vectors, accuracy, schema_version, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			created_at = excluded.created_at,
			dataset = excluded.dataset,
			c = excluded.c,
			gamma = excluded.gamma,
			best_fitness = excluded.best_fitness,
			support_vectors = excluded.support_vectors,
			accuracy = excluded.accuracy,
			schema_version = excluded.schema_version,
			payload = excluded.payload
	`, summary.ID, summary.CreatedAt.UTC().Format(createdAtLayout), summary.Dataset, summary.C, summary.Gamma,
		summary.BestFitness, summary.SupportVectors, summary.Accuracy, CurrentSchemaVersion, payload)
	if err != nil {
		return svmerrors.NewStorageError("sqlite store", "save run", err).WithContext("run", run.ID)
	}
	return nil
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (RunRecord, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return RunRecord{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM runs WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, false, nil
		}
		return RunRecord{}, false, svmerrors.NewStorageError("sqlite store", "get run", err)
	}

	run, err := DecodeRun(payload)
	if err != nil {
		return RunRecord{}, false, svmerrors.NewStorageError("sqlite store", "get run", fmt.Errorf("decode run %s: %w", id, err))
	}
	return run, true, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	query := `SELECT id, created_at, dataset, c, gamma, best_fitness, support_vectors, accuracy
		FROM runs ORDER BY created_at DESC, id ASC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, svmerrors.NewStorageError("sqlite store", "list runs", err)
	}
	defer rows.Close()

	summaries := make([]RunSummary, 0)
	for rows.Next() {
		var (
			summary   RunSummary
			createdAt string
		)
		if err := rows.Scan(&summary.ID, &createdAt, &summary.Dataset, &summary.C, &summary.Gamma,
			&summary.BestFitness, &summary.SupportVectors, &summary.Accuracy); err != nil {
			return nil, svmerrors.NewStorageError("sqlite store", "list runs", err)
		}
		summary.CreatedAt, err = time.Parse(createdAtLayout, createdAt)
		if err != nil {
			return nil, svmerrors.NewStorageError("sqlite store", "list runs", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, svmerrors.NewStorageError("sqlite store", "list runs", err)
	}
	return summaries, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errNotInitialized()
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			dataset TEXT NOT NULL,
			c REAL NOT NULL,
			gamma REAL NOT NULL,
			best_fitness REAL NOT NULL,
			support_vectors INTEGER NOT NULL,
			accuracy REAL NOT NULL,
			schema_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS runs_created_at ON runs (created_at);
	`)
	return err
}
