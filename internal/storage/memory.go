package storage

import (
	"context"
	"errors"
	"sort"
	"sync"

	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
)

// MemoryStore keeps runs in process memory. Records are stored encoded so callers never share state with the store.
type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string][]byte)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized()
	}

	payload, err := EncodeRun(run)
	if err != nil {
		return svmerrors.NewStorageError("memory store", "save run", err)
	}
	s.runs[run.ID] = payload
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, ok := s.runs[id]
	if !ok {
		return RunRecord{}, false, nil
	}
	run, err := DecodeRun(payload)
	if err != nil {
		return RunRecord{}, false, svmerrors.NewStorageError("memory store", "get run", err)
	}
	return run, true, nil
}

func (s *MemoryStore) ListRuns(_ context.Context, limit int) ([]RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]RunSummary, 0, len(s.runs))
	for _, payload := range s.runs {
		run, err := DecodeRun(payload)
		if err != nil {
			return nil, svmerrors.NewStorageError("memory store", "list runs", err)
		}
		summaries = append(summaries, run.Summary())
	}

	sortSummaries(summaries)
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// sortSummaries orders newest first, then by id
func sortSummaries(summaries []RunSummary) {
	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
		}
		return summaries[i].ID < summaries[j].ID
	})
}

func errNotInitialized() error {
	return svmerrors.NewStorageError("store", "access", errors.New("store is not initialized"))
}
