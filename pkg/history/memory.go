package history

import "sync"

// MemoryStore is a goroutine-safe Store backed by a map. It is the right
// choice for tests and short-lived processes.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]*RunRecord
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs: make(map[string]*RunRecord),
	}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) SaveRun(rec *RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := cloneRecord(rec)
	s.runs[rec.ID] = c
	return nil
}

func (s *MemoryStore) UpdateRun(rec *RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[rec.ID]; !ok {
		return ErrRunNotFound
	}
	s.runs[rec.ID] = cloneRecord(rec)
	return nil
}

func (s *MemoryStore) GetRun(id string) (*RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return cloneRecord(rec), nil
}

func (s *MemoryStore) ListRuns(filter Filter) ([]*RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*RunRecord
	for _, rec := range s.runs {
		if filter.Workflow != "" && rec.Workflow != filter.Workflow {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		result = append(result, cloneRecord(rec))
	}
	return result, nil
}

// cloneRecord copies a record so callers and the store never alias the same
// Steps slice.
func cloneRecord(rec *RunRecord) *RunRecord {
	c := *rec
	if rec.Steps != nil {
		c.Steps = make([]StepRecord, len(rec.Steps))
		copy(c.Steps, rec.Steps)
	}
	return &c
}
