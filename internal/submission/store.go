package submission

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/uam-aleman/wochenkontext/internal/scope"
)

// Fixed metadata of every record produced by the guided writing form.
const (
	SubmissionTypeWritten = "written"
	ActivityModeGuided    = "guided"
)

// List limits.
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Record is a persisted submission together with its feedback and the scope
// that was active when it was reviewed.
type Record struct {
	ID             string              `json:"id"`
	FirstName      string              `json:"first_name"`
	LastName       string              `json:"last_name"`
	StudentName    string              `json:"student_name"`
	Email          string              `json:"email,omitempty"`
	Level          string              `json:"level"`
	WeekID         string              `json:"week_id"`
	SessionID      string              `json:"session_id"`
	Content        string              `json:"content"`
	Feedback       string              `json:"feedback"`
	Model          string              `json:"model,omitempty"`
	Scope          scope.ScopeSnapshot `json:"scope"`
	SubmissionType string              `json:"submission_type"`
	ActivityMode   string              `json:"activity_mode"`
	CreatedAt      time.Time           `json:"created_at"`
}

// Filter narrows Store.List. Zero fields match everything.
type Filter struct {
	Level  string
	WeekID string
	Limit  int
}

func (f Filter) limit() int {
	switch {
	case f.Limit <= 0:
		return DefaultListLimit
	case f.Limit > MaxListLimit:
		return MaxListLimit
	default:
		return f.Limit
	}
}

// Store persists submission records.
type Store interface {
	Save(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (Record, bool, error)
	// List returns matching records, newest first.
	List(ctx context.Context, f Filter) ([]Record, error)
}

// MemoryStore is an in-memory implementation of Store.
type MemoryStore struct {
	records []Record
	byID    map[string]int
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]int)}
}

func (s *MemoryStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		return fmt.Errorf("record id is required")
	}
	if _, ok := s.byID[rec.ID]; ok {
		return fmt.Errorf("record already exists: %s", rec.ID)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	s.byID[rec.ID] = len(s.records)
	s.records = append(s.records, rec)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return Record{}, false, nil
	}
	return s.records[i], true, nil
}

func (s *MemoryStore) List(_ context.Context, f Filter) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Record{}
	for i := len(s.records) - 1; i >= 0; i-- {
		rec := s.records[i]
		if f.Level != "" && rec.Level != f.Level {
			continue
		}
		if f.WeekID != "" && rec.WeekID != f.WeekID {
			continue
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if n := f.limit(); len(out) > n {
		out = out[:n]
	}
	return out, nil
}
