// Package history records the detector's per-file decisions so the CLI
// can show what was detected, when, and with what confidence. This is an
// observability log of detection outcomes, not a document store.
package history

import (
	"sort"
	"sync"
)

// DefaultDBPath is the default relative path for the SQLite DB.
// Open() creates the parent dir (.testmorph) if needed.
const DefaultDBPath = ".testmorph/history.db"

// Record is one detection outcome.
type Record struct {
	ID         int64   `json:"id"`
	FileName   string  `json:"file_name"`
	SHA256     string  `json:"sha256"`
	Format     string  `json:"format"`
	Confidence float64 `json:"confidence"`
	CreatedAt  string  `json:"created_at"` // RFC 3339 UTC
}

// Store is the persistence facade for detection records. The CLI uses
// only this interface; the implementation is SQLite or in-memory.
type Store interface {
	SaveDetection(rec *Record) (id int64, err error)
	ListRecent(limit int) ([]*Record, error)
	Close() error
}

// MemStore is the in-memory Store used by tests and --no-history runs.
type MemStore struct {
	mu   sync.Mutex
	next int64
	recs []*Record
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore { return &MemStore{next: 1} }

func (m *MemStore) SaveDetection(rec *Record) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	cp.ID = m.next
	if cp.CreatedAt == "" {
		cp.CreatedAt = nowUTC()
	}
	m.next++
	m.recs = append(m.recs, &cp)
	return cp.ID, nil
}

func (m *MemStore) ListRecent(limit int) ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Record, len(m.recs))
	for i, r := range m.recs {
		cp := *r
		out[i] = &cp
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemStore) Close() error { return nil }
