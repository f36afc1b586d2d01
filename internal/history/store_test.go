package history

import (
	"path/filepath"
	"testing"
)

// stores returns both implementations behind the Store interface so they
// stay behaviorally interchangeable.
func stores(t *testing.T) map[string]Store {
	t.Helper()
	sqlStore, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = sqlStore.Close() })
	return map[string]Store{
		"mem": NewMemStore(),
		"sql": sqlStore,
	}
}

func TestSaveAndListRecent(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for i, f := range []string{"a.json", "b.json", "c.json"} {
				id, err := s.SaveDetection(&Record{
					FileName:   f,
					SHA256:     "hash",
					Format:     "zephyr",
					Confidence: 0.5 + float64(i)*0.1,
				})
				if err != nil {
					t.Fatalf("SaveDetection(%s): %v", f, err)
				}
				if id <= 0 {
					t.Fatalf("SaveDetection(%s) id = %d, want > 0", f, id)
				}
			}

			recs, err := s.ListRecent(2)
			if err != nil {
				t.Fatalf("ListRecent: %v", err)
			}
			if len(recs) != 2 {
				t.Fatalf("ListRecent(2) returned %d records", len(recs))
			}
			if recs[0].FileName != "c.json" || recs[1].FileName != "b.json" {
				t.Errorf("order = %s, %s; want newest first", recs[0].FileName, recs[1].FileName)
			}
			if recs[0].CreatedAt == "" {
				t.Error("CreatedAt not stamped")
			}
		})
	}
}

func TestListRecentEmpty(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			recs, err := s.ListRecent(10)
			if err != nil {
				t.Fatalf("ListRecent: %v", err)
			}
			if len(recs) != 0 {
				t.Errorf("ListRecent on empty store returned %d records", len(recs))
			}
		})
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if _, err := first.SaveDetection(&Record{FileName: "a.json", Format: "generic"}); err != nil {
		t.Fatalf("SaveDetection: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer second.Close()
	recs, err := second.ListRecent(0)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(recs) != 1 || recs[0].FileName != "a.json" {
		t.Errorf("records after reopen = %+v, want the saved one", recs)
	}
}
