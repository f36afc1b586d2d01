package evidence

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"testmorph/internal/formats"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return v
}

func TestCollectZephyr(t *testing.T) {
	c := NewCollector(formats.DefaultRegistry())
	doc := decode(t, `{
		"testCase": {"name": "X"},
		"execution": {"status": "PASS"},
		"cycle": {"cycleId": "C1"}
	}`)

	items, total := c.Collect(doc, formats.Zephyr)
	if total != formats.DefaultRegistry().TotalWeight(formats.Zephyr) {
		t.Errorf("total = %g, want registry total %g", total, formats.DefaultRegistry().TotalWeight(formats.Zephyr))
	}

	var paths []string
	for _, it := range items {
		paths = append(paths, it.Path)
		if !it.Unique {
			t.Errorf("item %q should be unique per the default table", it.Path)
		}
		if !it.Strong {
			t.Errorf("item %q should pass the strong check", it.Path)
		}
	}
	want := []string{"testCase", "execution", "cycle", "testCase.name", "execution.status", "cycle.cycleId"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("matched paths (-want +got):\n%s", diff)
	}
}

func TestCollectTotalIndependentOfDocument(t *testing.T) {
	c := NewCollector(formats.DefaultRegistry())
	_, emptyTotal := c.Collect(map[string]any{}, formats.TestLink)
	_, fullTotal := c.Collect(decode(t, `{"testsuites": {"testsuite": [{"name": "S"}]}}`), formats.TestLink)
	if emptyTotal != fullTotal {
		t.Errorf("total changed with document content: %g vs %g", emptyTotal, fullTotal)
	}
}

func TestCollectMalformedNeverPanics(t *testing.T) {
	c := NewCollector(formats.DefaultRegistry())
	inputs := []any{
		nil,
		"a bare string",
		42.0,
		[]any{"not", "an", "object"},
		map[string]any{"testCase": "wrong type"},
		map[string]any{"testsuites": []any{"also wrong"}},
	}
	for _, f := range formats.DefaultRegistry().Formats() {
		for _, in := range inputs {
			items, total := c.Collect(in, f)
			if total <= 0 {
				t.Errorf("Collect(%v, %s) total = %g, want > 0", in, f, total)
			}
			for _, it := range items {
				if it.Weight <= 0 {
					t.Errorf("Collect(%v, %s) emitted non-positive weight item %+v", in, f, it)
				}
			}
		}
	}
}

func TestCollectWrongTypeContributesNothing(t *testing.T) {
	c := NewCollector(formats.DefaultRegistry())
	// testCase must be an object; a string at that key is not evidence.
	doc := map[string]any{"testCase": "oops", "execution": []any{}, "cycle": nil}
	items, _ := c.Collect(doc, formats.Zephyr)
	if len(items) != 0 {
		t.Errorf("Collect matched %d items on mistyped fields, want 0: %+v", len(items), items)
	}
}

func TestCollectWeakValueIsNotStrong(t *testing.T) {
	c := NewCollector(formats.DefaultRegistry())
	// Present with the right shape but empty: matches, fails the strong check.
	doc := map[string]any{"testCase": map[string]any{}, "execution": map[string]any{"status": "PASS"}}
	items, _ := c.Collect(doc, formats.Zephyr)
	byPath := make(map[string]Item, len(items))
	for _, it := range items {
		byPath[it.Path] = it
	}
	if it, ok := byPath["testCase"]; !ok || it.Strong {
		t.Errorf("empty testCase object: got %+v, want matched and not strong", it)
	}
	if it, ok := byPath["execution.status"]; !ok || !it.Strong {
		t.Errorf("execution.status: got %+v, want matched and strong", it)
	}
}
