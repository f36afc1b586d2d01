package formats

import (
	"strings"
	"testing"
)

func TestDefaultRegistryValid(t *testing.T) {
	r := DefaultRegistry()
	want := []SupportedFormat{Zephyr, JiraXray, TestLink, TestRail, Generic}
	got := r.Formats()
	if len(got) != len(want) {
		t.Fatalf("Formats() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Formats()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	for _, f := range want {
		if !r.Has(f) {
			t.Errorf("Has(%q) = false", f)
		}
		if r.TotalWeight(f) <= 0 {
			t.Errorf("TotalWeight(%q) = %g, want > 0", f, r.TotalWeight(f))
		}
	}
}

func TestNewRegistryRejectsBadDefs(t *testing.T) {
	tests := []struct {
		name    string
		defs    []FormatDef
		wantErr string
	}{
		{"empty", nil, "no formats"},
		{
			"duplicate format",
			[]FormatDef{
				{Format: Zephyr, Rules: []FieldRule{{Path: "a", Weight: 1}}},
				{Format: Zephyr, Rules: []FieldRule{{Path: "b", Weight: 1}}},
			},
			"duplicate format",
		},
		{
			"no rules",
			[]FormatDef{{Format: Zephyr}},
			"no rules",
		},
		{
			"non-positive weight",
			[]FormatDef{{Format: Zephyr, Rules: []FieldRule{{Path: "a", Weight: 0}}}},
			"non-positive weight",
		},
		{
			"duplicate path within format",
			[]FormatDef{{Format: Zephyr, Rules: []FieldRule{
				{Path: "a", Weight: 1},
				{Path: "a", Weight: 2},
			}}},
			"twice",
		},
		{
			"unique path shared across formats",
			[]FormatDef{
				{Format: Zephyr, Rules: []FieldRule{{Path: "a", Weight: 1, Unique: true}}},
				{Format: TestLink, Rules: []FieldRule{{Path: "a", Weight: 1}}},
			},
			"flagged unique",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.defs)
			if err == nil {
				t.Fatal("NewRegistry() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("NewRegistry() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestUniqueMarkersAreExclusive(t *testing.T) {
	r := DefaultRegistry()
	owners := make(map[string][]SupportedFormat)
	for _, f := range r.Formats() {
		for _, rule := range r.Rules(f) {
			owners[rule.Path] = append(owners[rule.Path], f)
		}
	}
	for _, f := range r.Formats() {
		for _, rule := range r.Rules(f) {
			if rule.Unique && len(owners[rule.Path]) != 1 {
				t.Errorf("unique path %q owned by %v", rule.Path, owners[rule.Path])
			}
		}
	}
}
