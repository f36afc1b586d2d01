package render_test

import (
	"strings"
	"testing"

	"testmorph/internal/render"
)

func TestASCIITable(t *testing.T) {
	tb := render.NewTable(render.ASCII)
	tb.Header("Format", "Confidence")
	tb.Row("zephyr", "71.2%")
	tb.Row("generic", "12.4%")
	out := tb.String()

	// StyleLight upper-cases headers; match case-insensitively.
	if !strings.Contains(strings.ToUpper(out), "FORMAT") {
		t.Errorf("expected header 'Format' in output:\n%s", out)
	}
	if !strings.Contains(out, "zephyr") {
		t.Errorf("expected 'zephyr' in output:\n%s", out)
	}
	// StyleLight uses box-drawing characters
	if !strings.Contains(out, "───") {
		t.Errorf("expected box-drawing characters in ASCII output:\n%s", out)
	}
}

func TestMarkdownTable(t *testing.T) {
	tb := render.NewTable(render.Markdown)
	tb.Header("Format", "Confidence")
	tb.Row("testlink", "64.0%")
	out := tb.String()

	if !strings.Contains(strings.ToUpper(out), "| FORMAT") {
		t.Errorf("expected markdown header with '| Format':\n%s", out)
	}
	if !strings.Contains(out, "---") {
		t.Errorf("expected markdown separator:\n%s", out)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0%"},
		{0.5, "50.0%"},
		{0.712, "71.2%"},
		{1, "100.0%"},
	}
	for _, tt := range tests {
		if got := render.Percent(tt.in); got != tt.want {
			t.Errorf("Percent(%g) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
