package format

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{name: "", want: FormatYAML},
		{name: "yaml", want: FormatYAML},
		{name: "yml", want: FormatYAML},
		{name: "json", want: FormatJSON},
		{name: "xml", wantErr: true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) error = nil, want error", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRenderYAML(t *testing.T) {
	t.Parallel()

	data := []any{
		map[string]any{"role": "button", "ref": "e1"},
	}

	got, err := Render(data, FormatYAML)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(got, "role: button") {
		t.Errorf("Render() = %q, want role: button", got)
	}
}

func TestRenderJSON(t *testing.T) {
	t.Parallel()

	data := map[string]any{"url": "https://example.com/?a=1&b=2"}

	got, err := Render(data, FormatJSON)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(got, `"url": "https://example.com/?a=1&b=2"`) {
		t.Errorf("Render() = %q, want unescaped URL", got)
	}
}

func TestRenderPassesUnicodeThrough(t *testing.T) {
	t.Parallel()

	data := map[string]any{"name": "ボタン"}

	for _, format := range []Format{FormatYAML, FormatJSON} {
		got, err := Render(data, format)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(got, "ボタン") {
			t.Errorf("Render(%v) = %q, want raw unicode", format, got)
		}
	}
}
