package processor

import (
	"errors"
	"strings"
	"testing"

	"github.com/jacoelho/ariaq/internal/format"
	"github.com/jacoelho/ariaq/internal/snapcache"
)

const sampleSnapshot = `
- generic [ref=e2]:
  - heading "Example Domain" [level=1] [ref=e3]
  - link "More information" [ref=e4]:
    - /url: https://www.iana.org/domains/example
  - button "Accept" [ref=e5]
  - button "Decline" [ref=e6] [disabled]
`

func TestParseSnapshot(t *testing.T) {
	t.Parallel()

	data, messages := ParseSnapshot(sampleSnapshot)
	if len(messages) != 0 {
		t.Fatalf("ParseSnapshot() messages = %v", messages)
	}

	roots, ok := data.([]any)
	if !ok || len(roots) != 1 {
		t.Fatalf("data = %#v, want one root", data)
	}
}

func TestParseSnapshotEmptyInput(t *testing.T) {
	t.Parallel()

	data, messages := ParseSnapshot("")
	if data != nil || messages != nil {
		t.Errorf("ParseSnapshot(\"\") = (%v, %v), want (nil, nil)", data, messages)
	}
}

func TestParseSnapshotReportsLineNumbers(t *testing.T) {
	t.Parallel()

	data, messages := ParseSnapshot("- button \"OK\"\n- !!! broken\n")
	if data != nil {
		t.Errorf("data = %v, want nil on parse errors", data)
	}
	if len(messages) != 1 {
		t.Fatalf("messages = %v, want 1", messages)
	}
	if !strings.HasPrefix(messages[0], "Line 2:") {
		t.Errorf("message = %q, want Line 2 prefix", messages[0])
	}
}

func TestParseSnapshotFencedInput(t *testing.T) {
	t.Parallel()

	wrapped := "Page snapshot:\n```yaml\n- button \"Submit\" [ref=e1]\n```\n"
	data, messages := ParseSnapshot(wrapped)
	if len(messages) != 0 {
		t.Fatalf("messages = %v", messages)
	}
	if data == nil {
		t.Fatal("data = nil, want parsed snapshot")
	}
}

func TestSnapshotPipeline(t *testing.T) {
	t.Parallel()

	p := New(snapcache.New(0))

	result, err := p.Snapshot(SnapshotRequest{
		Text:      sampleSnapshot,
		SourceURL: "https://example.com",
		Format:    format.FormatJSON,
	})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if result.CacheKey == "" {
		t.Error("CacheKey empty, want generated key")
	}
	if result.Total != 1 {
		t.Errorf("Total = %d, want 1", result.Total)
	}
	if result.HasMore {
		t.Error("HasMore = true, want false")
	}
	if !strings.Contains(result.Snapshot, `"role": "generic"`) {
		t.Errorf("Snapshot = %q, want serialized root", result.Snapshot)
	}
}

func TestSnapshotCacheKeyReuse(t *testing.T) {
	t.Parallel()

	p := New(snapcache.New(0))

	first, err := p.Snapshot(SnapshotRequest{
		Text:      sampleSnapshot,
		SourceURL: "https://example.com",
	})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	second, err := p.Snapshot(SnapshotRequest{
		CacheKey: first.CacheKey,
		Query:    `$..[?@.role == 'button']`,
		Format:   format.FormatJSON,
	})
	if err != nil {
		t.Fatalf("Snapshot() with cache key error = %v", err)
	}

	if second.CacheKey != first.CacheKey {
		t.Errorf("CacheKey = %q, want %q", second.CacheKey, first.CacheKey)
	}
	if second.Total != 2 {
		t.Errorf("Total = %d, want 2 buttons", second.Total)
	}
}

func TestSnapshotUnknownCacheKey(t *testing.T) {
	t.Parallel()

	p := New(snapcache.New(0))

	_, err := p.Snapshot(SnapshotRequest{CacheKey: "snap_gone"})
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Snapshot() error = %v, want ErrCacheMiss", err)
	}
}

func TestSnapshotQueryErrorYieldsEmptyPage(t *testing.T) {
	t.Parallel()

	p := New(snapcache.New(0))

	result, err := p.Snapshot(SnapshotRequest{
		Text:   sampleSnapshot,
		Query:  `$[?@.role ==`,
		Format: format.FormatJSON,
	})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want 1", result.Errors)
	}
	if result.Total != 0 {
		t.Errorf("Total = %d, want 0", result.Total)
	}
	if strings.TrimSpace(result.Snapshot) != "[]" {
		t.Errorf("Snapshot = %q, want empty sequence", result.Snapshot)
	}
}

func TestSnapshotFlattenAndPaginate(t *testing.T) {
	t.Parallel()

	p := New(snapcache.New(0))

	result, err := p.Snapshot(SnapshotRequest{
		Text:    sampleSnapshot,
		Flatten: true,
		Offset:  2,
		Limit:   2,
		Format:  format.FormatJSON,
	})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	// generic, heading, link, button, button
	if result.Total != 5 {
		t.Errorf("Total = %d, want 5 flattened nodes", result.Total)
	}
	if !result.HasMore {
		t.Error("HasMore = false, want true")
	}
	if !strings.Contains(result.Snapshot, `"_depth"`) {
		t.Errorf("Snapshot = %q, want flatten metadata", result.Snapshot)
	}
}

func TestSnapshotFlattenWithQuery(t *testing.T) {
	t.Parallel()

	p := New(snapcache.New(0))

	result, err := p.Snapshot(SnapshotRequest{
		Text:    sampleSnapshot,
		Flatten: true,
		Query:   `$[?nvl(@.disabled, false) == true]`,
		Format:  format.FormatJSON,
	})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if result.Total != 1 {
		t.Errorf("Total = %d, want 1 disabled node", result.Total)
	}
	if !strings.Contains(result.Snapshot, "Decline") {
		t.Errorf("Snapshot = %q, want the disabled button", result.Snapshot)
	}
}

func TestSnapshotParseErrors(t *testing.T) {
	t.Parallel()

	p := New(snapcache.New(0))

	result, err := p.Snapshot(SnapshotRequest{Text: "- ??? broken"})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if len(result.Errors) != 1 {
		t.Errorf("Errors = %v, want 1", result.Errors)
	}
	if result.CacheKey != "" {
		t.Errorf("CacheKey = %q, want empty for failed parse", result.CacheKey)
	}
}

func TestSnapshotYAMLDefault(t *testing.T) {
	t.Parallel()

	p := New(snapcache.New(0))

	result, err := p.Snapshot(SnapshotRequest{Text: `- button "Submit"`})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if !strings.Contains(result.Snapshot, "role: button") {
		t.Errorf("Snapshot = %q, want YAML output", result.Snapshot)
	}
}
