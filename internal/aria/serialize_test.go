package aria

import (
	"reflect"
	"testing"
)

func TestSerializeOmitsAbsentFields(t *testing.T) {
	t.Parallel()

	nodes := mustParse(t, `- button "Submit" [ref=e1]`)
	data := Serialize(nodes)

	if len(data) != 1 {
		t.Fatalf("len(data) = %d, want 1", len(data))
	}

	want := map[string]any{
		"role": "button",
		"name": map[string]any{"value": "Submit", "is_regex": false},
		"ref":  "e1",
	}
	if !reflect.DeepEqual(data[0], want) {
		t.Errorf("Serialize() = %#v, want %#v", data[0], want)
	}
}

func TestSerializeMixedStateAndProps(t *testing.T) {
	t.Parallel()

	nodes := mustParse(t, `- checkbox [checked=mixed] [cursor=pointer]`)
	entry := Serialize(nodes)[0].(map[string]any)

	if entry["checked"] != "mixed" {
		t.Errorf(`checked = %v (%T), want "mixed"`, entry["checked"], entry["checked"])
	}
	if entry["cursor"] != "pointer" {
		t.Errorf("cursor = %v", entry["cursor"])
	}
	if _, ok := entry["children"]; ok {
		t.Error("children present for leaf node, want omitted")
	}
}

func TestSerializeChildrenAndTextLeaves(t *testing.T) {
	t.Parallel()

	nodes := mustParse(t, `
- link "Images" [ref=e5]:
  - text: Search for Images
  - generic "icon"
`)
	entry := Serialize(nodes)[0].(map[string]any)

	children, ok := entry["children"].([]any)
	if !ok {
		t.Fatalf("children = %T, want []any", entry["children"])
	}
	if len(children) != 2 {
		t.Fatalf("len(children) = %d, want 2", len(children))
	}
	if children[0] != "Search for Images" {
		t.Errorf("children[0] = %#v, want bare string", children[0])
	}
	if grandchild := children[1].(map[string]any); grandchild["role"] != "generic" {
		t.Errorf("children[1] = %#v", children[1])
	}
}

func TestSerializeNil(t *testing.T) {
	t.Parallel()

	if got := Serialize(nil); got != nil {
		t.Errorf("Serialize(nil) = %v, want nil", got)
	}
}
