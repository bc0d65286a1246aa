package aria

import "maps"

// Flatten produces a depth-first, pre-order flat sequence over
// serialized snapshot data. Each entry carries three metadata keys:
// _depth (root = 0), _parent_role (nil at the root) and _index
// (position in the flattened sequence). children is stripped since
// order already encodes nesting. Text leaves become {"text": …}
// entries so every node of the tree appears exactly once.
//
// The recursive children shape makes "match role X at any depth"
// awkward as a single filter; the flat form makes it one linear pass.
func Flatten(data any) []map[string]any {
	out := make([]map[string]any, 0)
	flattenInto(data, 0, nil, &out)
	return out
}

func flattenInto(node any, depth int, parentRole any, out *[]map[string]any) {
	switch current := node.(type) {
	case []any:
		for _, item := range current {
			flattenInto(item, depth, parentRole, out)
		}
	case map[string]any:
		entry := make(map[string]any, len(current)+3)
		maps.Copy(entry, current)
		delete(entry, "children")

		entry["_depth"] = depth
		entry["_parent_role"] = parentRole
		entry["_index"] = len(*out)
		*out = append(*out, entry)

		if children, ok := current["children"]; ok {
			flattenInto(children, depth+1, current["role"], out)
		}
	case string:
		*out = append(*out, map[string]any{
			"text":         current,
			"_depth":       depth,
			"_parent_role": parentRole,
			"_index":       len(*out),
		})
	}
}
