package aria

// Serialize converts a parsed tree into plain nested data: maps,
// slices and strings only. Absent fields are omitted rather than
// null-filled; this plain form is what querying, flattening, caching
// and output formatting all operate on.
func Serialize(nodes []Node) []any {
	if nodes == nil {
		return nil
	}

	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, serializeNode(n))
	}
	return out
}

func serializeNode(n Node) any {
	switch current := n.(type) {
	case TextLeaf:
		return string(current)
	case *TemplateNode:
		return serializeTemplateNode(current)
	default:
		return nil
	}
}

func serializeTemplateNode(n *TemplateNode) map[string]any {
	out := map[string]any{"role": n.Role}

	if n.Name != nil {
		out["name"] = map[string]any{
			"value":    n.Name.Value,
			"is_regex": n.Name.IsRegex,
		}
	}
	if n.Ref != "" {
		out["ref"] = n.Ref
	}
	if n.Checked != nil {
		out["checked"] = n.Checked
	}
	if n.Pressed != nil {
		out["pressed"] = n.Pressed
	}
	if n.Disabled {
		out["disabled"] = true
	}
	if n.Expanded {
		out["expanded"] = true
	}
	if n.Active {
		out["active"] = true
	}
	if n.Selected {
		out["selected"] = true
	}
	if n.Level != nil {
		out["level"] = *n.Level
	}
	for key, value := range n.Props {
		out[key] = value
	}
	if len(n.Children) > 0 {
		children := make([]any, 0, len(n.Children))
		for _, child := range n.Children {
			children = append(children, serializeNode(child))
		}
		out["children"] = children
	}

	return out
}
