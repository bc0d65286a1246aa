package aria

import (
	"fmt"
	"slices"
	"strings"
)

// Render emits a tree back as canonical snapshot text: one list item
// per node, properties as nested /key lines, children indented by two
// spaces. Rendering a tree and parsing the result yields a
// structurally equivalent tree.
func Render(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		renderNode(&b, n, 0)
	}
	return b.String()
}

func renderNode(b *strings.Builder, n Node, depth int) {
	indent := strings.Repeat("  ", depth)

	switch current := n.(type) {
	case TextLeaf:
		fmt.Fprintf(b, "%s- text: %s\n", indent, string(current))
	case *TemplateNode:
		b.WriteString(indent)
		b.WriteString(listMarker)
		b.WriteString(current.Role)

		if current.Name != nil {
			if current.Name.IsRegex {
				fmt.Fprintf(b, " /%s/", current.Name.Value)
			} else {
				fmt.Fprintf(b, " %q", current.Name.Value)
			}
		}
		for _, attr := range renderAttributes(current) {
			fmt.Fprintf(b, " [%s]", attr)
		}

		propKeys := make([]string, 0, len(current.Props))
		for key := range current.Props {
			propKeys = append(propKeys, key)
		}
		slices.Sort(propKeys)

		if len(propKeys) > 0 || len(current.Children) > 0 {
			b.WriteString(":")
		}
		b.WriteString("\n")

		for _, key := range propKeys {
			fmt.Fprintf(b, "%s  - /%s: %s\n", indent, key, current.Props[key])
		}
		for _, child := range current.Children {
			renderNode(b, child, depth+1)
		}
	}
}

func renderAttributes(n *TemplateNode) []string {
	var attrs []string

	attrs = appendTriState(attrs, "checked", n.Checked)
	attrs = appendTriState(attrs, "pressed", n.Pressed)
	if n.Disabled {
		attrs = append(attrs, "disabled")
	}
	if n.Expanded {
		attrs = append(attrs, "expanded")
	}
	if n.Active {
		attrs = append(attrs, "active")
	}
	if n.Selected {
		attrs = append(attrs, "selected")
	}
	if n.Level != nil {
		attrs = append(attrs, fmt.Sprintf("level=%d", *n.Level))
	}
	if n.Ref != "" {
		attrs = append(attrs, "ref="+n.Ref)
	}

	return attrs
}

func appendTriState(attrs []string, key string, state any) []string {
	switch state {
	case nil:
		return attrs
	case true:
		return append(attrs, key)
	case false:
		return append(attrs, key+"=false")
	default:
		return append(attrs, fmt.Sprintf("%s=%v", key, state))
	}
}
