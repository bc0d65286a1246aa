// Package aria parses textual accessibility-tree snapshots into typed
// trees and converts them to plain data for querying and transport.
package aria

import "fmt"

// Node is an entry in a parsed snapshot tree: either a *TemplateNode or
// a TextLeaf.
type Node interface {
	node()
}

// Name is an accessible name matcher: a literal string or, when IsRegex
// is set, the verbatim body of a /…/ pattern.
type Name struct {
	Value   string
	IsRegex bool
}

// TemplateNode is a single element in the snapshot tree.
//
// Checked and Pressed are three-valued: nil (absent), bool, or the
// string "mixed". Props collects role-specific attributes the grammar
// does not model explicitly; values are kept as opaque literal text.
type TemplateNode struct {
	Role     string
	Name     *Name
	Ref      string
	Checked  any
	Pressed  any
	Disabled bool
	Expanded bool
	Active   bool
	Selected bool
	Level    *int
	Props    map[string]string
	Children []Node
}

func (*TemplateNode) node() {}

// TextLeaf is literal text content under a node.
type TextLeaf string

func (TextLeaf) node() {}

// ParseError records a line that failed to match the snapshot grammar.
// Line is 1-based; zero means the line is unknown.
type ParseError struct {
	Line    int
	Message string
}

func (e ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

func (n *TemplateNode) setProp(key, value string) {
	if n.Props == nil {
		n.Props = make(map[string]string)
	}
	n.Props[key] = value
}
