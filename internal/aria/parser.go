package aria

import "strings"

const listMarker = "- "

// Parse converts snapshot text into root-level nodes plus a list of
// structural errors. Lines that fail the grammar are recorded and
// skipped together with their more-indented block; parsing resumes at
// the next line of equal or lower indentation. Parse never fails as a
// whole: syntactically empty input yields (nil, nil).
func Parse(text string) ([]Node, []ParseError) {
	p := &parser{lines: scanLines(text)}
	if len(p.lines) == 0 {
		return nil, nil
	}

	nodes := p.parseBlock(-1, nil)
	return nodes, p.errors
}

type sourceLine struct {
	text   string
	indent int
	number int
}

// scanLines splits input into non-blank lines with their indentation
// depth and 1-based source line number.
func scanLines(text string) []sourceLine {
	raw := strings.Split(text, "\n")

	lines := make([]sourceLine, 0, len(raw))
	for i, line := range raw {
		content := strings.TrimLeft(line, " \t")
		content = strings.TrimRight(content, " \t\r")
		if content == "" {
			continue
		}
		lines = append(lines, sourceLine{
			text:   content,
			indent: len(line) - len(strings.TrimLeft(line, " \t")),
			number: i + 1,
		})
	}

	return lines
}

type parser struct {
	lines  []sourceLine
	pos    int
	errors []ParseError
}

// parseBlock parses every line more indented than parentIndent as an
// entry under parent. parent is nil at the root.
func (p *parser) parseBlock(parentIndent int, parent *TemplateNode) []Node {
	var nodes []Node

	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		if line.indent <= parentIndent {
			break
		}

		item, marked := strings.CutPrefix(line.text, listMarker)
		if !marked {
			// Nested bare "text:" lines are literal content.
			if text, ok := strings.CutPrefix(line.text, "text:"); ok && parent != nil {
				nodes = append(nodes, TextLeaf(strings.TrimSpace(text)))
				p.pos++
				continue
			}
			p.fail(line, "expected a list item")
			continue
		}

		if text, ok := strings.CutPrefix(item, "text:"); ok {
			nodes = append(nodes, TextLeaf(strings.TrimSpace(text)))
			p.pos++
			continue
		}

		if key, value, ok := cutPropLine(item); ok {
			if parent == nil {
				p.fail(line, "property line outside of an element")
				continue
			}
			parent.setProp(key, value)
			p.pos++
			continue
		}

		node, inline, err := scanNodeLine(item)
		if err != nil {
			p.fail(line, err.Error())
			continue
		}
		p.pos++

		children := p.parseBlock(line.indent, node)
		if inline != "" {
			if node.Name == nil {
				node.Name = &Name{Value: inline}
			} else {
				children = append([]Node{TextLeaf(inline)}, children...)
			}
		}
		node.Children = children

		nodes = append(nodes, node)
	}

	return nodes
}

// fail records a structural error and skips the offending line plus
// any more-indented lines under it.
func (p *parser) fail(line sourceLine, message string) {
	p.errors = append(p.errors, ParseError{Line: line.number, Message: message})

	p.pos++
	for p.pos < len(p.lines) && p.lines[p.pos].indent > line.indent {
		p.pos++
	}
}

// cutPropLine matches the "/key: value" form snapshot sources emit for
// role-specific properties of the enclosing element.
func cutPropLine(item string) (key, value string, ok bool) {
	rest, found := strings.CutPrefix(item, "/")
	if !found {
		return "", "", false
	}

	key, value, found = strings.Cut(rest, ":")
	if !found || key == "" || strings.ContainsAny(key, " \t") {
		return "", "", false
	}

	return key, strings.TrimSpace(value), true
}
