package aria

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var errEmptyRole = errors.New("expected a role")

// scanNodeLine parses the content of a single node line, marker
// already removed: a role, an optional name, any number of bracketed
// attribute groups and an optional trailing colon with inline text.
func scanNodeLine(input string) (*TemplateNode, string, error) {
	s := &lineScanner{input: input}

	role := s.scanRole()
	if role == "" {
		return nil, "", errEmptyRole
	}

	node := &TemplateNode{Role: role}

	s.skipSpaces()
	name, err := s.scanName()
	if err != nil {
		return nil, "", err
	}
	node.Name = name

	for {
		s.skipSpaces()
		if !s.peekIs('[') {
			break
		}
		if err := s.scanAttributes(node); err != nil {
			return nil, "", err
		}
	}

	s.skipSpaces()
	if s.done() {
		return node, "", nil
	}
	if !s.peekIs(':') {
		return nil, "", fmt.Errorf("unexpected %q after attributes", s.rest())
	}
	s.pos++

	return node, strings.TrimSpace(s.rest()), nil
}

type lineScanner struct {
	input string
	pos   int
}

func (s *lineScanner) done() bool {
	return s.pos >= len(s.input)
}

func (s *lineScanner) peekIs(c byte) bool {
	return s.pos < len(s.input) && s.input[s.pos] == c
}

func (s *lineScanner) rest() string {
	return s.input[s.pos:]
}

func (s *lineScanner) skipSpaces() {
	for s.pos < len(s.input) && (s.input[s.pos] == ' ' || s.input[s.pos] == '\t') {
		s.pos++
	}
}

func (s *lineScanner) scanRole() string {
	start := s.pos
	for s.pos < len(s.input) && isRoleRune(rune(s.input[s.pos])) {
		s.pos++
	}
	return s.input[start:s.pos]
}

// scanName scans a double-quoted literal or a /…/ pattern. The regex
// body is kept verbatim, no escape processing.
func (s *lineScanner) scanName() (*Name, error) {
	if s.peekIs('"') {
		value, err := s.scanDelimited('"')
		if err != nil {
			return nil, errors.New("unterminated quoted name")
		}
		return &Name{Value: value}, nil
	}

	if s.peekIs('/') {
		value, err := s.scanDelimited('/')
		if err != nil {
			return nil, errors.New("unterminated regex name")
		}
		return &Name{Value: value, IsRegex: true}, nil
	}

	return nil, nil
}

func (s *lineScanner) scanDelimited(delim byte) (string, error) {
	s.pos++
	start := s.pos
	for s.pos < len(s.input) {
		if s.input[s.pos] == delim {
			value := s.input[start:s.pos]
			s.pos++
			return value, nil
		}
		s.pos++
	}
	return "", fmt.Errorf("missing closing %q", delim)
}

// scanAttributes consumes one [...] group and applies its tokens to
// the node.
func (s *lineScanner) scanAttributes(node *TemplateNode) error {
	s.pos++
	end := strings.IndexByte(s.input[s.pos:], ']')
	if end < 0 {
		return errors.New("unterminated attribute list")
	}

	body := s.input[s.pos : s.pos+end]
	s.pos += end + 1

	tokens := strings.FieldsFunc(body, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	for _, token := range tokens {
		if err := applyAttribute(node, token); err != nil {
			return err
		}
	}

	return nil
}

func applyAttribute(node *TemplateNode, token string) error {
	key, value, found := strings.Cut(token, "=")
	if !found {
		return applyFlag(node, key)
	}

	switch key {
	case "ref":
		node.Ref = value
	case "checked":
		state, err := triState(value)
		if err != nil {
			return fmt.Errorf("checked=%s: %w", value, err)
		}
		node.Checked = state
	case "pressed":
		state, err := triState(value)
		if err != nil {
			return fmt.Errorf("pressed=%s: %w", value, err)
		}
		node.Pressed = state
	case "level":
		level, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("level=%s: expected an integer", value)
		}
		node.Level = &level
	default:
		node.setProp(key, value)
	}

	return nil
}

func applyFlag(node *TemplateNode, word string) error {
	switch word {
	case "checked":
		node.Checked = true
	case "pressed":
		node.Pressed = true
	case "disabled":
		node.Disabled = true
	case "expanded":
		node.Expanded = true
	case "active":
		node.Active = true
	case "selected":
		node.Selected = true
	default:
		return fmt.Errorf("unknown attribute %q", word)
	}
	return nil
}

// triState maps an attribute value into the checked/pressed domain:
// true, false or the literal string "mixed".
func triState(value string) (any, error) {
	switch value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "mixed":
		return "mixed", nil
	default:
		return nil, errors.New(`expected one of true, false, mixed`)
	}
}

func isRoleRune(r rune) bool {
	return r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
