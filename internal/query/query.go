// Package query evaluates path expressions against serialized
// snapshot data, extended with snapshot-oriented functions (nvl, int,
// str, regex_replace).
package query

import (
	"errors"
	"fmt"

	"github.com/theory/jsonpath"
)

// ErrInvalidQuery indicates expression parsing failures.
var ErrInvalidQuery = errors.New("invalid query")

// Engine evaluates expressions with the extension functions
// registered. The zero value is not usable; construct with New.
type Engine struct {
	parser *jsonpath.Parser
}

// New returns an engine with the custom function table registered.
func New() *Engine {
	return &Engine{
		parser: jsonpath.NewParser(jsonpath.WithRegistry(newRegistry())),
	}
}

// Query evaluates expression against data and returns the selected
// nodes. A miss is an empty (never nil) result; a malformed expression
// is an error. Query does not mutate data.
func (e *Engine) Query(data any, expression string) ([]any, error) {
	path, err := e.parser.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrInvalidQuery, expression, err)
	}

	results := path.Select(data)

	out := make([]any, 0, len(results))
	for _, result := range results {
		out = append(out, result)
	}
	return out, nil
}
