// Package format renders plain snapshot data as YAML or JSON text.
package format

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Format selects the output encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// Parse maps a format name to a Format. The empty string selects the
// YAML default.
func Parse(name string) (Format, error) {
	switch name {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatYAML, fmt.Errorf("unknown output format %q", name)
	}
}

// Render serializes data in the requested format. Non-ASCII text
// passes through unescaped in both encodings.
func Render(data any, format Format) (string, error) {
	switch format {
	case FormatJSON:
		return renderJSON(data)
	case FormatYAML:
		fallthrough
	default:
		return renderYAML(data)
	}
}

func renderYAML(data any) (string, error) {
	payload, err := yaml.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode YAML: %w", err)
	}
	return string(payload), nil
}

func renderJSON(data any) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return "", fmt.Errorf("encode JSON: %w", err)
	}
	return buf.String(), nil
}
