// Package config parses and validates the ariaq command line.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jacoelho/ariaq/internal/exit"
	"github.com/jacoelho/ariaq/internal/format"
	"github.com/jacoelho/ariaq/internal/snapcache"
)

var (
	ErrNoArguments   = errors.New("no arguments provided")
	ErrTooManyInputs = errors.New("at most one input file may be given")
	ErrNegativePage  = errors.New("offset and limit must not be negative")
)

// Config is the complete configuration for one ariaq invocation.
type Config struct {
	// Input: path to the snapshot text, empty for stdin.
	InputFile string

	// Pipeline selection.
	Query      string
	Flatten    bool
	ErrorsOnly bool

	// Pagination.
	Offset int
	Limit  int

	// Output.
	Format format.Format

	// Cache TTL for the parsed snapshot.
	TTL time.Duration
}

// Validate checks settings that flag parsing alone cannot reject.
func (c *Config) Validate() error {
	if c.Offset < 0 || c.Limit < 0 {
		return ErrNegativePage
	}

	if c.InputFile != "" {
		if _, err := os.Stat(c.InputFile); err != nil {
			return fmt.Errorf("input file %s not found: %w", c.InputFile, err)
		}
	}

	return nil
}

// Usage returns the command usage text.
func Usage() string {
	return `Usage: ariaq [flags] [file]

Parses an accessibility-tree snapshot (from file or stdin), optionally
queries and flattens it, and prints a paginated page of the result.

Flags:
  -query EXPR    path expression to select nodes (supports nvl, int,
                 str and regex_replace functions)
  -flatten       flatten the tree depth-first before querying
  -offset N      first item of the page (default 0)
  -limit N       page size (default 0, everything from offset)
  -format NAME   output format: yaml (default) or json
  -ttl DURATION  cache TTL for the parsed snapshot (default 5m)
  -errors-only   print structural parse errors and exit
`
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and an
// exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		queryExpr  = fs.String("query", "", "Path expression to select nodes")
		flatten    = fs.Bool("flatten", false, "Flatten the tree depth-first before querying")
		offset     = fs.Int("offset", 0, "First item of the page")
		limit      = fs.Int("limit", 0, "Page size (0 for everything from offset)")
		formatName = fs.String("format", "yaml", "Output format: yaml or json")
		ttl        = fs.Duration("ttl", snapcache.DefaultTTL, "Cache TTL for the parsed snapshot")
		errorsOnly = fs.Bool("errors-only", false, "Print structural parse errors and exit")
	)

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	files := fs.Args()
	if len(files) > 1 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrTooManyInputs, Usage())
	}

	outputFormat, err := format.Parse(*formatName)
	if err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	config := &Config{
		Query:      *queryExpr,
		Flatten:    *flatten,
		ErrorsOnly: *errorsOnly,
		Offset:     *offset,
		Limit:      *limit,
		Format:     outputFormat,
		TTL:        *ttl,
	}
	if len(files) == 1 {
		config.InputFile = files[0]
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}
