package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jacoelho/ariaq/internal/config"
	"github.com/jacoelho/ariaq/internal/exit"
	"github.com/jacoelho/ariaq/internal/processor"
	"github.com/jacoelho/ariaq/internal/snapcache"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, exitResult := config.Parse(os.Args)
	if exitResult != nil {
		exitResult.Print()
		return exitResult.ExitCode
	}

	text, err := readInput(cfg.InputFile)
	if err != nil {
		result := exit.FromError(err)
		result.Print()
		return result.ExitCode
	}

	result := execute(cfg, text)
	result.Print()
	return result.ExitCode
}

func readInput(path string) (string, error) {
	if path == "" {
		payload, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(payload), nil
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(payload), nil
}

func execute(cfg *config.Config, text string) *exit.Result {
	if cfg.ErrorsOnly {
		return reportErrors(text)
	}

	p := processor.New(snapcache.New(cfg.TTL))
	result, err := p.Snapshot(processor.SnapshotRequest{
		Text:      text,
		SourceURL: cfg.InputFile,
		Query:     cfg.Query,
		Flatten:   cfg.Flatten,
		Offset:    cfg.Offset,
		Limit:     cfg.Limit,
		Format:    cfg.Format,
		TTL:       cfg.TTL,
	})
	if err != nil {
		return exit.FromError(err)
	}

	if len(result.Errors) > 0 {
		return exit.Error(strings.Join(result.Errors, "\n") + "\n")
	}
	return exit.Success(result.Snapshot)
}

func reportErrors(text string) *exit.Result {
	_, messages := processor.ParseSnapshot(text)
	if len(messages) == 0 {
		return exit.Success("")
	}
	return exit.Error(strings.Join(messages, "\n") + "\n")
}
