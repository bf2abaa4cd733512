package main

import (
	"errors"

	"github.com/zorro-gridi/doc4llm-sub000/internal/pipeline"
	"github.com/zorro-gridi/doc4llm-sub000/internal/searcher"
)

const (
	exitSuccess          = 0
	exitNoResults        = 1
	exitLanguageMismatch = 2
	exitLLMFailure       = 3
)

// exitCodeFor maps a pipeline error to the process exit code the CLI
// promises: no-results and language-mismatch get their own codes so
// scripts can branch on them without parsing stderr text.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, pipeline.ErrNoResults):
		return exitNoResults
	case errors.Is(err, pipeline.ErrLanguageMismatch), errors.Is(err, searcher.ErrLanguageMismatch):
		return exitLanguageMismatch
	case errors.Is(err, pipeline.ErrEmptyQuery), errors.Is(err, pipeline.ErrNoDocSets):
		return exitNoResults
	default:
		return exitLLMFailure
	}
}
