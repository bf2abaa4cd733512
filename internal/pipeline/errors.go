package pipeline

import "errors"

// Sentinel errors returned by Orchestrator.Run, either bare or wrapped with
// %w, so callers can match them with errors.Is. When a searcher error is
// mapped to one of these, its text is kept in the message but it is not
// itself wrapped.
var (
	ErrEmptyQuery       = errors.New("pipeline: query must not be empty")
	ErrLanguageMismatch = errors.New("pipeline: query language does not match corpus language")
	ErrNoDocSets        = errors.New("pipeline: no matching doc-sets found")
	ErrNoResults        = errors.New("pipeline: search produced no usable results")
)
