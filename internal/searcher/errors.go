package searcher

import "errors"

// ErrLanguageMismatch is returned when the query's detected language
// disagrees with the sampled corpus language for a doc-set: a fatal
// condition, since BM25 and the rerankers are not expected to work well
// across a language boundary they were never tuned for.
var ErrLanguageMismatch = errors.New("searcher: query language does not match corpus language")

// ErrNoDocSets is returned when no doc-set is left to search: the base
// directory has none, or none of the requested target doc-sets exist there.
var ErrNoDocSets = errors.New("searcher: no matching doc-sets found")
