package rerank

import "github.com/zorro-gridi/doc4llm-sub000/internal/textproc"

// Backend names the three interchangeable Matcher implementations.
type Backend string

const (
	BackendHF         Backend = "hf"
	BackendModelScope Backend = "modelscope"
	BackendLocal      Backend = "local"
)

// SelectBackend picks HF's remote inference API for mostly-Latin texts and
// ModelScope's Chinese-tuned model once the aggregate CJK ratio across
// texts reaches textproc.DefaultLangThreshold. BackendLocal is returned
// only when no remote key is configured (no HF_KEY / MODELSCOPE_KEY); the
// CJK ratio never selects it.
func SelectBackend(texts []string, hasRemoteKeys bool) Backend {
	if !hasRemoteKeys {
		return BackendLocal
	}
	if textproc.AggregateCJKRatio(texts) >= textproc.DefaultLangThreshold {
		return BackendModelScope
	}
	return BackendHF
}
