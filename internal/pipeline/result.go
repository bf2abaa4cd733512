package pipeline

import "github.com/zorro-gridi/doc4llm-sub000/internal/router"

// DocRAGResult is the Orchestrator's top-level response.
type DocRAGResult struct {
	Output             string      `json:"output"`
	Scene              router.Scene `json:"scene"`
	Sources            []SourceRef `json:"sources"`
	Success            bool        `json:"success"`
	DocumentsExtracted int         `json:"documents_extracted"`
	TotalLines         int         `json:"total_lines"`
	RequiresProcessing bool        `json:"requires_processing"`
	Thinking           string      `json:"thinking,omitempty"`
	RawResponse        string      `json:"raw_response,omitempty"`
	TraceID            string      `json:"trace_id"`
}

// SourceRef is one cited document.
type SourceRef struct {
	Title     string `json:"title"`
	SourceURL string `json:"source_url,omitempty"`
	LocalPath string `json:"local_path,omitempty"`
}
