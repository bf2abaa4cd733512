package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var fencedJSONRE = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\}|\\[.*?\\])\\s*```")

// ExtractJSON pulls the first fenced ```json ... ``` (or bare ``` ... ```)
// code block out of raw LLM output and unmarshals it into v. If no fenced
// block is present, it falls back to treating the first '{' (or '[')
// through its depth-matched closing bracket as the JSON payload, since models
// frequently omit the fence even when asked for one.
func ExtractJSON(raw string, v any) error {
	block := firstFencedBlock(raw)
	if block == "" {
		block = braceSpan(raw)
	}
	if block == "" {
		return fmt.Errorf("llm: no JSON block found in response")
	}
	if err := json.Unmarshal([]byte(block), v); err != nil {
		return fmt.Errorf("llm: invalid JSON in response: %w", err)
	}
	return nil
}

func firstFencedBlock(raw string) string {
	m := fencedJSONRE.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func braceSpan(raw string) string {
	start := strings.IndexAny(raw, "{[")
	if start < 0 {
		return ""
	}
	open, close := byte('{'), byte('}')
	if raw[start] == '[' {
		open, close = '[', ']'
	}
	depth := 0
	for i := start; i < len(raw); i++ {
		switch raw[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return raw[start : i+1]
			}
		}
	}
	return ""
}
