// Package output implements stage 4, SceneOutput: renders the final
// Markdown answer, choosing a template by the scene the router chose and
// appending a deterministic Sources block.
package output

import (
	"fmt"
	"strings"

	"github.com/zorro-gridi/doc4llm-sub000/internal/router"
)

// Source is one cited document in the trailing Sources block.
type Source struct {
	Title     string
	SourceURL string
	LocalPath string
}

// Scene is the template for one of the seven scenes: the intro line and
// section header Render writes before the cited section bodies.
type Scene struct {
	Name   router.Scene
	Header string
	Intro  string
}

var scenes = map[router.Scene]Scene{
	router.SceneHowTo:        {Name: router.SceneHowTo, Header: "## Steps", Intro: "Here's how to do that:"},
	router.SceneConceptual:   {Name: router.SceneConceptual, Header: "## Explanation", Intro: "Here's the relevant background:"},
	router.SceneTroubleshoot: {Name: router.SceneTroubleshoot, Header: "## Diagnosis", Intro: "Here's what the documentation says about this issue:"},
	router.SceneReference:    {Name: router.SceneReference, Header: "## Reference", Intro: "Here's the reference material:"},
	router.SceneComparison:   {Name: router.SceneComparison, Header: "## Comparison", Intro: "Here's how these compare:"},
	router.SceneListing:      {Name: router.SceneListing, Header: "## Options", Intro: "Here's what's available:"},
	router.SceneUnclassified: {Name: router.SceneUnclassified, Header: "## Answer", Intro: "Here's what was found:"},
}

// Render assembles the final Markdown output: an intro line, the cited
// section bodies each preceded by a "[n] Heading" citation marker, and a
// trailing Sources block.
func Render(scene router.Scene, sectionTitles []string, sectionBodies []string, sources []Source) string {
	tmpl, ok := scenes[scene]
	if !ok {
		tmpl = scenes[router.SceneUnclassified]
	}

	var b strings.Builder
	b.WriteString(tmpl.Intro)
	b.WriteString("\n\n")
	b.WriteString(tmpl.Header)
	b.WriteString("\n\n")

	for i, body := range sectionBodies {
		title := ""
		if i < len(sectionTitles) {
			title = sectionTitles[i]
		}
		fmt.Fprintf(&b, "**[%d] %s**\n\n%s\n\n", i+1, title, strings.TrimSpace(body))
	}

	b.WriteString(renderSources(sources))
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func renderSources(sources []Source) string {
	if len(sources) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("## Sources\n\n")
	for i, s := range sources {
		if s.SourceURL != "" {
			fmt.Fprintf(&b, "%d. [%s](%s)\n", i+1, s.Title, s.SourceURL)
		} else {
			fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, s.Title, s.LocalPath)
		}
	}
	return b.String()
}
