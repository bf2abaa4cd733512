package corpus

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseTOC(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docTOC.md")
	content := "## Getting started：https://example.com/start\n### Installing the CLI\n- Advanced usage\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	headings, err := ParseTOC(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(headings) != 3 {
		t.Fatalf("expected 3 headings, got %d", len(headings))
	}
	if headings[0].Text != "Getting started" || headings[0].Anchor != "https://example.com/start" {
		t.Fatalf("unexpected first heading: %+v", headings[0])
	}
	if headings[0].Level != 2 {
		t.Fatalf("expected level 2, got %d", headings[0].Level)
	}
	if headings[2].Level != 4 {
		t.Fatalf("expected list item to be level 4, got %d", headings[2].Level)
	}
}

func TestRemoveURLFromHeading(t *testing.T) {
	got := RemoveURLFromHeading("Install guide: https://example.com/install")
	if got != "Install guide" {
		t.Fatalf("got %q", got)
	}
	got = RemoveURLFromHeading("[Install guide](https://example.com/install)")
	if got != "Install guide" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractPageTitle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docContent.md")
	if err := os.WriteFile(path, []byte("# My Page Title\n\nbody\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	title, err := ExtractPageTitle(path)
	if err != nil {
		t.Fatal(err)
	}
	if title != "My Page Title" {
		t.Fatalf("got %q", title)
	}
}

func TestIsHeadingLine(t *testing.T) {
	if !IsHeadingLine("## Section") {
		t.Fatal("expected true")
	}
	if IsHeadingLine("not a heading") {
		t.Fatal("expected false")
	}
}
