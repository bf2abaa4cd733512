package textproc

import "testing"

func TestTokenize_ASCIIAndCJKMixed(t *testing.T) {
	toks := Tokenize("Rotate 密钥 now")
	want := []string{"rotate", "密", "钥", "now"}
	if len(toks) != len(want) {
		t.Fatalf("got %v, want %v", toks, want)
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Fatalf("got %v, want %v", toks, want)
		}
	}
}

func TestTokenize_LowercasesAndSplitsPunctuation(t *testing.T) {
	toks := Tokenize("Widget-Rotate_Key!")
	want := []string{"widget", "rotate", "key"}
	if len(toks) != len(want) {
		t.Fatalf("got %v, want %v", toks, want)
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Fatalf("got %v, want %v", toks, want)
		}
	}
	for _, tok := range toks {
		for _, r := range tok {
			if r >= 'A' && r <= 'Z' {
				t.Fatalf("expected lowercase tokens, got %q", tok)
			}
		}
	}
}
