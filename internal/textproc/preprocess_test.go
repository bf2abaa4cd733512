package textproc

import "testing"

func TestEnglishStem(t *testing.T) {
	cases := map[string]string{
		"policies": "policy",
		"keys":     "key",
		"knives":   "knif",
		"rotated":  "rotated",
		"tied":     "tied",
	}
	for in, want := range cases {
		if got := EnglishStem(in); got != want {
			t.Errorf("EnglishStem(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPreprocessForRerank_PreservesTextWithDomainNoun(t *testing.T) {
	text := "rotate the api key now"
	out := PreprocessForRerank(text, []string{"key"}, []string{"rotate"}, nil)
	if out != text {
		t.Fatalf("expected byte-identical passthrough, got %q", out)
	}
}

func TestPreprocessForRerank_StripsVerbsWithoutDomainNoun(t *testing.T) {
	text := "please rotate this now"
	out := PreprocessForRerank(text, []string{"key"}, []string{"rotate"}, nil)
	if out == text {
		t.Fatalf("expected verb to be stripped")
	}
	if containsWord(out, "rotate") {
		t.Fatalf("expected 'rotate' to be removed, got %q", out)
	}
}

func TestPreprocessForRerank_Idempotent(t *testing.T) {
	text := "please rotate this now"
	once := PreprocessForRerank(text, []string{"key"}, []string{"rotate"}, nil)
	twice := PreprocessForRerank(once, []string{"key"}, []string{"rotate"}, nil)
	if once != twice {
		t.Fatalf("expected idempotent output, got %q then %q", once, twice)
	}
}

func containsWord(s, word string) bool {
	for _, tok := range Tokenize(s) {
		if tok == word {
			return true
		}
	}
	return false
}
