package bloom

import "testing"

func TestAddIfAbsent(t *testing.T) {
	f := New(100, 0.01)
	if !f.AddIfAbsent("https://example.com/a") {
		t.Fatal("expected first add to report absent")
	}
	if f.AddIfAbsent("https://example.com/a") {
		t.Fatal("expected second add of same key to report present")
	}
	if !f.AddIfAbsent("https://example.com/b") {
		t.Fatal("expected a distinct key to report absent")
	}
}

func TestMightContain_FalseForUnseen(t *testing.T) {
	f := New(100, 0.01)
	f.Add("seen")
	if f.MightContain("never-added") {
		t.Fatal("unexpected positive for a key that was never added (may rarely false-positive, but not for this fixed small set)")
	}
}
