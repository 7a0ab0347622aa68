package words

import "testing"

func TestInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if Stats() == 0 {
		t.Fatal("no candidates loaded from embedded list")
	}
	for _, w := range Candidates() {
		if w == "" || !isAlpha(w) {
			t.Errorf("candidate %q is not a lowercase word", w)
		}
	}
}

func TestRandomWord(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	set := make(map[string]struct{}, Stats())
	for _, w := range Candidates() {
		set[w] = struct{}{}
	}
	for i := 0; i < 50; i++ {
		if _, ok := set[RandomWord()]; !ok {
			t.Fatal("RandomWord returned a word outside the candidate list")
		}
	}
}

func TestNormalizeLines(t *testing.T) {
	got := normalizeLines("  Apple \n\nbanana\nc3po\n\tCHERRY\n")
	want := []string{"apple", "banana", "cherry"}
	if len(got) != len(want) {
		t.Fatalf("normalizeLines returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIsAlpha(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"cat", true},
		{"Cat", false},
		{"c4t", false},
		{"", true}, // vacuously true; emptiness is checked separately
	}
	for _, c := range cases {
		if got := isAlpha(c.in); got != c.want {
			t.Errorf("isAlpha(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
