package delta

import "testing"

func TestGraphemeCount_ZWJSequenceIsOneCharacter(t *testing.T) {
	// woman mountain biking, light skin tone: several codepoints joined
	// by ZWJ and a skin-tone modifier, but a single user-perceived glyph.
	s := "🚵🏻‍♀️"
	if got := GraphemeCount(s); got != 1 {
		t.Fatalf("GraphemeCount(emoji ZWJ sequence) = %d, want 1", got)
	}
}

func TestTakeGraphemes_NeverSplitsACluster(t *testing.T) {
	s := "01🚵🏻‍♀️345"
	left, right := TakeGraphemes(s, 2)
	if left != "01" {
		t.Fatalf("TakeGraphemes(2) left = %q, want %q", left, "01")
	}
	if GraphemeCount(right) != 4 {
		t.Fatalf("TakeGraphemes(2) right grapheme count = %d, want 4", GraphemeCount(right))
	}

	left, right = TakeGraphemes(s, 3)
	wantLeft := "01🚵🏻‍♀️"
	if left != wantLeft {
		t.Fatalf("TakeGraphemes(3) left = %q, want %q", left, wantLeft)
	}
	if right != "345" {
		t.Fatalf("TakeGraphemes(3) right = %q, want %q", right, "345")
	}
}

func TestTakeGraphemes_NBeyondLength(t *testing.T) {
	left, right := TakeGraphemes("hi", 10)
	if left != "hi" || right != "" {
		t.Fatalf("TakeGraphemes(n>len) = (%q, %q), want (%q, %q)", left, right, "hi", "")
	}
}

func TestGraphemeCount_Empty(t *testing.T) {
	if GraphemeCount("") != 0 {
		t.Fatalf("GraphemeCount(\"\") should be 0")
	}
}
