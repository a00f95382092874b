package delta

import "github.com/rivo/uniseg"

// GraphemeCount returns the number of extended grapheme clusters (UAX #29)
// in s. This is the unit every length in the algebra is measured in, so
// that a ZWJ emoji sequence or a combining-mark pair counts as one
// character rather than splitting across operations.
func GraphemeCount(s string) int {
	if s == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(s)
}

// TakeGraphemes splits s after its first n grapheme clusters, returning
// the two halves. The cut always falls on a cluster boundary; n is
// clamped to [0, GraphemeCount(s)].
func TakeGraphemes(s string, n int) (left, right string) {
	if n <= 0 {
		return "", s
	}
	gr := uniseg.NewGraphemes(s)
	count := 0
	boundary := len(s)
	for gr.Next() {
		count++
		if count == n {
			_, to := gr.Positions()
			boundary = to
			break
		}
	}
	if count < n {
		return s, ""
	}
	return s[:boundary], s[boundary:]
}

// TakeMaxGraphemes returns the shortest prefix of s whose grapheme count
// is at least n. Because every cut here is already cluster-aligned this
// coincides with the left half of TakeGraphemes(s, n); it exists as its
// own name because callers (slice_max) reason about "at least n", not
// "exactly n".
func TakeMaxGraphemes(s string, n int) string {
	left, _ := TakeGraphemes(s, n)
	return left
}
