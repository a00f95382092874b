package delta

import "strings"

// Apply composes change onto doc, where doc is itself a Delta made
// entirely of inserts representing a document's current content. The
// result is the document's new content.
func Apply(doc, change Delta) (Delta, error) {
	return Compose(doc, change)
}

// PlainText concatenates every text insert in a document Delta,
// ignoring embeds. It panics if d contains a retain or delete, since
// those only make sense in a change, not a document.
func PlainText(d Delta) string {
	var b strings.Builder
	for _, op := range d {
		if !op.IsInsert() {
			panic("delta: PlainText called on a non-document delta")
		}
		if text, ok := op.Text(); ok {
			b.WriteString(text)
		}
	}
	return b.String()
}

// FromText builds a single-operation document Delta out of a plain
// string, the common case of seeding a new document.
func FromText(s string) Delta {
	if s == "" {
		return nil
	}
	op, _ := Insert(s, nil)
	return Delta{op}
}
