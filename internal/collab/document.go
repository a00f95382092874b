package collab

import "collabdelta/delta"

// DeltaDocument holds a document's content as the Delta it would take
// to type it from scratch (a sequence of inserts), the representation
// Apply's compose algebra expects as its left-hand side. Every mutation
// goes through delta.Apply, so a document can carry rich-text
// attributes and embeds, not just plain runes.
type DeltaDocument struct {
	content delta.Delta
}

func NewDeltaDocument(seed string) *DeltaDocument {
	return &DeltaDocument{content: delta.FromText(seed)}
}

func (d *DeltaDocument) Len() int {
	return d.content.Length()
}

func (d *DeltaDocument) Apply(change delta.Delta) error {
	next, err := delta.Apply(d.content, change)
	if err != nil {
		return err
	}
	d.content = next
	return nil
}

func (d *DeltaDocument) String() string {
	return delta.PlainText(d.content)
}

func (d *DeltaDocument) Content() delta.Delta {
	return d.content
}
