package collab

import "collabdelta/delta"

// Buffer is the abstract document content store a docState mutates.
// DeltaDocument is the only implementation; the interface exists so
// Service's history and snapshot plumbing doesn't need to know that.
type Buffer interface {
	Len() int
	Apply(d delta.Delta) error
	String() string
	Content() delta.Delta
}
