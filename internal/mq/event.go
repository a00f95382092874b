package mq

import (
	"time"

	"collabdelta/delta"
)

// DocOpEvent is the change-data-capture record published for every
// operation the collab engine accepts, keyed by docID so a
// partitioned topic keeps a document's events in order.
type DocOpEvent struct {
	EventType    string      `json:"eventType"` // always "OP_APPLIED"
	DocID        string      `json:"docId"`
	OperationID  string      `json:"operationId"`
	Revision     uint64      `json:"revision"`
	AuthorID     uint64      `json:"authorId"`
	ClientID     string      `json:"clientId"`
	ClientSeq    uint64      `json:"clientSeq"`
	BaseRevision uint64      `json:"baseRevision"`
	Ops          delta.Delta `json:"ops"`
	AppliedAt    time.Time   `json:"appliedAt"`
}
