package ws

import (
	"time"

	"collabdelta/delta"
)

type ClientMessage struct {
	Type         string      `json:"type"`
	DocID        string      `json:"docId"`
	DocTitle     string      `json:"docTitle"`
	BaseRevision uint64      `json:"baseRevision"`
	ClientId     string      `json:"clientId"`
	ClientSeq    uint64      `json:"clientSeq"`
	Ops          delta.Delta `json:"ops"`
	Content      string      `json:"content,omitempty"`
	Cursor       int         `json:"cursor,omitempty"`
}

type PresenceMember struct {
	UserID   uint64 `json:"userId"`
	Username string `json:"username,omitempty"`
}

type ServerMessage struct {
	Type     string           `json:"type"`
	UserID   uint64           `json:"userId,omitempty"`
	DocID    string           `json:"docId,omitempty"`
	Revision uint64           `json:"revision,omitempty"`
	Members  []PresenceMember `json:"members,omitempty"`
	Cursor   interface{}      `json:"cursor,omitempty"`
	Content  string           `json:"content,omitempty"`
}

type OpSubmitMessage struct {
	Type            string      `json:"type"`
	DocID           string      `json:"docId"`
	BaseRevision    uint64      `json:"baseRevision"`
	CurrentRevision uint64      `json:"currentRevision"`
	ClientId        string      `json:"clientId"`
	ClientSeq       uint64      `json:"clientSeq"`
	Ops             delta.Delta `json:"ops"`
}

// OpBroadcastMessage is pushed to every other connection in the room
// once an op is applied; recipients apply Ops locally and fast-forward
// their own revision to Revision.
type OpBroadcastMessage struct {
	Type      string      `json:"type"`
	DocID     string      `json:"docId"`
	Revision  uint64      `json:"revision"`
	AuthorID  uint64      `json:"authorId"`
	ClientId  string      `json:"clientId,omitempty"`
	ClientSeq uint64      `json:"clientSeq,omitempty"`
	Ops       delta.Delta `json:"ops"`
	AppliedAt time.Time   `json:"appliedAt,omitempty"`
}

type OpAppliedMessage struct {
	Type            string `json:"type"`
	DocID           string `json:"docId"`
	BaseRevision    uint64 `json:"baseRevision"`
	CurrentRevision uint64 `json:"currentRevision"`
	ClientId        string `json:"clientId"`
	ClientSeq       uint64 `json:"clientSeq"`
}
