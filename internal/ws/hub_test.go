package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"collabdelta/delta"
	"collabdelta/internal/cache"
)

type fakePresence struct {
	members []cache.PresenceMember
	cursors map[uint64][]byte
}

func newFakePresence(members ...cache.PresenceMember) *fakePresence {
	return &fakePresence{members: members, cursors: make(map[uint64][]byte)}
}

func (f *fakePresence) AddMember(ctx context.Context, docID string, userID uint64, username string, ttl time.Duration) error {
	return nil
}
func (f *fakePresence) GetDocuments(ctx context.Context) ([]string, error) { return nil, nil }
func (f *fakePresence) GetAliveMembersWithNames(ctx context.Context, docID string) ([]cache.PresenceMember, error) {
	return f.members, nil
}
func (f *fakePresence) SetCursor(ctx context.Context, docID string, userID uint64, jsonData []byte, ttl time.Duration) error {
	f.cursors[userID] = jsonData
	return nil
}
func (f *fakePresence) GetCursor(ctx context.Context, docID string, userID uint64) ([]byte, error) {
	v, ok := f.cursors[userID]
	if !ok {
		return nil, context.DeadlineExceeded
	}
	return v, nil
}

func mustOp(op delta.Op, err error) delta.Op {
	if err != nil {
		panic(fmt.Sprintf("build op: %v", err))
	}
	return op
}

func TestHub_RebaseCursors_ShiftsPastAnInsert(t *testing.T) {
	presence := newFakePresence(cache.PresenceMember{UserID: 1})
	presence.cursors[1] = []byte("10")

	hub := NewHub(presence)
	ops := delta.Delta{
		mustOp(delta.Retain(5, nil)),
		mustOp(delta.Insert("XXXXX", nil)),
	}
	hub.RebaseCursors(context.Background(), "doc1", ops)

	var got int
	if err := json.Unmarshal(presence.cursors[1], &got); err != nil {
		t.Fatalf("unmarshal rebased cursor: %v", err)
	}
	if got != 15 {
		t.Fatalf("rebased cursor = %d, want 15", got)
	}
}

func TestHub_RebaseCursors_LeavesCursorBeforeTheEditAlone(t *testing.T) {
	presence := newFakePresence(cache.PresenceMember{UserID: 1})
	presence.cursors[1] = []byte("2")

	hub := NewHub(presence)
	ops := delta.Delta{
		mustOp(delta.Retain(5, nil)),
		mustOp(delta.Insert("XXXXX", nil)),
	}
	hub.RebaseCursors(context.Background(), "doc1", ops)

	var got int
	if err := json.Unmarshal(presence.cursors[1], &got); err != nil {
		t.Fatalf("unmarshal cursor: %v", err)
	}
	if got != 2 {
		t.Fatalf("cursor = %d, want unchanged at 2", got)
	}
}

func TestHub_JoinLeave_TracksRoomMembership(t *testing.T) {
	hub := NewHub(newFakePresence())
	c := &Conn{send: make(chan OutboundMessage, 1)}

	hub.Join("doc1", c)
	hub.mu.RLock()
	_, inRoom := hub.rooms["doc1"][c]
	hub.mu.RUnlock()
	if !inRoom {
		t.Fatalf("connection not registered in room after Join")
	}

	hub.Leave("doc1", c)
	hub.mu.RLock()
	_, stillInRoom := hub.rooms["doc1"]
	hub.mu.RUnlock()
	if stillInRoom {
		t.Fatalf("room not cleaned up after last member left")
	}
}
