package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"collabdelta/delta"
	"collabdelta/internal/cache"
)

// Hub tracks which connections are watching which document, for
// broadcasting applied ops and presence; cross-instance presence is
// delegated to cache.PresenceCache so a multi-replica deployment sees
// a consistent roster.
type Hub struct {
	presence cache.PresenceCache
	mu       sync.RWMutex
	rooms    map[string]map[*Conn]struct{}
}

func NewHub(p cache.PresenceCache) *Hub {
	return &Hub{presence: p, rooms: make(map[string]map[*Conn]struct{})}
}

func (h *Hub) Join(docID string, c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[docID] == nil {
		h.rooms[docID] = make(map[*Conn]struct{})
	}
	h.rooms[docID][c] = struct{}{}
}

func (h *Hub) Leave(docID string, c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.rooms[docID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.rooms, docID)
		}
	}
}

func (h *Hub) BroadcastPresence(docID string, members []PresenceMember) {
	h.mu.RLock()
	conns := h.rooms[docID]
	h.mu.RUnlock()
	content, err := json.Marshal(members)
	if err != nil {
		return
	}
	msg := ServerMessage{Type: "presence", DocID: docID, Content: string(content), Members: members}
	for c := range conns {
		c.SendMessage_Enqueue(msg)
	}
}

func (h *Hub) BroadcastCursor(docID string, userID uint64, pos int) {
	h.mu.RLock()
	conns := h.rooms[docID]
	h.mu.RUnlock()
	msg := ServerMessage{Type: "cursor", DocID: docID, UserID: userID, Cursor: pos}
	for c := range conns {
		c.SendMessage_Enqueue(msg)
	}
}

// RebaseCursors shifts every alive member's last-known cursor offset
// in docID across ops, the same way the operations themselves would
// move a caret sitting in their path, and broadcasts the new
// positions. A member with no cached cursor yet is skipped.
func (h *Hub) RebaseCursors(ctx context.Context, docID string, ops delta.Delta) {
	members, err := h.presence.GetAliveMembersWithNames(ctx, docID)
	if err != nil {
		log.Printf("rebase cursors: get members error: %v", err)
		return
	}
	for _, m := range members {
		raw, err := h.presence.GetCursor(ctx, docID, m.UserID)
		if err != nil {
			continue
		}
		var pos int
		if err := json.Unmarshal(raw, &pos); err != nil {
			continue
		}
		rebased := delta.TransformPosition(pos, ops, true)
		if rebased == pos {
			continue
		}
		next, err := json.Marshal(rebased)
		if err != nil {
			continue
		}
		if err := h.presence.SetCursor(ctx, docID, m.UserID, next, 10*time.Minute); err != nil {
			continue
		}
		h.BroadcastCursor(docID, m.UserID, rebased)
	}
}

// BroadcastApplied pushes a just-applied change to every connection in
// the room other than the one that submitted it.
func (h *Hub) BroadcastApplied(docID string, from *Conn, msg OpBroadcastMessage) {
	h.mu.RLock()
	conns := h.rooms[docID]
	h.mu.RUnlock()
	for c := range conns {
		if c == from {
			continue
		}
		c.SendMessage_Enqueue(msg)
	}
}

func (h *Hub) Presence() cache.PresenceCache { return h.presence }
