package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"strconv"
	"time"

	"collabdelta/internal/collab"

	"github.com/gorilla/websocket"
)

type Conn struct {
	ws        *websocket.Conn
	hub       *Hub
	docID     string
	userID    uint64
	username  string
	clientID  string
	clientSeq uint64
	send      chan OutboundMessage
	svc       collab.Service
	sem       *collab.SemaphoreControl
}

type OutboundMessage interface {
	MessageType() string
}

func (m ServerMessage) MessageType() string     { return m.Type }
func (m OpSubmitMessage) MessageType() string    { return m.Type }
func (m OpAppliedMessage) MessageType() string   { return m.Type }
func (m OpBroadcastMessage) MessageType() string { return m.Type }

func NewConn(ws *websocket.Conn, hub *Hub, docID string, userID uint64, username string, svc collab.Service, sem *collab.SemaphoreControl) *Conn {
	return &Conn{ws: ws, hub: hub, docID: docID, userID: userID, username: username, send: make(chan OutboundMessage, 32), svc: svc, sem: sem}
}

func SetDocID(c *Conn, docID string) {
	c.docID = docID
}

func (c *Conn) SendMessage_Enqueue(msg OutboundMessage) {
	select {
	case c.send <- msg:
	default:
		// queue full: drop rather than block the fan-out loop
	}
}

func (c *Conn) handleOpSubmit(ctx context.Context, msg OpSubmitMessage, authorID uint64) {
	submitCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()

	if err := c.sem.Acquire(submitCtx); err != nil {
		c.SendMessage_Enqueue(ServerMessage{Type: "error", Content: err.Error()})
		return
	}
	defer c.sem.Release()

	applied, err := c.svc.Submit(submitCtx, msg.DocID, authorID,
		msg.BaseRevision, msg.ClientId, msg.ClientSeq, msg.Ops)
	if err != nil {
		c.SendMessage_Enqueue(ServerMessage{Type: "error", Content: err.Error()})
		return
	}
	c.SendMessage_Enqueue(OpAppliedMessage{
		Type: "op_applied", DocID: msg.DocID, BaseRevision: msg.BaseRevision,
		CurrentRevision: applied.Revision, ClientId: msg.ClientId, ClientSeq: msg.ClientSeq,
	})
	c.hub.BroadcastApplied(msg.DocID, c, OpBroadcastMessage{
		Type: "op_broadcast", DocID: msg.DocID, Revision: applied.Revision,
		AuthorID: c.userID, ClientId: msg.ClientId, ClientSeq: msg.ClientSeq,
		Ops: applied.Ops, AppliedAt: applied.AppliedAt,
	})
	c.hub.RebaseCursors(ctx, msg.DocID, applied.Ops)
}

func (c *Conn) readLoop(ctx context.Context) {
	defer close(c.send)
	for {
		var clientMessage ClientMessage
		if err := c.ws.ReadJSON(&clientMessage); err != nil {
			log.Printf("read json error (user=%d, doc=%s): %v", c.userID, c.docID, err)
			return
		}
		switch clientMessage.Type {
		case "heartbeat":
			if err := c.hub.presence.AddMember(ctx, c.docID, c.userID, c.username, 600*time.Second); err != nil {
				log.Printf("add member error: %v", err)
			}
			members, err := c.hub.presence.GetAliveMembersWithNames(ctx, c.docID)
			if err != nil {
				log.Printf("get members error: %v", err)
			}
			for _, member := range members {
				c.send <- ServerMessage{Type: "presence", Content: fmt.Sprintf("User %d(%s) is online", member.UserID, member.Username)}
			}
			c.send <- ServerMessage{Type: "feedback", Content: "Heartbeat received"}

		case "createDocument":
			docTitle := clientMessage.DocTitle
			if err := c.svc.CreateDocument(ctx, c.userID, docTitle); err != nil {
				log.Printf("create document error: %v", err)
				c.send <- ServerMessage{Type: "error", Content: "CREATE_DOC_FAILED"}
				return
			}
			docID, err := c.svc.GetDocumentID(ctx, docTitle)
			if err != nil {
				log.Printf("get document id error: %v", err)
				c.send <- ServerMessage{Type: "error", Content: "GET_DOCID_FAILED"}
				return
			}
			_ = c.hub.presence.AddMember(ctx, docID, c.userID, c.username, 600*time.Second)
			c.send <- ServerMessage{Type: "createDocument", DocID: docID, Content: "Document " + docID + " created by user " + strconv.FormatUint(c.userID, 10)}

		case "joinDocument":
			if clientMessage.DocTitle != "" {
				docID, err := c.svc.GetDocumentID(ctx, clientMessage.DocTitle)
				if err != nil {
					log.Printf("get document id error: %v", err)
					c.send <- ServerMessage{Type: "error", Content: "GET_DOCID_FAILED"}
					continue
				}
				if c.docID != "" && c.docID != docID {
					c.hub.Leave(c.docID, c)
				}
				c.docID = docID
				SetDocID(c, c.docID)
			}

			documents, err := c.hub.presence.GetDocuments(ctx)
			if err != nil {
				log.Printf("get documents error: %v", err)
			}
			if !slices.Contains(documents, c.docID) {
				c.send <- ServerMessage{Type: "joinDocument", DocID: c.docID, Content: "Document " + c.docID + " not found"}
				continue
			}
			c.hub.Join(c.docID, c)
			_ = c.hub.presence.AddMember(ctx, c.docID, c.userID, c.username, 600*time.Second)
			c.send <- ServerMessage{Type: "joinDocument", DocID: c.docID, Content: "Document " + c.docID + " joined by user " + strconv.FormatUint(c.userID, 10)}

		case "show_alive_members":
			members, err := c.hub.presence.GetAliveMembersWithNames(ctx, c.docID)
			if err != nil {
				log.Printf("get alive members with names error: %v", err)
			}
			memberNames := make([]PresenceMember, len(members))
			for i, m := range members {
				memberNames[i] = PresenceMember{UserID: m.UserID, Username: m.Username}
			}
			c.send <- ServerMessage{Type: "show_alive_members", Members: memberNames, Content: fmt.Sprintf("Alive members: %v", memberNames)}

		case "op_submit":
			msg := OpSubmitMessage{
				Type:         clientMessage.Type,
				DocID:        clientMessage.DocID,
				BaseRevision: clientMessage.BaseRevision,
				ClientId:     clientMessage.ClientId,
				ClientSeq:    clientMessage.ClientSeq,
				Ops:          clientMessage.Ops,
			}
			c.handleOpSubmit(ctx, msg, c.userID)

		case "saveDocument":
			if err := c.svc.SaveSnapshot(ctx, clientMessage.DocID); err != nil {
				log.Printf("save document error: %v", err)
				c.send <- ServerMessage{Type: "saveDocument", Content: "Document " + clientMessage.DocID + " save failed"}
				continue
			}
			c.send <- ServerMessage{Type: "saveDocument", Content: "Document " + clientMessage.DocID + " saved"}

		case "loadDocumentContent":
			content, revision, err := c.svc.LoadDocumentContent(ctx, clientMessage.DocID)
			if err != nil {
				log.Printf("load document content error: %v", err)
			} else {
				c.send <- ServerMessage{Type: "loadDocumentContent", Content: content, Revision: revision}
			}

		case "cursor":
			raw, err := json.Marshal(clientMessage.Cursor)
			if err != nil {
				continue
			}
			if err := c.hub.presence.SetCursor(ctx, clientMessage.DocID, c.userID, raw, 10*time.Minute); err != nil {
				log.Printf("set cursor error: %v", err)
				continue
			}
			c.hub.BroadcastCursor(clientMessage.DocID, c.userID, clientMessage.Cursor)

		default:
			c.send <- ServerMessage{Type: "ignored", Content: "Unknown message type"}
		}
	}
}

func (c *Conn) writeLoop() {
	for msg := range c.send {
		_ = c.ws.WriteJSON(msg)
	}
}
