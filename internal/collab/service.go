package collab

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"collabdelta/delta"
	"collabdelta/internal/mq"
)

// Service is the collaborative editing engine: it owns every open
// document's authoritative content and revision counter, and is the
// only thing allowed to advance either.
type Service interface {
	Submit(ctx context.Context, docID string, authorID uint64,
		baseRevision uint64, clientID string, clientSeq uint64,
		ops delta.Delta) (AppliedOp, error)

	CurrentRevision(ctx context.Context, docID string) (uint64, error)

	LoadDocumentContent(ctx context.Context, docID string) (string, uint64, error)

	OpsSince(ctx context.Context, docID string, fromRevision uint64, limit int) ([]AppliedOp, error)

	SaveSnapshot(ctx context.Context, docID string) error

	GetDocumentID(ctx context.Context, title string) (string, error)
	CreateDocument(ctx context.Context, ownerID uint64, title string) error

	GetUserID(ctx context.Context, username string) (uint64, error)
}

type SnapshotStore interface {
	SaveDocumentSnapshot(ctx context.Context, docID string, rev uint64, content string) error
}

type DocumentStore interface {
	GetDocumentID(ctx context.Context, title string) (string, error)
	CreateDocument(ctx context.Context, ownerID uint64, title string) error
}

type UserStore interface {
	GetUserID(ctx context.Context, username string) (uint64, error)
}

// AppliedOp is what Submit hands back and what OpsSince replays: the
// operation as actually applied (after being rebased against anything
// it missed), never the client's original stale-base submission.
type AppliedOp struct {
	OperationId string
	Revision    uint64
	AuthorId    uint64
	Ops         delta.Delta
	AppliedAt   time.Time
}

var (
	ErrRevisionConflict      = errors.New("REVISION_CONFLICT")
	ErrDuplicateOrOutOfOrder = errors.New("DUPLICATE_OR_OUT_OF_ORDER")
)

type docState struct {
	mu              sync.RWMutex
	revision        uint64
	opsRing         []AppliedOp
	lastSeqByClient map[string]uint64
	buf             Buffer
}

// InMemoryService holds every open document's state in process memory.
// Submitted ops whose baseRevision has fallen behind aren't rejected:
// they're rebased with delta.Transform against every op the ring
// recorded since that revision, server-side ops winning tie-breaks,
// then applied and broadcast as the (possibly shifted) result — the
// same reconciliation a client performs against a remote peer, run
// once centrally instead of pairwise.
type InMemoryService struct {
	mu      sync.RWMutex
	docs    map[string]*docState
	ringCap int

	store         SnapshotStore
	documentStore DocumentStore
	userStore     UserStore

	dispatcher *mq.Dispatcher
}

func NewInMemoryService(store SnapshotStore, documentStore DocumentStore, userStore UserStore, dispatcher *mq.Dispatcher) Service {
	return &InMemoryService{
		docs:          make(map[string]*docState),
		ringCap:       1024,
		store:         store,
		documentStore: documentStore,
		userStore:     userStore,
		dispatcher:    dispatcher,
	}
}

func (s *InMemoryService) LoadDocumentContent(ctx context.Context, docID string) (string, uint64, error) {
	s.mu.RLock()
	ds := s.docs[docID]
	s.mu.RUnlock()
	if ds == nil {
		return "", 0, errors.New("document not found")
	}
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.buf.String(), ds.revision, nil
}

func (s *InMemoryService) getOrCreateDoc(docID string) *docState {
	s.mu.RLock()
	ds := s.docs[docID]
	s.mu.RUnlock()
	if ds != nil {
		return ds
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if ds = s.docs[docID]; ds == nil {
		capacity := s.ringCap
		if capacity <= 0 {
			capacity = 1024
		}
		ds = &docState{
			lastSeqByClient: make(map[string]uint64),
			opsRing:         make([]AppliedOp, 0, capacity),
			buf:             NewDeltaDocument(""),
		}
		s.docs[docID] = ds
	}
	return ds
}

// rebase transforms ops forward across every AppliedOp in the ring
// whose revision is greater than baseRevision, in the order they were
// applied, with priority given to the already-applied server op
// (since it occupies the position first).
func rebase(ring []AppliedOp, baseRevision uint64, ops delta.Delta) (delta.Delta, error) {
	for _, applied := range ring {
		if applied.Revision <= baseRevision {
			continue
		}
		transformed, err := delta.Transform(applied.Ops, ops, true)
		if err != nil {
			return nil, fmt.Errorf("rebase against revision %d: %w", applied.Revision, err)
		}
		ops = transformed
	}
	return ops, nil
}

func (s *InMemoryService) Submit(ctx context.Context, docID string, authorID uint64, baseRevision uint64, clientID string, clientSeq uint64, ops delta.Delta) (AppliedOp, error) {
	ds := s.getOrCreateDoc(docID)
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if last := ds.lastSeqByClient[clientID]; clientSeq <= last {
		return AppliedOp{}, ErrDuplicateOrOutOfOrder
	}
	if baseRevision > ds.revision {
		return AppliedOp{}, ErrRevisionConflict
	}

	rebased, err := rebase(ds.opsRing, baseRevision, ops)
	if err != nil {
		return AppliedOp{}, err
	}

	if ds.buf == nil {
		ds.buf = NewDeltaDocument("")
	}
	if err := ds.buf.Apply(rebased); err != nil {
		return AppliedOp{}, err
	}

	ds.revision++
	appliedOp := AppliedOp{
		OperationId: fmt.Sprintf("o-%d", time.Now().UnixNano()),
		Revision:    ds.revision,
		AuthorId:    authorID,
		Ops:         rebased,
		AppliedAt:   time.Now(),
	}

	if cap(ds.opsRing) > 0 && len(ds.opsRing) == cap(ds.opsRing) {
		copy(ds.opsRing[0:], ds.opsRing[1:])
		ds.opsRing = ds.opsRing[:len(ds.opsRing)-1]
	}
	ds.opsRing = append(ds.opsRing, appliedOp)
	ds.lastSeqByClient[clientID] = clientSeq

	if s.dispatcher != nil {
		evt := mq.DocOpEvent{
			EventType:    "OP_APPLIED",
			DocID:        docID,
			OperationID:  appliedOp.OperationId,
			Revision:     appliedOp.Revision,
			AuthorID:     appliedOp.AuthorId,
			ClientID:     clientID,
			ClientSeq:    clientSeq,
			BaseRevision: baseRevision,
			Ops:          appliedOp.Ops,
			AppliedAt:    appliedOp.AppliedAt,
		}
		enqueueCtx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		go func() {
			defer cancel()
			_ = s.dispatcher.Enqueue(enqueueCtx, evt)
		}()
	}

	return appliedOp, nil
}

func (s *InMemoryService) CurrentRevision(ctx context.Context, docID string) (uint64, error) {
	s.mu.RLock()
	ds := s.docs[docID]
	s.mu.RUnlock()
	if ds == nil {
		return 0, nil
	}
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.revision, nil
}

func (s *InMemoryService) OpsSince(ctx context.Context, docID string, fromRevision uint64, limit int) ([]AppliedOp, error) {
	s.mu.RLock()
	ds := s.docs[docID]
	s.mu.RUnlock()
	if ds == nil {
		return nil, nil
	}
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	var out []AppliedOp
	for _, op := range ds.opsRing {
		if op.Revision > fromRevision {
			out = append(out, op)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (s *InMemoryService) SaveSnapshot(ctx context.Context, docID string) error {
	if s.store == nil {
		return errors.New("snapshot store not initialized")
	}
	s.mu.RLock()
	ds := s.docs[docID]
	s.mu.RUnlock()
	if ds == nil || ds.buf == nil {
		return errors.New("document not found or buffer not initialized")
	}
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return s.store.SaveDocumentSnapshot(ctx, docID, ds.revision, ds.buf.String())
}

func (s *InMemoryService) GetDocumentID(ctx context.Context, title string) (string, error) {
	if s.documentStore == nil {
		return "", errors.New("document store not initialized")
	}
	return s.documentStore.GetDocumentID(ctx, title)
}

func (s *InMemoryService) CreateDocument(ctx context.Context, ownerID uint64, title string) error {
	if s.documentStore == nil {
		return errors.New("document store not initialized")
	}
	return s.documentStore.CreateDocument(ctx, ownerID, title)
}

func (s *InMemoryService) GetUserID(ctx context.Context, username string) (uint64, error) {
	if s.userStore == nil {
		return 0, errors.New("user store not initialized")
	}
	return s.userStore.GetUserID(ctx, username)
}
