package collab

import (
	"context"
	"fmt"
	"testing"

	"collabdelta/delta"
)

func mustOp(op delta.Op, err error) delta.Op {
	if err != nil {
		panic(fmt.Sprintf("build op: %v", err))
	}
	return op
}

func newTestService() Service {
	return NewInMemoryService(nil, nil, nil, nil)
}

func TestSubmit_AppliesAtCurrentRevision(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	ops := delta.Delta{mustOp(delta.Insert("hello", nil))}
	applied, err := svc.Submit(ctx, "doc1", 1, 0, "client-a", 1, ops)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if applied.Revision != 1 {
		t.Fatalf("Revision = %d, want 1", applied.Revision)
	}

	content, rev, err := svc.LoadDocumentContent(ctx, "doc1")
	if err != nil {
		t.Fatalf("LoadDocumentContent() error = %v", err)
	}
	if content != "hello" {
		t.Fatalf("content = %q, want %q", content, "hello")
	}
	if rev != 1 {
		t.Fatalf("rev = %d, want 1", rev)
	}
}

func TestSubmit_RebasesStaleBaseRevisionInsteadOfRejecting(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Submit(ctx, "doc1", 1, 0, "client-a", 1,
		delta.Delta{mustOp(delta.Insert("hello", nil))}); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	// client-b started from revision 0, same as client-a, but submits
	// after client-a's op already landed at revision 1. Its insert at
	// position 0 must be rebased to land after "hello", not rejected.
	applied, err := svc.Submit(ctx, "doc1", 2, 0, "client-b", 1,
		delta.Delta{mustOp(delta.Insert(" world", nil))})
	if err != nil {
		t.Fatalf("Submit() with stale base error = %v", err)
	}
	if applied.Revision != 2 {
		t.Fatalf("Revision = %d, want 2", applied.Revision)
	}

	content, _, err := svc.LoadDocumentContent(ctx, "doc1")
	if err != nil {
		t.Fatalf("LoadDocumentContent() error = %v", err)
	}
	if content != "hello world" {
		t.Fatalf("content = %q, want %q", content, "hello world")
	}
}

func TestSubmit_RejectsBaseRevisionAheadOfServer(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Submit(ctx, "doc1", 1, 5, "client-a", 1,
		delta.Delta{mustOp(delta.Insert("hello", nil))})
	if err != ErrRevisionConflict {
		t.Fatalf("err = %v, want ErrRevisionConflict", err)
	}
}

func TestSubmit_RejectsDuplicateOrOutOfOrderClientSeq(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Submit(ctx, "doc1", 1, 0, "client-a", 5,
		delta.Delta{mustOp(delta.Insert("hello", nil))}); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	_, err := svc.Submit(ctx, "doc1", 1, 1, "client-a", 5,
		delta.Delta{mustOp(delta.Insert("again", nil))})
	if err != ErrDuplicateOrOutOfOrder {
		t.Fatalf("err = %v, want ErrDuplicateOrOutOfOrder", err)
	}
}

func TestOpsSince_ReturnsOnlyNewerRevisions(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for i, text := range []string{"a", "b", "c"} {
		if _, err := svc.Submit(ctx, "doc1", uint64(i+1), uint64(i), "client-a", uint64(i+1),
			delta.Delta{mustOp(delta.Insert(text, nil))}); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	ops, err := svc.OpsSince(ctx, "doc1", 1, 0)
	if err != nil {
		t.Fatalf("OpsSince() error = %v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("len(ops) = %d, want 2", len(ops))
	}
	if ops[0].Revision != 2 || ops[1].Revision != 3 {
		t.Fatalf("revisions = %d, %d, want 2, 3", ops[0].Revision, ops[1].Revision)
	}
}

func TestSaveSnapshot_FailsWithoutStore(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Submit(ctx, "doc1", 1, 0, "client-a", 1,
		delta.Delta{mustOp(delta.Insert("hello", nil))}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := svc.SaveSnapshot(ctx, "doc1"); err == nil {
		t.Fatalf("SaveSnapshot() error = nil, want non-nil (no store configured)")
	}
}
