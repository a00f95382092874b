package mq

import (
	"context"
	"testing"
	"time"
)

func TestSemaphore_AcquireBlocksUntilRelease(t *testing.T) {
	old := MaxSemaphore
	MaxSemaphore = 1
	defer func() { MaxSemaphore = old }()

	sem := NewSemaphore()
	ctx := context.Background()
	if err := sem.Acquire(ctx); err != nil {
		t.Fatalf("first Acquire() error = %v", err)
	}

	shortCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if err := sem.Acquire(shortCtx); err == nil {
		t.Fatalf("second Acquire() error = nil, want timeout while slot is held")
	}

	if err := sem.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if err := sem.Acquire(ctx); err != nil {
		t.Fatalf("Acquire() after Release error = %v", err)
	}
}

func TestSemaphore_ReleaseWithoutAcquireErrors(t *testing.T) {
	sem := NewSemaphore()
	if err := sem.Release(); err == nil {
		t.Fatalf("Release() error = nil, want error for unmatched release")
	}
}
