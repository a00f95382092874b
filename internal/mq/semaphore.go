package mq

import (
	"context"
	"errors"
)

var MaxSemaphore = 100

// Semaphore bounds the number of concurrent Kafka sends so a burst of
// activity can't exhaust producer connections.
type Semaphore struct {
	ch chan struct{}
}

func NewSemaphore() *Semaphore {
	return &Semaphore{ch: make(chan struct{}, MaxSemaphore)}
}

func (s *Semaphore) Acquire(ctx context.Context) error {
	select {
	case s.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return errors.New("semaphore: acquire timed out")
	}
}

func (s *Semaphore) Release() error {
	select {
	case <-s.ch:
		return nil
	default:
		return errors.New("semaphore: release without a matching acquire")
	}
}
