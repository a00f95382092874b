package collab

import (
	"context"
	"errors"
)

var MaxSemaphore = 100

// SemaphoreControl bounds the number of concurrent websocket op
// submissions so a burst of activity can't exhaust goroutine stacks.
// Kafka sends are bounded separately by mq.Semaphore.
type SemaphoreControl struct {
	ch chan struct{}
}

func NewSemaphoreControl() *SemaphoreControl {
	return &SemaphoreControl{ch: make(chan struct{}, MaxSemaphore)}
}

func (s *SemaphoreControl) Acquire(ctx context.Context) error {
	select {
	case s.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return errors.New("semaphore: acquire timed out")
	}
}

func (s *SemaphoreControl) Release() error {
	select {
	case <-s.ch:
		return nil
	default:
		return errors.New("semaphore: release without a matching acquire")
	}
}
