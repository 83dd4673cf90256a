package queue

import "context"

// Queue is an unbuffered hand-off between one producer and its consumers.
type Queue[T any] struct {
	items chan T
}

func New[T any]() *Queue[T] {
	return &Queue[T]{
		items: make(chan T),
	}
}

// Enqueue blocks until a consumer takes item or ctx is done.
func (q *Queue[T]) Enqueue(ctx context.Context, item T) error {
	select {
	case q.items <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue[T]) Dequeue() <-chan T {
	return q.items
}

// Close must only be called by the producer.
func (q *Queue[T]) Close() {
	close(q.items)
}
