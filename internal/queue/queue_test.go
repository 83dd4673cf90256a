package queue_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tjjh89017/fxsandbox/internal/queue"
)

func Test_Queue_Dequeue(t *testing.T) {
	t.Parallel()

	q := queue.New[[]string]()
	go func() {
		defer q.Close()
		for _, item := range [][]string{{"particle-drift"}, {}, {"glow-outline", "typewriter"}} {
			if err := q.Enqueue(context.Background(), item); err != nil {
				return
			}
		}
	}()

	var got [][]string
	for item := range q.Dequeue() {
		got = append(got, item)
	}

	assert.Equal(t, [][]string{{"particle-drift"}, {}, {"glow-outline", "typewriter"}}, got)
}

func Test_Queue_EnqueueCancelled(t *testing.T) {
	t.Parallel()

	q := queue.New[int]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, q.Enqueue(ctx, 1), context.Canceled)
}
