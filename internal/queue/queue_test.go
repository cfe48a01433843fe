package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueuePriorityOrder(t *testing.T) {
	q := NewInMemoryQueue()

	require.NoError(t, q.Push(&FetchTask{ID: "low", Priority: 1}))
	require.NoError(t, q.Push(&FetchTask{ID: "high", Priority: 10}))
	require.NoError(t, q.Push(&FetchTask{ID: "mid", Priority: 5}))

	ctx := context.Background()
	for _, want := range []string{"high", "mid", "low"} {
		task, err := q.Pop(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, task.ID)
	}
}

func TestQueueFIFOWithinPriority(t *testing.T) {
	q := NewInMemoryQueue()

	require.NoError(t, q.Push(&FetchTask{ID: "first", Platform: "amazon"}))
	require.NoError(t, q.Push(&FetchTask{ID: "second", Platform: "target"}))

	ctx := context.Background()
	task, err := q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", task.ID)

	task, err = q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", task.ID)
}

func TestQueuePopBlocksUntilPush(t *testing.T) {
	q := NewInMemoryQueue()

	go func() {
		time.Sleep(20 * time.Millisecond)
		q.Push(&FetchTask{ID: "late"})
	}()

	task, err := q.Pop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "late", task.ID)
}

func TestQueuePopCancelledContext(t *testing.T) {
	q := NewInMemoryQueue()

	t.Run("expired before pop", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := q.Pop(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("deadline while blocked", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := q.Pop(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	// The queue stays usable after cancelled pops.
	require.NoError(t, q.Push(&FetchTask{ID: "after"}))
	task, err := q.Pop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "after", task.ID)
}

func TestQueueClose(t *testing.T) {
	q := NewInMemoryQueue()

	require.NoError(t, q.Push(&FetchTask{ID: "queued"}))
	require.NoError(t, q.Close())

	assert.ErrorIs(t, q.Push(&FetchTask{ID: "rejected"}), ErrQueueClosed)

	// Drain what was queued before close.
	task, err := q.Pop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "queued", task.ID)

	_, err = q.Pop(context.Background())
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestQueueSize(t *testing.T) {
	q := NewInMemoryQueue()
	assert.Equal(t, 0, q.Size())

	q.Push(&FetchTask{ID: "a"})
	q.Push(&FetchTask{ID: "b"})
	assert.Equal(t, 2, q.Size())
}
