package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-gin-events/internal/model"
	"go-gin-events/internal/queue"
	"go-gin-events/internal/worker"
	apperrors "go-gin-events/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 簡單的 Dispatcher 實作，記錄收到的通知
type fakeDispatcher struct {
	mu       sync.Mutex
	received []*model.Notification
	result   func(n *model.Notification) (int, error)
}

func (d *fakeDispatcher) Deliver(n *model.Notification) (int, error) {
	d.mu.Lock()
	d.received = append(d.received, n)
	d.mu.Unlock()
	if d.result != nil {
		return d.result(n)
	}
	return 1, nil
}

func (d *fakeDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.received)
}

// recordingQueue 包一層記憶體隊列，記錄 Ack/Nack
type recordingQueue struct {
	queue.NotificationQueue
	mu    sync.Mutex
	acks  int
	nacks []bool
}

func (q *recordingQueue) Subscribe(ctx context.Context) (<-chan queue.Delivery, error) {
	in, err := q.NotificationQueue.Subscribe(ctx)
	if err != nil {
		return nil, err
	}
	out := make(chan queue.Delivery)
	go func() {
		defer close(out)
		for d := range in {
			out <- queue.Delivery{
				Data: d.Data,
				Ack: func() {
					q.mu.Lock()
					q.acks++
					q.mu.Unlock()
				},
				Nack: func(requeue bool) {
					q.mu.Lock()
					q.nacks = append(q.nacks, requeue)
					q.mu.Unlock()
				},
			}
		}
	}()
	return out, nil
}

func (q *recordingQueue) snapshot() (int, []bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.acks, append([]bool(nil), q.nacks...)
}

func newNotification() *model.Notification {
	return &model.Notification{
		Type:        model.NotificationJoined,
		RecipientID: uuid.New(),
		URL:         "/events/" + uuid.NewString(),
	}
}

func TestNotificationWorker_DeliversAndAcks(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q := &recordingQueue{NotificationQueue: queue.NewNotificationQueue(10)}
	dispatcher := &fakeDispatcher{}

	w := worker.NewNotificationWorker(dispatcher, q)
	require.NoError(t, w.Start(ctx))

	n := newNotification()
	require.NoError(t, q.Publish(ctx, n))

	require.Eventually(t, func() bool {
		acks, _ := q.snapshot()
		return acks == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, dispatcher.count())
	assert.Same(t, n, dispatcher.received[0])
}

func TestNotificationWorker_RecipientOfflineStillAcks(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q := &recordingQueue{NotificationQueue: queue.NewNotificationQueue(10)}
	dispatcher := &fakeDispatcher{result: func(*model.Notification) (int, error) { return 0, nil }}

	require.NoError(t, worker.NewNotificationWorker(dispatcher, q).Start(ctx))
	require.NoError(t, q.Publish(ctx, newNotification()))

	require.Eventually(t, func() bool {
		acks, nacks := q.snapshot()
		return acks == 1 && len(nacks) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestNotificationWorker_Nack(t *testing.T) {
	t.Run("HubClosedRequeues", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		q := &recordingQueue{NotificationQueue: queue.NewNotificationQueue(10)}
		dispatcher := &fakeDispatcher{result: func(*model.Notification) (int, error) { return 0, apperrors.ErrHubClosed }}

		require.NoError(t, worker.NewNotificationWorker(dispatcher, q).Start(ctx))
		require.NoError(t, q.Publish(ctx, newNotification()))

		require.Eventually(t, func() bool {
			_, nacks := q.snapshot()
			return len(nacks) == 1 && nacks[0]
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("OtherErrorDiscards", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		q := &recordingQueue{NotificationQueue: queue.NewNotificationQueue(10)}
		dispatcher := &fakeDispatcher{result: func(*model.Notification) (int, error) { return 0, errors.New("marshal failed") }}

		require.NoError(t, worker.NewNotificationWorker(dispatcher, q).Start(ctx))
		require.NoError(t, q.Publish(ctx, newNotification()))

		require.Eventually(t, func() bool {
			acks, nacks := q.snapshot()
			return acks == 0 && len(nacks) == 1 && !nacks[0]
		}, time.Second, 10*time.Millisecond)
	})
}
