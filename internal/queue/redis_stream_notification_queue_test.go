package queue_test

import (
	"context"
	"testing"
	"time"

	"go-gin-events/internal/queue"
	"go-gin-events/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 每個測試用獨立的 stream，互不干擾
func newTestStreamQueue(t *testing.T, claimIdle time.Duration) queue.NotificationQueue {
	t.Helper()
	testutil.RequireRedis(t, testRdb)

	streamKey := "test:notifications:" + uuid.NewString()
	t.Cleanup(func() { _ = testRdb.Del(context.Background(), streamKey).Err() })

	q, err := queue.NewRedisStreamNotificationQueue(testRdb, "", &queue.RedisStreamConfig{
		StreamKey:          streamKey,
		ClaimMinIdleTime:   claimIdle,
		ReadGroupBlockTime: 200 * time.Millisecond,
		MaxRetryCount:      2,
	})
	require.NoError(t, err)
	return q
}

func TestNewRedisStreamNotificationQueue_ExistingGroup(t *testing.T) {
	testutil.RequireRedis(t, testRdb)
	streamKey := "test:notifications:" + uuid.NewString()
	defer testRdb.Del(context.Background(), streamKey)

	cfg := &queue.RedisStreamConfig{StreamKey: streamKey}
	_, err := queue.NewRedisStreamNotificationQueue(testRdb, "a", cfg)
	require.NoError(t, err)

	// 第二個 instance 遇到 BUSYGROUP 不應失敗
	_, err = queue.NewRedisStreamNotificationQueue(testRdb, "b", cfg)
	require.NoError(t, err)
}

func TestRedisStreamNotificationQueue_DeliversPublishedMessage(t *testing.T) {
	q := newTestStreamQueue(t, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n := newTestNotification()
	require.NoError(t, q.Publish(ctx, n))

	deliveries, err := q.Subscribe(ctx)
	require.NoError(t, err)

	d := receive(t, deliveries, 3*time.Second)
	require.NotNil(t, d.Data)
	assert.Equal(t, n.Type, d.Data.Type)
	assert.Equal(t, n.RecipientID, d.Data.RecipientID)
	assert.Equal(t, n.URL, d.Data.URL)
	require.NotNil(t, d.Data.Event)
	assert.Equal(t, n.Event.ID, d.Data.Event.ID)
	assert.Equal(t, "Meetup", d.Data.Event.Title)
	d.Ack()
}

func TestRedisStreamNotificationQueue_AckPreventsRedelivery(t *testing.T) {
	q := newTestStreamQueue(t, 200*time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, q.Publish(ctx, newTestNotification()))
	deliveries, err := q.Subscribe(ctx)
	require.NoError(t, err)

	receive(t, deliveries, 3*time.Second).Ack()

	select {
	case d, ok := <-deliveries:
		if ok {
			t.Fatalf("Ack 後不應再收到: %s", d.Data.URL)
		}
	case <-time.After(time.Second):
	}
}

func TestRedisStreamNotificationQueue_NackRequeueRedelivers(t *testing.T) {
	q := newTestStreamQueue(t, 200*time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n := newTestNotification()
	require.NoError(t, q.Publish(ctx, n))
	deliveries, err := q.Subscribe(ctx)
	require.NoError(t, err)

	receive(t, deliveries, 3*time.Second).Nack(true)

	// 留在 PEL，idle 超過後由 XAUTOCLAIM 領回
	retry := receive(t, deliveries, 3*time.Second)
	assert.Equal(t, n.URL, retry.Data.URL)
	retry.Ack()
}

func TestRedisStreamNotificationQueue_AckAfterSubscriberStopped(t *testing.T) {
	testutil.RequireRedis(t, testRdb)
	streamKey := "test:notifications:" + uuid.NewString()
	t.Cleanup(func() { _ = testRdb.Del(context.Background(), streamKey).Err() })

	q, err := queue.NewRedisStreamNotificationQueue(testRdb, "", &queue.RedisStreamConfig{
		StreamKey:          streamKey,
		ReadGroupBlockTime: 200 * time.Millisecond,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, q.Publish(ctx, newTestNotification()))
	deliveries, err := q.Subscribe(ctx)
	require.NoError(t, err)

	d := receive(t, deliveries, 3*time.Second)
	// 關機時 worker ctx 先被取消，處理中的消息仍要能 ack
	cancel()
	d.Ack()

	pending, err := testRdb.XPending(context.Background(), streamKey, queue.ConsumerGroupName).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), pending.Count)
}
