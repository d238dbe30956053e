// Package notify 把領域事件轉成通知並交給通知隊列，實際推送由 worker 處理。
package notify

import (
	"context"
	"time"

	"go-gin-events/internal/model"
	"go-gin-events/internal/queue"
)

type Notifier interface {
	// Joined 通知活動作者有人報名
	Joined(ctx context.Context, event *model.Event, join *model.Join) error
}

type QueueNotifier struct {
	queue queue.NotificationQueue
}

func NewQueueNotifier(queue queue.NotificationQueue) Notifier {
	return &QueueNotifier{queue: queue}
}

func (n *QueueNotifier) Joined(ctx context.Context, event *model.Event, join *model.Join) error {
	return n.queue.Publish(ctx, &model.Notification{
		Type:        model.NotificationJoined,
		RecipientID: event.AuthorID,
		URL:         join.URL(),
		Event:       event,
		CreatedAt:   time.Now().UTC(),
	})
}
