package queue

import (
	"context"

	"go-gin-events/internal/model"
	apperrors "go-gin-events/pkg/app_errors"
)

type Delivery struct {
	Data *model.Notification
	Ack  func()
	Nack func(requeue bool)
}

type NotificationQueue interface {
	// 發送通知到隊列，不等待投遞結果
	Publish(ctx context.Context, notification *model.Notification) error
	// 訂閱通知隊列，ctx 結束時 channel 會被關閉
	Subscribe(ctx context.Context) (<-chan Delivery, error)
}

type NotificationQueueImpl struct {
	// 使用 Go channel 來模擬 MQ 隊列
	ch chan *model.Notification
}

func NewNotificationQueue(bufferSize int) NotificationQueue {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &NotificationQueueImpl{
		ch: make(chan *model.Notification, bufferSize),
	}
}

// Publish 不阻塞請求：buffer 滿了直接回 ErrQueueFull
func (q *NotificationQueueImpl) Publish(ctx context.Context, notification *model.Notification) error {
	select {
	case q.ch <- notification:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return apperrors.ErrQueueFull
	}
}

func (q *NotificationQueueImpl) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case notification := <-q.ch:
				d := Delivery{
					Data: notification,
					Ack:  func() {},
					Nack: func(requeue bool) {
						if !requeue {
							return
						}
						// 重回隊列，滿了就放棄
						select {
						case q.ch <- notification:
						default:
						}
					},
				}
				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
