package worker

import (
	"context"
	"errors"

	"go-gin-events/internal/model"
	"go-gin-events/internal/queue"
	apperrors "go-gin-events/pkg/app_errors"
	"go-gin-events/pkg/logger"

	"go.uber.org/zap"
)

// Dispatcher 把通知推給收件者，回傳實際送出的連線數（realtime.Hub 實作）
type Dispatcher interface {
	Deliver(notification *model.Notification) (int, error)
}

type NotificationWorker interface {
	// 訂閱通知隊列，在背景 goroutine 處理直到 ctx 結束
	Start(ctx context.Context) error
}

type NotificationWorkerImpl struct {
	dispatcher Dispatcher
	queue      queue.NotificationQueue
}

func NewNotificationWorker(dispatcher Dispatcher, queue queue.NotificationQueue) NotificationWorker {
	return &NotificationWorkerImpl{
		dispatcher: dispatcher,
		queue:      queue,
	}
}

func (w *NotificationWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.Subscribe(ctx)
	if err != nil {
		return err
	}

	go func() {
		log := logger.WithComponent("worker")
		for msg := range msgs {
			w.handle(log, msg)
		}
		log.Info("Notification worker stopped")
	}()
	return nil
}

func (w *NotificationWorkerImpl) handle(log *zap.Logger, msg queue.Delivery) {
	n := msg.Data
	sent, err := w.dispatcher.Deliver(n)
	switch {
	case errors.Is(err, apperrors.ErrHubClosed):
		// hub 關閉中，留給下一個 instance
		log.Warn("Hub closed, requeue notification", zap.String("recipient_id", n.RecipientID.String()))
		msg.Nack(true)
	case err != nil:
		log.Error("Deliver notification failed", zap.String("recipient_id", n.RecipientID.String()), zap.Error(err))
		msg.Nack(false)
	default:
		if sent == 0 {
			log.Debug("Recipient not connected, notification dropped", zap.String("recipient_id", n.RecipientID.String()))
		}
		msg.Ack()
	}
}
