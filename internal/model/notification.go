package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType 即時通知種類
type NotificationType string

const (
	NotificationJoined NotificationType = "joined"
)

// Notification 送往作者即時頻道的通知，RecipientID 即頻道 key
type Notification struct {
	Type        NotificationType `json:"type"`
	RecipientID uuid.UUID        `json:"recipient_id"`
	URL         string           `json:"url"`
	Event       *Event           `json:"event"`
	CreatedAt   time.Time        `json:"created_at"`
}

// JoinedPayload joined 通知送到瀏覽器的內容
type JoinedPayload struct {
	URL   string `json:"url"`
	Event *Event `json:"event"`
}

// Envelope websocket 上的訊息格式
type Envelope struct {
	Type NotificationType `json:"type"`
	Data interface{}      `json:"data"`
}

// Envelope 轉成送給瀏覽器的格式
func (n *Notification) Envelope() Envelope {
	return Envelope{
		Type: n.Type,
		Data: JoinedPayload{URL: n.URL, Event: n.Event},
	}
}
