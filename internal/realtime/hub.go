// Package realtime 維護使用者的 websocket 連線，並把通知推送到收件者的所有連線。
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go-gin-events/internal/model"
	apperrors "go-gin-events/pkg/app_errors"
	"go-gin-events/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hub 依使用者 id 分組管理連線；同一個使用者可以同時開多個分頁
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
}

func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
}

// Run hub 主迴圈，需在獨立 goroutine 執行
func (h *Hub) Run() {
	defer close(h.done)
	log := logger.WithComponent("hub")

	for {
		select {
		case <-h.ctx.Done():
			h.shutdownClients()
			return

		case client := <-h.register:
			h.mutex.Lock()
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
			connCount := len(set)
			h.mutex.Unlock()
			log.Info("Client registered",
				zap.String("user_id", client.userID.String()),
				zap.String("addr", client.addr),
				zap.Int("user_connections", connCount))

			h.wg.Add(2)
			go func() {
				defer h.wg.Done()
				client.writePump()
			}()
			go func() {
				defer h.wg.Done()
				client.readPump()
			}()

		case client := <-h.unregister:
			if h.remove(client) {
				log.Info("Client unregistered",
					zap.String("user_id", client.userID.String()),
					zap.String("addr", client.addr))
			}
		}
	}
}

// Register 把已升級的連線交給 hub；hub 已關閉時回 ErrHubClosed
func (h *Hub) Register(client *Client) error {
	select {
	case h.register <- client:
		return nil
	case <-h.ctx.Done():
		return apperrors.ErrHubClosed
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

// ConnectionCount 某個使用者目前的連線數
func (h *Hub) ConnectionCount(userID uuid.UUID) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[userID])
}

// Deliver 把通知寫到收件者的所有連線，回傳成功送出的連線數；沒有連線時回 0 並直接丟棄
func (h *Hub) Deliver(notification *model.Notification) (int, error) {
	if h.ctx.Err() != nil {
		return 0, apperrors.ErrHubClosed
	}

	payload, err := json.Marshal(notification.Envelope())
	if err != nil {
		return 0, err
	}

	clients := h.snapshot(notification.RecipientID)
	sent := 0
	var failed []*Client
	for _, client := range clients {
		if h.safeSend(client, payload) {
			sent++
		} else {
			failed = append(failed, client)
		}
	}
	h.removeFailedClients(failed)
	return sent, nil
}

func (h *Hub) snapshot(userID uuid.UUID) []*Client {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	set := h.clients[userID]
	clients := make([]*Client, 0, len(set))
	for client := range set {
		clients = append(clients, client)
	}
	return clients
}

// safeSend 不阻塞；buffer 滿或已關閉回 false
func (h *Hub) safeSend(client *Client, message []byte) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if client.closed {
		return false
	}
	select {
	case client.send <- message:
		return true
	default:
		return false
	}
}

// remove 從 map 移除並關閉 send channel；必須只關一次
func (h *Hub) remove(client *Client) bool {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	set, ok := h.clients[client.userID]
	if !ok {
		return false
	}
	if _, ok := set[client]; !ok {
		return false
	}
	delete(set, client)
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
	if !client.closed {
		client.closed = true
		close(client.send)
	}
	return true
}

func (h *Hub) removeFailedClients(clients []*Client) {
	for _, client := range clients {
		if h.remove(client) {
			logger.WithComponent("hub").Warn("Client removed due to full send buffer",
				zap.String("user_id", client.userID.String()),
				zap.String("addr", client.addr))
		}
	}
}

func (h *Hub) shutdownClients() {
	h.mutex.Lock()
	var clients []*Client
	for _, set := range h.clients {
		for client := range set {
			clients = append(clients, client)
			if !client.closed {
				client.closed = true
				close(client.send)
			}
		}
	}
	h.clients = make(map[uuid.UUID]map[*Client]struct{})
	h.mutex.Unlock()

	for _, client := range clients {
		client.closeConnection()
	}
	logger.WithComponent("hub").Info("Closed client connections", zap.Int("count", len(clients)))
}

// Shutdown 關閉所有連線並等待 pump goroutine 結束，超過 timeout 回 context.DeadlineExceeded
func (h *Hub) Shutdown(timeout time.Duration) error {
	h.cancel()
	<-h.done

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.WithComponent("hub").Info("Hub shutdown completed")
		return nil
	case <-time.After(timeout):
		logger.WithComponent("hub").Warn("Hub shutdown timeout reached")
		return context.DeadlineExceeded
	}
}
