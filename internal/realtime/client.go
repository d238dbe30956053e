package realtime

import (
	"errors"
	"net"
	"time"

	"go-gin-events/pkg/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 512
	sendBufferSize = 16
)

// Client 單一 websocket 連線；只往瀏覽器推送，收到的訊息一律忽略
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	hub    *Hub
	userID uuid.UUID
	addr   string
	closed bool
}

func NewClient(conn *websocket.Conn, hub *Hub, userID uuid.UUID, addr string) *Client {
	conn.SetReadLimit(maxMessageSize)
	return &Client{
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		hub:    hub,
		userID: userID,
		addr:   addr,
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.leave(c)
		c.closeConnection()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) && !isExpectedCloseError(err) {
				logger.WithComponent("ws").Warn("Unexpected websocket error", zap.String("addr", c.addr), zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.closeConnection()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				if !isExpectedCloseError(err) {
					logger.WithComponent("ws").Warn("Write message failed", zap.String("addr", c.addr), zap.Error(err))
				}
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) closeConnection() {
	if err := c.conn.Close(); err != nil && !isExpectedCloseError(err) {
		logger.WithComponent("ws").Warn("Close connection failed", zap.String("addr", c.addr), zap.Error(err))
	}
}

func isExpectedCloseError(err error) bool {
	return errors.Is(err, net.ErrClosed) || errors.Is(err, websocket.ErrCloseSent)
}
