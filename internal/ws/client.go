package ws

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
	sendBuffer   = 16
)

// Client wraps one websocket connection of one user.
type Client struct {
	userID int64
	conn   *websocket.Conn
	send   chan []byte
	logger *zap.Logger
	once   sync.Once
}

func newClient(userID int64, conn *websocket.Conn, logger *zap.Logger) *Client {
	return &Client{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		logger: logger,
	}
}

// Serve registers the client on the hub and pumps messages until the
// connection drops or ctx is cancelled. Blocks.
func (h *Hub) Serve(ctx context.Context, userID int64, conn *websocket.Conn) {
	c := newClient(userID, conn, h.logger)
	h.add(c)
	defer func() {
		h.remove(c)
		c.closeOnce()
	}()

	go c.writePump(ctx)
	c.readPump(ctx)
}

func (c *Client) readPump(ctx context.Context) {
	c.conn.SetReadLimit(1024)
	c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
		return nil
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		// Clients never send payloads; reads only service pings/close.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			c.logger.Debug("ws read closed", zap.Int64("user_id", c.userID), zap.Error(err))
			return
		}
	}
}

func (c *Client) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-c.send:
			if !ok {
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Debug("ws write failed", zap.Int64("user_id", c.userID), zap.Error(err))
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) closeOnce() {
	c.once.Do(func() {
		if c.conn != nil {
			c.conn.Close()
		}
	})
}
