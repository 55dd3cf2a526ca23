package pricefeed

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Quoter supplies the current USD quote table.
type Quoter interface {
	Quotes(ctx context.Context) map[string]float64
}

// Update is one broadcast frame.
type Update struct {
	Type   string             `json:"type"`
	Prices map[string]float64 `json:"prices"`
	At     time.Time          `json:"at"`
}

// Hub fans price updates out to connected websocket clients.
type Hub struct {
	clients  map[*websocket.Conn]struct{}
	mu       sync.Mutex
	upgrader websocket.Upgrader
	quoter   Quoter
	logger   *logrus.Logger
}

func NewHub(quoter Quoter, logger *logrus.Logger) *Hub {
	if logger == nil {
		logger = logrus.New()
	}
	return &Hub{
		clients:  make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		quoter:   quoter,
		logger:   logger,
	}
}

// Handler accepts websocket connections and sends an initial snapshot.
func (h *Hub) Handler(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.WithError(err).Warn("websocket upgrade failed")
		return nil
	}

	// Send the snapshot before registering: gorilla forbids concurrent
	// writers, and after registration Broadcast may write to this conn.
	if h.quoter != nil {
		snapshot := Update{Type: "prices", Prices: h.quoter.Quotes(c.Request().Context()), At: time.Now().UTC()}
		if msg, err := json.Marshal(snapshot); err == nil {
			_ = conn.WriteMessage(websocket.TextMessage, msg)
		}
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	// Read loop keeps the connection alive and detects disconnects.
	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	return nil
}

// Broadcast pushes an update frame to every connected client, dropping
// clients whose writes fail.
func (h *Hub) Broadcast(prices map[string]float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	msg, err := json.Marshal(Update{Type: "prices", Prices: prices, At: time.Now().UTC()})
	if err != nil {
		h.logger.WithError(err).Warn("failed to marshal price update")
		return
	}

	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.logger.WithError(err).Debug("dropping websocket client")
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Run polls the quoter on the given interval and broadcasts until the
// context ends.
func (h *Hub) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Broadcast(h.quoter.Quotes(ctx))
		}
	}
}
