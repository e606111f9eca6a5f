package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vyrodovalexey/stockroom/internal/model"
)

// WebSocket configuration constants.
const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 512
	closeGracePeriod  = 100 * time.Millisecond
	DefaultSendBuffer = 16
)

// wsClient is one open connection and its outbound queue.
// send is never closed; the write pump exits when done is closed.
type wsClient struct {
	conn   *websocket.Conn
	send   chan []byte
	done   <-chan struct{}
	cancel context.CancelFunc
}

// WebSocketHandler accepts real-time connections and broadcasts item
// notifications to every open one.
type WebSocketHandler struct {
	upgrader   websocket.Upgrader
	logger     *zap.Logger
	sendBuffer int
	mu         sync.RWMutex
	clients    map[*websocket.Conn]*wsClient
}

// NewWebSocketHandler creates a new WebSocketHandler instance.
// sendBuffer bounds the notifications queued per client; values below 1 use DefaultSendBuffer.
func NewWebSocketHandler(logger *zap.Logger, sendBuffer int) *WebSocketHandler {
	if sendBuffer < 1 {
		sendBuffer = DefaultSendBuffer
	}

	return &WebSocketHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true // any origin may subscribe
			},
		},
		logger:     logger,
		sendBuffer: sendBuffer,
		clients:    make(map[*websocket.Conn]*wsClient),
	}
}

// RegisterRoutes registers the WebSocket routes with the router.
// Besides /ws, an upgrade request on any path is accepted, so it must be
// registered before routes that would otherwise claim the path.
func (h *WebSocketHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/ws", h.HandleWebSocket).Methods(http.MethodGet)
	router.MatcherFunc(isUpgradeRequest).HandlerFunc(h.HandleWebSocket)
}

func isUpgradeRequest(r *http.Request, _ *mux.RouteMatch) bool {
	return websocket.IsWebSocketUpgrade(r)
}

// HandleWebSocket handles WebSocket connection requests.
//
//nolint:contextcheck // intentional: WebSocket connections outlive the HTTP request context
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("failed to upgrade connection", zap.Error(err))
		return
	}

	// The request context ends when this handler returns; the connection must outlive it.
	ctx, cancel := context.WithCancel(context.Background())

	client := &wsClient{
		conn:   conn,
		send:   make(chan []byte, h.sendBuffer),
		done:   ctx.Done(),
		cancel: cancel,
	}

	h.mu.Lock()
	h.clients[conn] = client
	h.mu.Unlock()
	websocketConnections.Inc()

	h.logger.Info("websocket client connected", zap.String("remote_addr", conn.RemoteAddr().String()))

	go h.writePump(ctx, client)
	go h.readPump(ctx, client)
}

// Broadcast serializes item once and queues it for every open client.
// Clients that are closing or whose queue is full are skipped.
func (h *WebSocketHandler) Broadcast(item *model.Item) {
	payload, err := json.Marshal(item)
	if err != nil {
		h.logger.Error("failed to encode notification", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	var queued, skipped int
	for _, client := range h.clients {
		select {
		case <-client.done:
			skipped++
			continue
		default:
		}

		select {
		case client.send <- payload:
			queued++
		default:
			skipped++
		}
	}

	broadcastMessagesTotal.Add(float64(queued))
	broadcastDroppedTotal.Add(float64(skipped))

	h.logger.Debug("item broadcast",
		zap.Int("item_id", item.ID),
		zap.Int("queued", queued),
		zap.Int("skipped", skipped),
	)
}

// ClientCount returns the number of registered connections.
func (h *WebSocketHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// readPump drains incoming frames so control messages are processed.
// Client payloads carry no meaning and are discarded.
func (h *WebSocketHandler) readPump(ctx context.Context, client *wsClient) {
	conn := client.conn
	defer func() {
		client.cancel()
		h.removeClient(conn)
		if err := conn.Close(); err != nil {
			h.logger.Debug("error closing connection", zap.Error(err))
		}
	}()

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		h.logger.Error("failed to set read deadline", zap.Error(err))
		return
	}

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, message, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					h.logger.Warn("websocket read error", zap.Error(err))
				}
				return
			}
			h.logger.Debug("received message", zap.ByteString("message", message))
		}
	}
}

// writePump is the only goroutine writing to the connection. It delivers
// queued notifications and keeps the connection alive with pings.
func (h *WebSocketHandler) writePump(ctx context.Context, client *wsClient) {
	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	conn := client.conn
	for {
		select {
		case <-ctx.Done():
			h.sendCloseMessage(conn)
			return
		case payload := <-client.send:
			if err := h.sendText(conn, payload); err != nil {
				h.logger.Debug("failed to send notification", zap.Error(err))
				h.abort(client)
				return
			}
		case <-pingTicker.C:
			if err := h.sendPing(conn); err != nil {
				h.logger.Debug("failed to send ping", zap.Error(err))
				h.abort(client)
				return
			}
		}
	}
}

// abort stops a client whose writes fail. Closing the connection unblocks
// the read pump, which then unregisters the client.
func (h *WebSocketHandler) abort(client *wsClient) {
	client.cancel()
	if err := client.conn.Close(); err != nil {
		h.logger.Debug("error closing connection", zap.Error(err))
	}
}

// sendText writes one text frame to the connection.
func (h *WebSocketHandler) sendText(conn *websocket.Conn, payload []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// sendPing sends a ping message to the connection.
func (h *WebSocketHandler) sendPing(conn *websocket.Conn) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.PingMessage, nil)
}

// sendCloseMessage sends a close message to the connection.
func (h *WebSocketHandler) sendCloseMessage(conn *websocket.Conn) {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		h.logger.Debug("failed to set write deadline for close", zap.Error(err))
		return
	}

	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "server shutting down")
	if err := conn.WriteMessage(websocket.CloseMessage, closeMsg); err != nil {
		h.logger.Debug("failed to send close message", zap.Error(err))
	}
}

// removeClient removes a client from the clients map.
func (h *WebSocketHandler) removeClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client, exists := h.clients[conn]; exists {
		client.cancel()
		delete(h.clients, conn)
		websocketConnections.Dec()
		h.logger.Info("websocket client disconnected", zap.String("remote_addr", conn.RemoteAddr().String()))
	}
}

// CloseAllConnections closes all active WebSocket connections.
func (h *WebSocketHandler) CloseAllConnections() {
	h.mu.Lock()
	// Copy the clients to avoid holding the lock while the pumps shut down
	clients := make([]*wsClient, 0, len(h.clients))
	for _, client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	// Cancel all contexts first - this triggers writePump to send close messages
	for _, client := range clients {
		client.cancel()
	}

	// Give writePump goroutines time to send close messages
	time.Sleep(closeGracePeriod)

	h.mu.Lock()
	for conn := range h.clients {
		if err := conn.Close(); err != nil {
			h.logger.Debug("error closing connection", zap.Error(err))
		}
		delete(h.clients, conn)
		websocketConnections.Dec()
	}
	h.mu.Unlock()

	h.logger.Info("all websocket connections closed")
}
