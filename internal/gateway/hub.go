// Package gateway keeps the websocket connections of online users. Connecting and disconnecting drive the
// presence tracker, and the rest of the service pushes frames to users through the hub.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"chat-service/internal/auth"
	"chat-service/internal/notifier"
	"chat-service/internal/permission"
	"chat-service/internal/presence"
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type ChannelAuthorizer interface {
	HasChannelPermission(ctx context.Context, serverId string, userId string, channelId string, key permission.ChannelKey) (bool, error)
}

type MemberDirectory interface {
	GetMemberUserIds(ctx context.Context, serverId string) ([]string, error)
}

type Hub struct {
	logger     *zap.SugaredLogger
	verifier   *auth.Verifier
	tracker    presence.Tracker
	notif      notifier.Notifier
	authorizer ChannelAuthorizer
	members    MemberDirectory
	upgrader   websocket.Upgrader

	mu sync.RWMutex
	// clients holds the connections of this process by connection ID.
	clients map[string]*client
	closed  bool
	// handlers counts registered connections whose ServeHTTP has not yet cleaned up presence.
	handlers sync.WaitGroup
}

func NewHub(logger *zap.SugaredLogger, verifier *auth.Verifier, tracker presence.Tracker, notif notifier.Notifier,
	authorizer ChannelAuthorizer, members MemberDirectory) *Hub {

	return &Hub{
		logger:     logger,
		verifier:   verifier,
		tracker:    tracker,
		notif:      notif,
		authorizer: authorizer,
		members:    members,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[string]*client),
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userId, err := h.verifier.FromRequest(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debugw("failed to upgrade connection", "userId", userId, "error", err)
		return
	}

	c := newClient(h, conn, userId, uuid.NewString())
	if !h.register(c) {
		_ = conn.Close()
		return
	}
	defer h.handlers.Done()
	go c.writeLoop()

	if err := h.connected(c); err != nil {
		h.logger.Errorw("failed to register connection", "userId", userId, "connectionId", c.connectionId, "error", err)
		h.unregister(c)
		return
	}

	c.readLoop()

	h.unregister(c)
	h.disconnected(c)
}

func (h *Hub) connected(c *client) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	online, err := h.tracker.AddConnection(ctx, c.userId, c.connectionId)
	if err != nil {
		return err
	}

	users, err := h.tracker.OnlineUsers(ctx)
	if err != nil {
		_, _ = h.tracker.RemoveConnection(ctx, c.userId, c.connectionId)
		return err
	}
	h.NotifyConnection(c.connectionId, OpReady, ReadyData{
		ConnectionId: c.connectionId,
		UserId:       c.userId,
		OnlineUsers:  users,
	})

	if online {
		h.broadcast(Frame{Op: OpPresenceOnline, Data: PresenceData{UserId: c.userId}}, c.connectionId)
		if err := h.notif.PresenceUpdate(ctx, c.userId, true); err != nil {
			h.logger.Errorw("failed to publish presence update", "userId", c.userId, "error", err)
		}
	}
	return nil
}

func (h *Hub) disconnected(c *client) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	offline, err := h.tracker.RemoveConnection(ctx, c.userId, c.connectionId)
	if err != nil {
		h.logger.Errorw("failed to remove connection", "userId", c.userId, "connectionId", c.connectionId, "error", err)
		return
	}
	if !offline {
		return
	}

	h.broadcast(Frame{Op: OpPresenceOffline, Data: PresenceData{UserId: c.userId}}, "")
	if err := h.notif.PresenceUpdate(ctx, c.userId, false); err != nil {
		h.logger.Errorw("failed to publish presence update", "userId", c.userId, "error", err)
	}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.clients[c.connectionId] = c
	h.handlers.Add(1)
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c.connectionId]; ok {
		delete(h.clients, c.connectionId)
		close(c.send)
	}
}

// enqueue must be called with the read lock held. A client whose buffer is full misses the frame.
func (h *Hub) enqueue(c *client, payload []byte) bool {
	select {
	case c.send <- payload:
		return true
	default:
		h.logger.Warnw("dropping frame for slow connection", "connectionId", c.connectionId, "userId", c.userId)
		return false
	}
}

func (h *Hub) broadcast(frame Frame, exceptConnectionId string) {
	payload, err := sonic.Marshal(frame)
	if err != nil {
		h.logger.Errorw("failed to encode frame", "op", frame.Op, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, c := range h.clients {
		if id == exceptConnectionId {
			continue
		}
		h.enqueue(c, payload)
	}
}

// NotifyConnection sends a frame to a single connection of this process. It reports false when the connection
// is unknown here or could not take the frame.
func (h *Hub) NotifyConnection(connectionId string, op string, data any) bool {
	payload, err := sonic.Marshal(Frame{Op: op, Data: data})
	if err != nil {
		h.logger.Errorw("failed to encode frame", "op", op, "error", err)
		return false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	c, ok := h.clients[connectionId]
	if !ok {
		return false
	}
	return h.enqueue(c, payload)
}

// NotifyUser sends a frame to every connection of userId held by this process. Connections the tracker knows
// about on other processes are skipped.
func (h *Hub) NotifyUser(ctx context.Context, userId string, op string, data any) error {
	connectionIds, err := h.tracker.ConnectionsOf(ctx, userId)
	if err != nil {
		return fmt.Errorf("failed to get connections of %s: %w", userId, err)
	}
	if len(connectionIds) == 0 {
		return nil
	}

	payload, err := sonic.Marshal(Frame{Op: op, Data: data})
	if err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, id := range connectionIds {
		if c, ok := h.clients[id]; ok {
			h.enqueue(c, payload)
		}
	}
	return nil
}

// ConnectionCount is the number of connections held by this process.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close refuses new connections, closes the existing ones and returns once every one of them has been removed
// from the presence tracker. The tracker and notifier must stay open until then.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	for _, c := range h.clients {
		_ = c.conn.Close()
	}
	h.mu.Unlock()

	h.handlers.Wait()
}
