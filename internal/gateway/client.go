package gateway

import (
	"context"
	"time"

	"chat-service/internal/permission"
	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

const (
	maxMessageSize = 4096
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	writeWait      = 10 * time.Second
	sendBufferSize = 256
	requestTimeout = 5 * time.Second
)

// client is a middleman between one websocket connection and the hub.
type client struct {
	hub  *Hub
	conn *websocket.Conn

	connectionId string
	userId       string

	// send is only written to while holding the hub's read lock and only closed by the hub under its write lock.
	send chan []byte
}

func newClient(hub *Hub, conn *websocket.Conn, userId string, connectionId string) *client {
	return &client{
		hub:          hub,
		conn:         conn,
		connectionId: connectionId,
		userId:       userId,
		send:         make(chan []byte, sendBufferSize),
	}
}

// readLoop runs on the connection's goroutine and returns once the peer goes away.
func (c *client) readLoop() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debugw("websocket closed unexpectedly", "connectionId", c.connectionId, "error", err)
			}
			return
		}

		var frame inboundFrame
		if err := sonic.Unmarshal(raw, &frame); err != nil {
			c.sendError("", "malformed frame")
			continue
		}

		switch frame.Op {
		case OpTyping:
			c.handleTyping(frame)
		default:
			c.sendError(frame.Op, "unknown op")
		}
	}
}

func (c *client) handleTyping(frame inboundFrame) {
	var data TypingData
	if err := sonic.Unmarshal(frame.Data, &data); err != nil || data.ServerId == "" || data.ChannelId == "" {
		c.sendError(frame.Op, "serverId and channelId are required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	allowed, err := c.hub.authorizer.HasChannelPermission(ctx, data.ServerId, c.userId, data.ChannelId, permission.ChannelSendMessages)
	if err != nil {
		c.hub.logger.Errorw("failed to check typing permission", "userId", c.userId, "channelId", data.ChannelId, "error", err)
	}
	if !allowed {
		c.sendError(frame.Op, "missing permission")
		return
	}

	members, err := c.hub.members.GetMemberUserIds(ctx, data.ServerId)
	if err != nil {
		c.hub.logger.Errorw("failed to list server members", "serverId", data.ServerId, "error", err)
		return
	}

	data.UserId = c.userId
	for _, member := range members {
		if member == c.userId {
			continue
		}
		if err := c.hub.NotifyUser(ctx, member, OpTyping, data); err != nil {
			c.hub.logger.Errorw("failed to relay typing", "userId", member, "error", err)
		}
	}
}

func (c *client) sendError(op string, message string) {
	c.hub.NotifyConnection(c.connectionId, OpError, ErrorData{Op: op, Message: message})
}

// writeLoop is the only writer of the connection. It exits when the hub closes send.
func (c *client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
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
