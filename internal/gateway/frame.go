package gateway

import (
	"encoding/json"
)

const (
	OpReady              = "ready"
	OpPresenceOnline     = "presence.online"
	OpPresenceOffline    = "presence.offline"
	OpTyping             = "typing"
	OpPermissionsUpdated = "permissions.updated"
	OpError              = "error"
)

// Frame is the envelope of every message exchanged over the gateway.
type Frame struct {
	Op   string `json:"op"`
	Data any    `json:"data,omitempty"`
}

type inboundFrame struct {
	Op   string          `json:"op"`
	Data json.RawMessage `json:"data"`
}

type ReadyData struct {
	ConnectionId string   `json:"connectionId"`
	UserId       string   `json:"userId"`
	OnlineUsers  []string `json:"onlineUsers"`
}

type PresenceData struct {
	UserId string `json:"userId"`
}

type TypingData struct {
	ServerId  string `json:"serverId"`
	ChannelId string `json:"channelId"`
	UserId    string `json:"userId,omitempty"`
}

type ErrorData struct {
	Op      string `json:"op"`
	Message string `json:"message"`
}
