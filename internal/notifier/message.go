package notifier

import (
	"time"

	"chat-service/internal/permission"
	"chat-service/internal/repository/model"
)

const (
	permissionTopic = "chat-permissions"
	presenceTopic   = "chat-presence"

	eventTypeHeader = "X-Event-Type"
)

type message interface {
	topic() string
	eventType() string
}

type RoleUpdateMessage struct {
	Role       *model.Role `json:"role"`
	ChangeType ChangeType  `json:"changeType"`
}

func (*RoleUpdateMessage) topic() string     { return permissionTopic }
func (*RoleUpdateMessage) eventType() string { return "role.update" }

type RolesReorderedMessage struct {
	ServerId  string           `json:"serverId"`
	Positions map[string]int32 `json:"positions"`
}

func (*RolesReorderedMessage) topic() string     { return permissionTopic }
func (*RolesReorderedMessage) eventType() string { return "role.reorder" }

type MemberRolesUpdateMessage struct {
	ServerId   string     `json:"serverId"`
	UserId     string     `json:"userId"`
	RoleId     string     `json:"roleId"`
	ChangeType ChangeType `json:"changeType"`
}

func (*MemberRolesUpdateMessage) topic() string     { return permissionTopic }
func (*MemberRolesUpdateMessage) eventType() string { return "member.roles.update" }

type OverrideUpdateMessage struct {
	Target      OverrideTarget   `json:"target"`
	TargetId    string           `json:"targetId"`
	RoleId      string           `json:"roleId"`
	Permissions permission.Flags `json:"permissions"`
}

func (*OverrideUpdateMessage) topic() string     { return permissionTopic }
func (*OverrideUpdateMessage) eventType() string { return "override.update" }

type PresenceUpdateMessage struct {
	UserId    string    `json:"userId"`
	Online    bool      `json:"online"`
	Timestamp time.Time `json:"timestamp"`
}

func (*PresenceUpdateMessage) topic() string     { return presenceTopic }
func (*PresenceUpdateMessage) eventType() string { return "presence.update" }
