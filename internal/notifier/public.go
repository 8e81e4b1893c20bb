package notifier

import (
	"context"

	"chat-service/internal/permission"
	"chat-service/internal/repository/model"
)

type ChangeType string

const (
	ChangeTypeCreate ChangeType = "CREATE"
	ChangeTypeModify ChangeType = "MODIFY"
	ChangeTypeDelete ChangeType = "DELETE"
	ChangeTypeAdd    ChangeType = "ADD"
	ChangeTypeRemove ChangeType = "REMOVE"
)

type OverrideTarget string

const (
	OverrideTargetChannel  OverrideTarget = "CHANNEL"
	OverrideTargetCategory OverrideTarget = "CATEGORY"
)

//go:generate mockgen -source=public.go -destination=mock_public.go -package=notifier

type Notifier interface {
	RoleUpdate(ctx context.Context, role *model.Role, changeType ChangeType) error
	RolesReordered(ctx context.Context, serverId string, positions map[string]int32) error
	MemberRolesUpdate(ctx context.Context, serverId string, userId string, roleId string, changeType ChangeType) error
	OverrideUpdate(ctx context.Context, target OverrideTarget, targetId string, roleId string, flags permission.Flags) error
	PresenceUpdate(ctx context.Context, userId string, online bool) error
}
