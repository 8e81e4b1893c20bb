package repository

import (
	"context"

	"chat-service/internal/permission"
	"chat-service/internal/repository/model"
)

//go:generate mockgen -source=public.go -destination=mock_public.go -package=repository

type Repository interface {
	CreateServer(ctx context.Context, server *model.Server, everyone *model.Role) error
	GetServer(ctx context.Context, serverId string) (*model.Server, error)
	GetServerOwner(ctx context.Context, serverId string) (string, error)

	GetRole(ctx context.Context, roleId string) (*model.Role, error)
	// GetRoles returns the roles that exist out of roleIds, in no particular order.
	GetRoles(ctx context.Context, roleIds []string) ([]*model.Role, error)
	GetServerRoles(ctx context.Context, serverId string) ([]*model.Role, error)
	GetEveryoneRole(ctx context.Context, serverId string) (*model.Role, error)
	CreateRole(ctx context.Context, role *model.Role) error
	UpdateRole(ctx context.Context, role *model.Role) error
	DeleteRole(ctx context.Context, serverId string, roleId string) error
	ReorderRoles(ctx context.Context, serverId string, positions map[string]int32) error

	AddMember(ctx context.Context, member *model.Member) error
	GetMemberRoleIds(ctx context.Context, serverId string, userId string) ([]string, error)
	GetMemberUserIds(ctx context.Context, serverId string) ([]string, error)
	AddRoleToMember(ctx context.Context, serverId string, userId string, roleId string) error
	RemoveRoleFromMember(ctx context.Context, serverId string, userId string, roleId string) error

	CreateCategory(ctx context.Context, category *model.Category) error
	GetCategory(ctx context.Context, categoryId string) (*model.Category, error)
	SetCategoryOverride(ctx context.Context, categoryId string, roleId string, flags permission.Flags) error

	CreateChannel(ctx context.Context, channel *model.Channel) error
	GetChannel(ctx context.Context, channelId string) (*model.Channel, error)
	SetChannelOverride(ctx context.Context, channelId string, roleId string, flags permission.Flags) error
}
