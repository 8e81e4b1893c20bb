package service

import (
	"context"

	"chat-service/internal/permission"
)

//go:generate mockgen -source=deps.go -destination=mock_deps.go -package=service

// Authorizer is satisfied by authz.Resolver.
type Authorizer interface {
	HasPermission(ctx context.Context, serverId string, userId string, key permission.Key) (bool, error)
	HasChannelPermission(ctx context.Context, serverId string, userId string, channelId string, key permission.ChannelKey) (bool, error)
	HasCategoryPermission(ctx context.Context, serverId string, userId string, categoryId string, key permission.CategoryKey) (bool, error)
}

// Dispatcher pushes frames to a user's live connections. It is satisfied by gateway.Hub.
type Dispatcher interface {
	NotifyUser(ctx context.Context, userId string, op string, data interface{}) error
}
