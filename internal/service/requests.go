package service

type CreateServerRequest struct {
	Name string `json:"name"`
}

type CreateRoleRequest struct {
	Name        string          `json:"name"`
	Position    int32           `json:"position"`
	Permissions map[string]bool `json:"permissions"`
}

// UpdateRoleRequest leaves nil fields untouched. UnsetPermissions is applied before SetPermissions.
type UpdateRoleRequest struct {
	Name             *string         `json:"name"`
	Position         *int32          `json:"position"`
	SetPermissions   map[string]bool `json:"setPermissions"`
	UnsetPermissions []string        `json:"unsetPermissions"`
}

type ReorderRolesRequest struct {
	Positions map[string]int32 `json:"positions"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type CreateChannelRequest struct {
	Name       string  `json:"name"`
	CategoryId *string `json:"categoryId"`
}

// SetOverrideRequest replaces a role's override on a channel or category. An empty map removes it.
type SetOverrideRequest struct {
	Permissions map[string]bool `json:"permissions"`
}

type PermissionResponse struct {
	ServerId   string `json:"serverId"`
	ChannelId  string `json:"channelId,omitempty"`
	CategoryId string `json:"categoryId,omitempty"`
	UserId     string `json:"userId"`
	Permission string `json:"permission"`
	Allowed    bool   `json:"allowed"`
}

type PresenceResponse struct {
	UserId      string `json:"userId"`
	Online      bool   `json:"online"`
	Connections int    `json:"connections"`
}

type OnlineUsersResponse struct {
	Users []string `json:"users"`
}

type PermissionsUpdatedData struct {
	ServerId string `json:"serverId"`
}
