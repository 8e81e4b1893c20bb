package authz

import (
	"context"
	"errors"
	"testing"

	"chat-service/internal/permission"
	"chat-service/internal/repository"
	"chat-service/internal/repository/model"
	"chat-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryLookup is a fixture store. The role ID lists of members keep the order they are declared in.
type memoryLookup struct {
	owners     map[string]string
	members    map[string][]string // serverId/userId -> role IDs
	roles      map[string]*model.Role
	channels   map[string]*model.Channel
	categories map[string]*model.Category

	err           error
	getRolesCalls int
}

func newMemoryLookup() *memoryLookup {
	return &memoryLookup{
		owners:     map[string]string{testServerId: "owner"},
		members:    map[string][]string{},
		roles:      map[string]*model.Role{},
		channels:   map[string]*model.Channel{},
		categories: map[string]*model.Category{},
	}
}

func (m *memoryLookup) GetServerOwner(_ context.Context, serverId string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	owner, ok := m.owners[serverId]
	if !ok {
		return "", repository.ErrNotFound
	}
	return owner, nil
}

func (m *memoryLookup) GetMemberRoleIds(_ context.Context, serverId string, userId string) ([]string, error) {
	roleIds, ok := m.members[serverId+"/"+userId]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return roleIds, nil
}

func (m *memoryLookup) GetRoles(_ context.Context, roleIds []string) ([]*model.Role, error) {
	m.getRolesCalls++
	roles := make([]*model.Role, 0, len(roleIds))
	// reverse to make sure the resolver does not rely on the store's ordering
	for i := len(roleIds) - 1; i >= 0; i-- {
		if role, ok := m.roles[roleIds[i]]; ok {
			roles = append(roles, role)
		}
	}
	return roles, nil
}

func (m *memoryLookup) GetEveryoneRole(_ context.Context, serverId string) (*model.Role, error) {
	for _, role := range m.roles {
		if role.ServerId == serverId && role.IsEveryone() {
			return role, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryLookup) GetChannel(_ context.Context, channelId string) (*model.Channel, error) {
	channel, ok := m.channels[channelId]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return channel, nil
}

func (m *memoryLookup) GetCategory(_ context.Context, categoryId string) (*model.Category, error) {
	category, ok := m.categories[categoryId]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return category, nil
}

const testServerId = "server"

func (m *memoryLookup) role(id string, position int32, flags permission.Flags) *memoryLookup {
	m.roles[id] = &model.Role{Id: id, ServerId: testServerId, Name: id, Position: position, Permissions: flags}
	return m
}

func (m *memoryLookup) everyone(flags permission.Flags) *memoryLookup {
	m.roles["everyone"] = &model.Role{Id: "everyone", ServerId: testServerId, Name: model.EveryoneRoleName, Permissions: flags}
	return m
}

func (m *memoryLookup) member(userId string, roleIds ...string) *memoryLookup {
	if roleIds == nil {
		roleIds = []string{}
	}
	m.members[testServerId+"/"+userId] = roleIds
	return m
}

func allow(keys ...permission.Key) permission.Flags {
	f := permission.Flags{}
	for _, k := range keys {
		f[k] = permission.Allow
	}
	return f
}

func deny(keys ...permission.Key) permission.Flags {
	f := permission.Flags{}
	for _, k := range keys {
		f[k] = permission.Deny
	}
	return f
}

func TestResolver_HasPermission(t *testing.T) {
	tests := map[string]struct {
		lookup *memoryLookup
		userId string
		key    permission.Key
		want   bool
	}{
		"owner without any role": {
			lookup: newMemoryLookup().everyone(deny(permission.ManageServer)),
			userId: "owner",
			key:    permission.ManageServer,
			want:   true,
		},
		"owner even when not a member": {
			lookup: newMemoryLookup(),
			userId: "owner",
			key:    permission.BanMembers,
			want:   true,
		},
		"non member": {
			lookup: newMemoryLookup().everyone(allow(permission.SendMessages)),
			userId: "stranger",
			key:    permission.SendMessages,
			want:   false,
		},
		"administrator grants unset keys": {
			lookup: newMemoryLookup().role("admin", 1, allow(permission.Administrator)).member("alice", "admin"),
			userId: "alice",
			key:    permission.BanMembers,
			want:   true,
		},
		"administrator on a lower role beats an explicit deny above it": {
			lookup: newMemoryLookup().
				role("muted", 50, deny(permission.SendMessages)).
				role("admin", 1, allow(permission.Administrator)).
				member("alice", "muted", "admin"),
			userId: "alice",
			key:    permission.SendMessages,
			want:   true,
		},
		"highest position wins on conflict": {
			lookup: newMemoryLookup().
				role("a", 10, allow(permission.ManageMessages)).
				role("b", 5, deny(permission.ManageMessages)).
				member("alice", "b", "a"),
			userId: "alice",
			key:    permission.ManageMessages,
			want:   true,
		},
		"higher deny beats lower allow": {
			lookup: newMemoryLookup().
				role("a", 10, deny(permission.ManageMessages)).
				role("b", 5, allow(permission.ManageMessages)).
				member("alice", "b", "a"),
			userId: "alice",
			key:    permission.ManageMessages,
			want:   false,
		},
		"unset defers to lower role": {
			lookup: newMemoryLookup().
				role("high", 10, allow(permission.KickMembers)).
				role("low", 1, allow(permission.SendMessages)).
				member("alice", "high", "low"),
			userId: "alice",
			key:    permission.SendMessages,
			want:   true,
		},
		"role deny is not overridden by everyone allow": {
			lookup: newMemoryLookup().
				everyone(allow(permission.SendMessages)).
				role("muted", 1, deny(permission.SendMessages)).
				member("alice", "muted"),
			userId: "alice",
			key:    permission.SendMessages,
			want:   false,
		},
		"everyone fallback": {
			lookup: newMemoryLookup().everyone(allow(permission.AddReactions)).member("alice"),
			userId: "alice",
			key:    permission.AddReactions,
			want:   true,
		},
		"everyone administrator": {
			lookup: newMemoryLookup().everyone(allow(permission.Administrator)).member("alice"),
			userId: "alice",
			key:    permission.ManageServer,
			want:   true,
		},
		"default deny": {
			lookup: newMemoryLookup().everyone(allow(permission.AddReactions)).member("alice"),
			userId: "alice",
			key:    permission.SendMessages,
			want:   false,
		},
		"everyone explicit deny": {
			lookup: newMemoryLookup().everyone(deny(permission.SendMessages)).member("alice"),
			userId: "alice",
			key:    permission.SendMessages,
			want:   false,
		},
		"no everyone role": {
			lookup: newMemoryLookup().member("alice"),
			userId: "alice",
			key:    permission.SendMessages,
			want:   false,
		},
		"dangling role references are ignored": {
			lookup: newMemoryLookup().
				role("low", 1, allow(permission.ManageInvites)).
				member("alice", "deleted", "low"),
			userId: "alice",
			key:    permission.ManageInvites,
			want:   true,
		},
		"roles of another server are ignored": {
			lookup: func() *memoryLookup {
				m := newMemoryLookup().member("alice", "foreign")
				m.roles["foreign"] = &model.Role{Id: "foreign", ServerId: "other", Position: 9, Permissions: allow(permission.Administrator)}
				return m
			}(),
			userId: "alice",
			key:    permission.ManageServer,
			want:   false,
		},
		"equal positions keep stored order": {
			lookup: newMemoryLookup().
				role("first", 5, deny(permission.PingRolesAndEveryone)).
				role("second", 5, allow(permission.PingRolesAndEveryone)).
				member("alice", "first", "second"),
			userId: "alice",
			key:    permission.PingRolesAndEveryone,
			want:   false,
		},
		"unknown server": {
			lookup: func() *memoryLookup {
				m := newMemoryLookup().member("alice")
				delete(m.owners, testServerId)
				return m
			}(),
			userId: "alice",
			key:    permission.SendMessages,
			want:   false,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := NewResolver(test.lookup).HasPermission(context.Background(), testServerId, test.userId, test.key)
			assert.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestResolver_HasPermission_BatchesRoleLookups(t *testing.T) {
	lookup := newMemoryLookup().
		role("a", 3, permission.Flags{}).
		role("b", 2, permission.Flags{}).
		role("c", 1, permission.Flags{}).
		member("alice", "a", "b", "c", "a")

	_, err := NewResolver(lookup).HasPermission(context.Background(), testServerId, "alice", permission.SendMessages)
	assert.NoError(t, err)
	assert.Equal(t, 1, lookup.getRolesCalls)
}

func TestResolver_LookupErrorsAreReturned(t *testing.T) {
	storeErr := errors.New("connection refused")
	lookup := newMemoryLookup().member("alice")
	lookup.err = storeErr

	resolver := NewResolver(lookup)

	got, err := resolver.HasPermission(context.Background(), testServerId, "alice", permission.SendMessages)
	assert.ErrorIs(t, err, storeErr)
	assert.False(t, got)

	got, err = resolver.HasChannelPermission(context.Background(), testServerId, "alice", "general", permission.ChannelSendMessages)
	assert.ErrorIs(t, err, storeErr)
	assert.False(t, got)
}

func TestResolver_HasChannelPermission(t *testing.T) {
	channelWith := func(m *memoryLookup, categoryId *string, overrides permission.Overrides) *memoryLookup {
		m.channels["general"] = &model.Channel{Id: "general", ServerId: testServerId, CategoryId: categoryId, Permissions: overrides}
		return m
	}
	categoryWith := func(m *memoryLookup, overrides permission.Overrides) *memoryLookup {
		m.categories["cat"] = &model.Category{Id: "cat", ServerId: testServerId, Permissions: overrides}
		return m
	}

	tests := map[string]struct {
		lookup *memoryLookup
		userId string
		key    permission.ChannelKey
		want   bool
	}{
		"owner ignores overrides": {
			lookup: channelWith(newMemoryLookup(), nil, permission.Overrides{"everyone": deny(permission.SendMessages)}),
			userId: "owner",
			key:    permission.ChannelSendMessages,
			want:   true,
		},
		"non member": {
			lookup: channelWith(newMemoryLookup(), nil, permission.Overrides{}),
			userId: "stranger",
			key:    permission.ChannelSendMessages,
			want:   false,
		},
		"channel overrides role": {
			lookup: channelWith(
				newMemoryLookup().role("member", 1, allow(permission.SendMessages)).member("alice", "member"),
				nil, permission.Overrides{"member": deny(permission.SendMessages)}),
			userId: "alice",
			key:    permission.ChannelSendMessages,
			want:   false,
		},
		"channel grants what role denies": {
			lookup: channelWith(
				newMemoryLookup().role("member", 1, deny(permission.AddReactions)).member("alice", "member"),
				nil, permission.Overrides{"member": allow(permission.AddReactions)}),
			userId: "alice",
			key:    permission.ChannelAddReactions,
			want:   true,
		},
		"category overrides role": {
			lookup: categoryWith(channelWith(
				newMemoryLookup().role("member", 1, permission.Flags{}).member("alice", "member"),
				utils.PointerOf("cat"), permission.Overrides{}),
				permission.Overrides{"member": allow(permission.ManageMessages)}),
			userId: "alice",
			key:    permission.ChannelManageMessages,
			want:   true,
		},
		"channel overrides category": {
			lookup: categoryWith(channelWith(
				newMemoryLookup().role("member", 1, permission.Flags{}).member("alice", "member"),
				utils.PointerOf("cat"), permission.Overrides{"member": deny(permission.ManageMessages)}),
				permission.Overrides{"member": allow(permission.ManageMessages)}),
			userId: "alice",
			key:    permission.ChannelManageMessages,
			want:   false,
		},
		"administrator ignores channel deny": {
			lookup: channelWith(
				newMemoryLookup().role("admin", 1, allow(permission.Administrator)).member("alice", "admin"),
				nil, permission.Overrides{"admin": deny(permission.SendMessages)}),
			userId: "alice",
			key:    permission.ChannelSendMessages,
			want:   true,
		},
		"missing channel falls back to roles": {
			lookup: newMemoryLookup().role("member", 1, allow(permission.ManageReactions)).member("alice", "member"),
			userId: "alice",
			key:    permission.ChannelManageReactions,
			want:   true,
		},
		"missing channel with undecided roles": {
			lookup: newMemoryLookup().member("alice"),
			userId: "alice",
			key:    permission.ChannelManageReactions,
			want:   false,
		},
		"missing category is skipped": {
			lookup: channelWith(
				newMemoryLookup().role("member", 1, allow(permission.SendMessages)).member("alice", "member"),
				utils.PointerOf("cat"), permission.Overrides{}),
			userId: "alice",
			key:    permission.ChannelSendMessages,
			want:   true,
		},
		"override walk follows stored order, not position": {
			lookup: channelWith(
				newMemoryLookup().
					role("low", 1, permission.Flags{}).
					role("high", 10, permission.Flags{}).
					member("alice", "low", "high"),
				nil, permission.Overrides{
					"high": allow(permission.DeleteMessagesOfOthers),
					"low":  deny(permission.DeleteMessagesOfOthers),
				}),
			userId: "alice",
			key:    permission.ChannelDeleteMessagesOfOthers,
			want:   false,
		},
		"override of a role the member does not hold": {
			lookup: channelWith(
				newMemoryLookup().role("member", 1, permission.Flags{}).member("alice", "member"),
				nil, permission.Overrides{"moderator": allow(permission.ManageMessages)}),
			userId: "alice",
			key:    permission.ChannelManageMessages,
			want:   false,
		},
		"everyone grant survives empty overrides": {
			lookup: channelWith(newMemoryLookup().everyone(allow(permission.AddReactions)).member("alice"),
				nil, permission.Overrides{}),
			userId: "alice",
			key:    permission.ChannelAddReactions,
			want:   true,
		},
		"channel of another server": {
			lookup: func() *memoryLookup {
				m := newMemoryLookup().role("member", 1, allow(permission.SendMessages)).member("alice", "member")
				m.channels["general"] = &model.Channel{Id: "general", ServerId: "other"}
				return m
			}(),
			userId: "alice",
			key:    permission.ChannelSendMessages,
			want:   false,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := NewResolver(test.lookup).HasChannelPermission(context.Background(), testServerId, test.userId, "general", test.key)
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestResolver_HasCategoryPermission(t *testing.T) {
	categoryWith := func(m *memoryLookup, serverId string, overrides permission.Overrides) *memoryLookup {
		m.categories["cat"] = &model.Category{Id: "cat", ServerId: serverId, Permissions: overrides}
		return m
	}
	channelManager := func() *memoryLookup {
		return newMemoryLookup().role("manager", 5, allow(permission.ManageChannels)).member("alice", "manager")
	}

	tests := map[string]struct {
		lookup *memoryLookup
		userId string
		key    permission.CategoryKey
		want   bool
	}{
		"owner ignores overrides": {
			lookup: categoryWith(newMemoryLookup(), testServerId, permission.Overrides{"everyone": deny(permission.ManageChannels)}),
			userId: "owner",
			key:    permission.CategoryManageChannels,
			want:   true,
		},
		"non member": {
			lookup: categoryWith(newMemoryLookup(), testServerId, permission.Overrides{}),
			userId: "stranger",
			key:    permission.CategoryManageChannels,
			want:   false,
		},
		"manageChannels deny beats role allow": {
			lookup: categoryWith(channelManager(), testServerId, permission.Overrides{"manager": deny(permission.ManageChannels)}),
			userId: "alice",
			key:    permission.CategoryManageChannels,
			want:   false,
		},
		"role allow without override": {
			lookup: categoryWith(channelManager(), testServerId, permission.Overrides{}),
			userId: "alice",
			key:    permission.CategoryManageChannels,
			want:   true,
		},
		"override grants what role lacks": {
			lookup: categoryWith(newMemoryLookup().role("member", 1, permission.Flags{}).member("alice", "member"),
				testServerId, permission.Overrides{"member": allow(permission.ManageWebhooks)}),
			userId: "alice",
			key:    permission.CategoryManageWebhooks,
			want:   true,
		},
		"administrator ignores category deny": {
			lookup: categoryWith(newMemoryLookup().role("admin", 1, allow(permission.Administrator)).member("alice", "admin"),
				testServerId, permission.Overrides{"admin": deny(permission.ManageInvites)}),
			userId: "alice",
			key:    permission.CategoryManageInvites,
			want:   true,
		},
		"missing category falls back to roles": {
			lookup: channelManager(),
			userId: "alice",
			key:    permission.CategoryManageChannels,
			want:   true,
		},
		"category of another server": {
			lookup: categoryWith(channelManager(), "other", permission.Overrides{}),
			userId: "alice",
			key:    permission.CategoryManageChannels,
			want:   false,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := NewResolver(test.lookup).HasCategoryPermission(context.Background(), testServerId, test.userId, "cat", test.key)
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}
