// Package authz decides whether a server member may perform an action.
//
// Resolution is fail-closed: a missing server, member, role, channel or category never grants anything.
// Lookup failures other than "not found" are returned together with a false result so callers can tell a
// denial apart from an outage, but both must be treated as a denial.
package authz

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"chat-service/internal/permission"
	"chat-service/internal/repository"
	"chat-service/internal/repository/model"
)

// Lookup is the read side of the stores the resolver depends on. Missing records are reported
// with repository.ErrNotFound.
type Lookup interface {
	GetServerOwner(ctx context.Context, serverId string) (string, error)
	GetMemberRoleIds(ctx context.Context, serverId string, userId string) ([]string, error)
	GetRoles(ctx context.Context, roleIds []string) ([]*model.Role, error)
	GetEveryoneRole(ctx context.Context, serverId string) (*model.Role, error)
	GetChannel(ctx context.Context, channelId string) (*model.Channel, error)
	GetCategory(ctx context.Context, categoryId string) (*model.Category, error)
}

// Resolver holds no state of its own and is safe for concurrent use.
type Resolver struct {
	lookup Lookup
}

func NewResolver(lookup Lookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// HasPermission reports whether userId holds key server-wide.
func (r *Resolver) HasPermission(ctx context.Context, serverId string, userId string, key permission.Key) (bool, error) {
	owner, roles, err := r.member(ctx, serverId, userId)
	if err != nil || owner {
		return owner, err
	}
	if roles == nil {
		return false, nil
	}

	decision, admin, err := r.roleDecision(ctx, serverId, roles, key)
	if err != nil {
		return false, err
	}
	return admin || decision == permission.Allow, nil
}

// HasChannelPermission reports whether userId holds key in channelId. Channel overrides beat category
// overrides, which beat the role hierarchy. Overrides are walked in the order the member's roles are stored,
// not by position, so conflicting overrides on several held roles depend on that order.
func (r *Resolver) HasChannelPermission(ctx context.Context, serverId string, userId string, channelId string, key permission.ChannelKey) (bool, error) {
	owner, roles, err := r.member(ctx, serverId, userId)
	if err != nil || owner {
		return owner, err
	}
	if roles == nil {
		return false, nil
	}

	roleLevel, admin, err := r.roleDecision(ctx, serverId, roles, key.Key())
	if err != nil {
		return false, err
	}
	if admin {
		return true, nil
	}

	channel, err := r.lookup.GetChannel(ctx, channelId)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return roleLevel == permission.Allow, nil
		}
		return false, fmt.Errorf("failed to get channel: %w", err)
	}
	if channel.ServerId != serverId {
		return false, nil
	}

	roleIds := idsOf(roles)

	categoryLevel := permission.Unset
	if channel.CategoryId != nil {
		category, err := r.lookup.GetCategory(ctx, *channel.CategoryId)
		switch {
		case err == nil:
			categoryLevel = category.Permissions.Resolve(roleIds, key.Key())
		case !errors.Is(err, repository.ErrNotFound):
			return false, fmt.Errorf("failed to get category: %w", err)
		}
	}

	channelLevel := channel.Permissions.Resolve(roleIds, key.Key())

	for _, s := range []permission.State{channelLevel, categoryLevel, roleLevel} {
		if s.Decided() {
			return s == permission.Allow, nil
		}
	}
	return false, nil
}

// HasCategoryPermission reports whether userId holds key inside categoryId. Category overrides beat the role
// hierarchy. A missing category falls back to the role hierarchy, a category of another server grants nothing.
func (r *Resolver) HasCategoryPermission(ctx context.Context, serverId string, userId string, categoryId string, key permission.CategoryKey) (bool, error) {
	owner, roles, err := r.member(ctx, serverId, userId)
	if err != nil || owner {
		return owner, err
	}
	if roles == nil {
		return false, nil
	}

	roleLevel, admin, err := r.roleDecision(ctx, serverId, roles, key.Key())
	if err != nil {
		return false, err
	}
	if admin {
		return true, nil
	}

	category, err := r.lookup.GetCategory(ctx, categoryId)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return roleLevel == permission.Allow, nil
		}
		return false, fmt.Errorf("failed to get category: %w", err)
	}
	if category.ServerId != serverId {
		return false, nil
	}

	if s := category.Permissions.Resolve(idsOf(roles), key.Key()); s.Decided() {
		return s == permission.Allow, nil
	}
	return roleLevel == permission.Allow, nil
}

// member returns owner == true for the server owner. For anyone else it returns the member's roles in their
// stored order with dangling references dropped, or nil roles when the server or membership does not exist.
func (r *Resolver) member(ctx context.Context, serverId string, userId string) (owner bool, roles []*model.Role, err error) {
	ownerId, err := r.lookup.GetServerOwner(ctx, serverId)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil, nil
		}
		return false, nil, fmt.Errorf("failed to get server owner: %w", err)
	}
	if ownerId == userId {
		return true, nil, nil
	}

	roleIds, err := r.lookup.GetMemberRoleIds(ctx, serverId, userId)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil, nil
		}
		return false, nil, fmt.Errorf("failed to get member roles: %w", err)
	}

	roleIds = dedupe(roleIds)
	found, err := r.lookup.GetRoles(ctx, roleIds)
	if err != nil {
		return false, nil, fmt.Errorf("failed to get roles: %w", err)
	}

	byId := make(map[string]*model.Role, len(found))
	for _, role := range found {
		// a role of another server is as good as a dangling reference
		if role.ServerId == serverId {
			byId[role.Id] = role
		}
	}

	roles = make([]*model.Role, 0, len(roleIds))
	for _, id := range roleIds {
		if role, ok := byId[id]; ok {
			roles = append(roles, role)
		}
	}
	return false, roles, nil
}

// roleDecision walks the roles from the highest position down. Any administrator role wins outright.
// Otherwise the first role that sets key decides. If none does, @everyone can only grant: an explicit
// deny there leaves the decision Unset.
func (r *Resolver) roleDecision(ctx context.Context, serverId string, roles []*model.Role, key permission.Key) (decision permission.State, admin bool, err error) {
	for _, role := range roles {
		if role.IsAdministrator() {
			return permission.Allow, true, nil
		}
	}

	sorted := make([]*model.Role, len(roles))
	copy(sorted, roles)
	// stable, so equal positions keep their stored order
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position > sorted[j].Position
	})

	for _, role := range sorted {
		if s := role.Permissions.Get(key); s.Decided() {
			return s, false, nil
		}
	}

	everyone, err := r.lookup.GetEveryoneRole(ctx, serverId)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return permission.Unset, false, nil
		}
		return permission.Unset, false, fmt.Errorf("failed to get @everyone role: %w", err)
	}

	if everyone.IsAdministrator() {
		return permission.Allow, true, nil
	}
	if everyone.Permissions.Get(key) == permission.Allow {
		return permission.Allow, false, nil
	}
	return permission.Unset, false, nil
}

func idsOf(roles []*model.Role) []string {
	ids := make([]string, len(roles))
	for i, role := range roles {
		ids[i] = role.Id
	}
	return ids
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
