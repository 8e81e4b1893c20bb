package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chat-service/internal/gateway"
	"chat-service/internal/notifier"
	"chat-service/internal/permission"
	"chat-service/internal/presence"
	"chat-service/internal/repository"
	"chat-service/internal/repository/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// defaultEveryonePermissions are given to the @everyone role of a new server.
var defaultEveryonePermissions = permission.Flags{
	permission.SendMessages: permission.Allow,
	permission.AddReactions: permission.Allow,
}

type ServerService struct {
	logger     *zap.SugaredLogger
	repo       repository.Repository
	notif      notifier.Notifier
	authz      Authorizer
	dispatcher Dispatcher
	tracker    presence.Tracker
}

func NewServerService(logger *zap.SugaredLogger, repo repository.Repository, notif notifier.Notifier,
	authz Authorizer, dispatcher Dispatcher, tracker presence.Tracker) *ServerService {

	return &ServerService{
		logger:     logger,
		repo:       repo,
		notif:      notif,
		authz:      authz,
		dispatcher: dispatcher,
		tracker:    tracker,
	}
}

func (s *ServerService) CreateServer(ctx context.Context, actor string, req CreateServerRequest) (*model.Server, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, status.Error(codes.InvalidArgument, "server name is required")
	}

	server := &model.Server{
		Id:      uuid.NewString(),
		Name:    name,
		OwnerId: actor,
	}
	everyone := &model.Role{
		Id:          uuid.NewString(),
		ServerId:    server.Id,
		Name:        model.EveryoneRoleName,
		Position:    0,
		Permissions: defaultEveryonePermissions.Clone(),
	}

	if err := s.repo.CreateServer(ctx, server, everyone); err != nil {
		return nil, s.internal("error creating server", err)
	}
	return server, nil
}

func (s *ServerService) JoinServer(ctx context.Context, actor string, serverId string) (*model.Member, error) {
	if _, err := s.repo.GetServer(ctx, serverId); err != nil {
		return nil, s.lookupErr("server", err)
	}

	member := &model.Member{
		Id:       uuid.NewString(),
		ServerId: serverId,
		UserId:   actor,
		Roles:    []string{},
	}
	if err := s.repo.AddMember(ctx, member); err != nil {
		if errors.Is(err, repository.ErrAlreadyMember) {
			return nil, status.Error(codes.AlreadyExists, "already a member of the server")
		}
		return nil, s.internal("error adding member", err)
	}
	return member, nil
}

// ListRoles returns the server's roles, highest position first. Only members can list them.
func (s *ServerService) ListRoles(ctx context.Context, actor string, serverId string) ([]*model.Role, error) {
	if err := s.requireMember(ctx, serverId, actor); err != nil {
		return nil, err
	}

	roles, err := s.repo.GetServerRoles(ctx, serverId)
	if err != nil {
		return nil, s.internal("error getting roles", err)
	}
	return roles, nil
}

func (s *ServerService) CreateRole(ctx context.Context, actor string, serverId string, req CreateRoleRequest) (*model.Role, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || name == model.EveryoneRoleName {
		return nil, status.Error(codes.InvalidArgument, "invalid role name")
	}
	if req.Position < 1 {
		return nil, status.Error(codes.InvalidArgument, "role position must be above @everyone")
	}
	flags, err := permission.FlagsFromMap(req.Permissions, permission.RoleKeys)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	ceiling, err := s.requireRoleManager(ctx, serverId, actor)
	if err != nil {
		return nil, err
	}
	if err := ceiling.check(req.Position); err != nil {
		return nil, err
	}
	if err := s.requireGrantable(ctx, serverId, actor, ceiling, flags); err != nil {
		return nil, err
	}

	role := &model.Role{
		Id:          uuid.NewString(),
		ServerId:    serverId,
		Name:        name,
		Position:    req.Position,
		Permissions: flags,
	}
	if err := s.repo.CreateRole(ctx, role); err != nil {
		return nil, s.internal("error creating role", err)
	}

	if err := s.notif.RoleUpdate(ctx, role, notifier.ChangeTypeCreate); err != nil {
		s.logger.Errorw("error sending role update notification", "error", err)
	}
	return role, nil
}

func (s *ServerService) UpdateRole(ctx context.Context, actor string, roleId string, req UpdateRoleRequest) (*model.Role, error) {
	role, err := s.repo.GetRole(ctx, roleId)
	if err != nil {
		return nil, s.lookupErr("role", err)
	}

	if role.IsEveryone() && (req.Name != nil || req.Position != nil) {
		return nil, status.Error(codes.InvalidArgument, "the @everyone role can only have its permissions changed")
	}

	ceiling, err := s.requireRoleManager(ctx, role.ServerId, actor)
	if err != nil {
		return nil, err
	}
	if !role.IsEveryone() {
		if err := ceiling.check(role.Position); err != nil {
			return nil, err
		}
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || name == model.EveryoneRoleName {
			return nil, status.Error(codes.InvalidArgument, "invalid role name")
		}
		role.Name = name
	}
	if req.Position != nil {
		if *req.Position < 1 {
			return nil, status.Error(codes.InvalidArgument, "role position must be above @everyone")
		}
		if err := ceiling.check(*req.Position); err != nil {
			return nil, err
		}
		role.Position = *req.Position
	}

	for _, name := range req.UnsetPermissions {
		k, ok := permission.ParseKey(name)
		if !ok || !permission.RoleKeys.Contains(k) {
			return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("unknown permission %q", name))
		}
		role.Permissions.Set(k, permission.Unset)
	}

	set, err := permission.FlagsFromMap(req.SetPermissions, permission.RoleKeys)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := s.requireGrantable(ctx, role.ServerId, actor, ceiling, set); err != nil {
		return nil, err
	}
	if role.Permissions == nil {
		role.Permissions = make(permission.Flags, len(set))
	}
	for k, v := range set {
		role.Permissions.Set(k, v)
	}

	if err := s.repo.UpdateRole(ctx, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, status.Error(codes.NotFound, "role not found")
		}
		return nil, s.internal("error updating role", err)
	}

	if err := s.notif.RoleUpdate(ctx, role, notifier.ChangeTypeModify); err != nil {
		s.logger.Errorw("error sending role update notification", "error", err)
	}
	s.pushServer(ctx, role.ServerId)

	return role, nil
}

func (s *ServerService) DeleteRole(ctx context.Context, actor string, roleId string) error {
	role, err := s.repo.GetRole(ctx, roleId)
	if err != nil {
		return s.lookupErr("role", err)
	}
	if role.IsEveryone() {
		return status.Error(codes.FailedPrecondition, "the @everyone role cannot be deleted")
	}

	ceiling, err := s.requireRoleManager(ctx, role.ServerId, actor)
	if err != nil {
		return err
	}
	if err := ceiling.check(role.Position); err != nil {
		return err
	}

	if err := s.repo.DeleteRole(ctx, role.ServerId, role.Id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return status.Error(codes.NotFound, "role not found")
		case errors.Is(err, repository.ErrEveryoneRoleImmutable):
			return status.Error(codes.FailedPrecondition, "the @everyone role cannot be deleted")
		}
		return s.internal("error deleting role", err)
	}

	if err := s.notif.RoleUpdate(ctx, role, notifier.ChangeTypeDelete); err != nil {
		s.logger.Errorw("error sending role update notification", "error", err)
	}
	s.pushServer(ctx, role.ServerId)

	return nil
}

// ReorderRoles moves several roles at once. Non-owners can only move roles that sit below their highest role,
// and only to positions that are still below it.
func (s *ServerService) ReorderRoles(ctx context.Context, actor string, serverId string, req ReorderRolesRequest) error {
	if len(req.Positions) == 0 {
		return status.Error(codes.InvalidArgument, "no positions given")
	}

	ceiling, err := s.requireRoleManager(ctx, serverId, actor)
	if err != nil {
		return err
	}

	roles, err := s.repo.GetServerRoles(ctx, serverId)
	if err != nil {
		return s.internal("error getting roles", err)
	}
	current := make(map[string]*model.Role, len(roles))
	for _, role := range roles {
		current[role.Id] = role
	}

	for roleId, position := range req.Positions {
		role, ok := current[roleId]
		if !ok {
			return status.Error(codes.NotFound, fmt.Sprintf("role %s not found", roleId))
		}
		if role.IsEveryone() {
			return status.Error(codes.InvalidArgument, "the @everyone role cannot be moved")
		}
		if position < 1 {
			return status.Error(codes.InvalidArgument, "role position must be above @everyone")
		}
		if err := ceiling.check(role.Position); err != nil {
			return err
		}
		if err := ceiling.check(position); err != nil {
			return err
		}
	}

	if err := s.repo.ReorderRoles(ctx, serverId, req.Positions); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return status.Error(codes.NotFound, "role not found")
		}
		return s.internal("error reordering roles", err)
	}

	if err := s.notif.RolesReordered(ctx, serverId, req.Positions); err != nil {
		s.logger.Errorw("error sending roles reordered notification", "error", err)
	}
	s.pushServer(ctx, serverId)

	return nil
}

func (s *ServerService) AddRoleToMember(ctx context.Context, actor string, serverId string, userId string, roleId string) error {
	if _, err := s.assignableRole(ctx, actor, serverId, roleId); err != nil {
		return err
	}

	if err := s.repo.AddRoleToMember(ctx, serverId, userId, roleId); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return status.Error(codes.NotFound, "member not found")
		case errors.Is(err, repository.ErrAlreadyHasRole):
			return status.Error(codes.AlreadyExists, "member already has role")
		}
		return s.internal("error adding role to member", err)
	}

	if err := s.notif.MemberRolesUpdate(ctx, serverId, userId, roleId, notifier.ChangeTypeAdd); err != nil {
		s.logger.Errorw("error sending member roles update", "error", err)
	}
	s.pushUser(ctx, serverId, userId)

	return nil
}

func (s *ServerService) RemoveRoleFromMember(ctx context.Context, actor string, serverId string, userId string, roleId string) error {
	if _, err := s.assignableRole(ctx, actor, serverId, roleId); err != nil {
		return err
	}

	if err := s.repo.RemoveRoleFromMember(ctx, serverId, userId, roleId); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return status.Error(codes.NotFound, "member not found")
		case errors.Is(err, repository.ErrDoesNotHaveRole):
			return status.Error(codes.NotFound, "member does not have role")
		}
		return s.internal("error removing role from member", err)
	}

	if err := s.notif.MemberRolesUpdate(ctx, serverId, userId, roleId, notifier.ChangeTypeRemove); err != nil {
		s.logger.Errorw("error sending member roles update", "error", err)
	}
	s.pushUser(ctx, serverId, userId)

	return nil
}

func (s *ServerService) assignableRole(ctx context.Context, actor string, serverId string, roleId string) (*model.Role, error) {
	role, err := s.repo.GetRole(ctx, roleId)
	if err != nil {
		return nil, s.lookupErr("role", err)
	}
	if role.ServerId != serverId {
		return nil, status.Error(codes.NotFound, "role not found")
	}
	if role.IsEveryone() {
		return nil, status.Error(codes.InvalidArgument, "the @everyone role is held implicitly")
	}

	ceiling, err := s.requireRoleManager(ctx, serverId, actor)
	if err != nil {
		return nil, err
	}
	if err := ceiling.check(role.Position); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *ServerService) CreateCategory(ctx context.Context, actor string, serverId string, req CreateCategoryRequest) (*model.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, status.Error(codes.InvalidArgument, "category name is required")
	}
	if err := s.require(ctx, serverId, actor, permission.ManageChannels); err != nil {
		return nil, err
	}

	category := &model.Category{
		Id:          uuid.NewString(),
		ServerId:    serverId,
		Name:        name,
		Permissions: permission.Overrides{},
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, s.internal("error creating category", err)
	}
	return category, nil
}

func (s *ServerService) CreateChannel(ctx context.Context, actor string, serverId string, req CreateChannelRequest) (*model.Channel, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, status.Error(codes.InvalidArgument, "channel name is required")
	}

	if req.CategoryId == nil {
		if err := s.require(ctx, serverId, actor, permission.ManageChannels); err != nil {
			return nil, err
		}
	} else {
		category, err := s.repo.GetCategory(ctx, *req.CategoryId)
		if err != nil {
			return nil, s.lookupErr("category", err)
		}
		if category.ServerId != serverId {
			return nil, status.Error(codes.NotFound, "category not found")
		}
		if err := s.requireInCategory(ctx, serverId, actor, category.Id, permission.CategoryManageChannels); err != nil {
			return nil, err
		}
	}

	channel := &model.Channel{
		Id:          uuid.NewString(),
		ServerId:    serverId,
		CategoryId:  req.CategoryId,
		Name:        name,
		Permissions: permission.Overrides{},
	}
	if err := s.repo.CreateChannel(ctx, channel); err != nil {
		return nil, s.internal("error creating channel", err)
	}
	return channel, nil
}

func (s *ServerService) SetChannelOverride(ctx context.Context, actor string, channelId string, roleId string, req SetOverrideRequest) error {
	flags, err := permission.FlagsFromMap(req.Permissions, permission.ChannelKeys)
	if err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}

	channel, err := s.repo.GetChannel(ctx, channelId)
	if err != nil {
		return s.lookupErr("channel", err)
	}
	if err := s.overrideTarget(ctx, actor, channel.ServerId, roleId); err != nil {
		return err
	}

	if err := s.repo.SetChannelOverride(ctx, channelId, roleId, flags); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return status.Error(codes.NotFound, "channel not found")
		}
		return s.internal("error setting channel override", err)
	}

	if err := s.notif.OverrideUpdate(ctx, notifier.OverrideTargetChannel, channelId, roleId, flags); err != nil {
		s.logger.Errorw("error sending override update", "error", err)
	}
	s.pushServer(ctx, channel.ServerId)

	return nil
}

func (s *ServerService) SetCategoryOverride(ctx context.Context, actor string, categoryId string, roleId string, req SetOverrideRequest) error {
	flags, err := permission.FlagsFromMap(req.Permissions, permission.CategoryKeys)
	if err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}

	category, err := s.repo.GetCategory(ctx, categoryId)
	if err != nil {
		return s.lookupErr("category", err)
	}
	if err := s.overrideTarget(ctx, actor, category.ServerId, roleId); err != nil {
		return err
	}

	if err := s.repo.SetCategoryOverride(ctx, categoryId, roleId, flags); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return status.Error(codes.NotFound, "category not found")
		}
		return s.internal("error setting category override", err)
	}

	if err := s.notif.OverrideUpdate(ctx, notifier.OverrideTargetCategory, categoryId, roleId, flags); err != nil {
		s.logger.Errorw("error sending override update", "error", err)
	}
	s.pushServer(ctx, category.ServerId)

	return nil
}

// overrideTarget checks that actor can manage channels and that roleId belongs to the same server.
func (s *ServerService) overrideTarget(ctx context.Context, actor string, serverId string, roleId string) error {
	if err := s.require(ctx, serverId, actor, permission.ManageChannels); err != nil {
		return err
	}

	role, err := s.repo.GetRole(ctx, roleId)
	if err != nil {
		return s.lookupErr("role", err)
	}
	if role.ServerId != serverId {
		return status.Error(codes.NotFound, "role not found")
	}
	return nil
}

// CheckPermission reports whether userId holds keyName in serverId. actor must be a member of the server.
func (s *ServerService) CheckPermission(ctx context.Context, actor string, serverId string, userId string, keyName string) (*PermissionResponse, error) {
	key, ok := permission.ParseKey(keyName)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("unknown permission %q", keyName))
	}
	if err := s.requireMember(ctx, serverId, actor); err != nil {
		return nil, err
	}

	allowed, err := s.authz.HasPermission(ctx, serverId, userId, key)
	if err != nil {
		return nil, s.internal("error resolving permission", err)
	}
	return &PermissionResponse{ServerId: serverId, UserId: userId, Permission: key.String(), Allowed: allowed}, nil
}

func (s *ServerService) CheckChannelPermission(ctx context.Context, actor string, serverId string, userId string, channelId string,
	keyName string) (*PermissionResponse, error) {

	key, ok := permission.ParseChannelKey(keyName)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("unknown channel permission %q", keyName))
	}
	if err := s.requireMember(ctx, serverId, actor); err != nil {
		return nil, err
	}

	allowed, err := s.authz.HasChannelPermission(ctx, serverId, userId, channelId, key)
	if err != nil {
		return nil, s.internal("error resolving channel permission", err)
	}
	return &PermissionResponse{
		ServerId:   serverId,
		ChannelId:  channelId,
		UserId:     userId,
		Permission: key.String(),
		Allowed:    allowed,
	}, nil
}

func (s *ServerService) CheckCategoryPermission(ctx context.Context, actor string, serverId string, userId string, categoryId string,
	keyName string) (*PermissionResponse, error) {

	key, ok := permission.ParseCategoryKey(keyName)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("unknown category permission %q", keyName))
	}
	if err := s.requireMember(ctx, serverId, actor); err != nil {
		return nil, err
	}

	allowed, err := s.authz.HasCategoryPermission(ctx, serverId, userId, categoryId, key)
	if err != nil {
		return nil, s.internal("error resolving category permission", err)
	}
	return &PermissionResponse{
		ServerId:   serverId,
		CategoryId: categoryId,
		UserId:     userId,
		Permission: key.String(),
		Allowed:    allowed,
	}, nil
}

func (s *ServerService) OnlineUsers(ctx context.Context) (*OnlineUsersResponse, error) {
	users, err := s.tracker.OnlineUsers(ctx)
	if err != nil {
		return nil, s.internal("error getting online users", err)
	}
	if users == nil {
		users = []string{}
	}
	return &OnlineUsersResponse{Users: users}, nil
}

func (s *ServerService) UserPresence(ctx context.Context, userId string) (*PresenceResponse, error) {
	conns, err := s.tracker.ConnectionsOf(ctx, userId)
	if err != nil {
		return nil, s.internal("error getting connections", err)
	}
	return &PresenceResponse{UserId: userId, Online: len(conns) > 0, Connections: len(conns)}, nil
}

// require fails with PermissionDenied unless actor holds key in serverId.
func (s *ServerService) require(ctx context.Context, serverId string, actor string, key permission.Key) error {
	allowed, err := s.authz.HasPermission(ctx, serverId, actor, key)
	if err != nil {
		return s.internal("error resolving permission", err)
	}
	if !allowed {
		return status.Error(codes.PermissionDenied, fmt.Sprintf("missing permission %s", key))
	}
	return nil
}

func (s *ServerService) requireInCategory(ctx context.Context, serverId string, actor string, categoryId string,
	key permission.CategoryKey) error {

	allowed, err := s.authz.HasCategoryPermission(ctx, serverId, actor, categoryId, key)
	if err != nil {
		return s.internal("error resolving category permission", err)
	}
	if !allowed {
		return status.Error(codes.PermissionDenied, fmt.Sprintf("missing permission %s in category", key))
	}
	return nil
}

// requireMember fails with PermissionDenied unless actor has a member record in serverId. The owner always has one.
func (s *ServerService) requireMember(ctx context.Context, serverId string, actor string) error {
	if _, err := s.repo.GetMemberRoleIds(ctx, serverId, actor); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return status.Error(codes.PermissionDenied, "not a member of the server")
		}
		return s.internal("error getting member", err)
	}
	return nil
}

// requireGrantable stops a non-owner from handing out a permission they do not hold themselves.
// Administrator resolves to true only for administrators, so it is covered too.
func (s *ServerService) requireGrantable(ctx context.Context, serverId string, actor string, ceiling roleCeiling,
	flags permission.Flags) error {

	if ceiling.unbounded {
		return nil
	}
	for _, key := range flags.Allowed() {
		if err := s.require(ctx, serverId, actor, key); err != nil {
			return err
		}
	}
	return nil
}

// roleCeiling bounds which role positions an actor may touch. The owner is unbounded.
type roleCeiling struct {
	unbounded bool
	position  int32
}

func (c roleCeiling) check(position int32) error {
	if c.unbounded || position < c.position {
		return nil
	}
	return status.Error(codes.PermissionDenied, "role is not below your highest role")
}

func (s *ServerService) requireRoleManager(ctx context.Context, serverId string, actor string) (roleCeiling, error) {
	owner, err := s.repo.GetServerOwner(ctx, serverId)
	if err != nil {
		return roleCeiling{}, s.lookupErr("server", err)
	}
	if owner == actor {
		return roleCeiling{unbounded: true}, nil
	}

	if err := s.require(ctx, serverId, actor, permission.ManageRoles); err != nil {
		return roleCeiling{}, err
	}

	roleIds, err := s.repo.GetMemberRoleIds(ctx, serverId, actor)
	if err != nil {
		return roleCeiling{}, s.internal("error getting member roles", err)
	}
	roles, err := s.repo.GetRoles(ctx, roleIds)
	if err != nil {
		return roleCeiling{}, s.internal("error getting roles", err)
	}

	ceiling := roleCeiling{}
	for _, role := range roles {
		if role.ServerId == serverId && role.Position > ceiling.position {
			ceiling.position = role.Position
		}
	}
	return ceiling, nil
}

// pushServer tells every online member of serverId to refresh their permissions.
func (s *ServerService) pushServer(ctx context.Context, serverId string) {
	members, err := s.repo.GetMemberUserIds(ctx, serverId)
	if err != nil {
		s.logger.Errorw("error getting server members", "serverId", serverId, "error", err)
		return
	}
	for _, userId := range members {
		s.pushUser(ctx, serverId, userId)
	}
}

func (s *ServerService) pushUser(ctx context.Context, serverId string, userId string) {
	err := s.dispatcher.NotifyUser(ctx, userId, gateway.OpPermissionsUpdated, PermissionsUpdatedData{ServerId: serverId})
	if err != nil {
		s.logger.Errorw("error pushing permissions update", "userId", userId, "error", err)
	}
}

func (s *ServerService) lookupErr(what string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return status.Error(codes.NotFound, what+" not found")
	}
	return s.internal("error getting "+what, err)
}

func (s *ServerService) internal(msg string, err error) error {
	s.logger.Errorw(msg, "error", err)
	return status.Error(codes.Internal, msg)
}
