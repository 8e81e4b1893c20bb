package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"chat-service/internal/config"
	"chat-service/internal/permission"
	"chat-service/internal/repository/model"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	databaseName = "chat-service"

	serverCollectionName   = "servers"
	roleCollectionName     = "roles"
	memberCollectionName   = "members"
	categoryCollectionName = "categories"
	channelCollectionName  = "channels"

	queryTimeout = 5 * time.Second
)

var (
	ErrNotFound              = errors.New("not found")
	ErrAlreadyMember         = errors.New("user is already a member of the server")
	ErrAlreadyHasRole        = errors.New("member already has role")
	ErrDoesNotHaveRole       = errors.New("member does not have role")
	ErrEveryoneRoleImmutable = errors.New("the @everyone role cannot be deleted")
)

type mongoRepository struct {
	database *mongo.Database

	serverCollection   *mongo.Collection
	roleCollection     *mongo.Collection
	memberCollection   *mongo.Collection
	categoryCollection *mongo.Collection
	channelCollection  *mongo.Collection
}

func NewMongoRepository(ctx context.Context, logger *zap.SugaredLogger, wg *sync.WaitGroup, cfg config.MongoDBConfig) (Repository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	repo := newMongoRepository(client.Database(databaseName))
	if err := repo.createIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		logger.Info("disconnecting from mongo")
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Errorw("failed to disconnect from mongo", "error", err)
		}
	}()

	return repo, nil
}

func newMongoRepository(database *mongo.Database) *mongoRepository {
	return &mongoRepository{
		database:           database,
		serverCollection:   database.Collection(serverCollectionName),
		roleCollection:     database.Collection(roleCollectionName),
		memberCollection:   database.Collection(memberCollectionName),
		categoryCollection: database.Collection(categoryCollectionName),
		channelCollection:  database.Collection(channelCollectionName),
	}
}

func (m *mongoRepository) createIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := m.memberCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "serverId", Value: 1}, {Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = m.roleCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "serverId", Value: 1}, {Key: "name", Value: 1}},
	})
	return err
}

// CreateServer stores the server, its @everyone role and the owner's membership. If a later insert fails the
// earlier ones are deleted again, so a server never exists without its @everyone role and owner.
func (m *mongoRepository) CreateServer(ctx context.Context, server *model.Server, everyone *model.Role) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := m.serverCollection.InsertOne(ctx, server); err != nil {
		return err
	}

	if everyone.Permissions == nil {
		everyone.Permissions = permission.Flags{}
	}
	if _, err := m.roleCollection.InsertOne(ctx, everyone); err != nil {
		return errors.Join(err, m.undoCreateServer(server.Id, ""))
	}

	_, err := m.memberCollection.InsertOne(ctx, model.Member{
		Id:       uuid.NewString(),
		ServerId: server.Id,
		UserId:   server.OwnerId,
		Roles:    []string{},
	})
	if err != nil {
		return errors.Join(err, m.undoCreateServer(server.Id, everyone.Id))
	}
	return nil
}

// undoCreateServer runs on its own context, the caller's may be what failed the insert.
func (m *mongoRepository) undoCreateServer(serverId string, everyoneId string) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if everyoneId != "" {
		if _, err := m.roleCollection.DeleteOne(ctx, bson.M{"_id": everyoneId, "serverId": serverId}); err != nil {
			return fmt.Errorf("failed to remove @everyone role of unfinished server: %w", err)
		}
	}
	if _, err := m.serverCollection.DeleteOne(ctx, bson.M{"_id": serverId}); err != nil {
		return fmt.Errorf("failed to remove unfinished server: %w", err)
	}
	return nil
}

func (m *mongoRepository) GetServer(ctx context.Context, serverId string) (*model.Server, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var server model.Server
	if err := m.serverCollection.FindOne(ctx, bson.M{"_id": serverId}).Decode(&server); err != nil {
		return nil, translateErr(err)
	}
	return &server, nil
}

func (m *mongoRepository) GetServerOwner(ctx context.Context, serverId string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var server model.Server
	opts := options.FindOne().SetProjection(bson.M{"ownerId": 1})
	if err := m.serverCollection.FindOne(ctx, bson.M{"_id": serverId}, opts).Decode(&server); err != nil {
		return "", translateErr(err)
	}
	return server.OwnerId, nil
}

func (m *mongoRepository) GetRole(ctx context.Context, roleId string) (*model.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var role model.Role
	if err := m.roleCollection.FindOne(ctx, bson.M{"_id": roleId}).Decode(&role); err != nil {
		return nil, translateErr(err)
	}
	return &role, nil
}

func (m *mongoRepository) GetRoles(ctx context.Context, roleIds []string) ([]*model.Role, error) {
	if len(roleIds) == 0 {
		return []*model.Role{}, nil
	}
	return m.findRoles(ctx, bson.M{"_id": bson.M{"$in": roleIds}}, nil)
}

func (m *mongoRepository) GetServerRoles(ctx context.Context, serverId string) ([]*model.Role, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: -1}})
	return m.findRoles(ctx, bson.M{"serverId": serverId}, opts)
}

func (m *mongoRepository) findRoles(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := m.roleCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var mongoResult []model.Role
	if err := cursor.All(ctx, &mongoResult); err != nil {
		return nil, err
	}

	slice := make([]*model.Role, len(mongoResult))
	for i := range mongoResult {
		slice[i] = &mongoResult[i]
	}
	return slice, nil
}

func (m *mongoRepository) GetEveryoneRole(ctx context.Context, serverId string) (*model.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var role model.Role
	filter := bson.M{"serverId": serverId, "name": model.EveryoneRoleName}
	if err := m.roleCollection.FindOne(ctx, filter).Decode(&role); err != nil {
		return nil, translateErr(err)
	}
	return &role, nil
}

func (m *mongoRepository) CreateRole(ctx context.Context, role *model.Role) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if role.Permissions == nil {
		role.Permissions = permission.Flags{}
	}
	_, err := m.roleCollection.InsertOne(ctx, role)
	return err
}

func (m *mongoRepository) UpdateRole(ctx context.Context, role *model.Role) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := m.roleCollection.ReplaceOne(ctx, bson.M{"_id": role.Id, "serverId": role.ServerId}, role)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRole removes the role and prunes it from every member and override of the server.
func (m *mongoRepository) DeleteRole(ctx context.Context, serverId string, roleId string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var role model.Role
	if err := m.roleCollection.FindOne(ctx, bson.M{"_id": roleId, "serverId": serverId}).Decode(&role); err != nil {
		return translateErr(err)
	}
	if role.IsEveryone() {
		return ErrEveryoneRoleImmutable
	}

	if _, err := m.roleCollection.DeleteOne(ctx, bson.M{"_id": roleId}); err != nil {
		return err
	}

	if _, err := m.memberCollection.UpdateMany(ctx, bson.M{"serverId": serverId}, bson.M{"$pull": bson.M{"roles": roleId}}); err != nil {
		return fmt.Errorf("failed to prune role from members: %w", err)
	}

	unset := bson.M{"$unset": bson.M{"permissions." + roleId: ""}}
	if _, err := m.channelCollection.UpdateMany(ctx, bson.M{"serverId": serverId}, unset); err != nil {
		return fmt.Errorf("failed to prune role from channel overrides: %w", err)
	}
	if _, err := m.categoryCollection.UpdateMany(ctx, bson.M{"serverId": serverId}, unset); err != nil {
		return fmt.Errorf("failed to prune role from category overrides: %w", err)
	}
	return nil
}

func (m *mongoRepository) ReorderRoles(ctx context.Context, serverId string, positions map[string]int32) error {
	if len(positions) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	models := make([]mongo.WriteModel, 0, len(positions))
	for roleId, position := range positions {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": roleId, "serverId": serverId}).
			SetUpdate(bson.M{"$set": bson.M{"position": position}}))
	}

	result, err := m.roleCollection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return err
	}
	if result.MatchedCount != int64(len(positions)) {
		return ErrNotFound
	}
	return nil
}

func (m *mongoRepository) AddMember(ctx context.Context, member *model.Member) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if member.Roles == nil {
		member.Roles = []string{}
	}
	_, err := m.memberCollection.InsertOne(ctx, member)
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyMember
	}
	return err
}

func (m *mongoRepository) GetMemberRoleIds(ctx context.Context, serverId string, userId string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var member model.Member
	opts := options.FindOne().SetProjection(bson.M{"roles": 1})
	if err := m.memberCollection.FindOne(ctx, bson.M{"serverId": serverId, "userId": userId}, opts).Decode(&member); err != nil {
		return nil, translateErr(err)
	}

	if member.Roles == nil {
		return []string{}, nil
	}
	return member.Roles, nil
}

func (m *mongoRepository) GetMemberUserIds(ctx context.Context, serverId string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"userId": 1})
	cursor, err := m.memberCollection.Find(ctx, bson.M{"serverId": serverId}, opts)
	if err != nil {
		return nil, err
	}

	var members []model.Member
	if err := cursor.All(ctx, &members); err != nil {
		return nil, err
	}

	userIds := make([]string, len(members))
	for i, member := range members {
		userIds[i] = member.UserId
	}
	return userIds, nil
}

func (m *mongoRepository) AddRoleToMember(ctx context.Context, serverId string, userId string, roleId string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"serverId": serverId, "userId": userId}
	result, err := m.memberCollection.UpdateOne(ctx, filter, bson.M{"$addToSet": bson.M{"roles": roleId}})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	if result.ModifiedCount == 0 {
		return ErrAlreadyHasRole
	}
	return nil
}

func (m *mongoRepository) RemoveRoleFromMember(ctx context.Context, serverId string, userId string, roleId string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"serverId": serverId, "userId": userId}
	result, err := m.memberCollection.UpdateOne(ctx, filter, bson.M{"$pull": bson.M{"roles": roleId}})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	if result.ModifiedCount == 0 {
		return ErrDoesNotHaveRole
	}
	return nil
}

func (m *mongoRepository) CreateCategory(ctx context.Context, category *model.Category) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if category.Permissions == nil {
		category.Permissions = permission.Overrides{}
	}
	_, err := m.categoryCollection.InsertOne(ctx, category)
	return err
}

func (m *mongoRepository) GetCategory(ctx context.Context, categoryId string) (*model.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var category model.Category
	if err := m.categoryCollection.FindOne(ctx, bson.M{"_id": categoryId}).Decode(&category); err != nil {
		return nil, translateErr(err)
	}
	return &category, nil
}

func (m *mongoRepository) SetCategoryOverride(ctx context.Context, categoryId string, roleId string, flags permission.Flags) error {
	return setOverride(ctx, m.categoryCollection, categoryId, roleId, flags)
}

func (m *mongoRepository) CreateChannel(ctx context.Context, channel *model.Channel) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if channel.Permissions == nil {
		channel.Permissions = permission.Overrides{}
	}
	_, err := m.channelCollection.InsertOne(ctx, channel)
	return err
}

func (m *mongoRepository) GetChannel(ctx context.Context, channelId string) (*model.Channel, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var channel model.Channel
	if err := m.channelCollection.FindOne(ctx, bson.M{"_id": channelId}).Decode(&channel); err != nil {
		return nil, translateErr(err)
	}
	return &channel, nil
}

func (m *mongoRepository) SetChannelOverride(ctx context.Context, channelId string, roleId string, flags permission.Flags) error {
	return setOverride(ctx, m.channelCollection, channelId, roleId, flags)
}

// setOverride replaces the override of roleId on the document. Empty flags remove the entry.
func setOverride(ctx context.Context, collection *mongo.Collection, id string, roleId string, flags permission.Flags) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	field := "permissions." + roleId

	var update bson.M
	if len(flags) == 0 {
		update = bson.M{"$unset": bson.M{field: ""}}
	} else {
		update = bson.M{"$set": bson.M{field: flags}}
	}

	result, err := collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func translateErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
