package presence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"chat-service/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// All keys share the {presence} hash tag so the scripts stay single-slot on a cluster.
const (
	onlineUsersKey       = "{presence}:online"
	connectionsKeyPrefix = "{presence}:connections:"
)

var addConnectionScript = redis.NewScript(`
local added = redis.call('SADD', KEYS[1], ARGV[2])
if added == 1 and redis.call('SCARD', KEYS[1]) == 1 then
	redis.call('SADD', KEYS[2], ARGV[1])
	return 1
end
return 0
`)

var removeConnectionScript = redis.NewScript(`
local removed = redis.call('SREM', KEYS[1], ARGV[2])
if removed == 1 and redis.call('SCARD', KEYS[1]) == 0 then
	redis.call('SREM', KEYS[2], ARGV[1])
	return 1
end
return 0
`)

// RedisTracker shares presence between several gateway processes. Each mutation runs as one Lua script,
// which makes the transition check atomic across processes.
type RedisTracker struct {
	rdb redis.UniversalClient
}

var _ Tracker = (*RedisTracker)(nil)

func NewRedisTracker(rdb redis.UniversalClient) *RedisTracker {
	return &RedisTracker{rdb: rdb}
}

// NewRedisClient connects to cfg.Address and closes the client once ctx is done.
func NewRedisClient(ctx context.Context, logger *zap.SugaredLogger, wg *sync.WaitGroup, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		MinIdleConns: 10,
		PoolSize:     100,
		PoolTimeout:  30 * time.Second,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,

		MaxRetries:      3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		if err := rdb.Close(); err != nil {
			logger.Errorw("failed to close redis client", "error", err)
		}
	}()

	return rdb, nil
}

func connectionsKey(user string) string {
	return connectionsKeyPrefix + user
}

func (t *RedisTracker) AddConnection(ctx context.Context, user string, connectionId string) (bool, error) {
	res, err := addConnectionScript.Run(ctx, t.rdb, []string{connectionsKey(user), onlineUsersKey}, user, connectionId).Int()
	if err != nil {
		return false, fmt.Errorf("failed to add connection: %w", err)
	}
	return res == 1, nil
}

func (t *RedisTracker) RemoveConnection(ctx context.Context, user string, connectionId string) (bool, error) {
	res, err := removeConnectionScript.Run(ctx, t.rdb, []string{connectionsKey(user), onlineUsersKey}, user, connectionId).Int()
	if err != nil {
		return false, fmt.Errorf("failed to remove connection: %w", err)
	}
	return res == 1, nil
}

func (t *RedisTracker) ConnectionsOf(ctx context.Context, user string) ([]string, error) {
	ids, err := t.rdb.SMembers(ctx, connectionsKey(user)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	return ids, nil
}

func (t *RedisTracker) OnlineUsers(ctx context.Context) ([]string, error) {
	users, err := t.rdb.SMembers(ctx, onlineUsersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list online users: %w", err)
	}
	return users, nil
}
