package presence

import (
	"context"
	"sync"

	"github.com/cespare/xxhash/v2"
)

const shardCount = 32

type shard struct {
	sync.RWMutex
	users map[string]map[string]struct{}
}

// MemoryTracker keeps presence in process. Users are spread over shards so connection churn of
// different users does not contend on a single lock. It never returns an error.
type MemoryTracker struct {
	shards [shardCount]*shard
}

var _ Tracker = (*MemoryTracker)(nil)

func NewMemoryTracker() *MemoryTracker {
	t := &MemoryTracker{}
	for i := range t.shards {
		t.shards[i] = &shard{users: make(map[string]map[string]struct{})}
	}
	return t
}

func (t *MemoryTracker) shardFor(user string) *shard {
	return t.shards[xxhash.Sum64String(user)%shardCount]
}

func (t *MemoryTracker) AddConnection(_ context.Context, user string, connectionId string) (bool, error) {
	s := t.shardFor(user)
	s.Lock()
	defer s.Unlock()

	conns, ok := s.users[user]
	if !ok {
		conns = make(map[string]struct{})
		s.users[user] = conns
	}
	if _, exists := conns[connectionId]; exists {
		return false, nil
	}

	conns[connectionId] = struct{}{}
	return len(conns) == 1, nil
}

func (t *MemoryTracker) RemoveConnection(_ context.Context, user string, connectionId string) (bool, error) {
	s := t.shardFor(user)
	s.Lock()
	defer s.Unlock()

	conns, ok := s.users[user]
	if !ok {
		return false, nil
	}
	if _, exists := conns[connectionId]; !exists {
		return false, nil
	}

	delete(conns, connectionId)
	if len(conns) > 0 {
		return false, nil
	}

	// no empty sets are kept, so presence of the key means online
	delete(s.users, user)
	return true, nil
}

func (t *MemoryTracker) ConnectionsOf(_ context.Context, user string) ([]string, error) {
	s := t.shardFor(user)
	s.RLock()
	defer s.RUnlock()

	conns := s.users[user]
	ids := make([]string, 0, len(conns))
	for id := range conns {
		ids = append(ids, id)
	}
	return ids, nil
}

func (t *MemoryTracker) OnlineUsers(_ context.Context) ([]string, error) {
	users := make([]string, 0)
	for _, s := range t.shards {
		s.RLock()
		for user := range s.users {
			users = append(users, user)
		}
		s.RUnlock()
	}
	return users, nil
}
