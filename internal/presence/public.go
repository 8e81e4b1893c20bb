// Package presence tracks which users are reachable and over how many realtime connections.
package presence

import "context"

// Tracker is the only owner of presence state. A user is online iff they have at least one connection.
//
// AddConnection and RemoveConnection report the offline -> online and online -> offline transitions.
// The report is computed atomically with the mutation, so two racing calls for the same user never both
// observe a transition. Removing an unknown connection is a no-op that reports false.
//
// ConnectionsOf and OnlineUsers return snapshots that may already be stale.
type Tracker interface {
	AddConnection(ctx context.Context, user string, connectionId string) (bool, error)
	RemoveConnection(ctx context.Context, user string, connectionId string) (bool, error)
	ConnectionsOf(ctx context.Context, user string) ([]string, error)
	OnlineUsers(ctx context.Context) ([]string, error)
}
