package presence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestReporter_report(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	tracker := NewMemoryTracker()
	_, err := tracker.AddConnection(context.Background(), "alice", "c1")
	require.NoError(t, err)
	_, err = tracker.AddConnection(context.Background(), "bob", "c2")
	require.NoError(t, err)

	reporter, err := NewReporter(zap.New(core).Sugar(), tracker, "@every 1h")
	require.NoError(t, err)

	reporter.report()

	entries := logs.FilterMessage("presence report").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["onlineUsers"])
}

func TestNewReporter_InvalidSchedule(t *testing.T) {
	_, err := NewReporter(zap.NewNop().Sugar(), NewMemoryTracker(), "every now and then")
	assert.Error(t, err)
}
