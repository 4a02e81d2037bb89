package messagecleanup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandlers(store *memStore) *Handlers {
	h := NewHandlersWithStore(store, Config{RootCollection: "messages", InboxCollection: "incoming"})
	h.Sweeper.now = func() time.Time { return sweepNow }
	return h
}

func TestHandleSweepMessage(t *testing.T) {
	hook := test.NewLocal(logger)
	defer hook.Reset()

	store := newMemStore()
	store.put("u1", "m1", sweepNow.Add(-time.Hour), false)
	store.put("u1", "m2", sweepNow.Add(time.Hour), false)

	deleted := newTestHandlers(store).HandleSweepMessage(context.Background(), PubSubMessage{
		Attributes: map[string]string{SourceAttribute: "manual"},
	})

	assert.Equal(t, 1, deleted)
	require.NotEmpty(t, hook.AllEntries())
	assert.Equal(t, "manual", hook.AllEntries()[0].Data["source"])
}

func TestHandleSweepMessageDefaultsSource(t *testing.T) {
	hook := test.NewLocal(logger)
	defer hook.Reset()

	newTestHandlers(newMemStore()).HandleSweepMessage(context.Background(), PubSubMessage{})

	require.NotEmpty(t, hook.AllEntries())
	assert.Equal(t, "scheduler", hook.AllEntries()[0].Data["source"])
}

func TestScheduledCleanupHandlerNeverFails(t *testing.T) {
	store := newMemStore()
	store.put("u1", "m1", sweepNow.Add(-time.Hour), false)
	store.partitionsErr = errors.New("unavailable")
	h := newTestHandlers(store)

	assert.NoError(t, h.ScheduledCleanupHandler(context.Background(), events.CloudWatchEvent{ID: "evt-1"}))
	assert.Equal(t, 1, store.count())

	store.partitionsErr = nil
	assert.NoError(t, h.ScheduledCleanupHandler(context.Background(), events.CloudWatchEvent{ID: "evt-2"}))
	assert.Zero(t, store.count())
}

func TestManualCleanupHandler(t *testing.T) {
	store := newMemStore()
	store.put("u1", "m1", sweepNow.Add(-time.Hour), false)
	store.put("u2", "m1", sweepNow.Add(-time.Hour), false)

	assert.NoError(t, newTestHandlers(store).ManualCleanupHandler(context.Background()))
	assert.Zero(t, store.count())
}
