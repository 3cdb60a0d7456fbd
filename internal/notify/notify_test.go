package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAssignsUniqueIDs(t *testing.T) {
	q := NewQueue(0)
	a := q.Success("saved")
	b := q.Success("saved")

	assert.NotEqual(t, a, b)
	assert.Len(t, q.Notifications(), 2, "identical messages are not coalesced")
}

func TestNotificationsKeepInsertionOrder(t *testing.T) {
	q := NewQueue(0)
	q.Info("first")
	q.Warning("second")
	q.Error("third")

	got := q.Notifications()
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Message)
	assert.Equal(t, Warning, got[1].Kind)
	assert.Equal(t, "third", got[2].Message)
}

func TestZeroDurationUsesQueueDefault(t *testing.T) {
	q := NewQueue(time.Minute)
	q.Add(Info, "hello", 0)

	got := q.Notifications()
	require.Len(t, got, 1)
	assert.Equal(t, time.Minute, got[0].Duration)
}

func TestAutoRemovalAfterDuration(t *testing.T) {
	q := NewQueue(0)
	q.Add(Success, "gone soon", 20*time.Millisecond)

	require.Len(t, q.Notifications(), 1)
	assert.Eventually(t, func() bool {
		return len(q.Notifications()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestNegativeDurationIsSticky(t *testing.T) {
	q := NewQueue(0)
	id := q.Add(Error, "needs dismissal", -1)

	time.Sleep(30 * time.Millisecond)
	require.Len(t, q.Notifications(), 1)

	q.Remove(id)
	assert.Empty(t, q.Notifications())
}

func TestRemoveUnknownIDIsNoOp(t *testing.T) {
	q := NewQueue(0)
	q.Info("keep me")
	q.Remove("no-such-id")

	assert.Len(t, q.Notifications(), 1)
}

func TestClearAllCancelsTimers(t *testing.T) {
	q := NewQueue(0)
	q.Add(Info, "a", time.Hour)
	q.Add(Info, "b", -1)
	q.ClearAll()

	assert.Empty(t, q.Notifications())
	q.mu.Lock()
	assert.Empty(t, q.timers)
	q.mu.Unlock()
}

func TestRemoveStopsOwnTimer(t *testing.T) {
	q := NewQueue(0)
	id := q.Add(Info, "a", time.Hour)
	q.Remove(id)

	q.mu.Lock()
	_, present := q.timers[id]
	q.mu.Unlock()
	assert.False(t, present)
}
