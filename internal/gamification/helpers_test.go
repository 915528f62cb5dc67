package gamification

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/example/wortstreak/internal/storage"
	"github.com/example/wortstreak/pkg/models"
)

const (
	mockToday       = "2024-03-15"
	mockYesterday   = "2024-03-14"
	mockTwoDaysAgo  = "2024-03-13"
	mockWeekAgo     = "2024-03-08"
	millisPerDay    = int64(24 * 60 * 60 * 1000)
	defaultTestHour = 12
)

// cet is a fixed UTC+1 zone so that local and UTC days can differ
var cet = time.FixedZone("CET", 60*60)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) addDays(n int) { c.t = c.t.AddDate(0, 0, n) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, time.March, 15, defaultTestHour, 0, 0, 0, cet)}
}

func newTestEngine(store storage.Store, clock *fakeClock) *Engine {
	return New(store, WithClock(clock.Now), WithLocation(cet))
}

func datePtr(s string) *string { return &s }

func seedStreak(t *testing.T, store *storage.Memory, s models.StreakData) {
	t.Helper()
	raw, err := json.Marshal(s)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), KeyStreak, string(raw)))
}

func seedCompletions(t *testing.T, store *storage.Memory, c []models.QuizCompletion) {
	t.Helper()
	raw, err := json.Marshal(c)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), KeyCompletions, string(raw)))
}

func storedStreak(t *testing.T, store storage.Store) models.StreakData {
	t.Helper()
	raw, ok, err := store.Get(context.Background(), KeyStreak)
	require.NoError(t, err)
	require.True(t, ok, "streak should be stored")
	s, err := ParseStreak(raw)
	require.NoError(t, err)
	return s
}

func storedCompletions(t *testing.T, store storage.Store) []models.QuizCompletion {
	t.Helper()
	raw, ok, err := store.Get(context.Background(), KeyCompletions)
	require.NoError(t, err)
	require.True(t, ok, "completions should be stored")
	c, err := ParseCompletions(raw)
	require.NoError(t, err)
	return c
}
