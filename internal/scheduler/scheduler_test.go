package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wortstreak/internal/gamification"
	"github.com/example/wortstreak/internal/storage"
	"github.com/example/wortstreak/pkg/models"
)

type recordingNotifier struct {
	sent []models.NotificationContent
	err  error
}

func (n *recordingNotifier) SendReminder(ctx context.Context, content models.NotificationContent) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, content)
	return nil
}

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func setup(t *testing.T, streak *models.StreakData) (*Scheduler, *gamification.Engine, *recordingNotifier, *clock) {
	t.Helper()
	store := storage.NewMemory()
	if streak != nil {
		raw, err := json.Marshal(streak)
		require.NoError(t, err)
		require.NoError(t, store.Set(context.Background(), gamification.KeyStreak, string(raw)))
	}

	c := &clock{t: time.Date(2024, time.March, 15, 18, 0, 0, 0, time.UTC)}
	engine := gamification.New(store, gamification.WithClock(c.Now), gamification.WithLocation(time.UTC))
	notifier := &recordingNotifier{}
	s := New(engine, notifier, Options{StartHour: 8, EndHour: 22, Location: time.UTC, Now: c.Now})
	return s, engine, notifier, c
}

func TestCheckAndSendReminder_AtRisk(t *testing.T) {
	yesterday := "2024-03-14"
	s, _, notifier, _ := setup(t, &models.StreakData{CurrentStreak: 9, LongestStreak: 9, LastCompletionDate: &yesterday})

	sent, err := s.checkAndSendReminder(context.Background())
	require.NoError(t, err)
	assert.True(t, sent)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "9-Tage-Serie in Gefahr!", notifier.sent[0].Title)

	sent, err = s.checkAndSendReminder(context.Background())
	require.NoError(t, err)
	assert.False(t, sent, "only one reminder per day")
	assert.Len(t, notifier.sent, 1)
}

func TestCheckAndSendReminder_NextDaySendsAgain(t *testing.T) {
	s, _, notifier, c := setup(t, nil)

	_, err := s.checkAndSendReminder(context.Background())
	require.NoError(t, err)
	c.t = c.t.AddDate(0, 0, 1)
	_, err = s.checkAndSendReminder(context.Background())
	require.NoError(t, err)

	assert.Len(t, notifier.sent, 2)
}

func TestCheckAndSendReminder_OutsideWindow(t *testing.T) {
	s, _, notifier, c := setup(t, nil)

	for _, hour := range []int{0, 7, 23} {
		c.t = time.Date(2024, time.March, 15, hour, 0, 0, 0, time.UTC)
		sent, err := s.checkAndSendReminder(context.Background())
		require.NoError(t, err)
		assert.False(t, sent, "hour %d", hour)
	}
	assert.Empty(t, notifier.sent)
}

func TestCheckAndSendReminder_SkipsWhenCompletedToday(t *testing.T) {
	s, engine, notifier, _ := setup(t, nil)
	_, err := engine.RecordCompletion(context.Background(), 1, true)
	require.NoError(t, err)

	sent, err := s.checkAndSendReminder(context.Background())
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, notifier.sent)
}

func TestCheckAndSendReminder_NotifierFailureRetries(t *testing.T) {
	s, _, notifier, _ := setup(t, nil)
	notifier.err = errors.New("telegram down")

	_, err := s.checkAndSendReminder(context.Background())
	require.Error(t, err)

	notifier.err = nil
	sent, err := s.checkAndSendReminder(context.Background())
	require.NoError(t, err)
	assert.True(t, sent, "a failed send does not count as today's reminder")
}

func TestRunManualCheck(t *testing.T) {
	s, engine, notifier, _ := setup(t, nil)
	_, err := engine.RecordCompletion(context.Background(), 1, true)
	require.NoError(t, err)

	require.NoError(t, s.RunManualCheck(context.Background()))
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "Wort des Tages", notifier.sent[0].Title)
}

func TestStartStop(t *testing.T) {
	s, _, _, _ := setup(t, nil)
	require.NoError(t, s.Start())
	s.Stop()
}
