package gamification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wortstreak/internal/storage"
	"github.com/example/wortstreak/pkg/models"
)

func TestStreakMessage(t *testing.T) {
	tests := []struct {
		name    string
		current int
		longest int
		atRisk  bool
		want    string
	}{
		{"first time", 0, 0, false, "Starte heute deine erste Lernserie!"},
		{"first time ignores risk", 0, 0, true, "Starte heute deine erste Lernserie!"},
		{"restart with record", 0, 12, false, "Starte eine neue Serie! Dein Rekord: 12 Tage."},
		{"urgent at risk", 45, 45, true, "Nicht aufgeben! Deine 45-Tage-Serie wartet auf dich."},
		{"urgent boundary", 30, 30, true, "Nicht aufgeben! Deine 30-Tage-Serie wartet auf dich."},
		{"keep alive", 10, 20, true, "Halte deine 10-Tage-Serie am Leben!"},
		{"keep alive boundary", 7, 7, true, "Halte deine 7-Tage-Serie am Leben!"},
		{"generic at risk", 2, 5, true, "Mach weiter! 2 Tage in Folge."},
		{"one day to milestone", 6, 6, false, "Noch 1 Tag bis zum 7-Tage-Meilenstein!"},
		{"two days to milestone", 1, 1, false, "Noch 2 Tage bis zum 3-Tage-Meilenstein!"},
		{"three days to milestone", 11, 11, false, "Noch 3 Tage bis zum 14-Tage-Meilenstein!"},
		{"on a milestone counts to the next", 7, 9, false, "7 Tage in Folge - weiter so!"},
		{"new record", 20, 20, false, "Neuer Rekord! 20 Tage in Folge!"},
		{"plain", 20, 25, false, "20 Tage in Folge - weiter so!"},
		{"past last milestone", 400, 400, false, "Neuer Rekord! 400 Tage in Folge!"},
		{"past last milestone not record", 370, 400, false, "370 Tage in Folge - weiter so!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			streak := models.StreakData{CurrentStreak: tt.current, LongestStreak: tt.longest}
			assert.Equal(t, tt.want, StreakMessage(streak, tt.atRisk))
		})
	}
}

func TestNotificationContent(t *testing.T) {
	tests := []struct {
		name   string
		streak *models.StreakData
		want   models.NotificationContent
	}{
		{
			name: "fresh install",
			want: models.NotificationContent{
				Title: "Wort des Tages",
				Body:  "Zeit für deine täglichen Wörter! Lerne heute neue Vokabeln.",
			},
		},
		{
			name:   "long streak at risk",
			streak: &models.StreakData{CurrentStreak: 8, LongestStreak: 8, LastCompletionDate: datePtr(mockYesterday)},
			want: models.NotificationContent{
				Title: "8-Tage-Serie in Gefahr!",
				Body:  "Verliere nicht deine 8 Tage Fortschritt. Nur ein Quiz heute!",
			},
		},
		{
			name:   "short streak at risk",
			streak: &models.StreakData{CurrentStreak: 3, LongestStreak: 5, LastCompletionDate: datePtr(mockYesterday)},
			want: models.NotificationContent{
				Title: "Deine Serie wartet!",
				Body:  "3 Tage in Folge - mach heute weiter!",
			},
		},
		{
			name:   "expired streak restarts",
			streak: &models.StreakData{CurrentStreak: 5, LongestStreak: 9, LastCompletionDate: datePtr(mockWeekAgo)},
			want: models.NotificationContent{
				Title: "Zeit für einen Neustart!",
				Body:  "Dein Rekord: 9 Tage. Starte heute neu!",
			},
		},
		{
			name:   "done for today",
			streak: &models.StreakData{CurrentStreak: 8, LongestStreak: 8, LastCompletionDate: datePtr(mockToday)},
			want: models.NotificationContent{
				Title: "Wort des Tages",
				Body:  "Zeit für deine täglichen Wörter! Lerne heute neue Vokabeln.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemory()
			if tt.streak != nil {
				seedStreak(t, store, *tt.streak)
			}
			e := newTestEngine(store, newClock())

			got, err := e.NotificationContent(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNotificationContent_ResetWriteFails(t *testing.T) {
	store := storage.NewMemory()
	seedStreak(t, store, models.StreakData{CurrentStreak: 5, LongestStreak: 9, LastCompletionDate: datePtr(mockWeekAgo)})
	store.FailSet = func(string) error { return assert.AnError }

	e := newTestEngine(store, newClock())
	_, err := e.NotificationContent(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}
