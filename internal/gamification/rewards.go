package gamification

import (
	"fmt"
	"time"

	"github.com/example/wortstreak/pkg/models"
)

// IsNewRecord reports a streak that is at its all-time best and longer than a day
func IsNewRecord(streak models.StreakData) bool {
	return streak.CurrentStreak == streak.LongestStreak && streak.CurrentStreak > 1
}

// BadgeState returns the compact badge for a streak; ok is false when no
// badge should be shown.
func BadgeState(streak models.StreakData, completedToday bool) (models.Badge, bool) {
	if streak.CurrentStreak == 0 {
		return models.Badge{}, false
	}
	return models.Badge{Count: streak.CurrentStreak, Lit: completedToday}, true
}

// Celebrate returns the toast for a completion, if it deserves one
func Celebrate(result models.CompletionResult) (models.Celebration, bool) {
	if result.MilestoneReached != nil {
		return models.Celebration{
			Title: fmt.Sprintf("%d Tage!", *result.MilestoneReached),
			Body:  "Meilenstein erreicht - weiter so!",
		}, true
	}
	if result.IsFirstCompletionToday && result.Streak.CurrentStreak > 1 {
		return models.Celebration{
			Title: fmt.Sprintf("%d Tage in Folge!", result.Streak.CurrentStreak),
			Body:  "Deine Serie geht weiter",
		}, true
	}
	return models.Celebration{}, false
}

// Events lists what happened in a completion, in the order it happened
func Events(result models.CompletionResult, at time.Time) []models.Event {
	ts := at.UnixMilli()
	events := []models.Event{{
		Type:      models.EventQuizCompleted,
		Timestamp: ts,
		Data:      map[string]interface{}{"firstToday": result.IsFirstCompletionToday},
	}}

	if !result.IsFirstCompletionToday {
		return events
	}

	if result.StreakWasLost {
		events = append(events, models.Event{
			Type:      models.EventStreakLost,
			Timestamp: ts,
			Data:      map[string]interface{}{"longestStreak": result.Streak.LongestStreak},
		})
	} else {
		events = append(events, models.Event{
			Type:      models.EventStreakIncreased,
			Timestamp: ts,
			Data:      map[string]interface{}{"currentStreak": result.Streak.CurrentStreak},
		})
	}

	if result.MilestoneReached != nil {
		events = append(events, models.Event{
			Type:      models.EventMilestoneReached,
			Timestamp: ts,
			Data:      map[string]interface{}{"milestone": *result.MilestoneReached},
		})
	}
	return events
}
