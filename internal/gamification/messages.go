package gamification

import (
	"context"
	"fmt"

	"github.com/example/wortstreak/pkg/models"
)

// StreakMessage picks the motivational line shown for a streak
func StreakMessage(streak models.StreakData, isAtRisk bool) string {
	current, longest := streak.CurrentStreak, streak.LongestStreak

	if current == 0 {
		if longest > 0 {
			return fmt.Sprintf("Starte eine neue Serie! Dein Rekord: %d Tage.", longest)
		}
		return "Starte heute deine erste Lernserie!"
	}

	if isAtRisk {
		switch {
		case current >= 30:
			return fmt.Sprintf("Nicht aufgeben! Deine %d-Tage-Serie wartet auf dich.", current)
		case current >= 7:
			return fmt.Sprintf("Halte deine %d-Tage-Serie am Leben!", current)
		default:
			return fmt.Sprintf("Mach weiter! %d Tage in Folge.", current)
		}
	}

	if next, ok := NextMilestone(current); ok {
		if remaining := next - current; remaining <= 3 {
			suffix := ""
			if remaining > 1 {
				suffix = "e"
			}
			return fmt.Sprintf("Noch %d Tag%s bis zum %d-Tage-Meilenstein!", remaining, suffix, next)
		}
	}

	if IsNewRecord(streak) {
		return fmt.Sprintf("Neuer Rekord! %d Tage in Folge!", current)
	}

	return fmt.Sprintf("%d Tage in Folge - weiter so!", current)
}

// NotificationContent builds the daily reminder for the current streak state
func (e *Engine) NotificationContent(ctx context.Context) (models.NotificationContent, error) {
	streak, err := e.CurrentStreak(ctx)
	if err != nil {
		return models.NotificationContent{}, err
	}
	atRisk := e.IsStreakAtRisk(ctx)
	current := streak.CurrentStreak

	switch {
	case atRisk && current >= 7:
		return models.NotificationContent{
			Title: fmt.Sprintf("%d-Tage-Serie in Gefahr!", current),
			Body:  fmt.Sprintf("Verliere nicht deine %d Tage Fortschritt. Nur ein Quiz heute!", current),
		}, nil
	case atRisk && current > 0:
		return models.NotificationContent{
			Title: "Deine Serie wartet!",
			Body:  fmt.Sprintf("%d Tage in Folge - mach heute weiter!", current),
		}, nil
	case current == 0 && streak.LongestStreak > 0:
		return models.NotificationContent{
			Title: "Zeit für einen Neustart!",
			Body:  fmt.Sprintf("Dein Rekord: %d Tage. Starte heute neu!", streak.LongestStreak),
		}, nil
	}

	return models.NotificationContent{
		Title: "Wort des Tages",
		Body:  "Zeit für deine täglichen Wörter! Lerne heute neue Vokabeln.",
	}, nil
}
