package gamification

import (
	"encoding/json"
	"errors"

	"github.com/example/wortstreak/pkg/models"
)

// ParseStreak decodes a stored StreakData value
func ParseStreak(raw string) (models.StreakData, error) {
	var s models.StreakData
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return models.StreakData{}, &ParseError{Key: KeyStreak, Err: err}
	}
	if s.CurrentStreak < 0 || s.LongestStreak < 0 {
		return models.StreakData{}, &ParseError{Key: KeyStreak, Err: errors.New("negative streak")}
	}
	return s, nil
}

// ParseCompletions decodes a stored completion log
func ParseCompletions(raw string) ([]models.QuizCompletion, error) {
	var c []models.QuizCompletion
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, &ParseError{Key: KeyCompletions, Err: err}
	}
	if c == nil {
		c = []models.QuizCompletion{}
	}
	return c, nil
}
