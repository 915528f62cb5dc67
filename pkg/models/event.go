package models

// EventType represents the kind of gamification event
type EventType string

const (
	// EventQuizCompleted is emitted for every recorded completion
	EventQuizCompleted EventType = "quiz_completed"
	// EventStreakIncreased is emitted when the first completion of a day extends or starts a streak
	EventStreakIncreased EventType = "streak_increased"
	// EventStreakLost is emitted when a running streak was broken and restarted
	EventStreakLost EventType = "streak_lost"
	// EventMilestoneReached is emitted when the streak hits a milestone
	EventMilestoneReached EventType = "milestone_reached"
)

// Event is a gamification action derived from a completion
type Event struct {
	Type      EventType              `json:"type"`
	Timestamp int64                  `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}
