package models

// StreakData tracks consecutive days with at least one completed quiz
type StreakData struct {
	CurrentStreak      int     `json:"currentStreak"`
	LongestStreak      int     `json:"longestStreak"`
	LastCompletionDate *string `json:"lastCompletionDate"` // YYYY-MM-DD in local time, nil if never completed
}

// LastDate returns the last completion date or an empty string
func (s StreakData) LastDate() string {
	if s.LastCompletionDate == nil {
		return ""
	}
	return *s.LastCompletionDate
}

// QuizCompletion is a single entry of the completion log
type QuizCompletion struct {
	WordID     int64  `json:"wordId"`
	Date       string `json:"date"`
	WasCorrect bool   `json:"wasCorrect"`
	Timestamp  int64  `json:"timestamp"` // Unix milliseconds
}

// DailyStatus summarizes the completions of one day
type DailyStatus struct {
	Date         string `json:"date"`
	Completed    bool   `json:"completed"`
	QuizCount    int    `json:"quizCount"`
	CorrectCount int    `json:"correctCount"`
}

// GamificationStats aggregates streak and completion totals
type GamificationStats struct {
	Streak                StreakData  `json:"streak"`
	TotalQuizzesCompleted int         `json:"totalQuizzesCompleted"`
	TotalCorrectAnswers   int         `json:"totalCorrectAnswers"`
	TodayStatus           DailyStatus `json:"todayStatus"`
}

// CompletionResult describes what changed after recording a quiz completion
type CompletionResult struct {
	IsFirstCompletionToday bool       `json:"isFirstCompletionToday"`
	Streak                 StreakData `json:"streak"`
	MilestoneReached       *int       `json:"milestoneReached"`
	StreakWasLost          bool       `json:"streakWasLost"`
	Timestamp              int64      `json:"timestamp"` // logged entry, Unix milliseconds
}
