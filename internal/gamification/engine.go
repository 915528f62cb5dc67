// Package gamification tracks daily quiz completions and turns them into a
// day streak with milestones and motivational messages.
package gamification

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/example/wortstreak/internal/logger"
	"github.com/example/wortstreak/internal/storage"
	"github.com/example/wortstreak/pkg/models"
)

// Storage keys
const (
	KeyStreak      = "gamification_streak"
	KeyCompletions = "gamification_completions"
	KeyStats       = "gamification_stats" // reserved, only removed on Clear
)

// Engine owns the streak state of a single device.
//
// The engine caches what it has read or written, so after the first load it
// no longer consults the store. Two engines sharing one store therefore drift
// apart. An Engine is not safe for concurrent use.
type Engine struct {
	id    string
	store storage.Store
	log   *logger.Logger
	now   func() time.Time
	loc   *time.Location

	cachedStreak      *models.StreakData
	cachedCompletions []models.QuizCompletion
	completionsLoaded bool
}

// Option configures an Engine
type Option func(*Engine)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLocation sets the location whose midnight separates streak days
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an engine persisting into store
func New(store storage.Store, opts ...Option) *Engine {
	e := &Engine{
		id:    uuid.NewString(),
		store: store,
		log:   logger.Nop(),
		now:   time.Now,
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With("engine_id", e.id)
	return e
}

// ID identifies this engine instance in logs
func (e *Engine) ID() string {
	return e.id
}

// LoadStreak returns the stored streak without the staleness check.
// Missing or unreadable data yields the zero streak.
func (e *Engine) LoadStreak(ctx context.Context) models.StreakData {
	streak, err := e.loadStreak(ctx)
	if err != nil {
		e.log.Warn("failed to read streak, using default", "error", err)
		return models.StreakData{}
	}
	return streak
}

// loadStreak reports store failures instead of hiding them; corrupt data
// still becomes the zero streak.
func (e *Engine) loadStreak(ctx context.Context) (models.StreakData, error) {
	if e.cachedStreak != nil {
		return *e.cachedStreak, nil
	}

	raw, ok, err := e.store.Get(ctx, KeyStreak)
	if err != nil {
		return models.StreakData{}, err
	}

	var streak models.StreakData
	if ok {
		streak, err = ParseStreak(raw)
		if err != nil {
			e.log.Warn("stored streak is corrupt, using default", "error", err)
			streak = models.StreakData{}
		}
	}
	e.cachedStreak = &streak
	return streak, nil
}

// LoadCompletions returns a copy of the completion log
func (e *Engine) LoadCompletions(ctx context.Context) []models.QuizCompletion {
	completions, err := e.loadCompletions(ctx)
	if err != nil {
		e.log.Warn("failed to read completions, using empty log", "error", err)
		return []models.QuizCompletion{}
	}
	return completions
}

func (e *Engine) loadCompletions(ctx context.Context) ([]models.QuizCompletion, error) {
	if !e.completionsLoaded {
		raw, ok, err := e.store.Get(ctx, KeyCompletions)
		if err != nil {
			return nil, err
		}

		completions := []models.QuizCompletion{}
		if ok {
			completions, err = ParseCompletions(raw)
			if err != nil {
				e.log.Warn("stored completions are corrupt, using empty log", "error", err)
				completions = []models.QuizCompletion{}
			}
		}
		e.cachedCompletions = completions
		e.completionsLoaded = true
	}

	out := make([]models.QuizCompletion, len(e.cachedCompletions))
	copy(out, e.cachedCompletions)
	return out, nil
}

func (e *Engine) saveStreak(ctx context.Context, streak models.StreakData) error {
	raw, err := json.Marshal(streak)
	if err != nil {
		return &Error{Code: CodeStreakSaveFailed, Message: "Streak konnte nicht gespeichert werden.", Err: err}
	}
	if err := e.store.Set(ctx, KeyStreak, string(raw)); err != nil {
		return &Error{Code: CodeStreakSaveFailed, Message: "Streak konnte nicht gespeichert werden.", Err: err}
	}
	e.cachedStreak = &streak
	return nil
}

// saveCompletions drops entries older than the retention window, then writes
func (e *Engine) saveCompletions(ctx context.Context, completions []models.QuizCompletion, nowMillis int64) error {
	cutoff := nowMillis - completionRetention.Milliseconds()
	pruned := make([]models.QuizCompletion, 0, len(completions))
	for _, c := range completions {
		if c.Timestamp > cutoff {
			pruned = append(pruned, c)
		}
	}

	raw, err := json.Marshal(pruned)
	if err != nil {
		return &Error{Code: CodeCompletionsSaveFailed, Message: "Quiz-Fortschritt konnte nicht gespeichert werden.", Err: err}
	}
	if err := e.store.Set(ctx, KeyCompletions, string(raw)); err != nil {
		return &Error{Code: CodeCompletionsSaveFailed, Message: "Quiz-Fortschritt konnte nicht gespeichert werden.", Err: err}
	}
	e.cachedCompletions = pruned
	e.completionsLoaded = true
	return nil
}

// RecordCompletion logs a finished quiz and updates the streak.
//
// Every call appends to the completion log; only the first completion of a
// local day moves the streak. The streak is written before the log, and the
// first failing write is returned. If the stored state cannot be read,
// nothing is written.
func (e *Engine) RecordCompletion(ctx context.Context, wordID int64, wasCorrect bool) (models.CompletionResult, error) {
	now := e.localNow()
	today := formatDay(now)
	yesterday := formatDay(now.AddDate(0, 0, -1))

	streak, err := e.loadStreak(ctx)
	if err != nil {
		return models.CompletionResult{}, &Error{Code: CodeLoadFailed, Message: "Streak konnte nicht geladen werden.", Err: err}
	}
	completions, err := e.loadCompletions(ctx)
	if err != nil {
		return models.CompletionResult{}, &Error{Code: CodeLoadFailed, Message: "Quiz-Fortschritt konnte nicht geladen werden.", Err: err}
	}

	alreadyCompletedToday := containsDate(completions, today)

	completions = append(completions, models.QuizCompletion{
		WordID:     wordID,
		Date:       today,
		WasCorrect: wasCorrect,
		Timestamp:  now.UnixMilli(),
	})

	next := streak
	result := models.CompletionResult{
		IsFirstCompletionToday: !alreadyCompletedToday,
		Timestamp:              now.UnixMilli(),
	}

	if !alreadyCompletedToday {
		switch streak.LastDate() {
		case yesterday:
			next.CurrentStreak = streak.CurrentStreak + 1
		case today:
			// Log said not done today but the streak disagrees; leave it alone.
		default:
			if streak.CurrentStreak > 0 {
				result.StreakWasLost = true
			}
			next.CurrentStreak = 1
		}

		if next.CurrentStreak > next.LongestStreak {
			next.LongestStreak = next.CurrentStreak
		}
		next.LastCompletionDate = &today

		if IsStreakMilestone(next.CurrentStreak) {
			m := next.CurrentStreak
			result.MilestoneReached = &m
		}
	}
	result.Streak = next

	if err := e.saveStreak(ctx, next); err != nil {
		return models.CompletionResult{}, err
	}
	if err := e.saveCompletions(ctx, completions, now.UnixMilli()); err != nil {
		return models.CompletionResult{}, err
	}

	if result.StreakWasLost {
		e.log.Info("streak lost", "previous", streak.CurrentStreak, "longest", next.LongestStreak)
	}
	if result.MilestoneReached != nil {
		e.log.Info("milestone reached", "milestone", *result.MilestoneReached)
	}
	e.log.Debug("quiz completion recorded", "word_id", wordID, "correct", wasCorrect, "streak", next.CurrentStreak)

	return result, nil
}

// CurrentStreak returns the streak, resetting it to zero first if the last
// completion was before yesterday. LongestStreak and LastCompletionDate are
// kept. A failed read is reported rather than reset over.
func (e *Engine) CurrentStreak(ctx context.Context) (models.StreakData, error) {
	streak, err := e.loadStreak(ctx)
	if err != nil {
		return models.StreakData{}, &Error{Code: CodeLoadFailed, Message: "Streak konnte nicht geladen werden.", Err: err}
	}
	last := streak.LastDate()

	if last != e.Today() && last != e.yesterday() && streak.CurrentStreak > 0 {
		reset := streak
		reset.CurrentStreak = 0
		if err := e.saveStreak(ctx, reset); err != nil {
			return models.StreakData{}, err
		}
		e.log.Info("streak expired", "previous", streak.CurrentStreak, "last_completion", last)
		return reset, nil
	}

	return streak, nil
}

// IsStreakAtRisk reports a running streak that has not been extended today.
// It looks at the stored streak, before any lazy reset.
func (e *Engine) IsStreakAtRisk(ctx context.Context) bool {
	streak := e.LoadStreak(ctx)
	return streak.CurrentStreak > 0 && streak.LastDate() != e.Today()
}

// HasCompletedToday reports whether any quiz was completed today
func (e *Engine) HasCompletedToday(ctx context.Context) bool {
	return containsDate(e.LoadCompletions(ctx), e.Today())
}

// TodayStatus summarizes today's completions
func (e *Engine) TodayStatus(ctx context.Context) models.DailyStatus {
	today := e.Today()
	status := models.DailyStatus{Date: today}
	for _, c := range e.LoadCompletions(ctx) {
		if c.Date != today {
			continue
		}
		status.QuizCount++
		if c.WasCorrect {
			status.CorrectCount++
		}
	}
	status.Completed = status.QuizCount > 0
	return status
}

// Stats combines the validated streak with totals over the retained log
func (e *Engine) Stats(ctx context.Context) (models.GamificationStats, error) {
	streak, err := e.CurrentStreak(ctx)
	if err != nil {
		return models.GamificationStats{}, err
	}

	completions := e.LoadCompletions(ctx)
	stats := models.GamificationStats{
		Streak:                streak,
		TotalQuizzesCompleted: len(completions),
		TodayStatus:           e.TodayStatus(ctx),
	}
	for _, c := range completions {
		if c.WasCorrect {
			stats.TotalCorrectAnswers++
		}
	}
	return stats, nil
}

// Clear drops the caches and removes every gamification key from the store
func (e *Engine) Clear(ctx context.Context) error {
	e.cachedStreak = nil
	e.cachedCompletions = nil
	e.completionsLoaded = false

	var errs []error
	for _, key := range []string{KeyStreak, KeyCompletions, KeyStats} {
		if err := e.store.Remove(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return &Error{Code: CodeClearFailed, Message: "Fortschritt konnte nicht gelöscht werden.", Err: errors.Join(errs...)}
	}
	return nil
}

func containsDate(completions []models.QuizCompletion, date string) bool {
	for _, c := range completions {
		if c.Date == date {
			return true
		}
	}
	return false
}
