package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/wortstreak/internal/logger"
	"github.com/example/wortstreak/pkg/models"
)

// Streaks is the part of the gamification engine the scheduler needs
type Streaks interface {
	Today() string
	HasCompletedToday(ctx context.Context) bool
	NotificationContent(ctx context.Context) (models.NotificationContent, error)
}

// Notifier interface for sending notifications
type Notifier interface {
	SendReminder(ctx context.Context, content models.NotificationContent) error
}

// Options configures the reminder window
type Options struct {
	StartHour int // First local hour a reminder may go out
	EndHour   int // Last local hour a reminder may go out
	Location  *time.Location
	Now       func() time.Time
	Logger    *logger.Logger
}

// Scheduler sends at most one streak reminder per day
type Scheduler struct {
	scheduler *gocron.Scheduler
	streaks   Streaks
	notifier  Notifier
	log       *logger.Logger
	startHour int
	endHour   int
	loc       *time.Location
	now       func() time.Time

	// Guards the engine, which is not safe for concurrent use
	mu       sync.Mutex
	lastSent string
}

// New creates a new scheduler instance
func New(streaks Streaks, notifier Notifier, opts Options) *Scheduler {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	s := gocron.NewScheduler(opts.Location)
	s.SingletonModeAll()

	return &Scheduler{
		scheduler: s,
		streaks:   streaks,
		notifier:  notifier,
		log:       opts.Logger.With("component", "scheduler"),
		startHour: opts.StartHour,
		endHour:   opts.EndHour,
		loc:       opts.Location,
		now:       opts.Now,
	}
}

// Start begins running the hourly reminder check
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(1).Hour().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := s.checkAndSendReminder(ctx); err != nil {
			s.log.Error("reminder check failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder check: %w", err)
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminder sends today's reminder if the hour is inside the
// window, nothing was completed today and no reminder went out yet.
func (s *Scheduler) checkAndSendReminder(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	currentHour := s.now().In(s.loc).Hour()
	if currentHour < s.startHour || currentHour > s.endHour {
		s.log.Debug("outside notification hours, skipping reminder",
			"hour", currentHour, "start", s.startHour, "end", s.endHour)
		return false, nil
	}

	today := s.streaks.Today()
	if s.lastSent == today {
		return false, nil
	}
	if s.streaks.HasCompletedToday(ctx) {
		s.log.Debug("quiz already completed today, skipping reminder")
		return false, nil
	}

	if err := s.send(ctx); err != nil {
		return false, err
	}
	s.lastSent = today
	return true, nil
}

// RunManualCheck sends the reminder now, ignoring the window and daily limit
func (s *Scheduler) RunManualCheck(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.send(ctx)
}

func (s *Scheduler) send(ctx context.Context) error {
	content, err := s.streaks.NotificationContent(ctx)
	if err != nil {
		return fmt.Errorf("failed to build reminder: %w", err)
	}
	if err := s.notifier.SendReminder(ctx, content); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	s.log.Info("reminder sent", "title", content.Title)
	return nil
}
