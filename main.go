package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/wortstreak/internal/bot"
	"github.com/example/wortstreak/internal/config"
	"github.com/example/wortstreak/internal/excel"
	"github.com/example/wortstreak/internal/gamification"
	"github.com/example/wortstreak/internal/logger"
	"github.com/example/wortstreak/internal/scheduler"
	"github.com/example/wortstreak/internal/storage"
	"github.com/example/wortstreak/pkg/models"
)

// app bundles what every command needs
type app struct {
	cfg    config.Config
	log    *logger.Logger
	loc    *time.Location
	store  storage.Store
	engine *gamification.Engine
	close  func() error
}

func newApp(ctx context.Context) (*app, error) {
	cfg := config.Load()

	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	loc := time.Local
	if cfg.TimeZone != "" {
		loc, err = time.LoadLocation(cfg.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("invalid TZ_NAME %q: %w", cfg.TimeZone, err)
		}
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:   cfg,
		log:   log,
		loc:   loc,
		store: store,
		close: closeStore,
	}
	a.engine = a.newEngine()
	return a, nil
}

func (a *app) newEngine() *gamification.Engine {
	return gamification.New(a.store,
		gamification.WithLocation(a.loc),
		gamification.WithLogger(a.log.With("component", "gamification")),
	)
}

// storeView answers every call with a fresh engine, so a long-running serve
// sees completions recorded by other processes sharing the store.
type storeView struct {
	newEngine func() *gamification.Engine
}

func (v storeView) Today() string {
	return v.newEngine().Today()
}

func (v storeView) HasCompletedToday(ctx context.Context) bool {
	return v.newEngine().HasCompletedToday(ctx)
}

func (v storeView) NotificationContent(ctx context.Context) (models.NotificationContent, error) {
	return v.newEngine().NotificationContent(ctx)
}

func (a *app) Close() {
	if err := a.close(); err != nil {
		a.log.Warn("failed to close store", "error", err)
	}
	a.log.Sync()
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, func() error, error) {
	switch cfg.DBType {
	case "memory":
		return storage.NewMemory(), func() error { return nil }, nil
	case "redis":
		r, err := storage.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil
	default:
		s, err := storage.OpenSQL(ctx, cfg.DBType, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
}

// telegram returns the configured notifier, or nil when Telegram is not set up
func (a *app) telegram() (*bot.TelegramNotifier, error) {
	if a.cfg.TelegramToken == "" {
		return nil, nil
	}
	return bot.NewTelegramNotifier(a.cfg.TelegramToken, a.cfg.TelegramChat)
}

// logNotifier is used by serve when Telegram is not configured
type logNotifier struct {
	log *logger.Logger
}

func (n logNotifier) SendReminder(ctx context.Context, content models.NotificationContent) error {
	n.log.Info("reminder", "title", content.Title, "body", content.Body)
	return nil
}

func withApp(run func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd, args, a)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wortstreak",
		Short:         "wortstreak - daily vocabulary streak tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var wrong bool
	recordCmd := &cobra.Command{
		Use:   "record <word-id>",
		Short: "Record a finished quiz for a word",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(func(cmd *cobra.Command, args []string, a *app) error { return runRecord(cmd, args, a, !wrong) }),
	}
	recordCmd.Flags().BoolVar(&wrong, "wrong", false, "The answer was wrong")

	var asJSON bool
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current streak and today's progress",
		RunE:  withApp(func(cmd *cobra.Command, args []string, a *app) error { return runStatus(cmd, a, asJSON) }),
	}
	statusCmd.Flags().BoolVar(&asJSON, "json", false, "Print stats as JSON")

	notifyCmd := &cobra.Command{
		Use:   "notify",
		Short: "Send (or print) today's reminder",
		RunE:  withApp(func(cmd *cobra.Command, args []string, a *app) error { return runNotify(cmd, a) }),
	}

	exportCmd := &cobra.Command{
		Use:   "export <file.xlsx|file.csv>",
		Short: "Export the completion history",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(func(cmd *cobra.Command, args []string, a *app) error { return runExport(cmd, args[0], a) }),
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all streak data",
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			if err := a.engine.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Fortschritt gelöscht.")
			return nil
		}),
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reminder scheduler until interrupted",
		RunE:  withApp(func(cmd *cobra.Command, args []string, a *app) error { return runServe(cmd, a) }),
	}

	root.AddCommand(recordCmd, statusCmd, notifyCmd, exportCmd, resetCmd, serveCmd)
	return root
}

func runRecord(cmd *cobra.Command, args []string, a *app, correct bool) error {
	ctx := cmd.Context()
	wordID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid word id %q: %w", args[0], err)
	}

	result, err := a.engine.RecordCompletion(ctx, wordID, correct)
	if err != nil {
		return err
	}
	for _, ev := range gamification.Events(result, time.UnixMilli(result.Timestamp)) {
		a.log.Debug("gamification event", "type", ev.Type, "data", ev.Data)
	}

	out := cmd.OutOrStdout()
	celebration, ok := gamification.Celebrate(result)
	if ok {
		fmt.Fprintf(out, "%s %s\n", celebration.Title, celebration.Body)
		tg, err := a.telegram()
		if err != nil {
			a.log.Warn("telegram unavailable", "error", err)
		} else if tg != nil {
			if err := tg.SendCelebration(ctx, celebration); err != nil {
				a.log.Warn("failed to send celebration", "error", err)
			}
		}
	}
	if result.StreakWasLost {
		fmt.Fprintln(out, "Deine Serie ist gerissen - heute beginnt eine neue.")
	}
	fmt.Fprintln(out, gamification.StreakMessage(result.Streak, false))
	return nil
}

func runStatus(cmd *cobra.Command, a *app, asJSON bool) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	atRisk := a.engine.IsStreakAtRisk(ctx)
	stats, err := a.engine.Stats(ctx)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	if badge, ok := gamification.BadgeState(stats.Streak, stats.TodayStatus.Completed); ok {
		flame := "○"
		if badge.Lit {
			flame = "🔥"
		}
		fmt.Fprintf(out, "%s %d\n", flame, badge.Count)
	}
	fmt.Fprintf(out, "Serie: %d Tage (Rekord: %d)\n", stats.Streak.CurrentStreak, stats.Streak.LongestStreak)
	if gamification.IsNewRecord(stats.Streak) {
		fmt.Fprintln(out, "Neuer Rekord!")
	}
	if last := stats.Streak.LastDate(); last != "" {
		fmt.Fprintf(out, "Letzte Lektion: %s\n", last)
	}
	fmt.Fprintf(out, "Heute: %d Quiz, %d richtig\n", stats.TodayStatus.QuizCount, stats.TodayStatus.CorrectCount)
	fmt.Fprintln(out, gamification.StreakMessage(stats.Streak, atRisk && stats.Streak.CurrentStreak > 0))
	return nil
}

func runNotify(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()
	tg, err := a.telegram()
	if err != nil {
		return err
	}

	content, err := a.engine.NotificationContent(ctx)
	if err != nil {
		return err
	}
	if tg == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", content.Title, content.Body)
		return nil
	}
	return tg.SendReminder(ctx, content)
}

func runExport(cmd *cobra.Command, path string, a *app) error {
	ctx := cmd.Context()
	stats, err := a.engine.Stats(ctx)
	if err != nil {
		return err
	}

	result, err := excel.Export(excel.ExportConfig{FilePath: path, Location: a.loc}, excel.History{
		Stats:       stats,
		Completions: a.engine.LoadCompletions(ctx),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d completions to %s\n", result.Rows, result.FilePath)
	return nil
}

func runServe(cmd *cobra.Command, a *app) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var notifier scheduler.Notifier = logNotifier{log: a.log}
	tg, err := a.telegram()
	if err != nil {
		return err
	}
	if tg != nil {
		notifier = tg
	}

	s := scheduler.New(storeView{newEngine: a.newEngine}, notifier, scheduler.Options{
		StartHour: a.cfg.NotificationStartHour,
		EndHour:   a.cfg.NotificationEndHour,
		Location:  a.loc,
		Logger:    a.log,
	})
	if err := s.Start(); err != nil {
		return err
	}
	a.log.Info("scheduler started", "store", a.cfg.DBType,
		"window_start", a.cfg.NotificationStartHour, "window_end", a.cfg.NotificationEndHour)

	<-ctx.Done()
	a.log.Info("stopping scheduler")
	s.Stop()
	return nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
