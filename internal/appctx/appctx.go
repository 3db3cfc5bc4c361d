// Package appctx builds the single application context shared by the CLI:
// configuration, logger, database, session lock and feature services.
// It is created once at startup and closed on shutdown.
package appctx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/antara/internal/backup"
	"github.com/dmitrijs2005/antara/internal/config"
	"github.com/dmitrijs2005/antara/internal/lock"
	"github.com/dmitrijs2005/antara/internal/logging"
	"github.com/dmitrijs2005/antara/internal/models"
	"github.com/dmitrijs2005/antara/internal/repositories/slots"
	"github.com/dmitrijs2005/antara/internal/services"
	"github.com/dmitrijs2005/antara/internal/storage"
	"github.com/dmitrijs2005/antara/internal/timex"
)

type AppContext struct {
	Config    *config.Config
	Logger    logging.Logger
	SessionID string
	Clock     timex.Clock

	DB   *sql.DB
	Repo slots.Repository
	Lock *lock.Lock

	Journal      services.JournalService
	Gratitude    services.GratitudeService
	Intentions   services.IntentionService
	Library      services.LibraryService
	Capsules     services.CapsuleService
	Affirmations services.AffirmationService
	Todos        services.TodoService
	Moods        *services.DailyLog[models.Mood]
	Weather      *services.DailyLog[models.Weather]
	Preferences  services.PreferenceService

	// Prefs is the display preference snapshot, refreshed by Reload.
	Prefs models.Preferences

	Backup      *backup.Service
	LocalBackup backup.Target
	// RemoteBackup is nil unless an S3 bucket is configured.
	RemoteBackup backup.Target

	logFile io.Closer
}

type Option func(*options)

type options struct {
	clock     timex.Clock
	logOutput io.Writer
}

// WithClock replaces the wall clock for every component.
func WithClock(c timex.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogOutput sends logs to w instead of the configured file or stderr.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logOutput = w }
}

// New opens the database, runs migrations and wires every component.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (_ *AppContext, err error) {
	o := options{clock: timex.SystemClock}
	for _, fn := range opts {
		fn(&o)
	}

	a := &AppContext{Config: cfg, Clock: o.clock, SessionID: uuid.NewString()}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	out := o.logOutput
	if out == nil {
		out = os.Stderr
		if cfg.LogFile != "" {
			f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if err != nil {
				return nil, fmt.Errorf("open log file: %w", err)
			}
			a.logFile = f
			out = f
		}
	}
	a.Logger = logging.New(out, cfg.LogLevel, cfg.LogFormat).With("session_id", a.SessionID)

	a.DB, err = storage.Open(ctx, cfg.DatabasePath, a.Logger)
	if err != nil {
		return nil, err
	}
	a.Repo = slots.NewSQLiteRepository(a.DB)

	a.Lock, err = lock.New(ctx, a.Repo,
		lock.WithClock(a.Clock),
		lock.WithLogger(a.Logger.With("component", "lock")),
		lock.WithResetDelay(cfg.LockResetDelay),
		lock.WithBackoff(cfg.LockMaxAttempts, cfg.LockBaseDelay, cfg.LockMaxDelay),
	)
	if err != nil {
		return nil, err
	}

	a.Journal = services.NewJournalService(a.Repo, a.Logger, a.Clock)
	a.Gratitude = services.NewGratitudeService(a.Repo, a.Logger, a.Clock)
	a.Intentions = services.NewIntentionService(a.Repo, a.Logger, a.Clock)
	a.Library = services.NewLibraryService(a.Repo, a.Logger, a.Clock)
	a.Capsules = services.NewCapsuleService(a.Repo, a.Logger.With("component", "capsules"), a.Clock)
	a.Affirmations = services.NewAffirmationService(a.Repo, a.Logger, a.Clock)
	a.Todos = services.NewTodoService(a.Repo, a.Logger, a.Clock)
	a.Moods = services.NewMoodLog(a.Repo, a.Logger, a.Clock)
	a.Weather = services.NewWeatherLog(a.Repo, a.Logger, a.Clock)
	a.Preferences = services.NewPreferenceService(a.Repo, a.Logger)

	a.Prefs, err = a.Preferences.Load(ctx)
	if err != nil {
		return nil, err
	}

	a.Backup = backup.NewService(a.DB, a.Logger.With("component", "backup"))
	a.LocalBackup = backup.DirTarget{Dir: cfg.BackupDir}
	if cfg.S3Enabled() {
		a.RemoteBackup, err = backup.NewS3Target(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
	}

	a.Logger.Info(ctx, "application started", "db", cfg.DatabasePath, "lock", a.Lock.State().String())
	return a, nil
}

// Reload rebuilds state derived from storage after the store was replaced
// wholesale, e.g. by a backup import.
func (a *AppContext) Reload(ctx context.Context) error {
	a.Capsules.CloseView()
	if err := a.Lock.Reload(ctx); err != nil {
		return err
	}
	prefs, err := a.Preferences.Load(ctx)
	if err != nil {
		return err
	}
	a.Prefs = prefs
	a.Logger.Info(ctx, "state reloaded")
	return nil
}

// Close stops the lock timers and closes the database and log file.
func (a *AppContext) Close() error {
	var errs []error
	if a.Lock != nil {
		errs = append(errs, a.Lock.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
	}
	return errors.Join(errs...)
}
