package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"CommonPool/internal/game"
	"CommonPool/internal/logging"

	"github.com/robfig/cron/v3"
)

// Scheduler plays the rounds of a session at a cron-paced rate.
type Scheduler struct {
	Cron    *cron.Cron
	Session *game.Session
	Ctx     context.Context

	log  *slog.Logger
	done chan struct{}
	once sync.Once
	err  error
}

// NewScheduler creates a new Scheduler. Ticks that arrive while a round is
// still being played are skipped.
func NewScheduler(ctx context.Context, session *game.Session, logger *slog.Logger) *Scheduler {
	logger = logging.OrDiscard(logger)
	cronLog := cron.PrintfLogger(logging.StdLogger(logger, slog.LevelDebug))
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		Session: session,
		Ctx:     ctx,
		log:     logger,
		done:    make(chan struct{}),
	}
}

// Register adds the round-stepping task. stepSpec accepts the six-field
// cron format with seconds or descriptors such as "@every 1s".
func (s *Scheduler) Register(stepSpec string) error {
	if _, err := s.Cron.AddFunc(stepSpec, s.stepTask); err != nil {
		return fmt.Errorf("register step task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started", "rounds", s.Session.TotalRounds())
}

// Stop stops the cron scheduler and waits for a running round to complete.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// Done is closed once the session has finished or a round failed.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

// Err returns the error that ended the schedule, if any.
func (s *Scheduler) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

func (s *Scheduler) stepTask() {
	scores, err := s.Session.Step(s.Ctx)
	switch {
	case errors.Is(err, game.ErrSessionFinished):
		s.finish(nil)
		return
	case err != nil:
		s.log.Error("play round", "err", err)
		s.finish(err)
		return
	}

	s.log.Info("round complete\n" + scores)
	if s.Session.Finished() {
		s.finish(nil)
	}
}

func (s *Scheduler) finish(err error) {
	s.once.Do(func() {
		s.err = err
		close(s.done)
	})
}
