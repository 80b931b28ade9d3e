package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"CommonPool/internal/recorder"
	"CommonPool/internal/report"
	"CommonPool/internal/stats"
)

// ErrSessionFinished is returned when stepping a session that has played all its rounds.
var ErrSessionFinished = errors.New("session finished")

// Session is one simulation run owned by its caller: an environment plus the
// number of rounds to play. Calls are serialized, so a round never
// interleaves with another.
type Session struct {
	mu          sync.Mutex
	env         *Environment
	totalRounds int
	finalized   bool
}

// NewSession creates a session that plays totalRounds rounds on env.
func NewSession(env *Environment, totalRounds int) (*Session, error) {
	if totalRounds < 1 {
		return nil, fmt.Errorf("number of rounds must be positive, got %d", totalRounds)
	}
	return &Session{env: env, totalRounds: totalRounds}, nil
}

// Environment returns the underlying environment.
func (s *Session) Environment() *Environment {
	return s.env
}

// TotalRounds returns the number of rounds the session plays.
func (s *Session) TotalRounds() int {
	return s.totalRounds
}

// Finished reports whether all rounds have been played.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.env.IsFinished(s.totalRounds)
}

// Step plays the next round and returns the updated scoreboard.
func (s *Session) Step(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step(ctx)
}

// RunAll plays every remaining round. Cancellation is checked between
// rounds; a round that has started always completes.
func (s *Session) RunAll(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scores := s.env.Scores()
	for !s.env.IsFinished(s.totalRounds) {
		var err error
		if scores, err = s.step(ctx); err != nil {
			return scores, err
		}
	}
	return scores, nil
}

func (s *Session) step(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.env.IsFinished(s.totalRounds) {
		return "", ErrSessionFinished
	}
	if _, err := s.env.PlayRound(s.env.RoundNumber); err != nil {
		return "", err
	}
	if s.env.IsFinished(s.totalRounds) {
		s.finalize()
	}
	return s.env.Scores(), nil
}

// finalize announces the winner and records the final standings once.
func (s *Session) finalize() {
	if s.finalized {
		return
	}
	s.finalized = true

	e := s.env
	winner := e.Winner()
	rec := &recorder.FinalRecord{
		Rounds:    e.RoundNumber,
		Standings: e.Standings(),
	}
	if winner != nil {
		rec.Winner = winner.Name
		e.log.Info(report.Winner(winner.Snapshot()))
	}
	if c, err := stats.FinalCorrelations(e.Series()); err == nil {
		rec.MoneyRisk = c.MoneyRisk
		rec.MoneyAdaptability = c.MoneyAdaptability
	}
	if err := e.recorder.RecordFinal(rec); err != nil {
		e.log.Error("record final standings", "err", err)
	}
}

// Summary returns the winner announcement and the final correlations, or
// an empty string while rounds remain.
func (s *Session) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.env.IsFinished(s.totalRounds) {
		return ""
	}
	var b strings.Builder
	if w := s.env.Winner(); w != nil {
		b.WriteString(report.Winner(w.Snapshot()) + "\n")
	}
	if c, err := stats.FinalCorrelations(s.env.Series()); err == nil {
		b.WriteString(report.Correlations(c))
	}
	return b.String()
}
