package game

import (
	"context"
	"testing"

	"CommonPool/internal/agent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_RejectsNonPositiveRounds(t *testing.T) {
	env := NewEnvironment(newRoster(t, 2), scripted())
	_, err := NewSession(env, 0)
	assert.Error(t, err)
}

func TestSession_Step(t *testing.T) {
	rec := &memRecorder{}
	env := NewEnvironment(newRoster(t, 2), agent.NewNormalSampler(1), WithRecorder(rec))
	s, err := NewSession(env, 2)
	require.NoError(t, err)
	ctx := context.Background()

	assert.Empty(t, s.Summary())

	scores, err := s.Step(ctx)
	require.NoError(t, err)
	assert.Contains(t, scores, "Round 1")
	assert.False(t, s.Finished())
	assert.Empty(t, rec.finals)

	scores, err = s.Step(ctx)
	require.NoError(t, err)
	assert.Contains(t, scores, "Round 2")
	assert.True(t, s.Finished())

	_, err = s.Step(ctx)
	assert.ErrorIs(t, err, ErrSessionFinished)

	assert.Len(t, rec.rounds, 2)
	require.Len(t, rec.finals, 1, "final standings are recorded once")
	assert.Equal(t, 2, rec.finals[0].Rounds)
	assert.Equal(t, env.Winner().Name, rec.finals[0].Winner)
	assert.Contains(t, s.Summary(), "The winner is "+env.Winner().Name)
}

func TestSession_RunAll(t *testing.T) {
	env := NewEnvironment(newRoster(t, 4), agent.NewNormalSampler(9))
	s, err := NewSession(env, 10)
	require.NoError(t, err)

	scores, err := s.RunAll(context.Background())
	require.NoError(t, err)
	assert.True(t, s.Finished())
	assert.Equal(t, 10, env.RoundNumber)
	assert.Equal(t, env.Scores(), scores)
	for _, a := range env.Agents {
		assert.Len(t, a.RiskHistory, 11)
		assert.Len(t, a.MoneyHistory, 11)
	}
	assert.Contains(t, s.Summary(), "Final correlations")

	// Nothing left to play.
	_, err = s.RunAll(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 10, env.RoundNumber)
}

func TestSession_Cancelled(t *testing.T) {
	env := NewEnvironment(newRoster(t, 2), agent.NewNormalSampler(3))
	s, err := NewSession(env, 5)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.RunAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, env.RoundNumber)
}
