package game

import (
	"sync"
	"testing"

	"CommonPool/internal/agent"
	"CommonPool/internal/recorder"

	"github.com/stretchr/testify/require"
)

// scripted draws the given values in order, one per decision, and falls
// back to the mean once they run out.
func scripted(values ...float64) agent.Sampler {
	var i int
	return agent.SamplerFunc(func(mean float64) float64 {
		if i < len(values) {
			v := values[i]
			i++
			return v
		}
		return mean
	})
}

func newRoster(t *testing.T, n int) []*agent.Agent {
	t.Helper()
	specs := make([]AgentSpec, n)
	for i := range specs {
		specs[i] = AgentSpec{RiskLevel: 0.5, Adaptability: 0.5}
	}
	agents, err := NewRoster(specs, agent.DefaultInitialMoney, nil)
	require.NoError(t, err)
	return agents
}

// memRecorder keeps everything it is given.
type memRecorder struct {
	mu     sync.Mutex
	rounds []*recorder.RoundRecord
	finals []*recorder.FinalRecord
}

func (m *memRecorder) RecordRound(rec *recorder.RoundRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds = append(m.rounds, rec)
	return nil
}

func (m *memRecorder) RecordFinal(rec *recorder.FinalRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finals = append(m.finals, rec)
	return nil
}

func (m *memRecorder) Close() error { return nil }
