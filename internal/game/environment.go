// Package game resolves rounds of the public-goods game over a fixed roster
// of agents and exposes the scores and histories of a simulation.
package game

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"CommonPool/internal/agent"
	"CommonPool/internal/logging"
	"CommonPool/internal/model"
	"CommonPool/internal/recorder"
	"CommonPool/internal/report"

	"github.com/google/uuid"
)

// PoolMultiplier inflates the pool before it is split among eligible agents.
const PoolMultiplier = 1.5

// Environment owns the roster and resolves rounds.
type Environment struct {
	Agents      []*agent.Agent
	RoundNumber int

	sampler  agent.Sampler
	recorder recorder.Recorder
	log      *slog.Logger
}

// Option configures an Environment.
type Option func(*Environment)

// WithRecorder forwards every resolved round to rec.
func WithRecorder(rec recorder.Recorder) Option {
	return func(e *Environment) { e.recorder = rec }
}

// WithLogger sets the logger for round events.
func WithLogger(l *slog.Logger) Option {
	return func(e *Environment) { e.log = logging.OrDiscard(l) }
}

// NewEnvironment creates an environment over agents, whose beliefs must
// already be initialized. The sampler drives every contribution draw.
func NewEnvironment(agents []*agent.Agent, sampler agent.Sampler, opts ...Option) *Environment {
	e := &Environment{
		Agents:   agents,
		sampler:  sampler,
		recorder: recorder.NewNoopRecorder(),
		log:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PlayRound resolves one round. All decisions are taken from the pre-round
// state before any money moves, so play is simultaneous. Every agent whose
// contribution equals the round's minimum is excluded from redistribution,
// which excludes everybody when all contributions tie. Eligible agents split
// the inflated pool evenly; every agent then observes all contributions and
// adapts its risk level.
func (e *Environment) PlayRound(round int) (*model.RoundResult, error) {
	for _, a := range e.Agents {
		a.ReceivedMoneyThisRound = false
	}

	decisions := make([]int, len(e.Agents))
	for i, a := range e.Agents {
		d, err := a.DecideAction(e.sampler)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", round+1, err)
		}
		decisions[i] = d
	}

	result := &model.RoundResult{Round: round}
	for i, a := range e.Agents {
		paid := a.Pay(float64(decisions[i]))
		result.Contributions = append(result.Contributions, model.Contribution{
			AgentID: a.ID,
			Name:    a.Name,
			Amount:  paid,
		})
		result.TotalPool += paid
	}

	var eligible []*agent.Agent
	if len(result.Contributions) > 0 {
		result.MinContribution = slices.MinFunc(result.Contributions, func(x, y model.Contribution) int {
			return cmp.Compare(x.Amount, y.Amount)
		}).Amount
	}
	for i, a := range e.Agents {
		if result.Contributions[i].Amount == result.MinContribution {
			result.Excluded = append(result.Excluded, a.ID)
			e.log.Info(fmt.Sprintf("%s is excluded from this round", a.Name), "agent", a.ID)
			continue
		}
		eligible = append(eligible, a)
	}

	if len(eligible) > 0 && result.TotalPool > 0 {
		result.Payout = PoolMultiplier * (result.TotalPool / float64(len(eligible)))
		for _, a := range eligible {
			a.ReceiveMoney(result.Payout)
			a.ReceivedMoneyThisRound = true
			result.Recipients = append(result.Recipients, a.ID)
		}
	}

	for _, a := range e.Agents {
		if err := a.ObserveActions(result.Contributions); err != nil {
			return nil, fmt.Errorf("round %d: %w", round+1, err)
		}
		if err := a.AdjustRiskAppetite(a.ReceivedMoneyThisRound); err != nil {
			return nil, fmt.Errorf("round %d: %w", round+1, err)
		}
	}

	for _, a := range e.Agents {
		a.RecordMoney()
	}

	e.RoundNumber++

	series := e.Series()
	e.log.Info(report.RoundSummary(result, series))
	if err := e.recorder.RecordRound(&recorder.RoundRecord{Result: result, Agents: series}); err != nil {
		e.log.Error("record round", "round", round+1, "err", err)
	}
	return result, nil
}

// Standings ranks the agents by money, richest first. Ties end up in
// reverse roster order: the roster is stably sorted ascending and then
// reversed.
func (e *Environment) Standings() []model.Standing {
	ranked := slices.Clone(e.Agents)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Money < ranked[j].Money })
	slices.Reverse(ranked)

	out := make([]model.Standing, len(ranked))
	for i, a := range ranked {
		out[i] = model.Standing{Place: i + 1, ID: a.ID, Name: a.Name, Money: a.Money}
	}
	return out
}

// Scores returns the scoreboard followed by every agent's current
// risk-willingness and adaptability. It does not change any state.
func (e *Environment) Scores() string {
	return report.Scoreboard(e.RoundNumber, e.Standings(), e.Series())
}

// IsFinished reports whether totalRounds rounds have been played.
func (e *Environment) IsFinished(totalRounds int) bool {
	return e.RoundNumber >= totalRounds
}

// Winner returns the richest agent; ties go to the earliest in the roster.
func (e *Environment) Winner() *agent.Agent {
	var w *agent.Agent
	for _, a := range e.Agents {
		if w == nil || a.Money > w.Money {
			w = a
		}
	}
	return w
}

// Agent looks an agent up by identifier.
func (e *Environment) Agent(id uuid.UUID) (*agent.Agent, bool) {
	for _, a := range e.Agents {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// Series returns a snapshot of every agent's state and histories in roster order.
func (e *Environment) Series() []model.AgentSeries {
	out := make([]model.AgentSeries, len(e.Agents))
	for i, a := range e.Agents {
		out[i] = a.Snapshot()
	}
	return out
}
