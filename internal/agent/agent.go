// Package agent implements a player of the repeated public-goods game: it
// decides how much to put in the pool, keeps Bayesian beliefs about its peers
// and adapts its own risk preference after every round.
package agent

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"CommonPool/internal/logging"
	"CommonPool/internal/model"

	"github.com/google/uuid"
)

// DefaultInitialMoney is the starting wealth when none is configured.
const DefaultInitialMoney = 10.0

var (
	// ErrNoBeliefs is returned when a belief mean is needed before InitializeBeliefs ran.
	ErrNoBeliefs = errors.New("no beliefs initialized")
	// ErrUnknownPeer is returned when a belief update names an agent that was never registered.
	ErrUnknownPeer = errors.New("unknown peer")
)

// Agent holds the economic and behavioral state of one player.
//
// RiskLevel is the risk-willingness in [0,1]: 0 is fully risk-seeking (puts
// little in the pool), 1 fully risk-averse. Adaptability is fixed after
// construction.
type Agent struct {
	ID           uuid.UUID
	Name         string
	RiskLevel    float64
	Adaptability float64
	Money        float64

	RiskHistory  []float64
	MoneyHistory []float64

	ReceivedMoneyThisRound bool

	// roundStart is the wealth at the start of the current round; profit is
	// measured against it and it is rebased after every adaptation.
	roundStart float64
	beliefs    *Beliefs
	log        *slog.Logger
}

// New creates an agent with a fresh identifier. Risk level and adaptability
// are clamped to [0,1] and negative money to 0.
func New(name string, riskLevel, adaptability, initialMoney float64, logger *slog.Logger) *Agent {
	riskLevel = clamp(riskLevel, 0, 1)
	if initialMoney < 0 {
		initialMoney = 0
	}
	return &Agent{
		ID:           uuid.New(),
		Name:         name,
		RiskLevel:    riskLevel,
		Adaptability: clamp(adaptability, 0, 1),
		Money:        initialMoney,
		RiskHistory:  []float64{riskLevel},
		MoneyHistory: []float64{initialMoney},
		roundStart:   initialMoney,
		beliefs:      NewBeliefs(),
		log:          logging.OrDiscard(logger),
	}
}

// Beliefs returns the agent's beliefs about its peers.
func (a *Agent) Beliefs() *Beliefs {
	return a.beliefs
}

// RoundStartMoney is the wealth baseline used to compute this round's profit.
func (a *Agent) RoundStartMoney() float64 {
	return a.roundStart
}

// ReceiveMoney adds amount to the agent's wealth.
func (a *Agent) ReceiveMoney(amount float64) {
	a.Money += amount
	a.log.Info(fmt.Sprintf("%s receives %.2f money.", a.Name, amount), "agent", a.ID)
}

// Pay removes amount from the agent's wealth, capped at what it holds, and
// returns the amount actually paid.
func (a *Agent) Pay(amount float64) float64 {
	if amount > a.Money {
		amount = a.Money
	}
	if amount < 0 {
		amount = 0
	}
	a.Money -= amount
	return amount
}

// RecordMoney appends the current wealth to the money history.
func (a *Agent) RecordMoney() {
	a.MoneyHistory = append(a.MoneyHistory, a.Money)
}

// Snapshot returns a copy of the agent's state for reporting.
func (a *Agent) Snapshot() model.AgentSeries {
	return model.AgentSeries{
		ID:           a.ID,
		Name:         a.Name,
		RiskLevel:    a.RiskLevel,
		Adaptability: a.Adaptability,
		Money:        a.Money,
		RiskHistory:  slices.Clone(a.RiskHistory),
		MoneyHistory: slices.Clone(a.MoneyHistory),
	}
}

func (a *Agent) String() string {
	return fmt.Sprintf("%s(risk=%.2f, adaptability=%.2f, money=%.2f)", a.Name, a.RiskLevel, a.Adaptability, a.Money)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
