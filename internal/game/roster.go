package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"CommonPool/internal/agent"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// DefaultRandomAgents is the roster size of a randomly drawn simulation.
	DefaultRandomAgents = 4
	randomTraitMin      = 0.2
	randomTraitMax      = 0.8
)

// ErrRosterTooSmall is returned for rosters that leave agents without peers.
var ErrRosterTooSmall = errors.New("roster needs at least two agents")

// AgentSpec describes one agent of a hand-built roster.
type AgentSpec struct {
	Name         string
	RiskLevel    float64
	Adaptability float64
	InitialMoney *float64 // nil uses the roster default
}

// NewRoster builds agents from specs and initializes their beliefs. Agents
// without a name are called Agent_<position>.
func NewRoster(specs []AgentSpec, defaultMoney float64, logger *slog.Logger) ([]*agent.Agent, error) {
	if len(specs) < 2 {
		return nil, ErrRosterTooSmall
	}

	agents := make([]*agent.Agent, 0, len(specs))
	for i, s := range specs {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("Agent_%d", i+1)
		}
		if s.RiskLevel < 0 || s.RiskLevel > 1 {
			return nil, fmt.Errorf("%s: risk level must be between 0 and 1, got %v", name, s.RiskLevel)
		}
		if s.Adaptability < 0 || s.Adaptability > 1 {
			return nil, fmt.Errorf("%s: adaptability must be between 0 and 1, got %v", name, s.Adaptability)
		}
		money := defaultMoney
		if s.InitialMoney != nil {
			money = *s.InitialMoney
		}
		if money < 0 {
			return nil, fmt.Errorf("%s: initial money must be non-negative, got %v", name, money)
		}
		agents = append(agents, agent.New(name, s.RiskLevel, s.Adaptability, money, logger))
	}

	initializeBeliefs(agents)
	return agents, nil
}

// RandomRoster builds n agents whose risk level and adaptability are drawn
// uniformly from [0.2, 0.8].
func RandomRoster(n int, defaultMoney float64, src rand.Source, logger *slog.Logger) ([]*agent.Agent, error) {
	if n < 2 {
		return nil, ErrRosterTooSmall
	}

	trait := distuv.Uniform{Min: randomTraitMin, Max: randomTraitMax, Src: src}
	specs := make([]AgentSpec, n)
	for i := range specs {
		specs[i] = AgentSpec{RiskLevel: trait.Rand(), Adaptability: trait.Rand()}
	}
	return NewRoster(specs, defaultMoney, logger)
}

func initializeBeliefs(agents []*agent.Agent) {
	for _, a := range agents {
		a.InitializeBeliefs(agents)
	}
}
