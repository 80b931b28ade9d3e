package agent

import (
	"context"
	"fmt"
	"math"

	"CommonPool/internal/logging"
	"CommonPool/internal/model"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
)

const (
	// initialBelief is the prior that any peer is risk-averse.
	initialBelief = 0.5
	// maxAction normalizes observed contributions into a likelihood.
	// Contributions above it yield a likelihood above 1, which is kept as is.
	maxAction = 10.0
)

// Beliefs maps a peer's identifier to the probability that the peer is
// risk-averse (contributes much). Peers keep their registration order so
// that aggregates are computed deterministically.
type Beliefs struct {
	order []uuid.UUID
	p     map[uuid.UUID]float64
}

// NewBeliefs returns an empty belief mapping.
func NewBeliefs() *Beliefs {
	return &Beliefs{p: make(map[uuid.UUID]float64)}
}

// Len returns the number of peers with a belief.
func (b *Beliefs) Len() int {
	return len(b.order)
}

// Get returns the belief about a peer.
func (b *Beliefs) Get(peer uuid.UUID) (float64, bool) {
	v, ok := b.p[peer]
	return v, ok
}

// Peers returns the registered peers in registration order.
func (b *Beliefs) Peers() []uuid.UUID {
	out := make([]uuid.UUID, len(b.order))
	copy(out, b.order)
	return out
}

// Values returns the belief values in registration order.
func (b *Beliefs) Values() []float64 {
	out := make([]float64, len(b.order))
	for i, id := range b.order {
		out[i] = b.p[id]
	}
	return out
}

// Mean returns the average belief, or ErrNoBeliefs when the mapping is empty.
func (b *Beliefs) Mean() (float64, error) {
	if len(b.order) == 0 {
		return 0, ErrNoBeliefs
	}
	return stat.Mean(b.Values(), nil), nil
}

func (b *Beliefs) set(peer uuid.UUID, v float64) {
	if _, ok := b.p[peer]; !ok {
		b.order = append(b.order, peer)
	}
	b.p[peer] = v
}

// InitializeBeliefs sets a neutral belief about every other agent of the
// roster. It must run before the first round.
func (a *Agent) InitializeBeliefs(roster []*Agent) {
	for _, peer := range roster {
		if peer.ID == a.ID {
			continue
		}
		a.beliefs.set(peer.ID, initialBelief)
	}
}

// UpdateBelief applies a Bayesian update of the belief about peer given the
// peer's contribution this round. A zero contribution is read as the
// strongest evidence of risk-seeking.
func (a *Agent) UpdateBelief(peer uuid.UUID, action float64) error {
	prior, ok := a.beliefs.Get(peer)
	if !ok {
		return fmt.Errorf("%s: update belief about %s: %w", a.Name, peer, ErrUnknownPeer)
	}

	averse := action / maxAction
	seeking := 1 - averse

	var posterior float64
	if action > 0 {
		posterior = prior * averse / (prior*averse + (1-prior)*seeking)
	} else {
		posterior = prior * seeking / (prior*seeking + (1-prior)*averse)
	}
	// 0/0 when a certain prior meets opposite evidence: keep the prior.
	if math.IsNaN(posterior) {
		posterior = prior
	}
	posterior = clamp(posterior, 0, 1)

	a.beliefs.set(peer, posterior)
	a.log.Log(context.Background(), logging.LevelTrace, "belief updated",
		"agent", a.Name, "peer", peer, "action", action, "prior", prior, "posterior", posterior)
	return nil
}

// ObserveActions updates the beliefs about every other agent from the
// round's contributions.
func (a *Agent) ObserveActions(actions []model.Contribution) error {
	for _, c := range actions {
		if c.AgentID == a.ID {
			continue
		}
		if err := a.UpdateBelief(c.AgentID, c.Amount); err != nil {
			return err
		}
	}
	return nil
}
