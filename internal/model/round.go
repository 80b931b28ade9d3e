package model

import "github.com/google/uuid"

// Contribution is one agent's amount put into the pool in a round.
type Contribution struct {
	AgentID uuid.UUID
	Name    string
	Amount  float64
}

// RoundResult is the outcome of a single resolved round.
type RoundResult struct {
	Round           int // zero-based index passed to PlayRound
	Contributions   []Contribution
	MinContribution float64
	Excluded        []uuid.UUID
	TotalPool       float64
	Payout          float64 // amount paid to each recipient, 0 if nobody was paid
	Recipients      []uuid.UUID
}

// IsExcluded reports whether the agent was excluded from redistribution.
func (r *RoundResult) IsExcluded(id uuid.UUID) bool {
	for _, ex := range r.Excluded {
		if ex == id {
			return true
		}
	}
	return false
}

// Received reports whether the agent was paid this round.
func (r *RoundResult) Received(id uuid.UUID) bool {
	for _, rc := range r.Recipients {
		if rc == id {
			return true
		}
	}
	return false
}

// ContributionOf returns the agent's contribution, or 0 if it did not play.
func (r *RoundResult) ContributionOf(id uuid.UUID) float64 {
	for _, c := range r.Contributions {
		if c.AgentID == id {
			return c.Amount
		}
	}
	return 0
}
