package agent

import (
	"fmt"
	"math"
)

const (
	adaptabilityFactor = 10.0
	rewardRate         = 0.02
	penaltyRate        = 0.03
)

// AdjustRiskAppetite adapts the risk level to the round's outcome.
//
// Rewarded agents become more risk-averse when they made a profit and trust
// their peers (average belief >= 0.5), and less risk-averse when they distrust
// them or lost money. Agents that were not rewarded are penalized by a fixed
// step plus their relative loss. No adjustment happens when the round started
// with zero wealth. The baseline is rebased to the current wealth afterwards.
func (a *Agent) AdjustRiskAppetite(receivedReward bool) error {
	avgBelief, err := a.beliefs.Mean()
	if err != nil {
		return fmt.Errorf("%s: adjust risk appetite: %w", a.Name, err)
	}

	profit := a.Money - a.roundStart
	effect := adaptabilityFactor * a.Adaptability

	if a.roundStart != 0 {
		rel := math.Abs(profit) / a.roundStart
		switch {
		case receivedReward && avgBelief >= 0.5 && profit > 0:
			a.RiskLevel += effect * rewardRate * (profit / a.roundStart)
		case receivedReward && (avgBelief < 0.5 || profit < 0):
			a.RiskLevel -= effect * rewardRate * rel
		case !receivedReward:
			a.RiskLevel -= effect * penaltyRate * (1 + rel)
		}
	}

	a.RiskLevel = clamp(a.RiskLevel, 0, 1)
	a.RiskHistory = append(a.RiskHistory, a.RiskLevel)
	a.roundStart = a.Money
	return nil
}
