// Package report formats the simulation's outputs as human-readable text.
package report

import (
	"fmt"
	"strings"

	"CommonPool/internal/model"
	"CommonPool/internal/stats"
)

const rule = "#########################################################"

// Scoreboard formats the ranking after the given number of completed rounds,
// followed by every agent's current risk-willingness and adaptability in
// roster order.
func Scoreboard(round int, standings []model.Standing, agents []model.AgentSeries) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("----------------------- Round %d ------------------------\n\n", round))
	b.WriteString(rule + "\n")
	b.WriteString("######                  SCOREBOARD                 ######\n")
	b.WriteString(rule)
	for _, s := range standings {
		b.WriteString(fmt.Sprintf("\n###### %dº place ######  %s   ->   %.2f €    ######", s.Place, s.Name, s.Money))
	}
	b.WriteString("\n" + rule)

	b.WriteString("\n\n\n------------------------- AGENTS ------------------------\n")
	for _, a := range agents {
		b.WriteString(fmt.Sprintf("\n%s | risk-willingness: %.2f, adaptability: %.2f", a.Name, a.RiskLevel, a.Adaptability))
	}
	b.WriteString("\n\n---------------------------------------------------------")

	return b.String()
}

// RoundSummary formats the decisions and resulting state of one round.
// agents must reflect the state after the round.
func RoundSummary(result *model.RoundResult, agents []model.AgentSeries) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("--- Round %d ---\n", result.Round+1))
	for _, a := range agents {
		b.WriteString(fmt.Sprintf("%s decision: %g, risk-willingness: %.2f, adaptability: %.2f, money: %.2f\n",
			a.Name, result.ContributionOf(a.ID), a.RiskLevel, a.Adaptability, a.Money))
	}
	b.WriteString(fmt.Sprintf("pool: %.2f, excluded: %d, payout each: %.2f\n",
		result.TotalPool, len(result.Excluded), result.Payout))

	return b.String()
}

// Winner announces the richest agent.
func Winner(w model.AgentSeries) string {
	return fmt.Sprintf("The winner is %s with final money of %.2f.", w.Name, w.Money)
}

// Correlations formats the final money/trait correlations.
func Correlations(c stats.Correlations) string {
	var b strings.Builder
	b.WriteString("Final correlations (Pearson):\n")
	b.WriteString(fmt.Sprintf("  money vs risk-willingness: %+.3f\n", c.MoneyRisk))
	b.WriteString(fmt.Sprintf("  money vs adaptability:     %+.3f\n", c.MoneyAdaptability))
	return b.String()
}
