package report

import (
	"strings"
	"testing"

	"CommonPool/internal/model"
	"CommonPool/internal/stats"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestScoreboard(t *testing.T) {
	standings := []model.Standing{
		{Place: 1, Name: "Agent_2", Money: 12.5},
		{Place: 2, Name: "Agent_1", Money: 7},
	}
	agents := []model.AgentSeries{
		{Name: "Agent_1", RiskLevel: 0.25, Adaptability: 0.5},
		{Name: "Agent_2", RiskLevel: 0.75, Adaptability: 0.125},
	}

	got := Scoreboard(3, standings, agents)

	assert.True(t, strings.HasPrefix(got, "----------------------- Round 3 ------------------------\n\n"))
	assert.Contains(t, got, "\n###### 1º place ######  Agent_2   ->   12.50 €    ######")
	assert.Contains(t, got, "\n###### 2º place ######  Agent_1   ->   7.00 €    ######")
	assert.Contains(t, got, "\nAgent_1 | risk-willingness: 0.25, adaptability: 0.50")
	assert.Contains(t, got, "\nAgent_2 | risk-willingness: 0.75, adaptability: 0.12")
	assert.True(t, strings.HasSuffix(got, "\n\n---------------------------------------------------------"))
	assert.Less(t, strings.Index(got, "SCOREBOARD"), strings.Index(got, "AGENTS"))
}

func TestRoundSummary(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	result := &model.RoundResult{
		Round: 0,
		Contributions: []model.Contribution{
			{AgentID: a, Name: "Agent_1", Amount: 2},
			{AgentID: b, Name: "Agent_2", Amount: 5},
		},
		MinContribution: 2,
		Excluded:        []uuid.UUID{a},
		TotalPool:       7,
		Payout:          10.5,
		Recipients:      []uuid.UUID{b},
	}
	agents := []model.AgentSeries{
		{ID: a, Name: "Agent_1", Money: 8},
		{ID: b, Name: "Agent_2", Money: 15.5},
	}

	got := RoundSummary(result, agents)
	assert.Contains(t, got, "--- Round 1 ---")
	assert.Contains(t, got, "Agent_1 decision: 2,")
	assert.Contains(t, got, "Agent_2 decision: 5,")
	assert.Contains(t, got, "money: 15.50")
	assert.Contains(t, got, "pool: 7.00, excluded: 1, payout each: 10.50")
}

func TestWinner(t *testing.T) {
	got := Winner(model.AgentSeries{Name: "Agent_3", Money: 21.456})
	assert.Equal(t, "The winner is Agent_3 with final money of 21.46.", got)
}

func TestCorrelations(t *testing.T) {
	got := Correlations(stats.Correlations{MoneyRisk: 0.5, MoneyAdaptability: -0.25})
	assert.Contains(t, got, "money vs risk-willingness: +0.500")
	assert.Contains(t, got, "money vs adaptability:     -0.250")
}
