package model

import "github.com/google/uuid"

// AgentSeries is a read-only view of an agent's state and time series,
// handed to reporting and charting consumers.
type AgentSeries struct {
	ID           uuid.UUID
	Name         string
	RiskLevel    float64
	Adaptability float64
	Money        float64
	RiskHistory  []float64
	MoneyHistory []float64
}

// Standing is one line of the scoreboard.
type Standing struct {
	Place int
	ID    uuid.UUID
	Name  string
	Money float64
}
