package recorder

import "CommonPool/internal/model"

// RoundRecord holds everything needed to store one resolved round.
type RoundRecord struct {
	Result *model.RoundResult
	Agents []model.AgentSeries // state after the round
}

// FinalRecord holds the end-of-simulation standings.
type FinalRecord struct {
	Rounds            int
	Standings         []model.Standing
	Winner            string
	MoneyRisk         float64
	MoneyAdaptability float64
}

// Recorder persists the simulation's history for later charting.
type Recorder interface {
	RecordRound(rec *RoundRecord) error
	RecordFinal(rec *FinalRecord) error
	Close() error
}
