package recorder

import (
	"database/sql"
	"path/filepath"
	"testing"

	"CommonPool/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRecorder(t *testing.T) (*SQLiteRecorder, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	r, err := NewSQLiteRecorder(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r, path
}

func TestSQLiteRecorder_RecordRound(t *testing.T) {
	r, _ := openTestRecorder(t)
	a, b := uuid.New(), uuid.New()

	rec := &RoundRecord{
		Result: &model.RoundResult{
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
		},
		Agents: []model.AgentSeries{
			{ID: a, Name: "Agent_1", Money: 8, RiskLevel: 0.3, Adaptability: 0.5},
			{ID: b, Name: "Agent_2", Money: 15.5, RiskLevel: 0.6, Adaptability: 0.5},
		},
	}
	require.NoError(t, r.RecordRound(rec))

	var pool, payout float64
	var excluded int
	err := r.db.QueryRow(`SELECT total_pool, payout, excluded_count FROM rounds WHERE run_id = ?`, r.RunID()).
		Scan(&pool, &payout, &excluded)
	require.NoError(t, err)
	assert.Equal(t, 7.0, pool)
	assert.Equal(t, 10.5, payout)
	assert.Equal(t, 1, excluded)

	var contribution, money float64
	var wasExcluded, received bool
	err = r.db.QueryRow(`SELECT contribution, excluded, received, money FROM agent_rounds WHERE agent_id = ?`, b.String()).
		Scan(&contribution, &wasExcluded, &received, &money)
	require.NoError(t, err)
	assert.Equal(t, 5.0, contribution)
	assert.False(t, wasExcluded)
	assert.True(t, received)
	assert.Equal(t, 15.5, money)
}

func TestSQLiteRecorder_RecordFinal(t *testing.T) {
	r, _ := openTestRecorder(t)
	rec := &FinalRecord{
		Rounds: 10,
		Standings: []model.Standing{
			{Place: 1, ID: uuid.New(), Name: "Agent_2", Money: 20},
			{Place: 2, ID: uuid.New(), Name: "Agent_1", Money: 4},
		},
		Winner:    "Agent_2",
		MoneyRisk: 0.4,
	}
	require.NoError(t, r.RecordFinal(rec))
	require.NoError(t, r.RecordFinal(rec), "run summary is upserted")

	var n int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM final_standings WHERE winner = 1`).Scan(&n))
	assert.Equal(t, 2, n)

	var winner string
	require.NoError(t, r.db.QueryRow(`SELECT winner FROM runs WHERE run_id = ?`, r.RunID()).Scan(&winner))
	assert.Equal(t, "Agent_2", winner)
}

func TestSQLiteRecorder_ReopenKeepsHistory(t *testing.T) {
	r, path := openTestRecorder(t)
	require.NoError(t, r.RecordFinal(&FinalRecord{Rounds: 1, Winner: "x"}))
	require.NoError(t, r.Close())

	r2, err := NewSQLiteRecorder(path, nil)
	require.NoError(t, err)
	defer r2.Close()
	assert.NotEqual(t, r.RunID(), r2.RunID())

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordRound(&RoundRecord{}))
	assert.NoError(t, r.RecordFinal(&FinalRecord{}))
	assert.NoError(t, r.Close())
}
