package recorder

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"CommonPool/internal/logging"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists round history to a SQLite database.
type SQLiteRecorder struct {
	db    *sql.DB
	mu    sync.Mutex
	runID string
	log   *slog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
// Every recorder instance writes under a fresh run identifier so several
// simulations can share one file.
func NewSQLiteRecorder(dbPath string, logger *slog.Logger) (*SQLiteRecorder, error) {
	logger = logging.OrDiscard(logger)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, runID: uuid.NewString(), log: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened", "path", dbPath, "run", r.runID)
	return r, nil
}

// RunID identifies the rows written by this recorder.
func (r *SQLiteRecorder) RunID() string {
	return r.runID
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rounds (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id           TEXT NOT NULL,
			timestamp        INTEGER NOT NULL,
			round            INTEGER NOT NULL,
			total_pool       REAL,
			min_contribution REAL,
			excluded_count   INTEGER,
			recipient_count  INTEGER,
			payout           REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_run ON rounds(run_id, round)`,

		`CREATE TABLE IF NOT EXISTS agent_rounds (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id       TEXT NOT NULL,
			round        INTEGER NOT NULL,
			agent_id     TEXT NOT NULL,
			name         TEXT,
			contribution REAL,
			excluded     INTEGER,
			received     INTEGER,
			money        REAL,
			risk_level   REAL,
			adaptability REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_agent_rounds_run ON agent_rounds(run_id, agent_id, round)`,

		`CREATE TABLE IF NOT EXISTS final_standings (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id    TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			rounds    INTEGER,
			place     INTEGER,
			agent_id  TEXT,
			name      TEXT,
			money     REAL,
			winner    INTEGER
		)`,

		`CREATE TABLE IF NOT EXISTS runs (
			run_id             TEXT PRIMARY KEY,
			finished_at        INTEGER NOT NULL,
			rounds             INTEGER,
			winner             TEXT,
			money_risk         REAL,
			money_adaptability REAL
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRound stores the round summary and one row per agent in a single transaction.
func (r *SQLiteRecorder) RecordRound(rec *RoundRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := rec.Result
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO rounds
		(run_id, timestamp, round, total_pool, min_contribution, excluded_count, recipient_count, payout)
		VALUES (?,?,?,?,?,?,?,?)`,
		r.runID, time.Now().Unix(), res.Round, res.TotalPool, res.MinContribution,
		len(res.Excluded), len(res.Recipients), res.Payout,
	); err != nil {
		return fmt.Errorf("insert round: %w", err)
	}

	for _, a := range rec.Agents {
		if _, err := tx.Exec(`INSERT INTO agent_rounds
			(run_id, round, agent_id, name, contribution, excluded, received, money, risk_level, adaptability)
			VALUES (?,?,?,?,?,?,?,?,?,?)`,
			r.runID, res.Round, a.ID.String(), a.Name, res.ContributionOf(a.ID),
			res.IsExcluded(a.ID), res.Received(a.ID), a.Money, a.RiskLevel, a.Adaptability,
		); err != nil {
			return fmt.Errorf("insert agent round %s: %w", a.Name, err)
		}
	}
	return tx.Commit()
}

// RecordFinal stores the final standings and the run summary.
func (r *SQLiteRecorder) RecordFinal(rec *FinalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, s := range rec.Standings {
		if _, err := tx.Exec(`INSERT INTO final_standings
			(run_id, timestamp, rounds, place, agent_id, name, money, winner)
			VALUES (?,?,?,?,?,?,?,?)`,
			r.runID, now, rec.Rounds, s.Place, s.ID.String(), s.Name, s.Money, s.Name == rec.Winner,
		); err != nil {
			return fmt.Errorf("insert standing %s: %w", s.Name, err)
		}
	}

	if _, err := tx.Exec(`INSERT OR REPLACE INTO runs
		(run_id, finished_at, rounds, winner, money_risk, money_adaptability)
		VALUES (?,?,?,?,?,?)`,
		r.runID, now, rec.Rounds, rec.Winner, rec.MoneyRisk, rec.MoneyAdaptability,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}
