package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"CommonPool/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Simulation.Seed = 42
	cfg.Simulation.Rounds = 5
	return cfg
}

func TestRunSimulation(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, runSimulation(context.Background(), testConfig(t), false, &stdout, &stderr))

	out := stdout.String()
	assert.Contains(t, out, "Round 5")
	assert.Contains(t, out, "SCOREBOARD")
	assert.Contains(t, out, "The winner is ")
	assert.Contains(t, stderr.String(), "puts")
}

func TestRunSimulation_SameSeedSameOutcome(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, runSimulation(context.Background(), testConfig(t), false, &a, &bytes.Buffer{}))
	require.NoError(t, runSimulation(context.Background(), testConfig(t), false, &b, &bytes.Buffer{}))
	assert.Equal(t, a.String(), b.String())
}

func TestRunSimulation_RecordsToSQLite(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.SQLitePath = filepath.Join(t.TempDir(), "runs.db")

	require.NoError(t, runSimulation(context.Background(), cfg, false, &bytes.Buffer{}, &bytes.Buffer{}))
	info, err := os.Stat(cfg.Database.SQLitePath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestBuildRoster_ConfiguredAgents(t *testing.T) {
	cfg := testConfig(t)
	cfg.Agents = []config.AgentConfig{
		{Name: "Bold", RiskLevel: 0.1, Adaptability: 0.9},
		{RiskLevel: 0.9, Adaptability: 0.1},
	}
	agents, err := buildRoster(cfg, 1, nil)
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.Equal(t, "Bold", agents[0].Name)
	assert.Equal(t, "Agent_2", agents[1].Name)
}

func TestRunCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run",
		"--config", filepath.Join(t.TempDir(), "none.yaml"),
		"--rounds", "3", "--agents", "3", "--seed", "7"})

	require.NoError(t, cmd.Execute())
	out := stdout.String()
	assert.Contains(t, out, "Round 3")
	assert.Equal(t, 3, strings.Count(out, "º place"))
}

func TestRunCmd_InvalidFlags(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "--config", filepath.Join(t.TempDir(), "none.yaml"), "--agents", "1"})
	assert.Error(t, cmd.Execute())
}

func TestVersionCmd(t *testing.T) {
	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "commonpool version")
}
