package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// AgentConfig describes one hand-configured agent.
type AgentConfig struct {
	Name         string   `yaml:"name"`
	RiskLevel    float64  `yaml:"risk_level"`
	Adaptability float64  `yaml:"adaptability"`
	InitialMoney *float64 `yaml:"initial_money"`
}

// Config holds all application configuration.
type Config struct {
	Simulation struct {
		Rounds       int     `yaml:"rounds"`
		Seed         uint64  `yaml:"seed"`
		InitialMoney float64 `yaml:"initial_money"`
		RandomAgents int     `yaml:"random_agents"`
	} `yaml:"simulation"`
	// Agents, when set, replaces the random roster.
	Agents   []AgentConfig `yaml:"agents"`
	Schedule struct {
		StepCron string `yaml:"step_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	// Environment variable overrides
	if v := os.Getenv("COMMONPOOL_ROUNDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.Rounds = n
		}
	}
	if v := os.Getenv("COMMONPOOL_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Simulation.Seed = n
		}
	}
	if v := os.Getenv("COMMONPOOL_AGENTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.RandomAgents = n
		}
	}
	if v := os.Getenv("COMMONPOOL_STEP_CRON"); v != "" {
		cfg.Schedule.StepCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("COMMONPOOL_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Defaults
	if cfg.Simulation.Rounds == 0 {
		cfg.Simulation.Rounds = 10
	}
	if cfg.Simulation.InitialMoney == 0 {
		cfg.Simulation.InitialMoney = 10
	}
	if cfg.Simulation.RandomAgents == 0 {
		cfg.Simulation.RandomAgents = 4
	}
	if cfg.Schedule.StepCron == "" {
		cfg.Schedule.StepCron = "@every 1s"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	return cfg, nil
}

// Validate checks that all settings are within range.
func (c *Config) Validate() error {
	if c.Simulation.Rounds <= 0 {
		return fmt.Errorf("simulation.rounds must be positive, got %d", c.Simulation.Rounds)
	}
	if c.Simulation.InitialMoney < 0 {
		return fmt.Errorf("simulation.initial_money must be non-negative, got %v", c.Simulation.InitialMoney)
	}
	if len(c.Agents) == 0 && c.Simulation.RandomAgents < 2 {
		return fmt.Errorf("simulation.random_agents must be at least 2, got %d", c.Simulation.RandomAgents)
	}
	if len(c.Agents) == 1 {
		return fmt.Errorf("agents: at least 2 agents are required, got 1")
	}
	for i, a := range c.Agents {
		if a.RiskLevel < 0 || a.RiskLevel > 1 {
			return fmt.Errorf("agents[%d].risk_level must be between 0 and 1, got %v", i, a.RiskLevel)
		}
		if a.Adaptability < 0 || a.Adaptability > 1 {
			return fmt.Errorf("agents[%d].adaptability must be between 0 and 1, got %v", i, a.Adaptability)
		}
		if a.InitialMoney != nil && *a.InitialMoney < 0 {
			return fmt.Errorf("agents[%d].initial_money must be non-negative, got %v", i, *a.InitialMoney)
		}
	}
	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace)", c.Logging.Level)
	}
	return nil
}
