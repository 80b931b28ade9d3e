package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"CommonPool/internal/agent"
	"CommonPool/internal/config"
	"CommonPool/internal/game"
	"CommonPool/internal/logging"
	"CommonPool/internal/recorder"
	"CommonPool/internal/scheduler"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "commonpool",
		Short: "Public-goods game simulation with adaptive, Bayesian agents",
		Long: `commonpool simulates a repeated common-pool game. Every round each agent
puts part of its money into a shared pool, the lowest contributors are
excluded, and the pool is inflated by 50% and split among the rest. Agents
update their beliefs about each other and adapt their risk preference.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "commonpool version %s\n", version)
		},
	}
}

// runOptions are the command-line overrides of the configuration.
type runOptions struct {
	configPath string
	rounds     int
	agents     int
	seed       uint64
	paced      bool
	step       string
	dbPath     string
	logLevel   string
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation and print the final scoreboard",
		Long: `Run a simulation to completion.

Without --paced every round is played immediately. With --paced rounds are
played on the --step cron schedule and the scoreboard is logged after each
one, until all rounds are done or the process is interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runSimulation(ctx, cfg, opts.paced, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	defaultConfig := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultConfig = v
	}
	cmd.Flags().StringVar(&opts.configPath, "config", defaultConfig, "Path to the YAML configuration")
	cmd.Flags().IntVar(&opts.rounds, "rounds", 0, "Number of rounds (overrides config)")
	cmd.Flags().IntVar(&opts.agents, "agents", 0, "Number of randomly drawn agents (overrides config)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Random seed; 0 draws one")
	cmd.Flags().BoolVar(&opts.paced, "paced", false, "Play rounds on a cron schedule instead of all at once")
	cmd.Flags().StringVar(&opts.step, "step", "", "Cron spec for paced rounds, e.g. \"@every 2s\"")
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "SQLite file to record the round history to")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: info, debug or trace")
	return cmd
}

func loadConfig(cmd *cobra.Command, opts *runOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("rounds") {
		cfg.Simulation.Rounds = opts.rounds
	}
	if flags.Changed("agents") {
		cfg.Simulation.RandomAgents = opts.agents
		cfg.Agents = nil
	}
	if flags.Changed("seed") {
		cfg.Simulation.Seed = opts.seed
	}
	if flags.Changed("step") {
		cfg.Schedule.StepCron = opts.step
	}
	if flags.Changed("db") {
		cfg.Database.SQLitePath = opts.dbPath
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func runSimulation(ctx context.Context, cfg *config.Config, paced bool, stdout, stderr io.Writer) error {
	logger := logging.NewLogger(cfg.Logging.Level, stderr)

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger.Info("simulation starting", "rounds", cfg.Simulation.Rounds, "seed", seed)

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.Warn("init sqlite recorder failed, using noop", "err", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	agents, err := buildRoster(cfg, seed, logger)
	if err != nil {
		return err
	}
	env := game.NewEnvironment(agents, agent.NewNormalSampler(seed),
		game.WithRecorder(rec), game.WithLogger(logger))
	session, err := game.NewSession(env, cfg.Simulation.Rounds)
	if err != nil {
		return err
	}

	if paced {
		err = runPaced(ctx, session, cfg.Schedule.StepCron, logger)
	} else {
		_, err = session.RunAll(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, env.Scores())
	fmt.Fprintln(stdout)
	fmt.Fprint(stdout, session.Summary())
	return nil
}

func runPaced(ctx context.Context, session *game.Session, stepSpec string, logger *slog.Logger) error {
	sched := scheduler.NewScheduler(ctx, session, logger)
	if err := sched.Register(stepSpec); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	select {
	case <-sched.Done():
		return sched.Err()
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping...")
		return ctx.Err()
	}
}

// buildRoster uses the configured agents when present and otherwise draws
// a random roster from a source derived from seed.
func buildRoster(cfg *config.Config, seed uint64, logger *slog.Logger) ([]*agent.Agent, error) {
	if len(cfg.Agents) > 0 {
		specs := make([]game.AgentSpec, len(cfg.Agents))
		for i, a := range cfg.Agents {
			specs[i] = game.AgentSpec{
				Name:         a.Name,
				RiskLevel:    a.RiskLevel,
				Adaptability: a.Adaptability,
				InitialMoney: a.InitialMoney,
			}
		}
		return game.NewRoster(specs, cfg.Simulation.InitialMoney, logger)
	}
	src := rand.NewPCG(seed, ^seed)
	return game.RandomRoster(cfg.Simulation.RandomAgents, cfg.Simulation.InitialMoney, src, logger)
}
