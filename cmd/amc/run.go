// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/katalvlaran/stochrare/config"
	"github.com/katalvlaran/stochrare/dynamics"
	"github.com/katalvlaran/stochrare/markov"
	"github.com/katalvlaran/stochrare/trajio"
)

// Output file names inside Output.Dir.
const (
	fileTrajectory     = "trajectory.csv"
	fileSimulated      = "simulated.csv"
	fileCommittor      = "committor.csv"
	fileConfig         = "config.yaml"
	plotTrajectory     = "trajectory.png"
	plotSimulated      = "simulated.png"
	plotCommittorGraph = "committor.png"
)

// run parses args, resolves the configuration and executes the pipeline.
func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("amc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath  = fs.String("config", "", "YAML config file (defaults apply when empty or missing)")
		initPath    = fs.String("init", "", "write the default config to this path and exit")
		trajectory  = fs.String("trajectory", "", "trajectory CSV (generated when empty)")
		header      = fs.Bool("header", false, "trajectory CSV starts with a header row")
		k           = fs.Int("k", 0, "number of analogues")
		steps       = fs.Int("steps", -1, "analogue simulation steps")
		seed        = fs.Uint64("seed", 0, "simulation seed")
		outDir      = fs.String("out", "", "output directory")
		logLevel    = fs.String("log-level", "", "debug, info, warn or error")
		noPlots     = fs.Bool("no-plots", false, "skip PNG plots")
		noCommittor = fs.Bool("no-committor", false, "skip the committor")
		showVersion = fs.Bool("version", false, "print version and exit")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *showVersion {
		fmt.Fprintf(stdout, "amc %s\n", version)
		return nil
	}
	if *initPath != "" {
		if err := config.Default().Save(*initPath); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "config written to %s\n", *initPath)
		return nil
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		return err
	}
	// Flags given explicitly override the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "trajectory":
			cfg.Input.Trajectory = *trajectory
		case "header":
			cfg.Input.Header = *header
		case "k":
			cfg.Chain.K = *k
		case "steps":
			cfg.Simulate.Steps = *steps
		case "seed":
			cfg.Simulate.Seed = *seed
		case "out":
			cfg.Output.Dir = *outDir
		case "log-level":
			cfg.Log.Level = *logLevel
		case "no-plots":
			cfg.Output.Plots = !*noPlots
		case "no-committor":
			cfg.Committor.Enabled = !*noCommittor
		}
	})
	if err = cfg.Validate(); err != nil {
		return err
	}

	lvl, _ := cfg.SlogLevel()
	runID := uuid.NewString()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: lvl})).With("run", runID)

	res, err := pipeline(cfg, runID, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "run %s: %d states, %d simulated steps", runID, res.states, res.simulated)
	if res.committor {
		fmt.Fprintf(stdout, ", committor |A|=%d |B|=%d", res.sizeA, res.sizeB)
	}
	fmt.Fprintf(stdout, " -> %s\n", cfg.Output.Dir)
	return nil
}

type summary struct {
	states, simulated int
	committor         bool
	sizeA, sizeB      int
}

// pipeline loads the trajectory, builds the chain and writes every result.
func pipeline(cfg *config.Config, runID string, logger *slog.Logger) (summary, error) {
	var sum summary
	out := cfg.Output.Dir
	if err := os.MkdirAll(out, 0o755); err != nil {
		return sum, fmt.Errorf("create output dir: %w", err)
	}
	if err := cfg.Save(filepath.Join(out, fileConfig)); err != nil {
		return sum, err
	}

	tr, err := loadTrajectory(cfg)
	if err != nil {
		return sum, err
	}
	sum.states = len(tr.States)
	logger.Info("trajectory ready", "states", len(tr.States), "dim", len(tr.States[0]), "source", sourceName(cfg))
	if err = trajio.WriteTrajectoryFile(filepath.Join(out, fileTrajectory), tr.Columns, tr.States); err != nil {
		return sum, err
	}

	chain, err := markov.NewAnalogue(tr.States, cfg.Chain.K,
		markov.WithMaxStates(cfg.Chain.MaxStates),
		markov.WithLogger(logger),
	)
	if err != nil {
		return sum, err
	}
	logger.Info("analogue chain built", "k", chain.K(), "states", chain.Len())

	sim, err := chain.Simulate(markov.NewRand(cfg.Simulate.Seed), cfg.Simulate.Start, cfg.Simulate.Steps)
	if err != nil {
		return sum, err
	}
	sum.simulated = len(sim) - 1
	if err = trajio.WriteTrajectoryFile(filepath.Join(out, fileSimulated), tr.Columns, sim); err != nil {
		return sum, err
	}

	coord := cfg.Committor.Coordinate
	if cfg.Output.Plots {
		if err = trajio.PlotTrajectory(filepath.Join(out, plotTrajectory), "trajectory", tr.States, 0); err != nil {
			return sum, err
		}
		if err = trajio.PlotTrajectory(filepath.Join(out, plotSimulated), "analogue simulation", sim, 0); err != nil {
			return sum, err
		}
	}

	if !cfg.Committor.Enabled {
		return sum, nil
	}
	if coord >= len(tr.States[0]) {
		return sum, fmt.Errorf("committor.coordinate=%d, trajectory dim %d: %w", coord, len(tr.States[0]), config.ErrInvalid)
	}
	a, b := markov.LevelSets(tr.States, markov.Coordinate(coord), cfg.Committor.ABelow, cfg.Committor.BAbove)
	q, err := chain.Committor(a, b)
	switch {
	case errors.Is(err, markov.ErrIllConditionedAbsorption), errors.Is(err, markov.ErrPartitionOverlap):
		// The chain is fine; the requested sets just do not define a committor.
		logger.Warn("committor skipped", "err", err, "a", len(a), "b", len(b))
		return sum, nil
	case err != nil:
		return sum, err
	}
	sum.committor, sum.sizeA, sum.sizeB = true, len(a), len(b)
	logger.Info("committor solved", "a", len(a), "b", len(b))

	if err = trajio.WriteCommittorFile(filepath.Join(out, fileCommittor), runID, tr.Columns, tr.States, q); err != nil {
		return sum, err
	}
	if cfg.Output.Plots {
		if err = trajio.PlotCommittor(filepath.Join(out, plotCommittorGraph), "committor", tr.States, q, coord); err != nil {
			return sum, err
		}
	}
	return sum, nil
}

// loadTrajectory reads Input.Trajectory or integrates the configured model.
func loadTrajectory(cfg *config.Config) (*trajio.Trajectory, error) {
	if cfg.Input.Trajectory != "" {
		return trajio.ReadTrajectoryFile(cfg.Input.Trajectory, cfg.Input.Header)
	}

	g := cfg.Generate
	l := dynamics.Langevin{Sigma: g.Sigma, Dim: len(g.X0)}
	switch g.Model {
	case config.ModelOU:
		l.Drift = dynamics.OrnsteinUhlenbeck(g.Theta, g.Mu)
	default:
		l.Drift = dynamics.DoubleWell()
	}
	xs, err := l.Integrate(markov.NewRand(g.Seed), markov.State(g.X0), g.Samples,
		dynamics.WithTimeStep(g.TimeStep),
		dynamics.WithThinning(g.Thinning),
	)
	if err != nil {
		return nil, err
	}
	return &trajio.Trajectory{States: xs}, nil
}

func sourceName(cfg *config.Config) string {
	if cfg.Input.Trajectory != "" {
		return cfg.Input.Trajectory
	}
	return "generated:" + cfg.Generate.Model
}
