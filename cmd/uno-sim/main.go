// Command uno-sim trains a learning agent by playing card game
// tournaments against baseline opponents, records the win-rate curve,
// and exports the learned value table.
//
// Configuration comes from flags, with UNO_* environment variables (or
// a .env file) supplying defaults.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ayaelnakeb/uno-ai-model/engine/agent"
	"github.com/ayaelnakeb/uno-ai-model/internal/eventlog"
	"github.com/ayaelnakeb/uno-ai-model/internal/vizserver"
	"github.com/ayaelnakeb/uno-ai-model/sim"
)

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("uno-sim failed")
	}
}

func run() error {
	_ = godotenv.Load()

	def := sim.DefaultConfig()
	iterations := flag.Int("iterations", envInt("UNO_ITERATIONS", def.Iterations), "number of games to play")
	algorithm := flag.String("algorithm", envStr("UNO_ALGORITHM", string(def.Algorithm)), "learning algorithm: q-learning or monte-carlo")
	alpha := flag.Float64("alpha", envFloat("UNO_ALPHA", def.LearningRate), "Q-Learning step size")
	gamma := flag.Float64("gamma", envFloat("UNO_GAMMA", def.DiscountFactor), "discount factor")
	epsilon := flag.Float64("epsilon", envFloat("UNO_EPSILON", def.Epsilon), "initial exploration rate")
	epsilonDecay := flag.Float64("epsilon-decay", envFloat("UNO_EPSILON_DECAY", def.EpsilonDecay), "per-episode epsilon decay")
	epsilonMin := flag.Float64("epsilon-min", envFloat("UNO_EPSILON_MIN", def.EpsilonMin), "exploration floor")
	players := flag.Int("players", envInt("UNO_PLAYERS", def.NumPlayers), "players at the table (2-4)")
	opponent := flag.String("opponent", envStr("UNO_OPPONENT", string(def.Opponent)), "baseline opponent: random or greedy")
	maxTurns := flag.Int("max-turns", envInt("UNO_MAX_TURNS", def.MaxTurns), "turn cap per game before declaring a draw")
	seed := flag.Uint64("seed", 0, "random seed; 0 takes a time-based seed")
	resultsPath := flag.String("out", envStr("UNO_RESULTS", "results.csv"), "win-rate series output file")
	qtablePath := flag.String("qtable", envStr("UNO_QTABLE", "q-values.csv"), "learned value table output file")
	serveAddr := flag.String("serve", envStr("UNO_SERVE", ""), "address for the live progress server, e.g. :8080 (off when empty)")
	logLevel := flag.String("log-level", envStr("UNO_LOG_LEVEL", "info"), "logrus level")
	logEvents := flag.Bool("log-events", false, "log every game event at debug level")
	flag.Parse()

	log := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	log.SetLevel(level)

	cfg := sim.Config{
		Iterations:     *iterations,
		Algorithm:      sim.Algorithm(*algorithm),
		LearningRate:   *alpha,
		DiscountFactor: *gamma,
		Epsilon:        *epsilon,
		EpsilonDecay:   *epsilonDecay,
		EpsilonMin:     *epsilonMin,
		NumPlayers:     *players,
		Opponent:       sim.Opponent(*opponent),
		MaxTurns:       *maxTurns,
		Seed:           *seed,
		Seeded:         *seed != 0,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	agents, err := sim.BuildAgents(cfg)
	if err != nil {
		return err
	}

	elog := eventlog.New(log)
	opts := []sim.Option{}
	if *logEvents {
		opts = append(opts, sim.WithEventSink(elog.GameSink()))
	}

	// The hook closure ranges over the slice variable, so hooks added
	// after the driver exists (the progress server) still run.
	hooks := []sim.IterationHook{elog.IterationHook()}
	opts = append(opts, sim.WithIterationHook(func(p sim.Point) {
		for _, h := range hooks {
			h(p)
		}
	}))

	driver, err := sim.NewDriver(cfg, agents, opts...)
	if err != nil {
		return err
	}

	if *serveAddr != "" {
		viz := vizserver.New(driver.Series(), driver.Summary, log)
		hooks = append(hooks, viz.Publish)
		httpSrv := &http.Server{Addr: *serveAddr, Handler: viz.Handler()}
		go func() {
			log.WithField("addr", *serveAddr).Info("progress server listening")
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("progress server")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = httpSrv.Shutdown(shutdownCtx)
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(logrus.Fields{
		"iterations": cfg.Iterations,
		"algorithm":  cfg.Algorithm,
		"players":    cfg.NumPlayers,
	}).Info("tournament starting")

	series, runErr := driver.RunTournament(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.WithError(runErr).Warn("tournament ended with errors")
	}
	if errors.Is(runErr, context.Canceled) {
		log.Info("interrupted; writing partial results")
	}

	elog.Summary(driver.Summary())

	if err := writeResultsCSV(*resultsPath, driver.Outcomes(), series.Points()); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	log.WithField("path", *resultsPath).Info("wrote win-rate series")

	if reporter, ok := agents[0].(agent.ValueReporter); ok {
		if err := writeTableCSV(*qtablePath, reporter.TableSnapshot()); err != nil {
			return fmt.Errorf("write value table: %w", err)
		}
		log.WithField("path", *qtablePath).Info("wrote value table")
	}

	return nil
}
