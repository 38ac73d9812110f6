package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/barnyard-arcade/internal/core"
	"github.com/vovakirdan/barnyard-arcade/internal/games/brawl"
	"github.com/vovakirdan/barnyard-arcade/internal/platform/watch"
	"github.com/vovakirdan/barnyard-arcade/internal/scripting"
	"github.com/vovakirdan/barnyard-arcade/internal/sim"
	"github.com/vovakirdan/barnyard-arcade/internal/storage"
)

var (
	flagSimP1     string
	flagSimP2     string
	flagScript    string
	flagWatch     string
	flagRounds    int
	flagSimJSON   bool
	flagSimSave   bool
	flagSimConfig string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless CPU vs CPU brawl",
	Long: `Fight a brawl between two computer players without a terminal UI and
print the result. The same --seed always produces the same bout.

Player 2 can be driven by a Lua policy instead of the built-in CPU: pass a
file path, or the name of a built-in policy (see 'arcade list').

With --watch the bout runs in real time and every frame is streamed as a
JSON snapshot to websocket spectators at ws://<addr>/watch.

Examples:
  arcade simulate --seed 42
  arcade simulate --p1 mooana --p2 rocky --rounds 2
  arcade simulate --script turtle
  arcade simulate --script ./my_policy.lua --json
  arcade simulate --watch :8080`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagSimP1, "p1", "gigi", "Character for player 1")
	simulateCmd.Flags().StringVar(&flagSimP2, "p2", "brandy", "Character for player 2")
	simulateCmd.Flags().StringVar(&flagScript, "script", "", "Lua policy for player 2 (file or built-in name)")
	simulateCmd.Flags().StringVar(&flagWatch, "watch", "", "Serve a websocket spectator feed on this address")
	simulateCmd.Flags().IntVar(&flagRounds, "rounds", 0, "Rounds needed to win the match (0 = config value)")
	simulateCmd.Flags().BoolVar(&flagSimJSON, "json", false, "Print round results as JSON")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Store the bouts in the scores database")
	simulateCmd.Flags().StringVar(&flagSimConfig, "config", "", "Path to custom brawl config YAML")
}

func runSimulate(_ *cobra.Command, _ []string) {
	logger := newLogger("simulate")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := simulate(ctx, logger); err != nil {
		logger.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

// policyFor resolves --script to a Lua policy.
func policyFor(name string, seed int64) (*scripting.LuaPolicy, error) {
	rng := scripting.WithRand(rand.New(rand.NewSource(seed)))
	if _, err := os.Stat(name); err == nil {
		return scripting.LoadFile(name, rng)
	}
	return scripting.Builtin(name, rng)
}

func simulate(ctx context.Context, logger *log.Logger) error {
	brawl.SetConfigPath(flagSimConfig)
	cfg, err := brawl.LoadConfig()
	if err != nil {
		return err
	}
	if flagRounds > 0 {
		cfg.Match.RoundsToWin = flagRounds
	}

	opts := []brawl.Option{brawl.WithSeed(flagSeed), brawl.WithCPU(core.Player1)}
	var script *scripting.LuaPolicy
	if flagScript != "" {
		script, err = policyFor(flagScript, flagSeed)
		if err != nil {
			return err
		}
		defer script.Close()
		opts = append(opts, brawl.WithPolicy(core.Player2, script))
		logger.Info("player 2 scripted", "policy", script.Name())
	} else {
		opts = append(opts, brawl.WithCPU(core.Player2))
	}

	match, err := brawl.NewMatch(cfg, flagSimP1, flagSimP2, opts...)
	if err != nil {
		return err
	}

	events := sim.NewRecorder(nil)
	loop := sim.Loop{
		TickRate: flagFPS,
		// Worst case every round runs the full clock plus its reveal.
		MaxFrames: int64(flagFPS) * int64(cfg.Match.TimerSeconds+5) * int64(2*cfg.Match.RoundsToWin),
	}

	var hub *watch.Hub
	if flagWatch != "" {
		hub = watch.NewHub(watch.Config{Logger: logger})
		defer hub.Close()
		stopServer, err := serveWatch(flagWatch, hub, logger)
		if err != nil {
			return err
		}
		defer stopServer()
		loop.Paced = true
	}

	loop.OnFrame = func(time.Duration) {
		drained := match.Drain()
		for _, ev := range drained {
			events.Emit(ev)
		}
		if hub != nil {
			snap := match.Snapshot()
			snap.Events = drained
			if err := hub.Publish(snap); err != nil {
				logger.Debug("publish failed", "error", err)
			}
		}
	}

	logger.Info("bout started",
		"p1", flagSimP1, "p2", flagSimP2, "seed", flagSeed, "rounds_to_win", cfg.Match.RoundsToWin)
	outcome, err := loop.Run(ctx, match)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("simulate: %w", err)
	}
	if script != nil && script.Err() != nil {
		logger.Warn("lua policy reported an error", "error", script.Err())
	}

	if err := report(match, outcome); err != nil {
		return err
	}
	logger.Info("bout finished",
		"outcome", outcome,
		"hits", events.Count(sim.EventHit),
		"blocked", events.Count(sim.EventBlocked),
		"specials", events.Count(sim.EventSpecial))

	if flagSimSave {
		saveBouts(match, logger)
	}

	if hub != nil && ctx.Err() == nil {
		logger.Info("bout over, spectators keep the final frame; Ctrl+C to stop")
		<-ctx.Done()
	}
	return nil
}

// serveWatch starts the spectator endpoint in the background.
func serveWatch(addr string, hub *watch.Hub, logger *log.Logger) (func(), error) {
	mux := http.NewServeMux()
	mux.Handle("/watch", hub)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	// Give the listener a moment to fail on a bad address.
	select {
	case err := <-errc:
		return nil, fmt.Errorf("simulate: watch server: %w", err)
	case <-time.After(100 * time.Millisecond):
	}
	logger.Info("spectator feed ready", "url", "ws://"+addr+"/watch")

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		//nolint:errcheck // Best-effort shutdown
		srv.Shutdown(ctx)
	}, nil
}

// report prints the match result to stdout.
func report(match *brawl.Match, outcome sim.Outcome) error {
	history := match.History()
	if flagSimJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Outcome sim.Outcome    `json:"outcome"`
			Rounds  []brawl.Result `json:"rounds"`
		}{outcome, history})
	}

	for i, res := range history {
		fmt.Printf("Round %d: %s beats %s (%s) in %.1fs, health %.0f-%.0f\n",
			i+1, winnerName(res), loserName(res), res.Reason, res.Duration.Seconds(), res.P1Health, res.P2Health)
	}
	switch outcome {
	case sim.OutcomeP1Won, sim.OutcomeP2Won:
		fmt.Printf("Match: %s wins %d-%d\n", outcome, match.Wins(core.Player1), match.Wins(core.Player2))
	default:
		fmt.Println("Match: unfinished")
	}
	return nil
}

func winnerName(r brawl.Result) string {
	if r.Winner == core.Player2 {
		return r.P2
	}
	return r.P1
}

func loserName(r brawl.Result) string {
	if r.Winner == core.Player2 {
		return r.P1
	}
	return r.P2
}

func saveBouts(match *brawl.Match, logger *log.Logger) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		return
	}
	defer store.Close()

	for _, res := range match.History() {
		if _, err := store.SaveBout(brawl.BoutOf(res, "sim")); err != nil {
			logger.Warn("could not save bout", "error", err)
		}
	}
}
