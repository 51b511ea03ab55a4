package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/renderer"
	"github.com/pthm-cable/terrarium/sim"
	"github.com/pthm-cable/terrarium/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in ticks (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Use config stats window if not overridden by CLI
	window := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		window = *statsWindow
	}

	eco, err := sim.New(cfg, rngSeed)
	if err != nil {
		slog.Error("failed to build ecosystem", "error", err)
		os.Exit(1)
	}

	collector := telemetry.NewCollector(window)
	eco.AttachCollector(collector)

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config snapshot", "error", err)
	}

	r := &runner{
		eco:       eco,
		collector: collector,
		output:    output,
		logStats:  *logStats,
		maxTicks:  *maxTicks,
	}

	if *headless {
		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"stats_window", window,
			"max_ticks", *maxTicks,
			"steps_per_update", *stepsPerUpdate,
		)
		r.runHeadless(*stepsPerUpdate)
	} else {
		slog.Info("starting simulation",
			"seed", rngSeed,
			"stats_window", window,
		)
		r.runGraphical(cfg)
	}
}

type runner struct {
	eco       *sim.Ecosystem
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool
	maxTicks  int
}

// step advances one tick and flushes the stats window when due.
func (r *runner) step() {
	r.eco.Advance()

	tick := r.eco.Tick()
	if !r.collector.ShouldFlush(tick) {
		return
	}
	stats := r.collector.Flush(tick, r.eco.Snapshot())
	if err := r.output.WriteTelemetry(stats); err != nil {
		slog.Warn("failed to write telemetry", "error", err)
	}
	if r.logStats {
		slog.Info("window stats",
			"tick", tick,
			"population", stats.Population,
			"food", stats.FoodCount,
			"births", stats.Births,
			"deaths_starved", stats.DeathsStarved,
			"deaths_old_age", stats.DeathsOldAge,
			"food_eaten", stats.FoodEaten,
			"energy_mean", stats.EnergyMean,
			"max_generation", stats.MaxGeneration,
		)
	}
}

// done reports whether the run should stop.
func (r *runner) done() bool {
	if r.eco.IsEmpty() {
		slog.Info("population extinct", "tick", r.eco.Tick())
		return true
	}
	if r.maxTicks > 0 && int(r.eco.Tick()) >= r.maxTicks {
		slog.Info("max ticks reached", "tick", r.eco.Tick())
		return true
	}
	return false
}

func (r *runner) runHeadless(stepsPerUpdate int) {
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}
	for {
		for i := 0; i < stepsPerUpdate; i++ {
			r.step()
		}
		if r.done() {
			return
		}
	}
}

func (r *runner) runGraphical(cfg *config.Config) {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Terrarium")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	viewer := renderer.NewViewer(
		float32(cfg.Screen.Width), float32(cfg.Screen.Height),
		float32(cfg.World.Width), float32(cfg.World.Height),
	)

	finished := false
	for !rl.WindowShouldClose() {
		viewer.HandleInput()

		if !viewer.Paused() && !finished {
			for i := 0; i < viewer.Speed(); i++ {
				r.step()
			}
			finished = r.done()
		}

		viewer.Draw(r.eco.Snapshot())
	}
}
