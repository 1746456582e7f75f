package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/klondike/internal/fileutil"
	"github.com/lox/klondike/internal/simulator"
)

type SimulateCmd struct {
	Games       int           `help:"Number of deals to play (defaults to the config value)"`
	Bot         string        `help:"Bot type: greedy, random (defaults to the config value)"`
	Seed        int64         `help:"Base RNG seed (0 for random)" default:"0"`
	Workers     int           `help:"Parallel workers (0 uses the config value or all CPUs)"`
	MaxCommands int           `help:"Command limit per deal (defaults to the config value)"`
	Timeout     time.Duration `help:"Time limit per deal (0 for none)" default:"0s"`
	Quiet       bool          `short:"q" help:"Hide the progress bar"`
	Report      string        `help:"Also write the summary to this file" type:"path"`
}

func (c *SimulateCmd) Run(globals *Globals) error {
	cfg, err := globals.loadConfig()
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "simulate",
		Level:           globals.level(cfg),
	})

	sc := simulator.Config{
		Games:       firstPositive(c.Games, cfg.Simulate.Games),
		Bot:         cfg.Simulate.Bot,
		Seed:        c.Seed,
		Workers:     firstPositive(c.Workers, cfg.Simulate.Workers),
		MaxCommands: firstPositive(c.MaxCommands, cfg.Simulate.MaxCommands),
		Timeout:     c.Timeout,
		Rules:       cfg.GameRules(),
		Logger:      logger,
	}
	if c.Bot != "" {
		sc.Bot = c.Bot
	}
	if sc.Seed == 0 {
		sc.Seed = time.Now().UnixNano()
	}

	var progress *progressBar
	if !c.Quiet {
		progress = newProgressBar(os.Stderr, sc.Games)
		sc.Progress = progress.Update
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting simulation", "games", sc.Games, "bot", sc.Bot, "seed", sc.Seed)
	start := time.Now()
	stats, err := simulator.New(sc).Run(ctx)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	simulator.PrintSummary(os.Stdout, stats, sc.Bot)
	if c.Report != "" {
		err := fileutil.WriteAtomic(c.Report, 0o644, func(w io.Writer) error {
			simulator.PrintSummary(w, stats, sc.Bot)
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("Wrote report", "path", c.Report)
	}
	elapsed := time.Since(start)
	fmt.Printf("\nCompleted %d deals in %.1f seconds (%.0f deals/sec)\n",
		stats.Games, elapsed.Seconds(), float64(stats.Games)/elapsed.Seconds())
	return nil
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
