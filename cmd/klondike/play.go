package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/klondike/internal/game"
	"github.com/lox/klondike/internal/randutil"
	"github.com/lox/klondike/internal/tui"
)

type PlayCmd struct {
	Seed    int64  `help:"Deal seed (0 for random)" default:"0"`
	NoColor bool   `help:"Disable colored output"`
	LogFile string `help:"Debug log file (defaults to the config value)"`
}

func (c *PlayCmd) Run(globals *Globals) error {
	cfg, err := globals.loadConfig()
	if err != nil {
		return err
	}

	path := cfg.UI.LogFile
	if c.LogFile != "" {
		path = c.LogFile
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return fmt.Errorf("failed to create debug log: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close debug file", "error", err)
		}
	}()

	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "klondike",
		Level:           globals.level(cfg),
	})

	seed := c.Seed
	if seed == 0 {
		seed = randutil.NewSeed()
	}
	logger.Info("Starting interactive game", "seed", seed, "config", globals.Config)

	tui.UseColor(cfg.UI.Color && !c.NoColor)

	g := game.New(
		game.WithSeed(seed),
		game.WithRules(cfg.GameRules()),
		game.WithLogger(logger),
	)
	model := tui.New(g, logger, tui.WithStepInterval(cfg.AutoSolve.StepInterval))

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	logger.Info("Game closed", "status", g.Status(), "moves", g.Board().Moves)
	return nil
}
