package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/klondike/internal/autosolve"
	"github.com/lox/klondike/internal/bot"
	"github.com/lox/klondike/internal/game"
	"github.com/lox/klondike/internal/randutil"
	"github.com/lox/klondike/internal/tui"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

type DemoCmd struct {
	Seed     int64         `help:"Deal seed (0 for random)" default:"0"`
	Interval time.Duration `help:"Pause between auto-solve steps (defaults to the config value)"`
	NoColor  bool          `help:"Disable colored output"`
}

func (c *DemoCmd) Run(globals *Globals) error {
	cfg, err := globals.loadConfig()
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "demo",
		Level:           globals.level(cfg),
	})
	tui.UseColor(cfg.UI.Color && !c.NoColor)

	seed := c.Seed
	if seed == 0 {
		seed = randutil.NewSeed()
	}
	interval := cfg.AutoSolve.StepInterval
	if c.Interval > 0 {
		interval = c.Interval
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := game.New(
		game.WithSeed(seed),
		game.WithRules(cfg.GameRules()),
		game.WithLogger(logger),
	)
	g.Events().Subscribe(game.SubscriberFunc(printEvent(os.Stdout)))

	fmt.Println(titleStyle.Render(fmt.Sprintf(" Klondike deal %d ", seed)))
	fmt.Println()

	agent := bot.NewGreedyBot(g.Rules(), logger)
	outcome, err := bot.Play(ctx, g, agent, cfg.Simulate.MaxCommands, logger)
	if err != nil {
		return fmt.Errorf("bot failed: %w", err)
	}

	if outcome.Solvable {
		fmt.Println(tui.InfoStyle.Render("Every card is revealed, auto-solving"))
		runner := autosolve.NewRunner(g,
			autosolve.WithInterval(interval),
			autosolve.WithLogger(logger),
		)
		if _, err := runner.Run(ctx); err != nil {
			return fmt.Errorf("auto-solve failed: %w", err)
		}
	}

	b := g.Board()
	fmt.Println()
	switch {
	case g.Status() == game.Won:
		fmt.Println(tui.SuccessStyle.Render(fmt.Sprintf("Won in %d moves", b.Moves)))
	case outcome.Resigned:
		fmt.Println(tui.WarningStyle.Render(fmt.Sprintf("Bot resigned with %d cards on the foundations", b.FoundationCards())))
	default:
		fmt.Println(tui.ErrorStyle.Render(fmt.Sprintf("Stopped with %d cards on the foundations", b.FoundationCards())))
	}
	return nil
}

// printEvent writes one line per applied move
func printEvent(w io.Writer) func(game.GameEvent) {
	return func(ev game.GameEvent) {
		switch e := ev.(type) {
		case game.MoveAppliedEvent:
			fmt.Fprintf(w, "%4d  %s\n", e.Board.Moves, e.Command)
		case game.AutoSolveFinishedEvent:
			if e.Aborted {
				fmt.Fprintf(w, "Auto-solve stopped after %d steps\n", e.Steps)
			}
		}
	}
}
