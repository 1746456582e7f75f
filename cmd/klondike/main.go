package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/klondike/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Config  string           `short:"c" help:"Path to HCL config file" default:"${config_file}" type:"path"`
	Debug   bool             `help:"Enable debug logging"`
}

type CLI struct {
	Globals

	Play     PlayCmd     `cmd:"" default:"withargs" help:"Play an interactive game (default)"`
	Simulate SimulateCmd `cmd:"" help:"Play many deals with a bot and report statistics"`
	Demo     DemoCmd     `cmd:"" help:"Watch a bot play one deal and auto-solve the rest"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("klondike"),
		kong.Description("Klondike solitaire in the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": config.DefaultFile,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// loadConfig reads and validates the config file
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", g.Config, err)
	}
	return cfg, nil
}

// level returns the log level, raised to debug by --debug
func (g *Globals) level(cfg *config.Config) log.Level {
	if g.Debug {
		return log.DebugLevel
	}
	return cfg.Level()
}
