// Package config loads the klondike HCL configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/klondike/internal/autosolve"
	"github.com/lox/klondike/internal/bot"
	"github.com/lox/klondike/internal/game"
	"github.com/lox/klondike/internal/simulator"
)

// DefaultFile is the config file read when --config is not given
const DefaultFile = "klondike.hcl"

// Config represents the complete configuration
type Config struct {
	Rules     RulesSettings
	AutoSolve AutoSolveSettings
	UI        UISettings
	Simulate  SimulateSettings
}

// RulesSettings contains the rule variations a table can choose
type RulesSettings struct {
	HistoryLimit     int
	CountDraws       bool
	FoundationReturn bool
}

// AutoSolveSettings controls the animated auto-solve
type AutoSolveSettings struct {
	StepInterval time.Duration
}

// UISettings contains user interface settings
type UISettings struct {
	Color    bool
	LogLevel string
	LogFile  string
}

// SimulateSettings contains defaults for the simulate command
type SimulateSettings struct {
	Games       int
	Workers     int
	Bot         string
	MaxCommands int
}

// The file* types mirror the HCL layout. Optional attributes are pointers so
// an explicit false or zero can be told apart from a missing value.
type fileConfig struct {
	Rules     *fileRules     `hcl:"rules,block"`
	AutoSolve *fileAutoSolve `hcl:"autosolve,block"`
	UI        *fileUI        `hcl:"ui,block"`
	Simulate  *fileSimulate  `hcl:"simulate,block"`
}

type fileRules struct {
	HistoryLimit     *int  `hcl:"history_limit,optional"`
	CountDraws       *bool `hcl:"count_draws,optional"`
	FoundationReturn *bool `hcl:"foundation_return,optional"`
}

type fileAutoSolve struct {
	StepInterval *string `hcl:"step_interval,optional"`
}

type fileUI struct {
	Color    *bool   `hcl:"color,optional"`
	LogLevel *string `hcl:"log_level,optional"`
	LogFile  *string `hcl:"log_file,optional"`
}

type fileSimulate struct {
	Games       *int    `hcl:"games,optional"`
	Workers     *int    `hcl:"workers,optional"`
	Bot         *string `hcl:"bot,optional"`
	MaxCommands *int    `hcl:"max_commands,optional"`
}

// Default returns default configuration
func Default() *Config {
	rules := game.DefaultRules()
	return &Config{
		Rules: RulesSettings{
			HistoryLimit:     rules.HistoryLimit,
			CountDraws:       rules.CountDraws,
			FoundationReturn: rules.FoundationReturn,
		},
		AutoSolve: AutoSolveSettings{
			StepInterval: autosolve.DefaultInterval,
		},
		UI: UISettings{
			Color:    true,
			LogLevel: "info",
			LogFile:  "klondike.log",
		},
		Simulate: SimulateSettings{
			Games:       100,
			Workers:     0,
			Bot:         simulator.BotGreedy,
			MaxCommands: bot.DefaultMaxCommands,
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// Parse loads configuration from HCL source held in memory
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*Config, error) {
	var fc fileConfig
	diags := gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply file values over the defaults
	config := Default()

	if r := fc.Rules; r != nil {
		setIf(&config.Rules.HistoryLimit, r.HistoryLimit)
		setIf(&config.Rules.CountDraws, r.CountDraws)
		setIf(&config.Rules.FoundationReturn, r.FoundationReturn)
	}

	if a := fc.AutoSolve; a != nil && a.StepInterval != nil {
		d, err := time.ParseDuration(*a.StepInterval)
		if err != nil {
			return nil, fmt.Errorf("autosolve step_interval: %w", err)
		}
		config.AutoSolve.StepInterval = d
	}

	if u := fc.UI; u != nil {
		setIf(&config.UI.Color, u.Color)
		setIf(&config.UI.LogLevel, u.LogLevel)
		setIf(&config.UI.LogFile, u.LogFile)
	}

	if s := fc.Simulate; s != nil {
		setIf(&config.Simulate.Games, s.Games)
		setIf(&config.Simulate.Workers, s.Workers)
		setIf(&config.Simulate.Bot, s.Bot)
		setIf(&config.Simulate.MaxCommands, s.MaxCommands)
	}

	return config, nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Rules.HistoryLimit < 1 {
		return fmt.Errorf("history limit must be positive: %d", c.Rules.HistoryLimit)
	}

	if c.AutoSolve.StepInterval <= 0 {
		return fmt.Errorf("auto-solve step interval must be positive: %s", c.AutoSolve.StepInterval)
	}

	if _, err := log.ParseLevel(c.UI.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.UI.LogLevel)
	}
	if c.UI.LogFile == "" {
		return fmt.Errorf("log file is required")
	}

	if c.Simulate.Games < 1 {
		return fmt.Errorf("simulate games must be positive: %d", c.Simulate.Games)
	}
	if c.Simulate.Workers < 0 {
		return fmt.Errorf("simulate workers cannot be negative: %d", c.Simulate.Workers)
	}
	if c.Simulate.MaxCommands < 1 {
		return fmt.Errorf("simulate max commands must be positive: %d", c.Simulate.MaxCommands)
	}
	switch c.Simulate.Bot {
	case simulator.BotGreedy, simulator.BotRandom:
	default:
		return fmt.Errorf("invalid simulate bot %s", c.Simulate.Bot)
	}

	return nil
}

// GameRules returns the rules section as game.Rules
func (c *Config) GameRules() game.Rules {
	return game.Rules{
		HistoryLimit:     c.Rules.HistoryLimit,
		CountDraws:       c.Rules.CountDraws,
		FoundationReturn: c.Rules.FoundationReturn,
	}
}

// Level returns the configured log level, falling back to info
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.UI.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
