package game

import (
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/klondike/internal/randutil"
)

// Option configures a Game during creation.
type Option func(*gameConfig)

// gameConfig holds all configuration for creating a game.
type gameConfig struct {
	rng    *rand.Rand
	seed   int64
	rules  Rules
	logger *log.Logger
	board  *Board
	bus    EventBus
	clock  quartz.Clock
}

// WithSeed deals every board from a deterministic RNG seeded with seed.
func WithSeed(seed int64) Option {
	return func(c *gameConfig) {
		c.seed = seed
		c.rng = randutil.New(seed)
	}
}

// WithRNG deals every board from rng.
func WithRNG(rng *rand.Rand) Option {
	return func(c *gameConfig) {
		c.rng = rng
	}
}

// WithRules overrides DefaultRules.
func WithRules(r Rules) Option {
	return func(c *gameConfig) {
		c.rules = r
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(c *gameConfig) {
		c.logger = logger
	}
}

// WithBoard starts the game from a fixed board instead of dealing one.
// The board must satisfy Board.Validate.
func WithBoard(b *Board) Option {
	return func(c *gameConfig) {
		c.board = b
	}
}

// WithEventBus publishes events on bus instead of a private bus.
func WithEventBus(bus EventBus) Option {
	return func(c *gameConfig) {
		c.bus = bus
	}
}

// WithClock sets the clock used to timestamp events.
func WithClock(clock quartz.Clock) Option {
	return func(c *gameConfig) {
		c.clock = clock
	}
}

func newGameConfig(opts []Option) *gameConfig {
	cfg := &gameConfig{
		rules: DefaultRules(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.rng == nil {
		cfg.seed = randutil.NewSeed()
		cfg.rng = randutil.New(cfg.seed)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.bus == nil {
		cfg.bus = NewEventBus()
	}
	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	if cfg.rules.HistoryLimit <= 0 {
		cfg.rules.HistoryLimit = DefaultHistoryLimit
	}
	return cfg
}
