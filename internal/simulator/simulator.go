package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/klondike/internal/bot"
	"github.com/lox/klondike/internal/game"
	"github.com/lox/klondike/internal/randutil"
	"github.com/lox/klondike/internal/statistics"
)

// Bot names accepted by Config.Bot
const (
	BotGreedy = "greedy"
	BotRandom = "random"
)

// Config holds configuration for running simulations
type Config struct {
	Games       int
	Bot         string
	Seed        int64
	Workers     int
	MaxCommands int
	Timeout     time.Duration // per deal; zero means no limit
	Rules       game.Rules
	Logger      *log.Logger

	// Progress, when set, is called after every finished deal. It may be
	// called from several goroutines at once.
	Progress func(done, total int)
}

// Simulator plays many independent deals and aggregates the results
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.MaxCommands <= 0 {
		config.MaxCommands = bot.DefaultMaxCommands
	}
	if config.Bot == "" {
		config.Bot = BotGreedy
	}
	if config.Rules.HistoryLimit <= 0 {
		config.Rules = game.DefaultRules()
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

// Run plays every deal and returns the aggregated statistics. Deal i is
// dealt from randutil.Derive(Seed, i), so results do not depend on the number
// of workers.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Games <= 0 {
		return nil, fmt.Errorf("invalid games count: %d", s.config.Games)
	}
	if s.config.Bot != BotGreedy && s.config.Bot != BotRandom {
		return nil, fmt.Errorf("unknown bot type %q", s.config.Bot)
	}

	results := make([]statistics.GameResult, s.config.Games)
	var done atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := range s.config.Games {
		seed := randutil.Derive(s.config.Seed, i)
		g.Go(func() error {
			result, err := s.playGameWithTimeout(ctx, seed)
			if err != nil {
				return fmt.Errorf("deal %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = result
			if s.config.Progress != nil {
				s.config.Progress(int(done.Add(1)), s.config.Games)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// playGameWithTimeout runs a single deal with timeout protection
func (s *Simulator) playGameWithTimeout(ctx context.Context, seed int64) (statistics.GameResult, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	result, err := s.PlayGame(ctx, seed)
	if errors.Is(err, context.DeadlineExceeded) {
		return result, fmt.Errorf("deal timed out after %v", s.config.Timeout)
	}
	return result, err
}

// PlayGame plays one deal to the end with the configured bot. When the bot
// reaches a winnable board the rest is finished by auto-solve.
func (s *Simulator) PlayGame(ctx context.Context, seed int64) (statistics.GameResult, error) {
	logger := s.config.Logger.With("seed", seed)
	g := game.New(
		game.WithSeed(seed),
		game.WithRules(s.config.Rules),
		game.WithLogger(logger),
	)
	startDown := g.Board().FaceDownCount()

	out, err := bot.Play(ctx, g, s.newAgent(seed, logger), s.config.MaxCommands, logger)
	if err != nil {
		return statistics.GameResult{}, err
	}

	autoSolved := false
	if out.Solvable {
		if err := g.SolveInstantly(); err != nil {
			return statistics.GameResult{}, fmt.Errorf("auto-solve: %w", err)
		}
		autoSolved = true
	}

	b := g.Board()
	return statistics.GameResult{
		Seed:            seed,
		Won:             b.Won,
		AutoSolved:      autoSolved,
		Resigned:        out.Resigned,
		Moves:           b.Moves,
		Commands:        out.Commands,
		FoundationCards: b.FoundationCards(),
		Revealed:        startDown - b.FaceDownCount(),
	}, nil
}

func (s *Simulator) newAgent(seed int64, logger *log.Logger) bot.Agent {
	switch s.config.Bot {
	case BotRandom:
		return bot.NewRandBot(s.config.Rules, randutil.New(seed^0x5eed), logger)
	default:
		return bot.NewGreedyBot(s.config.Rules, logger)
	}
}

// RunSimulation is a convenience function for running a simulation with basic parameters
func RunSimulation(ctx context.Context, games int, botType string, seed int64, logger *log.Logger) (*statistics.Statistics, error) {
	return New(Config{
		Games:  games,
		Bot:    botType,
		Seed:   seed,
		Logger: logger,
	}).Run(ctx)
}

// PrintSummary writes a summary of simulation results to w
func PrintSummary(w io.Writer, stats *statistics.Statistics, botType string) {
	low, high := stats.WinRateInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS for %s-bot ===\n", botType)
	fmt.Fprintf(w, "Deals played: %d\n", stats.Games)
	fmt.Fprintf(w, "Won: %d (%.1f%%), 95%% CI [%.1f%%, %.1f%%]\n",
		stats.Wins, stats.WinRate()*100, low*100, high*100)
	fmt.Fprintf(w, "Finished by auto-solve: %d\n", stats.AutoSolves)
	fmt.Fprintf(w, "Resigned: %d\n", stats.Resigns)

	if stats.Wins > 0 {
		fmt.Fprintf(w, "\n=== WINNING DEALS ===\n")
		fmt.Fprintf(w, "Moves: mean %.1f, min %d, max %d\n",
			stats.MeanWinMoves(), stats.MinWinMoves, stats.MaxWinMoves)
	}

	fmt.Fprintf(w, "\n=== FOUNDATION PROGRESS ===\n")
	fmt.Fprintf(w, "Mean: %.2f cards/deal (std dev %.2f, std err %.2f)\n",
		stats.Mean(), stats.StdDev(), stats.StdError())
	fmt.Fprintf(w, "Median: %.1f\n", stats.Median())
	fmt.Fprintf(w, "Percentiles: P5=%.1f, P25=%.1f, P75=%.1f, P95=%.1f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))
	fmt.Fprintf(w, "Face-down cards revealed: %.1f/deal\n", float64(stats.TotalRevealed)/float64(stats.Games))
	fmt.Fprintf(w, "Commands issued: %.1f/deal\n", float64(stats.TotalCommands)/float64(stats.Games))
}
