package simulator

import (
	"bytes"
	"context"
	"io"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/klondike/internal/game"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
}

func TestNewAppliesDefaults(t *testing.T) {
	sim := New(Config{Games: 10})
	assert.Equal(t, BotGreedy, sim.config.Bot)
	assert.Positive(t, sim.config.Workers)
	assert.Positive(t, sim.config.MaxCommands)
	assert.Equal(t, game.DefaultRules(), sim.config.Rules)
	assert.NotNil(t, sim.config.Logger)
}

func TestRunGreedy(t *testing.T) {
	var calls atomic.Int64
	sim := New(Config{
		Games:    12,
		Seed:     12345,
		Workers:  4,
		Logger:   quietLogger(),
		Progress: func(done, total int) { calls.Add(1) },
	})

	stats, err := sim.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 12, stats.Games)
	assert.Equal(t, int64(12), calls.Load())
	assert.Equal(t, stats.Wins, stats.FoundationHistogram[52])
	require.NoError(t, stats.Validate())
}

func TestRunIsIndependentOfWorkers(t *testing.T) {
	run := func(workers int) []float64 {
		stats, err := New(Config{
			Games:   8,
			Seed:    77,
			Workers: workers,
			Logger:  quietLogger(),
		}).Run(context.Background())
		require.NoError(t, err)
		return stats.Values
	}

	assert.Equal(t, run(1), run(8))
}

func TestRunRandomBot(t *testing.T) {
	stats, err := New(Config{
		Games:       4,
		Bot:         BotRandom,
		Seed:        3,
		MaxCommands: 200,
		Logger:      quietLogger(),
	}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Games)
}

func TestRunRejectsBadConfig(t *testing.T) {
	_, err := New(Config{Games: 0}).Run(context.Background())
	assert.ErrorContains(t, err, "invalid games count")

	_, err = New(Config{Games: 1, Bot: "tag"}).Run(context.Background())
	assert.ErrorContains(t, err, "unknown bot type")
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{Games: 5, Logger: quietLogger()}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlayGameIsDeterministic(t *testing.T) {
	sim := New(Config{Logger: quietLogger()})
	a, err := sim.PlayGame(context.Background(), 99)
	require.NoError(t, err)
	b, err := sim.PlayGame(context.Background(), 99)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, int64(99), a.Seed)
	if a.Won {
		assert.Equal(t, 52, a.FoundationCards)
	}
}

func TestRunSimulationAndSummary(t *testing.T) {
	stats, err := RunSimulation(context.Background(), 3, BotGreedy, 1, quietLogger())
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintSummary(&buf, stats, BotGreedy)
	out := buf.String()
	assert.Contains(t, out, "FINAL RESULTS for greedy-bot")
	assert.Contains(t, out, "Deals played: 3")
	assert.Contains(t, out, "FOUNDATION PROGRESS")
}
