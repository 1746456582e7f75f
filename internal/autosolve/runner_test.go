package autosolve

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/klondike/internal/deck"
	"github.com/lox/klondike/internal/game"
)

const testInterval = 100 * time.Millisecond

func newTestGame(t *testing.T) (*game.Game, <-chan game.GameEvent) {
	t.Helper()
	g := game.New(
		game.WithBoard(game.SolvableBoard()),
		game.WithLogger(log.New(io.Discard)),
	)
	steps := make(chan game.GameEvent, deck.Size)
	g.Events().Subscribe(game.SubscriberFunc(func(ev game.GameEvent) {
		if ev.EventType() == game.EventTypeMoveApplied {
			steps <- ev
		}
	}))
	return g, steps
}

// tick advances the mock clock by one interval and waits for the step it triggers
func tick(ctx context.Context, t *testing.T, clock *quartz.Mock, steps <-chan game.GameEvent) {
	t.Helper()
	clock.Advance(testInterval).MustWait(ctx)
	select {
	case <-steps:
	case <-ctx.Done():
		t.Fatal("timed out waiting for auto-solve step")
	}
}

func TestRunnerReplaysWholePlan(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clock := quartz.NewMock(t)
	g, steps := newTestGame(t)
	r := NewRunner(g, WithClock(clock), WithInterval(testInterval))

	s, err := r.Start(ctx)
	require.NoError(t, err)
	require.Len(t, s.Plan(), deck.Size)
	assert.Equal(t, game.Solving, g.Status())

	for i := range deck.Size {
		tick(ctx, t, clock, steps)
		if i < deck.Size-1 {
			assert.Equal(t, game.Solving, g.Status(), "step %d", i)
		}
	}

	res, err := s.Wait()
	require.NoError(t, err)
	assert.Equal(t, Result{Steps: deck.Size, Won: true}, res)
	assert.Equal(t, game.Won, g.Status())
	assert.True(t, g.Board().Won)
}

func TestRunnerStepsOnlyOnTicks(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clock := quartz.NewMock(t)
	g, steps := newTestGame(t)
	s, err := NewRunner(g, WithClock(clock), WithInterval(testInterval)).Start(ctx)
	require.NoError(t, err)
	defer s.Stop()

	clock.Advance(testInterval / 2).MustWait(ctx)
	assert.Zero(t, g.Board().FoundationCards())

	clock.Advance(testInterval / 2).MustWait(ctx)
	select {
	case <-steps:
	case <-ctx.Done():
		t.Fatal("timed out waiting for auto-solve step")
	}
	assert.Equal(t, 1, g.Board().FoundationCards())
}

func TestRunnerStop(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clock := quartz.NewMock(t)
	g, steps := newTestGame(t)
	s, err := NewRunner(g, WithClock(clock), WithInterval(testInterval)).Start(ctx)
	require.NoError(t, err)

	for range 3 {
		tick(ctx, t, clock, steps)
	}
	s.Stop()
	s.Stop()

	res, err := s.Wait()
	require.NoError(t, err)
	assert.Equal(t, Result{Steps: 3, Aborted: true}, res)
	assert.Equal(t, game.Playing, g.Status())
	assert.Equal(t, 3, g.Board().FoundationCards())
	assert.True(t, g.IsWinnable())
}

func TestRunnerParentContextCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clock := quartz.NewMock(t)
	g, _ := newTestGame(t)

	runCtx, stop := context.WithCancel(ctx)
	s, err := NewRunner(g, WithClock(clock), WithInterval(testInterval)).Start(runCtx)
	require.NoError(t, err)
	stop()

	select {
	case <-s.Done():
	case <-ctx.Done():
		t.Fatal("replay did not stop")
	}
	res, err := s.Wait()
	require.NoError(t, err)
	assert.True(t, res.Aborted)
	assert.Equal(t, game.Playing, g.Status())
}

func TestRunnerNewDealEndsReplay(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clock := quartz.NewMock(t)
	g, steps := newTestGame(t)
	s, err := NewRunner(g, WithClock(clock), WithInterval(testInterval)).Start(ctx)
	require.NoError(t, err)

	tick(ctx, t, clock, steps)
	g.NewGame()
	clock.Advance(testInterval).MustWait(ctx)

	res, err := s.Wait()
	require.NoError(t, err)
	assert.Equal(t, Result{Steps: 1, Aborted: true}, res)
}

func TestRunnerRejectsUnwinnableBoard(t *testing.T) {
	g := game.New(game.WithSeed(1))
	_, err := NewRunner(g, WithClock(quartz.NewMock(t))).Start(context.Background())
	assert.ErrorIs(t, err, game.ErrNotWinnable)
	assert.Equal(t, game.Playing, g.Status())
}

func TestRunnerOptions(t *testing.T) {
	g := game.New(game.WithSeed(1))
	assert.Equal(t, DefaultInterval, NewRunner(g).Interval())
	assert.Equal(t, DefaultInterval, NewRunner(g, WithInterval(0)).Interval())
	assert.Equal(t, time.Second, NewRunner(g, WithInterval(time.Second)).Interval())
}
