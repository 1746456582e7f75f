// Package autosolve replays a game's auto-solve plan one promotion per clock
// tick, so a front end can animate the board finishing itself.
package autosolve

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/klondike/internal/game"
)

// DefaultInterval is the pause between two replayed promotions
const DefaultInterval = 250 * time.Millisecond

// Result summarizes a finished replay
type Result struct {
	Steps   int
	Won     bool
	Aborted bool
}

// Runner paces auto-solve steps on a clock
type Runner struct {
	game     *game.Game
	clock    quartz.Clock
	interval time.Duration
	logger   *log.Logger
}

// Option configures a Runner
type Option func(*Runner)

// WithClock sets the clock ticks are read from
func WithClock(clock quartz.Clock) Option {
	return func(r *Runner) {
		r.clock = clock
	}
}

// WithInterval sets the pause between steps. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a runner for g
func NewRunner(g *game.Game, opts ...Option) *Runner {
	r := &Runner{
		game:     g,
		clock:    quartz.NewReal(),
		interval: DefaultInterval,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithPrefix("autosolve")
	return r
}

// Interval returns the pause between steps
func (r *Runner) Interval() time.Duration {
	return r.interval
}

// Session is one replay started by Runner.Start
type Session struct {
	plan   game.Plan
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	result Result
	err    error
}

// Start switches the game to solving and replays the plan in the background,
// one step every interval. The replay stops early when ctx is cancelled or
// Stop is called; the game is then returned to playing with the steps taken
// so far kept.
func (r *Runner) Start(ctx context.Context) (*Session, error) {
	plan, err := r.game.BeginAutoSolve()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		plan:   plan,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	// The ticker exists before Start returns so the first tick is never missed.
	ticker := r.clock.NewTicker(r.interval)
	r.logger.Debug("Replaying plan", "steps", len(plan), "interval", r.interval)

	go func() {
		defer close(s.done)
		defer cancel()
		defer ticker.Stop()

		res, err := r.loop(ctx, ticker)
		s.mu.Lock()
		s.result, s.err = res, err
		s.mu.Unlock()
	}()

	return s, nil
}

// Run starts a replay and blocks until it ends
func (r *Runner) Run(ctx context.Context) (Result, error) {
	s, err := r.Start(ctx)
	if err != nil {
		return Result{}, err
	}
	return s.Wait()
}

func (r *Runner) loop(ctx context.Context, ticker *quartz.Ticker) (Result, error) {
	var res Result
	for {
		select {
		case <-ctx.Done():
			if err := r.game.AbortAutoSolve(); err != nil && !errors.Is(err, game.ErrNotSolving) {
				return res, err
			}
			r.logger.Info("Replay aborted", "steps", res.Steps)
			res.Aborted = true
			return res, nil

		case <-ticker.C:
			done, err := r.game.StepAutoSolve()
			if errors.Is(err, game.ErrNotSolving) {
				// the game left solving underneath us, e.g. a new deal
				res.Aborted = true
				return res, nil
			}
			if err != nil {
				res.Aborted = true
				return res, err
			}
			res.Steps++
			if done {
				res.Won = r.game.Board().Won
				r.logger.Debug("Replay finished", "steps", res.Steps, "won", res.Won)
				return res, nil
			}
		}
	}
}

// Plan returns the promotions being replayed
func (s *Session) Plan() game.Plan {
	return s.plan
}

// Stop aborts the replay. It is safe to call more than once.
func (s *Session) Stop() {
	s.cancel()
}

// Done is closed once the replay has ended
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the replay ends and returns its result
func (s *Session) Wait() (Result, error) {
	<-s.done
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.err
}
