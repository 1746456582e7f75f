package game

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/klondike/internal/deck"
	"github.com/lox/klondike/internal/randutil"
)

var (
	// ErrSolving is returned for any mutation attempted while a plan is replaying
	ErrSolving = errors.New("auto-solve in progress")
	// ErrNotSolving is returned when stepping or aborting without a plan
	ErrNotSolving = errors.New("auto-solve not in progress")
	// ErrNotWinnable is returned when auto-solve is requested on an ineligible board
	ErrNotWinnable = errors.New("board is not winnable by auto-solve")
)

// Game owns the live board together with its undo history and lifecycle
// status. All methods are safe to call from a UI goroutine and a pacing
// goroutine at the same time; operations are serialized.
//
// Events are published after the game's lock is released, so subscribers may
// call back into the game.
type Game struct {
	mu      sync.Mutex
	rules   Rules
	board   *Board
	history *History
	status  Status
	plan    Plan
	planPos int

	seed   int64
	rng    *rand.Rand
	bus    EventBus
	clock  quartz.Clock
	logger *log.Logger
}

// New creates a game. Without WithBoard a shuffled board is dealt.
func New(opts ...Option) *Game {
	cfg := newGameConfig(opts)

	g := &Game{
		rules:   cfg.rules,
		history: NewHistory(cfg.rules.HistoryLimit),
		seed:    cfg.seed,
		rng:     cfg.rng,
		bus:     cfg.bus,
		clock:   cfg.clock,
		logger:  cfg.logger.WithPrefix("game"),
	}

	if cfg.board != nil {
		if err := cfg.board.Validate(); err != nil {
			panic(fmt.Sprintf("fixture board is invalid: %v", err))
		}
		g.board = cfg.board.Clone()
		g.status = statusFor(g.board)
		g.logger.Debug("Starting from fixed board", "moves", g.board.Moves)
	} else {
		g.board = Deal(deck.NewShuffled(g.rng))
		g.logger.Debug("Dealt new board", "seed", g.seed)
	}

	return g
}

// NewGame discards the current board and history and deals a fresh board.
// A replaying plan is dropped without an AutoSolveFinishedEvent.
func (g *Game) NewGame() *Board {
	g.mu.Lock()
	g.seed = g.rng.Int64()
	g.rng = randutil.New(g.seed)
	g.board = Deal(deck.NewShuffled(g.rng))
	g.history.Reset()
	g.status = Playing
	g.plan, g.planPos = nil, 0
	snapshot := g.board.Clone()
	ev := NewGameEvent{Seed: g.seed, Board: snapshot, timestamp: g.clock.Now()}
	g.mu.Unlock()

	g.logger.Info("New game", "seed", ev.Seed)
	g.publish(ev)
	return snapshot.Clone()
}

// Board returns a snapshot of the live board
func (g *Game) Board() *Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Clone()
}

// Status returns the lifecycle status
func (g *Game) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// Solving reports whether a plan is replaying. Mutations are rejected while true.
func (g *Game) Solving() bool {
	return g.Status() == Solving
}

// Rules returns the rules the game was created with
func (g *Game) Rules() Rules {
	return g.rules
}

// Seed returns the seed of the current deal, or zero for an injected RNG
func (g *Game) Seed() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seed
}

// CanUndo reports whether Undo would succeed
func (g *Game) CanUndo() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status != Solving && g.history.Len() > 0
}

// HistoryLen returns the number of boards available to undo into
func (g *Game) HistoryLen() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.history.Len()
}

// Events returns the bus events are published on
func (g *Game) Events() EventBus {
	return g.bus
}

// Draw draws from the stock or recycles the waste
func (g *Game) Draw() error {
	return g.Apply(DrawCommand())
}

// MoveToFoundation moves a card onto foundation i
func (g *Game) MoveToFoundation(id deck.CardID, i int) error {
	return g.Apply(ToFoundation(id, i))
}

// MoveToTableau moves a card and the cards stacked on it onto column i
func (g *Game) MoveToTableau(id deck.CardID, i int) error {
	return g.Apply(ToTableau(id, i))
}

// Apply validates and commits a command. A rejected command leaves the board
// and history untouched.
func (g *Game) Apply(cmd Command) error {
	g.mu.Lock()
	events, err := g.applyLocked(cmd)
	g.mu.Unlock()

	g.publish(events...)
	return err
}

func (g *Game) applyLocked(cmd Command) ([]GameEvent, error) {
	if g.status == Solving {
		return nil, ErrSolving
	}

	next, err := g.rules.Apply(g.board, cmd)
	if err != nil {
		g.logger.Debug("Rejected command", "command", cmd, "error", err)
		return nil, err
	}
	return g.commitLocked(next, cmd)
}

// commitLocked validates next, records the current board in history and
// makes next live.
func (g *Game) commitLocked(next *Board, cmd Command) ([]GameEvent, error) {
	if err := next.Validate(); err != nil {
		g.logger.Error("Board invariant violation", "command", cmd, "error", err)
		return nil, fmt.Errorf("board invariant violation: %w", err)
	}

	wasWon := g.board.Won
	g.history.Push(g.board)
	g.board = next
	if g.status != Solving {
		g.status = statusFor(next)
	}

	g.logger.Debug("Applied command", "command", cmd, "moves", next.Moves)

	now := g.clock.Now()
	events := []GameEvent{MoveAppliedEvent{Command: cmd, Board: next.Clone(), timestamp: now}}
	if next.Won && !wasWon {
		g.logger.Info("Game won", "moves", next.Moves)
		events = append(events, GameWonEvent{Moves: next.Moves, timestamp: now})
	}
	return events, nil
}

// Undo restores the most recent prior board
func (g *Game) Undo() error {
	g.mu.Lock()
	if g.status == Solving {
		g.mu.Unlock()
		return ErrSolving
	}
	prev, err := g.history.Pop()
	if err != nil {
		g.mu.Unlock()
		return err
	}
	g.board = prev
	g.status = statusFor(prev)
	ev := UndoEvent{Board: prev.Clone(), timestamp: g.clock.Now()}
	g.mu.Unlock()

	g.logger.Debug("Undo", "moves", ev.Board.Moves)
	g.publish(ev)
	return nil
}

// LegalCommands lists the commands currently accepted
func (g *Game) LegalCommands() []Command {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.status == Solving {
		return nil
	}
	return g.rules.LegalCommands(g.board)
}

// IsWinnable reports whether auto-solve would win from the live board
func (g *Game) IsWinnable() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status == Playing && IsWinnable(g.board)
}

// PlanAutoSolve returns the promotions auto-solve would make from the live board
func (g *Game) PlanAutoSolve() Plan {
	g.mu.Lock()
	defer g.mu.Unlock()
	return PlanMoves(g.board)
}

// BeginAutoSolve switches the game to Solving and returns the plan that
// StepAutoSolve will replay.
func (g *Game) BeginAutoSolve() (Plan, error) {
	g.mu.Lock()
	if g.status == Solving {
		g.mu.Unlock()
		return nil, ErrSolving
	}
	if g.status == Won || !IsWinnable(g.board) {
		g.mu.Unlock()
		return nil, ErrNotWinnable
	}
	g.plan = PlanMoves(g.board)
	g.planPos = 0
	g.status = Solving
	plan := append(Plan(nil), g.plan...)
	ev := AutoSolveStartedEvent{Plan: plan, timestamp: g.clock.Now()}
	g.mu.Unlock()

	g.logger.Info("Auto-solve started", "steps", len(plan))
	g.publish(ev)
	return plan, nil
}

// StepAutoSolve applies the next planned move. It reports done once the plan
// is exhausted, at which point the game has left Solving.
func (g *Game) StepAutoSolve() (done bool, err error) {
	g.mu.Lock()
	if g.status != Solving {
		g.mu.Unlock()
		return true, ErrNotSolving
	}

	var events []GameEvent
	if g.planPos < len(g.plan) {
		m := g.plan[g.planPos]
		c, _ := g.board.ColumnTop(m.Column)
		next, applyErr := ApplyPlannedMove(g.board, m)
		if applyErr == nil {
			events, applyErr = g.commitLocked(next, ToFoundation(c.ID(), m.Foundation))
		}
		if applyErr != nil {
			g.logger.Error("Planned move failed", "move", m, "error", applyErr)
			events = append(events, g.finishLocked(true))
			g.mu.Unlock()
			g.publish(events...)
			return true, applyErr
		}
		g.planPos++
	}

	if g.planPos >= len(g.plan) || g.board.Won {
		events = append(events, g.finishLocked(false))
		done = true
	}
	g.mu.Unlock()

	g.publish(events...)
	return done, nil
}

// AbortAutoSolve stops a replaying plan, leaving the board as it stands
func (g *Game) AbortAutoSolve() error {
	g.mu.Lock()
	if g.status != Solving {
		g.mu.Unlock()
		return ErrNotSolving
	}
	ev := g.finishLocked(true)
	g.mu.Unlock()

	g.publish(ev)
	return nil
}

// finishLocked leaves Solving. It is the only place the status moves out of
// Solving, so it runs exactly once per plan.
func (g *Game) finishLocked(aborted bool) GameEvent {
	steps := g.planPos
	g.plan, g.planPos = nil, 0
	g.status = statusFor(g.board)
	g.logger.Info("Auto-solve finished", "steps", steps, "won", g.board.Won, "aborted", aborted)
	return AutoSolveFinishedEvent{Steps: steps, Won: g.board.Won, Aborted: aborted, timestamp: g.clock.Now()}
}

// SolveInstantly jumps straight to the auto-solve result as a single
// undoable step.
func (g *Game) SolveInstantly() error {
	g.mu.Lock()
	if g.status == Solving {
		g.mu.Unlock()
		return ErrSolving
	}
	if g.status == Won || !IsWinnable(g.board) {
		g.mu.Unlock()
		return ErrNotWinnable
	}
	plan := PlanMoves(g.board)
	end := Simulate(g.board)
	var last Command
	if n := len(plan); n > 0 {
		c, _ := end.FoundationTop(plan[n-1].Foundation)
		last = ToFoundation(c.ID(), plan[n-1].Foundation)
	}
	events, err := g.commitLocked(end, last)
	g.mu.Unlock()

	if err == nil {
		g.logger.Info("Solved instantly", "steps", len(plan))
	}
	g.publish(events...)
	return err
}

func (g *Game) publish(events ...GameEvent) {
	for _, ev := range events {
		g.bus.Publish(ev)
	}
}

func statusFor(b *Board) Status {
	if b.Won {
		return Won
	}
	return Playing
}
