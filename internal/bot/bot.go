// Package bot contains automated Klondike players used by the simulator and
// the demo command.
package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/klondike/internal/game"
)

// Action is what an agent wants to do next
type Action int

const (
	// Move applies Decision.Command
	Move Action = iota
	// Solve hands the rest of the game to auto-solve
	Solve
	// Resign gives up on the deal
	Resign
)

func (a Action) String() string {
	switch a {
	case Move:
		return "move"
	case Solve:
		return "solve"
	case Resign:
		return "resign"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Decision is an agent's choice together with a short reason for logging
type Decision struct {
	Action    Action
	Command   game.Command
	Reasoning string
}

// Agent picks the next action for a board
type Agent interface {
	Decide(b *game.Board) Decision
}

// DefaultMaxCommands caps the commands Play issues for one deal
const DefaultMaxCommands = 1000

// Outcome summarizes one deal played by Play
type Outcome struct {
	Commands int
	// Solvable is set when the agent stopped because auto-solve can finish
	Solvable bool
	Resigned bool
	Won      bool
}

// Play lets agent drive g until the game is won, the agent resigns or asks
// for auto-solve, or maxCommands commands have been issued. Play never runs
// auto-solve itself; callers decide whether to animate or jump.
func Play(ctx context.Context, g *game.Game, agent Agent, maxCommands int, logger *log.Logger) (Outcome, error) {
	if maxCommands <= 0 {
		maxCommands = DefaultMaxCommands
	}

	var out Outcome
	for out.Commands < maxCommands {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if g.Status() == game.Won {
			out.Won = true
			return out, nil
		}

		d := agent.Decide(g.Board())
		switch d.Action {
		case Solve:
			logger.Debug("Board is winnable", "commands", out.Commands)
			out.Solvable = true
			return out, nil
		case Resign:
			logger.Debug("Agent resigned", "commands", out.Commands, "reasoning", d.Reasoning)
			out.Resigned = true
			return out, nil
		}

		if err := g.Apply(d.Command); err != nil {
			if errors.Is(err, game.ErrIllegalMove) {
				return out, fmt.Errorf("agent chose %s: %w", d.Command, err)
			}
			return out, err
		}
		out.Commands++
		logger.Debug("Agent moved", "command", d.Command, "reasoning", d.Reasoning)
	}

	out.Won = g.Status() == game.Won
	if !out.Won {
		out.Resigned = true
	}
	return out, nil
}
