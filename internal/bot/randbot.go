package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/klondike/internal/game"
)

// RandBot is a simple bot that makes uniform random legal moves
type RandBot struct {
	rules  game.Rules
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rules game.Rules, rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rules: rules, rng: rng, logger: logger}
}

func (r *RandBot) Decide(b *game.Board) Decision {
	if game.IsWinnable(b) {
		return Decision{Action: Solve, Reasoning: "rand-bot found a winnable board"}
	}

	cmds := r.rules.LegalCommands(b)
	if len(cmds) == 0 {
		return Decision{Action: Resign, Reasoning: "rand-bot no legal moves"}
	}
	return Decision{Action: Move, Command: cmds[r.rng.IntN(len(cmds))], Reasoning: "rand-bot random move"}
}
