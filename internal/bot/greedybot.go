package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/klondike/internal/game"
)

// DefaultMaxRecycles is the number of trips through the stock without
// progress before GreedyBot resigns
const DefaultMaxRecycles = 2

// GreedyBot plays the first useful move it finds, in priority order:
// foundation moves, tableau moves that reveal a card, waste to tableau, then
// drawing. It only makes moves that cannot be undone by a later move, so a
// deal always ends.
type GreedyBot struct {
	rules       game.Rules
	maxRecycles int
	recycles    int
	logger      *log.Logger
}

// NewGreedyBot creates a GreedyBot for boards played under rules
func NewGreedyBot(rules game.Rules, logger *log.Logger) *GreedyBot {
	return &GreedyBot{
		rules:       rules,
		maxRecycles: DefaultMaxRecycles,
		logger:      logger.WithPrefix("greedy-bot"),
	}
}

// Reset forgets recycle tracking, ready for a new deal
func (g *GreedyBot) Reset() {
	g.recycles = 0
}

func (g *GreedyBot) Decide(b *game.Board) Decision {
	if game.IsWinnable(b) {
		return Decision{Action: Solve, Reasoning: "auto-solve can finish"}
	}

	var reveal, fromWaste *game.Command
	var draw bool
	for _, cmd := range g.rules.LegalCommands(b) {
		switch cmd.Kind {
		case game.CommandToFoundation:
			g.recycles = 0
			return Decision{Action: Move, Command: cmd, Reasoning: "foundation move"}
		case game.CommandToTableau:
			loc, ok := game.Locate(b, cmd.Card)
			if !ok {
				// foundation returns are never progress
				continue
			}
			switch {
			case loc.Pile == game.PileWaste && fromWaste == nil:
				fromWaste = &cmd
			case loc.Pile == game.PileTableau && reveal == nil && revealsCard(b, loc):
				reveal = &cmd
			}
		case game.CommandDraw:
			draw = true
		}
	}

	if reveal != nil {
		g.recycles = 0
		return Decision{Action: Move, Command: *reveal, Reasoning: "reveals a face-down card"}
	}
	if fromWaste != nil {
		g.recycles = 0
		return Decision{Action: Move, Command: *fromWaste, Reasoning: "plays the waste"}
	}
	if draw {
		if len(b.Stock) == 0 {
			if g.recycles >= g.maxRecycles {
				return Decision{Action: Resign, Reasoning: "no progress through the stock"}
			}
			g.recycles++
			return Decision{Action: Move, Command: game.DrawCommand(), Reasoning: "recycles the waste"}
		}
		return Decision{Action: Move, Command: game.DrawCommand(), Reasoning: "draws"}
	}
	return Decision{Action: Resign, Reasoning: "no legal moves"}
}

// revealsCard reports whether moving the run at loc leaves a face-down card on
// top of its column
func revealsCard(b *game.Board, loc game.Location) bool {
	col := b.Tableau[loc.Index]
	return loc.Depth > 0 && !col[loc.Depth-1].FaceUp
}
