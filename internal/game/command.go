package game

import (
	"fmt"

	"github.com/lox/klondike/internal/deck"
)

// CommandKind identifies a player command
type CommandKind int

const (
	// CommandDraw draws from the stock, or recycles the waste when the stock is empty
	CommandDraw CommandKind = iota
	// CommandToFoundation moves a single card onto a foundation
	CommandToFoundation
	// CommandToTableau moves a card, and everything stacked on it, onto a column
	CommandToTableau
)

func (k CommandKind) String() string {
	switch k {
	case CommandDraw:
		return "draw"
	case CommandToFoundation:
		return "foundation"
	case CommandToTableau:
		return "tableau"
	default:
		return "unknown"
	}
}

// Command is a discrete move issued by a presentation layer
type Command struct {
	Kind   CommandKind
	Card   deck.CardID // ignored for draws
	Target int         // foundation or column index
}

// DrawCommand returns a draw command
func DrawCommand() Command {
	return Command{Kind: CommandDraw}
}

// ToFoundation returns a command moving card onto foundation i
func ToFoundation(card deck.CardID, i int) Command {
	return Command{Kind: CommandToFoundation, Card: card, Target: i}
}

// ToTableau returns a command moving card onto column i
func ToTableau(card deck.CardID, i int) Command {
	return Command{Kind: CommandToTableau, Card: card, Target: i}
}

func (c Command) String() string {
	switch c.Kind {
	case CommandDraw:
		return "draw"
	case CommandToFoundation:
		return fmt.Sprintf("%s to foundation %d", c.Card, c.Target+1)
	case CommandToTableau:
		return fmt.Sprintf("%s to column %d", c.Card, c.Target+1)
	default:
		return "unknown command"
	}
}
