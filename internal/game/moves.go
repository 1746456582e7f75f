package game

import (
	"errors"
	"fmt"

	"github.com/lox/klondike/internal/deck"
)

// ErrIllegalMove is wrapped by every rejected command
var ErrIllegalMove = errors.New("illegal move")

// DefaultHistoryLimit is the number of prior boards kept for undo
const DefaultHistoryLimit = 50

// Rules holds the product decisions that differ between Klondike front ends.
type Rules struct {
	// HistoryLimit caps the number of undoable prior boards
	HistoryLimit int
	// CountDraws makes draw and recycle increment the move counter
	CountDraws bool
	// FoundationReturn allows a foundation top to be moved back onto the tableau
	FoundationReturn bool
}

// DefaultRules returns the rules used unless configured otherwise
func DefaultRules() Rules {
	return Rules{
		HistoryLimit: DefaultHistoryLimit,
		CountDraws:   true,
	}
}

// Draw moves the stock top to the waste face-up. With an empty stock it
// recycles the waste back into the stock in reverse order, face-down.
// Draw never rejects.
func (r Rules) Draw(b *Board) *Board {
	next := b.Clone()
	if n := len(next.Stock); n > 0 {
		c := next.Stock[n-1]
		next.Stock = next.Stock[:n-1]
		next.Waste = append(next.Waste, c.Up())
	} else {
		stock := make([]deck.Card, 0, len(next.Waste))
		for i := len(next.Waste) - 1; i >= 0; i-- {
			stock = append(stock, next.Waste[i].Down())
		}
		next.Stock = stock
		next.Waste = next.Waste[:0]
	}
	if r.CountDraws {
		next.Moves++
	}
	return next
}

// MoveToFoundation moves the card identified by id onto foundation i. Only
// the waste top or a column top may move. On rejection b is returned
// unchanged along with an error wrapping ErrIllegalMove.
func (r Rules) MoveToFoundation(b *Board, id deck.CardID, i int) (*Board, error) {
	if i < 0 || i >= NumFoundations {
		return b, fmt.Errorf("%w: foundation %d does not exist", ErrIllegalMove, i+1)
	}

	loc, ok := Locate(b, id)
	if !ok {
		return b, fmt.Errorf("%w: %s is not a playable card", ErrIllegalMove, id)
	}
	pile := pileAt(b, loc)
	if loc.Depth != len(pile)-1 {
		return b, fmt.Errorf("%w: %s is not on top of its pile", ErrIllegalMove, id)
	}

	card := pile[loc.Depth]
	if !CanPlaceOnFoundation(card, b.Foundations[i]) {
		return b, fmt.Errorf("%w: %s cannot go on foundation %d", ErrIllegalMove, id, i+1)
	}

	next := b.Clone()
	moved := next.take(loc)
	next.Foundations[i] = append(next.Foundations[i], moved...)
	next.afterMove()
	return next, nil
}

// MoveToTableau moves the card identified by id, together with every card
// stacked on top of it, onto column i. Legality is checked only for the
// bottom card of the moving run against the column top.
func (r Rules) MoveToTableau(b *Board, id deck.CardID, i int) (*Board, error) {
	if i < 0 || i >= NumColumns {
		return b, fmt.Errorf("%w: column %d does not exist", ErrIllegalMove, i+1)
	}

	loc, ok := Locate(b, id)
	if !ok && r.FoundationReturn {
		loc, ok = locateFoundationTop(b, id)
	}
	if !ok {
		return b, fmt.Errorf("%w: %s is not a playable card", ErrIllegalMove, id)
	}
	if loc.Pile == PileTableau && loc.Index == i {
		return b, fmt.Errorf("%w: %s is already in column %d", ErrIllegalMove, id, i+1)
	}

	run := pileAt(b, loc)[loc.Depth:]
	if !isRun(run) {
		return b, fmt.Errorf("%w: cards above %s do not form a run", ErrIllegalMove, id)
	}
	if !CanPlaceOnTableau(run[0], b.Tableau[i]) {
		return b, fmt.Errorf("%w: %s cannot go on column %d", ErrIllegalMove, id, i+1)
	}

	next := b.Clone()
	moved := next.take(loc)
	next.Tableau[i] = append(next.Tableau[i], moved...)
	next.afterMove()
	return next, nil
}

// Apply dispatches a command to the matching move
func (r Rules) Apply(b *Board, cmd Command) (*Board, error) {
	switch cmd.Kind {
	case CommandDraw:
		return r.Draw(b), nil
	case CommandToFoundation:
		return r.MoveToFoundation(b, cmd.Card, cmd.Target)
	case CommandToTableau:
		return r.MoveToTableau(b, cmd.Card, cmd.Target)
	default:
		return b, fmt.Errorf("%w: unknown command kind %d", ErrIllegalMove, cmd.Kind)
	}
}

// Draw applies DefaultRules().Draw
func Draw(b *Board) *Board {
	return DefaultRules().Draw(b)
}

// MoveToFoundation applies DefaultRules().MoveToFoundation
func MoveToFoundation(b *Board, id deck.CardID, i int) (*Board, error) {
	return DefaultRules().MoveToFoundation(b, id, i)
}

// MoveToTableau applies DefaultRules().MoveToTableau
func MoveToTableau(b *Board, id deck.CardID, i int) (*Board, error) {
	return DefaultRules().MoveToTableau(b, id, i)
}

// afterMove finishes a foundation or tableau move
func (b *Board) afterMove() {
	b.Moves++
	b.Won = IsWon(b)
}

// take removes the cards from loc to the end of its pile and exposes the new
// column top. It must only be called on a clone.
func (b *Board) take(loc Location) []deck.Card {
	var pile *[]deck.Card
	switch loc.Pile {
	case PileWaste:
		pile = &b.Waste
	case PileFoundation:
		pile = &b.Foundations[loc.Index]
	case PileTableau:
		pile = &b.Tableau[loc.Index]
	default:
		return nil
	}

	moved := make([]deck.Card, 0, len(*pile)-loc.Depth)
	for _, c := range (*pile)[loc.Depth:] {
		moved = append(moved, c.Up())
	}
	*pile = (*pile)[:loc.Depth]

	if loc.Pile == PileTableau && loc.Depth > 0 {
		(*pile)[loc.Depth-1] = (*pile)[loc.Depth-1].Up()
	}
	return moved
}

func pileAt(b *Board, loc Location) []deck.Card {
	switch loc.Pile {
	case PileStock:
		return b.Stock
	case PileWaste:
		return b.Waste
	case PileFoundation:
		return b.Foundations[loc.Index]
	case PileTableau:
		return b.Tableau[loc.Index]
	default:
		return nil
	}
}

// isRun reports whether cards are face-up, alternating in color and descending by one
func isRun(cards []deck.Card) bool {
	for i, c := range cards {
		if !c.FaceUp {
			return false
		}
		if i > 0 && !CanPlaceOnTableau(c, cards[i-1:i]) {
			return false
		}
	}
	return len(cards) > 0
}
