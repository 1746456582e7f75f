package game

import "github.com/lox/klondike/internal/deck"

// PileKind identifies the kind of pile a card sits in
type PileKind int

const (
	PileStock PileKind = iota
	PileWaste
	PileFoundation
	PileTableau
)

func (k PileKind) String() string {
	switch k {
	case PileStock:
		return "stock"
	case PileWaste:
		return "waste"
	case PileFoundation:
		return "foundation"
	case PileTableau:
		return "tableau"
	default:
		return "unknown"
	}
}

// Location is where a card was found on the board
type Location struct {
	Pile  PileKind
	Index int // column or foundation index; zero for the waste
	Depth int // position within the pile, 0 is the bottom
}

// CanPlaceOnFoundation reports whether card may be placed on the foundation pile
func CanPlaceOnFoundation(card deck.Card, pile []deck.Card) bool {
	t, ok := top(pile)
	if !ok {
		return card.Rank == deck.Ace
	}
	return card.Suit == t.Suit && card.Rank == t.Rank+1
}

// CanPlaceOnTableau reports whether card may be placed on the tableau column
func CanPlaceOnTableau(card deck.Card, pile []deck.Card) bool {
	t, ok := top(pile)
	if !ok {
		return card.Rank == deck.King
	}
	return card.Color() != t.Color() && card.Rank == t.Rank-1
}

// Locate finds a face-up card by identity in the waste top or any tableau column.
// Foundation tops are not searched.
func Locate(b *Board, id deck.CardID) (Location, bool) {
	if c, ok := b.WasteTop(); ok && c.ID() == id {
		return Location{Pile: PileWaste, Depth: len(b.Waste) - 1}, true
	}
	for col, pile := range b.Tableau {
		for i, c := range pile {
			if c.FaceUp && c.ID() == id {
				return Location{Pile: PileTableau, Index: col, Depth: i}, true
			}
		}
	}
	return Location{}, false
}

// locateFoundationTop finds id on top of a foundation
func locateFoundationTop(b *Board, id deck.CardID) (Location, bool) {
	for i, pile := range b.Foundations {
		if c, ok := top(pile); ok && c.ID() == id {
			return Location{Pile: PileFoundation, Index: i, Depth: len(pile) - 1}, true
		}
	}
	return Location{}, false
}

// IsWon reports whether every foundation is complete
func IsWon(b *Board) bool {
	for _, f := range b.Foundations {
		if len(f) != FullFoundation {
			return false
		}
	}
	return true
}
