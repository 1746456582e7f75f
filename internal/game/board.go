package game

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/klondike/internal/deck"
)

const (
	// NumFoundations is the number of foundation piles
	NumFoundations = 4
	// NumColumns is the number of tableau columns
	NumColumns = 7
	// FullFoundation is the length of a completed foundation
	FullFoundation = 13
)

// Board is a complete Klondike position. A committed Board is never mutated:
// every transition clones it first and returns the clone.
type Board struct {
	Stock       []deck.Card // face-down, drawn from the tail
	Waste       []deck.Card // tail is the only playable card
	Foundations [NumFoundations][]deck.Card
	Tableau     [NumColumns][]deck.Card
	Moves       int
	Won         bool
}

// Deal lays out a fresh board from the deck: column i receives i+1 cards with
// only the last face-up, and the remaining cards form the stock.
func Deal(d *deck.Deck) *Board {
	cards := d.Cards()
	b := &Board{}

	next := 0
	for col := 0; col < NumColumns; col++ {
		pile := make([]deck.Card, 0, col+1)
		for i := 0; i <= col; i++ {
			c := cards[next].Down()
			if i == col {
				c = c.Up()
			}
			pile = append(pile, c)
			next++
		}
		b.Tableau[col] = pile
	}

	b.Stock = make([]deck.Card, 0, len(cards)-next)
	for _, c := range cards[next:] {
		b.Stock = append(b.Stock, c.Down())
	}
	b.Waste = []deck.Card{}
	for i := range b.Foundations {
		b.Foundations[i] = []deck.Card{}
	}

	return b
}

// Clone returns a structural copy that shares no card storage with b
func (b *Board) Clone() *Board {
	out := &Board{
		Stock: slices.Clone(b.Stock),
		Waste: slices.Clone(b.Waste),
		Moves: b.Moves,
		Won:   b.Won,
	}
	for i := range b.Foundations {
		out.Foundations[i] = slices.Clone(b.Foundations[i])
	}
	for i := range b.Tableau {
		out.Tableau[i] = slices.Clone(b.Tableau[i])
	}
	return out
}

// WasteTop returns the playable waste card, if any
func (b *Board) WasteTop() (deck.Card, bool) {
	return top(b.Waste)
}

// FoundationTop returns the top card of foundation i, if any
func (b *Board) FoundationTop(i int) (deck.Card, bool) {
	if i < 0 || i >= NumFoundations {
		return deck.Card{}, false
	}
	return top(b.Foundations[i])
}

// ColumnTop returns the top card of tableau column i, if any
func (b *Board) ColumnTop(i int) (deck.Card, bool) {
	if i < 0 || i >= NumColumns {
		return deck.Card{}, false
	}
	return top(b.Tableau[i])
}

// FoundationCards returns the number of cards on all foundations
func (b *Board) FoundationCards() int {
	n := 0
	for _, f := range b.Foundations {
		n += len(f)
	}
	return n
}

// FaceDownCount returns the number of face-down tableau cards
func (b *Board) FaceDownCount() int {
	n := 0
	for _, col := range b.Tableau {
		for _, c := range col {
			if !c.FaceUp {
				n++
			}
		}
	}
	return n
}

// CardCount returns the number of cards across all piles
func (b *Board) CardCount() int {
	n := len(b.Stock) + len(b.Waste) + b.FoundationCards()
	for _, col := range b.Tableau {
		n += len(col)
	}
	return n
}

var (
	// ErrCardConservation means cards were lost or duplicated
	ErrCardConservation = errors.New("card conservation violated")
	// ErrFoundationOrder means a foundation is not an ascending single-suit run from Ace
	ErrFoundationOrder = errors.New("foundation out of order")
	// ErrTableauOrder means a column's face-up suffix is not alternating and descending
	ErrTableauOrder = errors.New("tableau out of order")
)

// Validate checks the structural invariants every reachable board satisfies.
// A failure indicates a bug in move application rather than a user error.
func (b *Board) Validate() error {
	seen := make(map[deck.CardID]bool, deck.Size)
	piles := [][]deck.Card{b.Stock, b.Waste}
	piles = append(piles, b.Foundations[:]...)
	piles = append(piles, b.Tableau[:]...)
	for _, pile := range piles {
		for _, c := range pile {
			if seen[c.ID()] {
				return fmt.Errorf("%w: duplicate %s", ErrCardConservation, c)
			}
			seen[c.ID()] = true
		}
	}
	if len(seen) != deck.Size {
		return fmt.Errorf("%w: found %d cards, want %d", ErrCardConservation, len(seen), deck.Size)
	}

	for i, f := range b.Foundations {
		for j, c := range f {
			if c.Rank != deck.Rank(j+1) || c.Suit != f[0].Suit {
				return fmt.Errorf("%w: foundation %d position %d holds %s", ErrFoundationOrder, i, j, c)
			}
		}
	}

	for i, col := range b.Tableau {
		faceUp := false
		for j, c := range col {
			if !c.FaceUp {
				if faceUp {
					return fmt.Errorf("%w: column %d has face-down %s above a face-up card", ErrTableauOrder, i, c)
				}
				continue
			}
			if faceUp {
				prev := col[j-1]
				if prev.Color() == c.Color() || c.Rank != prev.Rank-1 {
					return fmt.Errorf("%w: column %d has %s on %s", ErrTableauOrder, i, c, prev)
				}
			}
			faceUp = true
		}
		if len(col) > 0 && !col[len(col)-1].FaceUp {
			return fmt.Errorf("%w: column %d top is face-down", ErrTableauOrder, i)
		}
	}

	if b.Won != IsWon(b) {
		return fmt.Errorf("won flag is %t but foundations hold %d cards", b.Won, b.FoundationCards())
	}

	return nil
}

func top(pile []deck.Card) (deck.Card, bool) {
	if len(pile) == 0 {
		return deck.Card{}, false
	}
	return pile[len(pile)-1], true
}
