package game

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/lox/klondike/internal/deck"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func cards(t *testing.T, s string) []deck.Card {
	t.Helper()
	out, err := deck.ParseCards(s)
	require.NoError(t, err)
	return out
}

// column builds a tableau column from face-down and face-up card lists
func column(t *testing.T, down, up string) []deck.Card {
	t.Helper()
	col := []deck.Card{}
	for _, c := range cards(t, down) {
		col = append(col, c.Down())
	}
	return append(col, cards(t, up)...)
}

// fill places every card not already on b onto the stock, face-down, so the
// board passes Validate.
func fill(b *Board) *Board {
	seen := make(map[deck.CardID]bool)
	piles := [][]deck.Card{b.Stock, b.Waste}
	piles = append(piles, b.Foundations[:]...)
	piles = append(piles, b.Tableau[:]...)
	for _, p := range piles {
		for _, c := range p {
			seen[c.ID()] = true
		}
	}
	for _, suit := range deck.Suits {
		for r := deck.Ace; r <= deck.King; r++ {
			c := deck.NewCard(suit, r)
			if !seen[c.ID()] {
				b.Stock = append(b.Stock, c)
			}
		}
	}
	return b
}

// foundation builds an Ace-up foundation of suit through rank high
func foundation(suit deck.Suit, high deck.Rank) []deck.Card {
	f := []deck.Card{}
	for r := deck.Ace; r <= high; r++ {
		f = append(f, deck.Card{Suit: suit, Rank: r, FaceUp: true})
	}
	return f
}

func id(t *testing.T, s string) deck.CardID {
	t.Helper()
	c, err := deck.ParseCard(strings.TrimSpace(s))
	require.NoError(t, err)
	return c.ID()
}

// emptyBoard returns a board with every pile present and empty
func emptyBoard() *Board {
	b := &Board{Stock: []deck.Card{}, Waste: []deck.Card{}}
	for i := range b.Foundations {
		b.Foundations[i] = []deck.Card{}
	}
	for i := range b.Tableau {
		b.Tableau[i] = []deck.Card{}
	}
	return b
}
