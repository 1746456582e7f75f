package game

import "github.com/lox/klondike/internal/deck"

// SolvableBoard returns a fully revealed board with an empty stock and waste
// whose four columns each hold a King-to-Ace run alternating between two
// suits. Auto-solve wins from it in 52 promotions.
func SolvableBoard() *Board {
	b := &Board{
		Stock: []deck.Card{},
		Waste: []deck.Card{},
	}
	for i := range b.Foundations {
		b.Foundations[i] = []deck.Card{}
	}
	for i := range b.Tableau {
		b.Tableau[i] = []deck.Card{}
	}

	b.Tableau[0] = alternatingRun(deck.Spades, deck.Hearts, deck.King)
	b.Tableau[1] = alternatingRun(deck.Hearts, deck.Spades, deck.King)
	b.Tableau[2] = alternatingRun(deck.Diamonds, deck.Clubs, deck.King)
	b.Tableau[3] = alternatingRun(deck.Clubs, deck.Diamonds, deck.King)
	return b
}

// alternatingRun builds a face-up run from high down to Ace, starting with
// suit a and alternating with suit b.
func alternatingRun(a, b deck.Suit, high deck.Rank) []deck.Card {
	run := make([]deck.Card, 0, int(high))
	for r := high; r >= deck.Ace; r-- {
		suit := a
		if (high-r)%2 == 1 {
			suit = b
		}
		run = append(run, deck.Card{Suit: suit, Rank: r, FaceUp: true})
	}
	return run
}
