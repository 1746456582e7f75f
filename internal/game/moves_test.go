package game

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/klondike/internal/deck"
	"github.com/lox/klondike/internal/randutil"
)

func TestDrawMovesStockTopToWaste(t *testing.T) {
	b := Deal(deck.NewShuffled(randutil.New(5)))
	before := b.Clone()
	stockTop := b.Stock[len(b.Stock)-1]

	next := Draw(b)

	assert.Equal(t, before, b, "input board must not change")
	require.Len(t, next.Waste, 1)
	assert.Equal(t, stockTop.ID(), next.Waste[0].ID())
	assert.True(t, next.Waste[0].FaceUp)
	assert.Len(t, next.Stock, len(b.Stock)-1)
	assert.Equal(t, 1, next.Moves)
	require.NoError(t, next.Validate())
}

func TestDrawRecycleCycle(t *testing.T) {
	b := Deal(deck.NewShuffled(randutil.New(9)))
	original := slices.Clone(b.Stock)

	for range len(original) {
		b = Draw(b)
	}
	require.Empty(t, b.Stock)
	require.Len(t, b.Waste, len(original))

	waste := slices.Clone(b.Waste)
	b = Draw(b)

	assert.Empty(t, b.Waste)
	require.Len(t, b.Stock, len(waste))
	for i, c := range b.Stock {
		assert.False(t, c.FaceUp)
		assert.Equal(t, waste[len(waste)-1-i].ID(), c.ID(), "stock must be the waste reversed")
	}
	assert.Equal(t, original, b.Stock, "a full cycle restores the stock order")
	assert.Equal(t, len(original)+1, b.Moves)

	// a second cycle conserves cards too
	for range len(original) + 1 {
		b = Draw(b)
		require.Equal(t, deck.Size, b.CardCount())
	}
	assert.Equal(t, original, b.Stock)
}

func TestDrawOnEmptyStockAndWaste(t *testing.T) {
	b := SolvableBoard()
	next := Draw(b)
	assert.Empty(t, next.Stock)
	assert.Empty(t, next.Waste)
	assert.Equal(t, 1, next.Moves)
}

func TestDrawWithoutCountingMoves(t *testing.T) {
	r := DefaultRules()
	r.CountDraws = false
	b := Deal(deck.NewShuffled(randutil.New(2)))
	assert.Zero(t, r.Draw(b).Moves)
}

func TestMoveToFoundation(t *testing.T) {
	t.Run("from waste", func(t *testing.T) {
		b := emptyBoard()
		b.Waste = cards(t, "As")
		fill(b)

		next, err := MoveToFoundation(b, id(t, "As"), 2)
		require.NoError(t, err)
		assert.Empty(t, next.Waste)
		assert.Equal(t, cards(t, "As"), next.Foundations[2])
		assert.Equal(t, 1, next.Moves)
		require.NoError(t, next.Validate())
	})

	t.Run("from tableau exposes face-down card", func(t *testing.T) {
		b := emptyBoard()
		b.Tableau[4] = column(t, "9c 5d", "Ah")
		fill(b)

		next, err := MoveToFoundation(b, id(t, "Ah"), 0)
		require.NoError(t, err)
		require.Len(t, next.Tableau[4], 2)
		assert.True(t, next.Tableau[4][1].FaceUp, "new column top must flip face-up")
		assert.False(t, next.Tableau[4][0].FaceUp)
		require.NoError(t, next.Validate())
	})

	t.Run("builds on matching suit", func(t *testing.T) {
		b := emptyBoard()
		b.Foundations[1] = foundation(deck.Hearts, deck.Four)
		b.Tableau[0] = column(t, "", "5h")
		fill(b)

		next, err := MoveToFoundation(b, id(t, "5h"), 1)
		require.NoError(t, err)
		assert.Len(t, next.Foundations[1], 5)
		assert.Empty(t, next.Tableau[0])
	})

	t.Run("completing the last foundation wins", func(t *testing.T) {
		b := emptyBoard()
		for i, suit := range deck.Suits {
			b.Foundations[i] = foundation(suit, deck.King)
		}
		b.Foundations[3] = b.Foundations[3][:12]
		b.Tableau[0] = column(t, "", "Kc")

		require.False(t, b.Won)
		next, err := MoveToFoundation(b, id(t, "Kc"), 3)
		require.NoError(t, err)
		assert.True(t, next.Won)
		require.NoError(t, next.Validate())
	})
}

func TestMoveToFoundationRejections(t *testing.T) {
	b := emptyBoard()
	b.Waste = cards(t, "2s")
	b.Tableau[0] = column(t, "3d", "Ah Kc")
	b.Tableau[1] = column(t, "", "Ad")
	fill(b)

	tests := []struct {
		name       string
		card       string
		foundation int
	}{
		{"not on top of column", "Ah", 0},
		{"two on empty foundation", "2s", 0},
		{"face-down card", "3d", 0},
		{"card in stock", "Qs", 0},
		{"foundation out of range", "Ad", 4},
		{"negative foundation", "Ad", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := b.Clone()
			next, err := MoveToFoundation(b, id(t, tt.card), tt.foundation)
			assert.ErrorIs(t, err, ErrIllegalMove)
			assert.Same(t, b, next)
			assert.Equal(t, before, b)
		})
	}
}

func TestMoveToTableau(t *testing.T) {
	t.Run("waste card onto column", func(t *testing.T) {
		b := emptyBoard()
		b.Waste = cards(t, "9c Qh")
		b.Tableau[3] = column(t, "", "Ks")
		fill(b)

		next, err := MoveToTableau(b, id(t, "Qh"), 3)
		require.NoError(t, err)
		assert.Equal(t, cards(t, "Ks Qh"), next.Tableau[3])
		assert.Equal(t, cards(t, "9c"), next.Waste)
		require.NoError(t, next.Validate())
	})

	t.Run("run moves as one unit", func(t *testing.T) {
		b := emptyBoard()
		b.Tableau[0] = column(t, "4h 2c", "Ts 9h 8c")
		b.Tableau[5] = column(t, "", "Jd")
		fill(b)

		next, err := MoveToTableau(b, id(t, "9h"), 5)
		assert.ErrorIs(t, err, ErrIllegalMove, "9h cannot go on Jd")
		assert.Same(t, b, next)

		next, err = MoveToTableau(b, id(t, "Ts"), 5)
		require.NoError(t, err)
		assert.Equal(t, cards(t, "Jd Ts 9h 8c"), next.Tableau[5])
		require.Len(t, next.Tableau[0], 2)
		assert.True(t, next.Tableau[0][1].FaceUp)
		assert.Equal(t, id(t, "2c"), next.Tableau[0][1].ID())
		require.NoError(t, next.Validate())
	})

	t.Run("king run into empty column", func(t *testing.T) {
		b := emptyBoard()
		b.Tableau[1] = column(t, "7s", "Kd Qc")
		fill(b)

		next, err := MoveToTableau(b, id(t, "Kd"), 6)
		require.NoError(t, err)
		assert.Equal(t, cards(t, "Kd Qc"), next.Tableau[6])
		assert.Equal(t, []deck.Card{{Suit: deck.Spades, Rank: deck.Seven, FaceUp: true}}, next.Tableau[1])
	})

	t.Run("mid-run card moves the cards above it", func(t *testing.T) {
		b := emptyBoard()
		b.Tableau[0] = column(t, "", "Ks Qh Jc")
		b.Tableau[1] = column(t, "", "Kd")
		fill(b)

		next, err := MoveToTableau(b, id(t, "Qh"), 1)
		assert.ErrorIs(t, err, ErrIllegalMove, "Qh cannot go on Kd")
		assert.Same(t, b, next)

		b.Tableau[1] = column(t, "", "Kc")
		next, err = MoveToTableau(b, id(t, "Qh"), 1)
		require.NoError(t, err)
		assert.Equal(t, cards(t, "Ks"), next.Tableau[0])
		assert.Equal(t, cards(t, "Kc Qh Jc"), next.Tableau[1])
	})
}

func TestMoveToTableauRejections(t *testing.T) {
	b := emptyBoard()
	b.Waste = cards(t, "Jh")
	b.Tableau[0] = column(t, "5c", "Qs")
	b.Tableau[1] = column(t, "", "Qd")
	b.Foundations[0] = foundation(deck.Clubs, deck.Two)
	fill(b)

	tests := []struct {
		name   string
		card   string
		column int
	}{
		{"same rank", "Qs", 1},
		{"onto own column", "Qs", 0},
		{"face-down card", "5c", 1},
		{"queen into empty column", "Qd", 4},
		{"foundation card without foundation return", "2c", 4},
		{"column out of range", "Jh", 7},
		{"unknown card", "9s", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := b.Clone()
			next, err := MoveToTableau(b, id(t, tt.card), tt.column)
			assert.ErrorIs(t, err, ErrIllegalMove)
			assert.Same(t, b, next)
			assert.Equal(t, before, b)
		})
	}
}

func TestFoundationReturn(t *testing.T) {
	b := emptyBoard()
	b.Foundations[0] = foundation(deck.Clubs, deck.Four)
	b.Tableau[2] = column(t, "", "5h")
	fill(b)

	_, err := MoveToTableau(b, id(t, "4c"), 2)
	require.ErrorIs(t, err, ErrIllegalMove)

	r := DefaultRules()
	r.FoundationReturn = true
	next, err := r.MoveToTableau(b, id(t, "4c"), 2)
	require.NoError(t, err)
	assert.Len(t, next.Foundations[0], 3)
	assert.Equal(t, cards(t, "5h 4c"), next.Tableau[2])
	assert.Contains(t, r.LegalCommands(b), ToTableau(id(t, "4c"), 2))
	require.NoError(t, next.Validate())

	_, err = r.MoveToFoundation(b, id(t, "4c"), 1)
	assert.ErrorIs(t, err, ErrIllegalMove, "foundation cards never move between foundations")
}

func TestApplyUnknownCommand(t *testing.T) {
	b := SolvableBoard()
	next, err := DefaultRules().Apply(b, Command{Kind: CommandKind(99)})
	assert.ErrorIs(t, err, ErrIllegalMove)
	assert.Same(t, b, next)
}
