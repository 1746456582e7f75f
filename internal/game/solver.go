package game

import "fmt"

// MaxSolveSteps bounds the number of single-card promotions the solver will
// simulate. Running out is treated the same as finding no further move.
const MaxSolveSteps = 200

// PlannedMove promotes the top of a tableau column onto a foundation
type PlannedMove struct {
	Column     int
	Foundation int
}

func (m PlannedMove) String() string {
	return fmt.Sprintf("column %d to foundation %d", m.Column+1, m.Foundation+1)
}

// Plan is an ordered list of promotions that can be replayed from the board
// it was computed on.
type Plan []PlannedMove

// AutoSolveEligible reports whether b meets the solver's precondition: the
// stock and waste are empty and every tableau card is face-up.
//
// The greedy solver is only sound under this precondition. With everything
// face-up and nothing left to draw, every card is reachable and foundations
// only ever grow by rank within a suit, so promoting greedily can delay a
// promotion but never block one.
func AutoSolveEligible(b *Board) bool {
	return len(b.Stock) == 0 && len(b.Waste) == 0 && b.FaceDownCount() == 0
}

// IsWinnable reports whether the greedy promotion strategy wins from b.
// Boards that fail AutoSolveEligible are never winnable.
func IsWinnable(b *Board) bool {
	if !AutoSolveEligible(b) {
		return false
	}
	return Simulate(b).Won
}

// Simulate runs the greedy promotion strategy on a private copy of b and
// returns the terminal board. b is not modified.
func Simulate(b *Board) *Board {
	end, _ := solve(b)
	return end
}

// PlanMoves records the promotions the greedy strategy makes from b, stopping
// when the game is won, no further move exists or MaxSolveSteps is reached.
// Replaying the plan with ApplyPlannedMove reaches the same board as Simulate.
func PlanMoves(b *Board) Plan {
	_, plan := solve(b)
	return plan
}

// ApplyPlannedMove applies one promotion, validating it like any other
// foundation move.
func ApplyPlannedMove(b *Board, m PlannedMove) (*Board, error) {
	c, ok := b.ColumnTop(m.Column)
	if !ok {
		return b, fmt.Errorf("%w: column %d is empty", ErrIllegalMove, m.Column+1)
	}
	return MoveToFoundation(b, c.ID(), m.Foundation)
}

// solve scans column tops left to right, promotes the first card that fits
// any foundation (first matching index wins) and restarts from column 0.
func solve(b *Board) (*Board, Plan) {
	cur := b.Clone()
	var plan Plan

	for step := 0; step < MaxSolveSteps && !cur.Won; step++ {
		m, ok := nextPromotion(cur)
		if !ok {
			break
		}
		next, err := ApplyPlannedMove(cur, m)
		if err != nil {
			break
		}
		cur = next
		plan = append(plan, m)
	}

	return cur, plan
}

func nextPromotion(b *Board) (PlannedMove, bool) {
	for col := range b.Tableau {
		c, ok := b.ColumnTop(col)
		if !ok {
			continue
		}
		for f := range b.Foundations {
			if CanPlaceOnFoundation(c, b.Foundations[f]) {
				return PlannedMove{Column: col, Foundation: f}, true
			}
		}
	}
	return PlannedMove{}, false
}
