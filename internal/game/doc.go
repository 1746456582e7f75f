// Package game implements the Klondike Solitaire rules engine.
//
// A Board is an immutable snapshot of stock, waste, four foundations and seven
// tableau columns. Every transition clones the board and returns the clone,
// so a board handed out by this package is never changed behind the caller's
// back and history entries never alias the live board.
//
// # Pure functions
//
// The rules and moves are plain functions over boards:
//
//	b := game.Deal(deck.NewShuffled(randutil.New(42)))
//	b = game.Draw(b)
//	next, err := game.MoveToFoundation(b, id, 0)
//	if errors.Is(err, game.ErrIllegalMove) {
//	    // next == b, nothing changed
//	}
//
// Product decisions that varied between front ends (history limit, whether
// draws count as moves, whether foundation cards may return to the tableau)
// live on the Rules value; the package-level functions use DefaultRules.
//
// # Game
//
// Game wraps a live board with bounded undo history, a Playing/Solving/Won
// status and an event bus. Presentation layers send Commands and re-render
// from Board snapshots:
//
//	g := game.New(game.WithSeed(42))
//	if err := g.Draw(); err != nil { ... }
//	if g.IsWinnable() {
//	    plan, _ := g.BeginAutoSolve()
//	    for range plan {
//	        g.StepAutoSolve() // one step per animation tick
//	    }
//	}
//
// # Solver
//
// The solver is a greedy tableau-to-foundation promoter. It is only sound
// once the stock and waste are empty and every tableau card is face-up;
// IsWinnable returns false for any other board. It is not a general Klondike
// solver.
package game
