package game

import "github.com/lox/klondike/internal/deck"

// LegalCommands lists the commands the rules would accept on b, in a stable
// order: foundation moves, then tableau moves, then the draw. A draw is
// omitted when both stock and waste are empty since it cannot change anything.
func (r Rules) LegalCommands(b *Board) []Command {
	var sources []deck.Card
	if c, ok := b.WasteTop(); ok {
		sources = append(sources, c)
	}
	for _, col := range b.Tableau {
		for _, c := range col {
			if c.FaceUp {
				sources = append(sources, c)
			}
		}
	}
	if r.FoundationReturn {
		for i := range b.Foundations {
			if c, ok := b.FoundationTop(i); ok {
				sources = append(sources, c)
			}
		}
	}

	var cmds []Command
	for _, c := range sources {
		for f := range b.Foundations {
			cmd := ToFoundation(c.ID(), f)
			if _, err := r.Apply(b, cmd); err == nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	for _, c := range sources {
		for col := range b.Tableau {
			cmd := ToTableau(c.ID(), col)
			if _, err := r.Apply(b, cmd); err == nil {
				cmds = append(cmds, cmd)
			}
		}
	}

	if len(b.Stock) > 0 || len(b.Waste) > 0 {
		cmds = append(cmds, DrawCommand())
	}
	return cmds
}
