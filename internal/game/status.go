package game

// Status is the lifecycle state of a game.
//
//	Playing --win--> Won
//	Playing --auto-solve--> Solving --plan exhausted--> Won
//	Solving --abort--> Playing
//	Won --undo--> Playing
type Status int

const (
	Playing Status = iota
	Solving
	Won
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Solving:
		return "solving"
	case Won:
		return "won"
	default:
		return "unknown"
	}
}
