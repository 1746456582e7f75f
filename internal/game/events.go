package game

import (
	"sync"
	"time"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeNewGame           EventType = "new_game"
	EventTypeMoveApplied       EventType = "move_applied"
	EventTypeUndo              EventType = "undo"
	EventTypeGameWon           EventType = "game_won"
	EventTypeAutoSolveStarted  EventType = "autosolve_started"
	EventTypeAutoSolveFinished EventType = "autosolve_finished"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// NewGameEvent is published when a fresh board is dealt
type NewGameEvent struct {
	Seed      int64
	Board     *Board
	timestamp time.Time
}

func (e NewGameEvent) EventType() EventType { return EventTypeNewGame }
func (e NewGameEvent) Timestamp() time.Time { return e.timestamp }

// MoveAppliedEvent is published after a command is committed
type MoveAppliedEvent struct {
	Command   Command
	Board     *Board
	timestamp time.Time
}

func (e MoveAppliedEvent) EventType() EventType { return EventTypeMoveApplied }
func (e MoveAppliedEvent) Timestamp() time.Time { return e.timestamp }

// UndoEvent is published after the board is restored from history
type UndoEvent struct {
	Board     *Board
	timestamp time.Time
}

func (e UndoEvent) EventType() EventType { return EventTypeUndo }
func (e UndoEvent) Timestamp() time.Time { return e.timestamp }

// GameWonEvent is published the moment the last foundation is completed
type GameWonEvent struct {
	Moves     int
	timestamp time.Time
}

func (e GameWonEvent) EventType() EventType { return EventTypeGameWon }
func (e GameWonEvent) Timestamp() time.Time { return e.timestamp }

// AutoSolveStartedEvent is published when a plan starts replaying
type AutoSolveStartedEvent struct {
	Plan      Plan
	timestamp time.Time
}

func (e AutoSolveStartedEvent) EventType() EventType { return EventTypeAutoSolveStarted }
func (e AutoSolveStartedEvent) Timestamp() time.Time { return e.timestamp }

// AutoSolveFinishedEvent is published exactly once per started plan
type AutoSolveFinishedEvent struct {
	Steps     int
	Won       bool
	Aborted   bool
	timestamp time.Time
}

func (e AutoSolveFinishedEvent) EventType() EventType { return EventTypeAutoSolveFinished }
func (e AutoSolveFinishedEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber receives published events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to EventSubscriber. The returned value
// is comparable, so it can later be passed to Unsubscribe.
func SubscriberFunc(fn func(event GameEvent)) EventSubscriber {
	return &funcSubscriber{fn: fn}
}

type funcSubscriber struct {
	fn func(event GameEvent)
}

func (s *funcSubscriber) OnEvent(event GameEvent) { s.fn(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus. Events are delivered
// synchronously in subscription order.
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subs := make([]EventSubscriber, len(bus.subscribers))
	copy(subs, bus.subscribers)
	bus.mu.RUnlock()

	for _, subscriber := range subs {
		subscriber.OnEvent(event)
	}
}
