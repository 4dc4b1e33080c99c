package engine

import "ur/game"

// EventKind labels a state-change notification.
type EventKind int

const (
	EventStart EventKind = iota // starting player determined
	EventRoll
	EventSelect
	EventMove
	EventPass
	EventReset
	EventGameOver // the mutation that decided the game
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventRoll:
		return "roll"
	case EventSelect:
		return "select"
	case EventMove:
		return "move"
	case EventPass:
		return "pass"
	case EventReset:
		return "reset"
	case EventGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Event is emitted exactly once per successful mutation, after every
// derived field (eligibility, dice total, phase) is consistent. State is a
// deep snapshot; subscribers may keep or mutate it freely.
type Event struct {
	Kind      EventKind
	State     *game.GameState
	Move      *game.Move // set on move events
	ExtraTurn bool
}
