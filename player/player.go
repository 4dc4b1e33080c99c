// Package player defines the agent capability interface the turn
// orchestrator drives, with a human shell and a computer implementation.
package player

import "ur/game"

// Session is the slice of the live game an agent is allowed to drive. It
// is the same public mutation API the UI uses; agents never reach into the
// state directly.
type Session interface {
	Snapshot() *game.GameState
	RollDice() bool
	SelectPiece(piece int) bool
	MovePiece(piece int) (extraTurn bool, ok bool)
	PassTurn() bool
	LegalMoves() []game.Move
}

// Agent is the capability interface consumed by the turn orchestrator.
type Agent interface {
	// OnTurnStart is invoked when the agent's turn begins, before a roll.
	OnTurnStart(gs *game.GameState)
	// OnMoveRequired is invoked when a roll is pending and the agent must
	// move or pass.
	OnMoveRequired(gs *game.GameState)
	Name() string
	Cleanup()
}

// Human is the no-op agent variant: the UI drives the session on the
// player's behalf, so the hooks do nothing.
type Human struct {
	name string
}

func NewHuman(name string) *Human {
	return &Human{name: name}
}

func (h *Human) OnTurnStart(*game.GameState)   {}
func (h *Human) OnMoveRequired(*game.GameState) {}
func (h *Human) Name() string                   { return h.name }
func (h *Human) Cleanup()                       {}
