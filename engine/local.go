package engine

import (
	"github.com/rs/zerolog/log"

	"ur/game"
	"ur/player"
)

const MaxTurns = 2000

// Local polls the session after every mutation and invokes the side to
// move's agent hooks. It drives self-acting agents (computer vs computer);
// interactive sessions are driven externally through the event channel.
type Local struct {
	game     *Game
	agents   [2]player.Agent
	maxTurns int
}

func NewLocal(g *Game, white, black player.Agent) *Local {
	return &Local{
		game:     g,
		agents:   [2]player.Agent{white, black},
		maxTurns: MaxTurns,
	}
}

// Run plays the game to completion and returns the winner. ok is false if
// the turn bound was hit or an agent stalled.
func (l *Local) Run() (winner game.Side, ok bool) {
	defer func() {
		for _, a := range l.agents {
			a.Cleanup()
		}
	}()

	if side, started := l.game.Start(); started {
		log.Info().Str("agent", l.agents[side].Name()).Msg("goes first")
	}

	for turn := 1; turn <= l.maxTurns; turn++ {
		if winner, over := l.game.Winner(); over {
			log.Info().Str("agent", l.agents[winner].Name()).Int("turns", turn).Msg("game over")
			return winner, true
		}

		snapshot := l.game.Snapshot()
		agent := l.agents[snapshot.Current]

		agent.OnTurnStart(snapshot)
		snapshot = l.game.Snapshot()
		if !snapshot.Rolled {
			// A no-op agent cannot be driven by this loop.
			log.Warn().Str("agent", agent.Name()).Msg("agent did not roll, stopping")
			return 0, false
		}
		agent.OnMoveRequired(snapshot)
		if after := l.game.Snapshot(); after.Rolled && after.Current == snapshot.Current {
			log.Warn().Str("agent", agent.Name()).Msg("agent did not act, stopping")
			return 0, false
		}
	}

	log.Warn().Int("maxTurns", l.maxTurns).Msg("turn bound reached without a winner")
	return 0, false
}
