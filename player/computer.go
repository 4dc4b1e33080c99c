package player

import (
	"time"

	"github.com/rs/zerolog/log"

	"ur/game"
	"ur/searcher"
)

// Computer drives itself through the session API using a searcher
// strategy. The artificial thinking delay is presentation pacing owned by
// the agent, not the engine.
type Computer struct {
	name     string
	session  Session
	strategy searcher.Strategy
	delay    time.Duration
}

type ComputerOption func(*Computer)

func WithThinkDelay(delay time.Duration) ComputerOption {
	return func(c *Computer) {
		if delay >= 0 {
			c.delay = delay
		}
	}
}

func WithStrategy(strategy searcher.Strategy) ComputerOption {
	return func(c *Computer) {
		if strategy != nil {
			c.strategy = strategy
		}
	}
}

func NewComputer(name string, session Session, options ...ComputerOption) *Computer {
	c := &Computer{
		name:     name,
		session:  session,
		strategy: searcher.NewSimulation(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Difficulty tiers map onto the strategy space: easy picks the worst
// heuristic move, medium blends heuristic and simulation evenly, hard is
// pure simulation.
func StrategyForDifficulty(difficulty string) searcher.Strategy {
	switch difficulty {
	case "easy":
		return searcher.NewHeuristic(searcher.WithWorstMove())
	case "medium":
		return searcher.NewSimulation(searcher.WithBlend(0.5))
	case "heuristic":
		return searcher.NewHeuristic()
	default: // hard
		return searcher.NewSimulation()
	}
}

func (c *Computer) OnTurnStart(gs *game.GameState) {
	c.think()
	if !c.session.RollDice() {
		log.Debug().Str("agent", c.name).Msg("roll rejected")
	}
}

func (c *Computer) OnMoveRequired(gs *game.GameState) {
	moves := c.session.LegalMoves()
	move, ok := c.strategy.ChooseMove(c.session.Snapshot(), moves)
	if !ok {
		c.think()
		c.session.PassTurn()
		return
	}
	c.think()
	if !c.session.SelectPiece(move.Piece) {
		log.Warn().Str("agent", c.name).Int("piece", move.Piece).Msg("selection rejected, passing")
		c.session.PassTurn()
		return
	}
	c.session.MovePiece(move.Piece)
}

func (c *Computer) Name() string { return c.name }

func (c *Computer) Cleanup() {}

func (c *Computer) think() {
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
}
