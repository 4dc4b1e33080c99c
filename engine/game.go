// Package engine owns the live game session: the authoritative state, its
// mutation API, and the change-notification channel the orchestrator and
// UI consume.
package engine

import (
	"sync"

	"github.com/rs/zerolog/log"

	"ur/game"
)

const subscriberBuffer = 16

// Game is the live session. All mutations go through it; rejected requests
// change nothing and emit nothing.
type Game struct {
	mu     sync.Mutex
	rules  *game.Ruleset
	dice   game.DiceSource
	state  *game.GameState
	subs   map[int]chan Event
	nextID int
}

// NewGame resolves the named ruleset and creates a fresh session. Unknown
// ruleset names fail hard here, before any game exists.
func NewGame(rulesetName string, dice game.DiceSource) (*Game, error) {
	rules, err := game.ResolveRuleset(rulesetName)
	if err != nil {
		return nil, err
	}
	return &Game{
		rules: rules,
		dice:  dice,
		state: game.NewGameState(rules),
		subs:  map[int]chan Event{},
	}, nil
}

func (g *Game) Rules() *game.Ruleset { return g.rules }

// Subscribe registers a state-change listener. Slow subscribers drop
// events rather than block mutations.
func (g *Game) Subscribe() (int, <-chan Event) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.nextID
	g.nextID++
	ch := make(chan Event, subscriberBuffer)
	g.subs[id] = ch
	return id, ch
}

func (g *Game) Unsubscribe(id int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if ch, ok := g.subs[id]; ok {
		delete(g.subs, id)
		close(ch)
	}
}

// emit is called with g.mu held, after the state has fully settled.
func (g *Game) emit(e Event) {
	for id, ch := range g.subs {
		select {
		case ch <- e:
		default:
			log.Warn().Int("subscriber", id).Str("event", e.Kind.String()).Msg("subscriber full, dropping event")
		}
	}
}

// Snapshot returns a deep read-only copy of the current state.
func (g *Game) Snapshot() *game.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Copy()
}

// Start performs the initial flip that determines the starting player.
func (g *Game) Start() (game.Side, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	side, ok := g.state.DetermineStartingPlayer(g.dice)
	if ok {
		log.Info().Stringer("side", side).Msg("starting player determined")
		g.emit(Event{Kind: EventStart, State: g.state.Copy()})
	}
	return side, ok
}

func (g *Game) RollDice() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.state.RollDice(g.dice) {
		return false
	}
	g.emit(Event{Kind: EventRoll, State: g.state.Copy()})
	return true
}

func (g *Game) SelectPiece(piece int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.state.SelectPiece(piece) {
		return false
	}
	g.emit(Event{Kind: EventSelect, State: g.state.Copy()})
	return true
}

// MovePiece executes the selected piece's move. The single event for a
// winning move is EventGameOver instead of EventMove.
func (g *Game) MovePiece(piece int) (extraTurn bool, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	move, legal := game.ComputeMove(g.state, g.state.Current, piece, g.state.DiceTotal)
	if !legal {
		return false, false
	}
	extraTurn, ok = g.state.MovePiece(piece)
	if !ok {
		return false, false
	}
	kind := EventMove
	if _, over := g.state.Winner(); over {
		kind = EventGameOver
	}
	g.emit(Event{Kind: kind, State: g.state.Copy(), Move: &move, ExtraTurn: extraTurn})
	return extraTurn, true
}

func (g *Game) PassTurn() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.state.PassTurn() {
		return false
	}
	g.emit(Event{Kind: EventPass, State: g.state.Copy()})
	return true
}

// ResetGame discards the state and rebuilds it from the resolved ruleset.
func (g *Game) ResetGame() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = game.NewGameState(g.rules)
	g.emit(Event{Kind: EventReset, State: g.state.Copy()})
}

func (g *Game) LegalMoves() []game.Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	return game.LegalMoves(g.state)
}

func (g *Game) CheckWinCondition(s game.Side) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.CheckWinCondition(s)
}

func (g *Game) Winner() (game.Side, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Winner()
}

// Rule-derived queries for the UI layer.

func (g *Game) HouseBonus(s game.Side) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.HouseBonusFor(s)
}

func (g *Game) TempleBlessings(s game.Side) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.TempleBlessingFor(s)
}

func (g *Game) CalculateHouseControl() (white, black int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.CalculateHouseControl()
}

func (g *Game) CalculateTempleControl() (white, black int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.CalculateTempleControl()
}

// Transit markers for the presentation layer. While any piece is marked,
// eligibility and legal-move queries stay empty.

func (g *Game) BeginTransit(s game.Side, piece int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.BeginTransit(s, piece)
}

func (g *Game) EndTransit(s game.Side, piece int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.EndTransit(s, piece)
}
