package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ur/game"
)

// drain empties a subscriber channel without blocking.
func drain(ch <-chan Event) []Event {
	var events []Event
	for {
		select {
		case e := <-ch:
			events = append(events, e)
		default:
			return events
		}
	}
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func TestNewGame(t *testing.T) {
	t.Run("resolves the named ruleset", func(t *testing.T) {
		g, err := NewGame("blitz", &game.FixedDice{})
		require.NoError(t, err)
		require.Equal(t, "blitz", g.Rules().Name)
	})

	t.Run("unknown ruleset fails before a game exists", func(t *testing.T) {
		_, err := NewGame("royal", &game.FixedDice{})
		require.ErrorIs(t, err, game.ErrUnknownRuleset)
	})
}

func TestEventPerMutation(t *testing.T) {
	g, err := NewGame("blitz", &game.FixedDice{Rolls: [][]int{
		{1},       // initial flip, white starts
		{1, 0, 0}, // white rolls 1
	}})
	require.NoError(t, err)
	id, ch := g.Subscribe()
	defer g.Unsubscribe(id)

	t.Run("start emits once with the settled state", func(t *testing.T) {
		side, ok := g.Start()
		require.True(t, ok)
		require.Equal(t, game.White, side)

		events := drain(ch)
		require.Equal(t, []EventKind{EventStart}, kinds(events))
		require.Equal(t, game.PhasePlaying, events[0].State.Phase)
	})

	t.Run("roll emits once after eligibility is computed", func(t *testing.T) {
		require.True(t, g.RollDice())

		events := drain(ch)
		require.Equal(t, []EventKind{EventRoll}, kinds(events))
		require.True(t, events[0].State.Rolled)
		require.Equal(t, 1, events[0].State.DiceTotal)
		require.NotEmpty(t, events[0].State.Eligible)
	})

	t.Run("select and move each emit once", func(t *testing.T) {
		require.True(t, g.SelectPiece(0))
		_, ok := g.MovePiece(0)
		require.True(t, ok)

		events := drain(ch)
		require.Equal(t, []EventKind{EventSelect, EventMove}, kinds(events))

		move := events[1].Move
		require.NotNil(t, move)
		require.Equal(t, game.Square(1), move.To)
		require.Equal(t, game.Black, events[1].State.Current, "turn switched before the event")
	})

	t.Run("pass emits once", func(t *testing.T) {
		// The scripted dice are exhausted, so black rolls all zeros and
		// must pass.
		require.True(t, g.RollDice())
		require.True(t, g.PassTurn())
		require.Equal(t, []EventKind{EventRoll, EventPass}, kinds(drain(ch)))
	})

	t.Run("rejected mutations emit nothing", func(t *testing.T) {
		require.False(t, g.SelectPiece(0)) // nothing rolled
		_, ok := g.MovePiece(0)
		require.False(t, ok)
		require.False(t, g.PassTurn())
		require.Empty(t, drain(ch))
	})

	t.Run("reset emits once with a fresh state", func(t *testing.T) {
		g.ResetGame()

		events := drain(ch)
		require.Equal(t, []EventKind{EventReset}, kinds(events))
		require.Equal(t, game.PhaseInitialRoll, events[0].State.Phase)
	})
}

func TestRejectedBeforeStart(t *testing.T) {
	g, err := NewGame("finkel", &game.FixedDice{})
	require.NoError(t, err)
	id, ch := g.Subscribe()
	defer g.Unsubscribe(id)

	require.False(t, g.RollDice())
	require.False(t, g.SelectPiece(0))
	require.False(t, g.PassTurn())
	require.Empty(t, drain(ch))
}

func TestWinningMoveEmitsGameOver(t *testing.T) {
	g, err := NewGame("blitz", &game.FixedDice{Rolls: [][]int{
		{1},
		{1, 0, 0},
	}})
	require.NoError(t, err)
	_, ok := g.Start()
	require.True(t, ok)

	// Two pieces already home, the last one a single step away.
	g.state.Promoted[game.White][0] = true
	g.state.Promoted[game.White][1] = true
	g.state.Positions[game.White][2] = game.On(18)

	id, ch := g.Subscribe()
	defer g.Unsubscribe(id)

	require.True(t, g.RollDice())
	require.True(t, g.SelectPiece(2))
	_, ok = g.MovePiece(2)
	require.True(t, ok)

	events := drain(ch)
	require.Equal(t, []EventKind{EventRoll, EventSelect, EventGameOver}, kinds(events))
	require.True(t, events[2].Move.Completes)

	winner, over := g.Winner()
	require.True(t, over)
	require.Equal(t, game.White, winner)

	require.False(t, g.RollDice(), "a finished game accepts no further rolls")
	require.Empty(t, drain(ch))
}

func TestTransitSuspendsMoves(t *testing.T) {
	g, err := NewGame("finkel", &game.FixedDice{Rolls: [][]int{
		{1},
		{1, 1, 0, 0},
	}})
	require.NoError(t, err)
	_, ok := g.Start()
	require.True(t, ok)
	require.True(t, g.RollDice())
	require.NotEmpty(t, g.LegalMoves())

	require.True(t, g.BeginTransit(game.White, 0))
	require.Empty(t, g.LegalMoves())
	_, ok = g.MovePiece(0)
	require.False(t, ok)

	require.True(t, g.EndTransit(game.White, 0))
	require.NotEmpty(t, g.LegalMoves())
}

func TestSnapshotIsIsolated(t *testing.T) {
	g, err := NewGame("finkel", &game.FixedDice{Rolls: [][]int{{1}}})
	require.NoError(t, err)
	_, ok := g.Start()
	require.True(t, ok)

	snap := g.Snapshot()
	snap.Positions[game.White][0] = game.On(12)
	snap.Promoted[game.Black][1] = true

	fresh := g.Snapshot()
	require.Equal(t, game.Start(), fresh.Positions[game.White][0])
	require.False(t, fresh.Promoted[game.Black][1])
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	g, err := NewGame("finkel", &game.FixedDice{Rolls: [][]int{{1}}})
	require.NoError(t, err)
	_, ok := g.Start()
	require.True(t, ok)

	id, ch := g.Subscribe()
	defer g.Unsubscribe(id)

	// All-zero rolls force a roll/pass pair per cycle; never read the
	// channel so it overflows.
	for i := 0; i < 10; i++ {
		require.True(t, g.RollDice())
		require.True(t, g.PassTurn())
	}
	require.Len(t, drain(ch), subscriberBuffer)
}
