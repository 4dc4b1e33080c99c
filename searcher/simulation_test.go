package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ur/game"
)

// capturingCollector keeps the metrics handed out by Complete so a test can
// inspect them after the decision finishes.
type capturingCollector struct {
	Collector
	last DecisionMetrics
}

func (c *capturingCollector) Complete() DecisionMetrics {
	c.last = c.Collector.Complete()
	return c.last
}

func TestSimulationChooseMove(t *testing.T) {
	t.Run("no legal moves requests a pass", func(t *testing.T) {
		s := NewSimulation(WithSeed(1))
		_, ok := s.ChooseMove(newState(t, "finkel"), nil)
		require.False(t, ok)
	})

	t.Run("chosen move is one of the candidates", func(t *testing.T) {
		gs := newState(t, "blitz")
		place(gs, game.White, 0, 9, false)
		place(gs, game.White, 1, 12, false)
		rollFixed(t, gs, 1, 1, 0)

		moves := game.LegalMoves(gs)
		require.NotEmpty(t, moves)

		s := NewSimulation(WithSeed(3), WithPlayouts(4), WithDepth(4))
		move, ok := s.ChooseMove(gs, moves)
		require.True(t, ok)
		require.Contains(t, moves, move)
	})

	t.Run("deterministic under a fixed seed", func(t *testing.T) {
		build := func() (*game.GameState, []game.Move) {
			gs := newState(t, "masters")
			place(gs, game.White, 0, 9, false)
			place(gs, game.White, 1, 13, false)
			place(gs, game.Black, 0, 14, false)
			rollFixed(t, gs, 1, 1, 0, 0)
			return gs, game.LegalMoves(gs)
		}

		first, firstMoves := build()
		second, secondMoves := build()
		require.Equal(t, firstMoves, secondMoves)

		a, okA := NewSimulation(WithSeed(11), WithPlayouts(6), WithDepth(4)).
			ChooseMove(first, firstMoves)
		b, okB := NewSimulation(WithSeed(11), WithPlayouts(6), WithDepth(4)).
			ChooseMove(second, secondMoves)
		require.True(t, okA)
		require.True(t, okB)
		require.Equal(t, a, b)
	})

	t.Run("blend zero follows the heuristic", func(t *testing.T) {
		gs := newState(t, "finkel")
		place(gs, game.White, 0, 18, false)
		place(gs, game.White, 1, 9, false)
		rollFixed(t, gs, 1, 0, 0, 0)
		moves := game.LegalMoves(gs)
		require.NotEmpty(t, moves)

		want, ok := NewHeuristic().ChooseMove(gs, moves)
		require.True(t, ok)

		got, ok := NewSimulation(WithSeed(5), WithBlend(0)).ChooseMove(gs, moves)
		require.True(t, ok)
		require.Equal(t, want, got)
	})

	t.Run("metrics count one playout per sample", func(t *testing.T) {
		gs := newState(t, "blitz")
		place(gs, game.White, 0, 9, false)
		place(gs, game.White, 1, 12, false)
		rollFixed(t, gs, 1, 1, 0)
		moves := game.LegalMoves(gs)
		require.NotEmpty(t, moves)

		c := &capturingCollector{Collector: NewCollector()}
		s := NewSimulation(WithSeed(7), WithPlayouts(3), WithDepth(2), WithMetrics(c))
		_, ok := s.ChooseMove(gs, moves)
		require.True(t, ok)

		require.Equal(t, len(moves), c.last.Candidates)
		require.Equal(t, int64(3*len(moves)), c.last.Playouts)
		require.Zero(t, c.last.Failures)
	})
}

func TestSimulateMove(t *testing.T) {
	t.Run("forced win averages to the win score", func(t *testing.T) {
		gs := newState(t, "blitz")
		gs.Promoted[game.White][0] = true
		gs.Promoted[game.White][1] = true
		place(gs, game.White, 2, 18, false)
		rollFixed(t, gs, 1, 0, 0)

		moves := game.LegalMoves(gs)
		require.Len(t, moves, 1)
		require.True(t, moves[0].Completes)

		s := NewSimulation(WithSeed(9), WithPlayouts(5))
		avg, ok := s.simulateMove(gs, moves[0], game.White)
		require.True(t, ok)
		require.InDelta(t, WinScore, avg, 1e-9)
	})

	t.Run("losing terminal scores negative for the loser", func(t *testing.T) {
		gs := newState(t, "blitz")
		gs.Promoted[game.Black][0] = true
		gs.Promoted[game.Black][1] = true
		gs.Current = game.Black
		place(gs, game.Black, 2, 20, false)
		rollFixed(t, gs, 1, 0, 0)

		moves := game.LegalMoves(gs)
		require.Len(t, moves, 1)

		s := NewSimulation(WithSeed(13), WithPlayouts(4))
		avg, ok := s.simulateMove(gs, moves[0], game.White)
		require.True(t, ok)
		require.InDelta(t, -WinScore, avg, 1e-9)
	})
}

func TestPlayout(t *testing.T) {
	t.Run("depth cutoff falls back to static evaluation", func(t *testing.T) {
		gs := newState(t, "finkel")
		place(gs, game.White, 0, 12, false)
		place(gs, game.Black, 0, 10, false)

		s := NewSimulation(WithSeed(17))
		want := game.EvaluateWith(gs, game.White, game.DefaultEvalParams())
		require.InDelta(t, want, s.playout(gs.Copy(), game.White, 0), 1e-9)
	})

	t.Run("finished game returns the terminal value", func(t *testing.T) {
		gs := newState(t, "blitz")
		for i := range gs.Promoted[game.White] {
			gs.Promoted[game.White][i] = true
		}

		s := NewSimulation(WithSeed(19))
		require.InDelta(t, WinScore, s.playout(gs.Copy(), game.White, 8), 1e-9)
		require.InDelta(t, -WinScore, s.playout(gs.Copy(), game.Black, 8), 1e-9)
	})
}

func TestRescale(t *testing.T) {
	t.Run("maps extremes onto the unit interval", func(t *testing.T) {
		out := rescale([]float64{-5, 0, 15})
		require.InDelta(t, 0.0, out[0], 1e-9)
		require.InDelta(t, 0.25, out[1], 1e-9)
		require.InDelta(t, 1.0, out[2], 1e-9)
	})

	t.Run("constant input maps to the midpoint", func(t *testing.T) {
		for _, v := range rescale([]float64{3, 3, 3}) {
			require.InDelta(t, 0.5, v, 1e-9)
		}
	})
}
