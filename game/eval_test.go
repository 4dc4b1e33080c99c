package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	t.Run("empty position is even", func(t *testing.T) {
		gs := mustState(t, "finkel")
		require.Zero(t, Evaluate(gs, White))
	})

	t.Run("symmetric for the two perspectives", func(t *testing.T) {
		gs := mustState(t, "finkel")
		place(gs, White, 0, 12, false)
		place(gs, Black, 0, 10, false)
		require.InDelta(t, Evaluate(gs, White), -Evaluate(gs, Black), 1e-9)
	})

	t.Run("material lead scores positive", func(t *testing.T) {
		gs := mustState(t, "finkel")
		gs.Promoted[White][0] = true // one piece home
		place(gs, Black, 0, 9, false)
		require.Greater(t, Evaluate(gs, White), 0.0)
		require.Less(t, Evaluate(gs, Black), 0.0)
	})

	t.Run("gamma rewards late progress disproportionately", func(t *testing.T) {
		balanced := mustState(t, "finkel")
		place(balanced, White, 0, 10, false) // index 5
		place(balanced, White, 1, 12, false) // index 7
		place(balanced, Black, 0, 13, false)

		extreme := mustState(t, "finkel")
		place(extreme, White, 0, 1, false)  // index 0
		place(extreme, White, 1, 17, false) // index 12
		place(extreme, Black, 0, 13, false)

		// Both states total the same raw steps, but the curved score favors
		// the piece close to finishing over two mid-path pieces.
		require.Greater(t, Evaluate(extreme, White), Evaluate(balanced, White))
	})

	t.Run("won game scores 1", func(t *testing.T) {
		gs := mustState(t, "blitz")
		for i := range gs.Promoted[White] {
			gs.Promoted[White][i] = true
		}
		require.InDelta(t, 1.0, Evaluate(gs, White), 1e-9)
	})
}
