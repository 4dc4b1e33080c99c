package experiments

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchup(t *testing.T) {
	t.Run("heuristic pairing plays both orderings", func(t *testing.T) {
		configs := []AgentConfig{
			{ID: 1, Label: "best"},
			{ID: 2, Label: "worst", Worst: true},
		}
		games, moves, err := Matchup("blitz", configs, 1, 42)
		require.NoError(t, err)
		require.Len(t, games, 2, "a vs b and b vs a")
		require.Empty(t, moves, "heuristic agents record no playout metrics")

		for _, g := range games {
			require.Equal(t, "blitz", g.Ruleset)
			require.NotEmpty(t, g.StartingPlayer)
			require.NotEmpty(t, g.Winner)
			require.False(t, g.EndTime.Before(g.StartTime))
		}
	})

	t.Run("simulation mirror match records per-move metrics", func(t *testing.T) {
		if testing.Short() {
			t.Skip("playout-backed agents are slow")
		}
		configs := []AgentConfig{
			{ID: 1, Label: "sim", Playouts: 4, Depth: 2, Samples: 2, Blend: 1},
		}
		games, moves, err := Matchup("blitz", configs, 1, 7)
		require.NoError(t, err)
		require.Len(t, games, 1)
		require.NotEmpty(t, moves)

		for i, m := range moves {
			require.Equal(t, 1, m.Game)
			require.Equal(t, i+1, m.Step, "steps are numbered across both agents")
			require.Positive(t, m.Candidates)
			require.Positive(t, m.Playouts)
		}
	})

	t.Run("unknown ruleset surfaces the resolution error", func(t *testing.T) {
		_, _, err := Matchup("royal", []AgentConfig{{ID: 1}}, 1, 1)
		require.Error(t, err)
	})
}
