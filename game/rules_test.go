package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveRuleset(t *testing.T) {
	t.Run("known rulesets resolve with a bound path", func(t *testing.T) {
		for _, name := range RulesetNames() {
			r, err := ResolveRuleset(name)
			require.NoError(t, err, name)
			require.NotNil(t, r.Path(), name)
			require.Equal(t, name, r.Name)
		}
	})

	t.Run("unknown name is a configuration error", func(t *testing.T) {
		_, err := ResolveRuleset("royal")
		require.ErrorIs(t, err, ErrUnknownRuleset)
	})

	t.Run("masters enables all square rules on the long path", func(t *testing.T) {
		r, err := ResolveRuleset("masters")
		require.NoError(t, err)
		require.Equal(t, 5, r.PiecesPerPlayer)
		require.True(t, r.GateBlocking)
		require.True(t, r.SafeMarkets)
		require.True(t, r.HouseBonus)
		require.True(t, r.TempleBlessing)
		require.Equal(t, PathLong, r.PathType)
	})
}

func TestSafeSquares(t *testing.T) {
	t.Run("private lane squares are always safe", func(t *testing.T) {
		r, err := ResolveRuleset("finkel")
		require.NoError(t, err)
		for _, sq := range []Square{1, 2, 3, 4, 17, 18} {
			require.True(t, r.IsSafeSquare(White, sq), "square %d", sq)
		}
	})

	t.Run("middle squares are contested without safe markets", func(t *testing.T) {
		r, err := ResolveRuleset("finkel")
		require.NoError(t, err)
		require.False(t, r.IsSafeSquare(White, 12))
	})

	t.Run("markets protect under safe-markets", func(t *testing.T) {
		r, err := ResolveRuleset("masters")
		require.NoError(t, err)
		require.True(t, r.IsSafeSquare(White, 12))
		require.True(t, r.IsSafeSquare(Black, 16))
		require.False(t, r.IsSafeSquare(White, 13))
	})

	t.Run("SafeSquares lists each square once", func(t *testing.T) {
		r, err := ResolveRuleset("masters")
		require.NoError(t, err)
		seen := map[Square]bool{}
		for _, sq := range r.SafeSquares(White) {
			require.False(t, seen[sq], "duplicate square %d", sq)
			seen[sq] = true
		}
		require.True(t, seen[12])
		require.True(t, seen[1])
	})
}

func TestMaxRoll(t *testing.T) {
	finkel, err := ResolveRuleset("finkel")
	require.NoError(t, err)
	require.Equal(t, 4, finkel.MaxRoll())

	masters, err := ResolveRuleset("masters")
	require.NoError(t, err)
	require.Equal(t, 5, masters.MaxRoll(), "house bonus extends the reachable total")
}
