package searcher

import "ur/game"

// Terminal value for a decided playout. Large against the [-1,1] range of
// the static evaluator so early wins dominate cutoff evaluations.
const WinScore = 10.0

// Strategy decides which legal move to take. Returning false requests a
// pass; strategies never guess when nothing is legal.
type Strategy interface {
	ChooseMove(gs *game.GameState, moves []game.Move) (game.Move, bool)
}
