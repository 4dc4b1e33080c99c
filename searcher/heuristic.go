package searcher

import "ur/game"

// Weights are the named terms of the heuristic move scorer. All bonuses
// add; Exposure subtracts.
type Weights struct {
	Complete  float64 // completing the circuit
	Capture   float64 // capturing an opponent piece
	ExtraTurn float64 // landing grants another turn
	Enter     float64 // entering play from start
	Advance   float64 // any other forward move
	Progress  float64 // scaled by destination path progress in [0,1]
	Safe      float64 // landing on a guaranteed-safe square
	Exposure  float64 // landing capturable on the opponent's next roll
}

func DefaultWeights() Weights {
	return Weights{
		Complete:  100,
		Capture:   60,
		ExtraTurn: 30,
		Enter:     10,
		Advance:   5,
		Progress:  10,
		Safe:      8,
		Exposure:  40,
	}
}

// ScoreMove builds a move's score additively from the named terms.
func ScoreMove(gs *game.GameState, m game.Move, w Weights) float64 {
	score := 0.0
	if m.Completes {
		score += w.Complete
	}
	if m.Captures {
		score += w.Capture
	}
	if m.ExtraTurn {
		score += w.ExtraTurn
	}
	if m.FromIndex < 0 {
		score += w.Enter
	} else if !m.Completes {
		score += w.Advance
	}

	pathLen := float64(gs.Rules.Path().Length())
	score += w.Progress * float64(m.ToIndex+1) / pathLen

	if !m.Completes {
		if gs.Rules.IsSafeSquare(m.Side, m.To) {
			score += w.Safe
		} else if exposed(gs, m) {
			score -= w.Exposure
		}
	}
	return score
}

// exposed checks whether the destination can be hit on the opponent's very
// next roll, by simulating every dice total 1..max against every opponent
// piece's current path index. A piece the move captures is no longer a
// threat.
func exposed(gs *game.GameState, m game.Move) bool {
	opp := m.Side.Opponent()
	path := gs.Rules.Path()
	steps := path.ForSide(opp)
	for i, pos := range gs.Positions[opp] {
		if !pos.OnBoard() || (m.Captures && i == m.Captured) {
			continue
		}
		idx := path.IndexOf(opp, pos.Square, gs.Promoted[opp][i])
		if idx < 0 {
			continue
		}
		for total := 1; total <= gs.Rules.MaxRoll(); total++ {
			if next := idx + total; next < len(steps) && steps[next] == m.To {
				return true
			}
		}
	}
	return false
}

// Heuristic picks the best-scored move, or the worst for the intentionally
// weak variant. Ties break to the first-seen in enumeration order.
type Heuristic struct {
	weights Weights
	worst   bool
}

type HeuristicOption func(*Heuristic)

func WithHeuristicWeights(w Weights) HeuristicOption {
	return func(h *Heuristic) { h.weights = w }
}

// WithWorstMove makes the scorer pick the lowest-scored move instead.
func WithWorstMove() HeuristicOption {
	return func(h *Heuristic) { h.worst = true }
}

func NewHeuristic(options ...HeuristicOption) *Heuristic {
	h := &Heuristic{weights: DefaultWeights()}
	for _, option := range options {
		option(h)
	}
	return h
}

func (h *Heuristic) ChooseMove(gs *game.GameState, moves []game.Move) (game.Move, bool) {
	if len(moves) == 0 {
		return game.Move{}, false
	}
	best := 0
	bestScore := ScoreMove(gs, moves[0], h.weights)
	for i, m := range moves[1:] {
		score := ScoreMove(gs, m, h.weights)
		if (h.worst && score < bestScore) || (!h.worst && score > bestScore) {
			best, bestScore = i+1, score
		}
	}
	return moves[best], true
}
