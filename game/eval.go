package game

import "math"

// EvalParams tunes the static position evaluator.
type EvalParams struct {
	// Gamma curves per-piece advancement: progress in [0,1] is raised to
	// this exponent before rescaling, so values above 1 reward being close
	// to finishing disproportionately more than being close to start.
	Gamma float64
}

func DefaultEvalParams() EvalParams {
	return EvalParams{Gamma: 2.5}
}

// Evaluate scores the position between -1 and 1 from the pov side's
// perspective using the default parameters.
func Evaluate(gs *GameState, pov Side) float64 {
	return EvaluateWith(gs, pov, DefaultEvalParams())
}

// EvaluateWith tallies each side's completed pieces (scaled by path
// length) and gamma-curved advancement, then normalizes the two tallies to
// a relative score between -1 and 1.
func EvaluateWith(gs *GameState, pov Side, params EvalParams) float64 {
	pathLen := float64(gs.Rules.Path().Length())
	mine := sideProgress(gs, pov, pathLen, params.Gamma)
	theirs := sideProgress(gs, pov.Opponent(), pathLen, params.Gamma)
	return normalize(mine, theirs)
}

func sideProgress(gs *GameState, s Side, pathLen, gamma float64) float64 {
	score := 0.0
	for i, pos := range gs.Positions[s] {
		switch {
		case pos.Kind == AtStart && gs.Promoted[s][i]:
			score += pathLen
		case pos.OnBoard():
			idx := gs.Rules.Path().IndexOf(s, pos.Square, gs.Promoted[s][i])
			if idx < 0 {
				continue
			}
			progress := float64(idx+1) / pathLen
			score += math.Pow(progress, gamma) * pathLen
		}
	}
	return score
}

// normalize converts two non-negative tallies into a single score between
// -1 and 1: (a-b)/(a+b).
func normalize(value, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
