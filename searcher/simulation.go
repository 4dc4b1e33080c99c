package searcher

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"ur/game"
)

// Simulation evaluates each candidate move by cloning the state, applying
// the move and running a fixed budget of randomized playouts to a depth
// cutoff, then blends the averaged playout value with the heuristic score.
type Simulation struct {
	playouts int     // independent playouts per candidate move
	depth    int     // plies before falling back to static evaluation
	samples  int     // legal moves sampled per ply to bound branching
	blend    float64 // weight of the simulation value; 1 = pure simulation
	weights  Weights
	params   game.EvalParams
	dice     game.DiceSource
	rng      *rand.Rand
	metrics  Collector
}

type Option func(*Simulation)

func WithPlayouts(playouts int) Option {
	return func(s *Simulation) {
		if playouts > 0 {
			s.playouts = playouts
		}
	}
}

func WithDepth(depth int) Option {
	return func(s *Simulation) {
		if depth > 0 {
			s.depth = depth
		}
	}
}

func WithSamples(samples int) Option {
	return func(s *Simulation) {
		if samples > 0 {
			s.samples = samples
		}
	}
}

// WithBlend sets the simulation weight in [0,1]; the remainder goes to the
// normalized heuristic score.
func WithBlend(blend float64) Option {
	return func(s *Simulation) {
		if blend >= 0 && blend <= 1 {
			s.blend = blend
		}
	}
}

func WithWeights(w Weights) Option {
	return func(s *Simulation) { s.weights = w }
}

func WithEvalParams(p game.EvalParams) Option {
	return func(s *Simulation) { s.params = p }
}

func WithSeed(seed uint64) Option {
	return func(s *Simulation) {
		s.dice = game.NewDice(seed)
		s.rng = rand.New(rand.NewSource(seed + 1))
	}
}

func WithMetrics(c Collector) Option {
	return func(s *Simulation) {
		if c != nil {
			s.metrics = c
		}
	}
}

func NewSimulation(options ...Option) *Simulation {
	s := &Simulation{ // Default values
		playouts: 24,
		depth:    8,
		samples:  3,
		blend:    1.0,
		weights:  DefaultWeights(),
		params:   game.DefaultEvalParams(),
		dice:     game.NewDice(1),
		rng:      rand.New(rand.NewSource(2)),
		metrics:  NewNoCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Simulation) ChooseMove(gs *game.GameState, moves []game.Move) (game.Move, bool) {
	if len(moves) == 0 {
		return game.Move{}, false
	}
	s.metrics.Start(len(moves))

	heur := make([]float64, len(moves))
	for i, m := range moves {
		heur[i] = ScoreMove(gs, m, s.weights)
	}
	heur = rescale(heur)

	pov := gs.Current
	best := 0
	bestScore := math.Inf(-1)
	for i, m := range moves {
		score := heur[i]
		if s.blend > 0 {
			avg, ok := s.simulateMove(gs, m, pov)
			if ok {
				// Map the averaged value from [-WinScore, WinScore] onto
				// [0,1] so the blend weights comparable scales.
				sim := (avg + WinScore) / (2 * WinScore)
				score = s.blend*sim + (1-s.blend)*heur[i]
			}
			// All samples failed: keep the pure heuristic value.
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}

	metric := s.metrics.Complete()
	if metric.Playouts > 0 {
		log.Debug().
			Int("candidates", metric.Candidates).
			Int64("playouts", metric.Playouts).
			Int64("failures", metric.Failures).
			Dur("duration", metric.Duration).
			Msg("simulation decision")
	}
	return moves[best], true
}

// simulateMove averages the playout values for one candidate. A panicking
// sample is discarded and excluded from the average; ok is false when
// every sample failed.
func (s *Simulation) simulateMove(gs *game.GameState, m game.Move, pov game.Side) (avg float64, ok bool) {
	sum := 0.0
	valid := 0
	for i := 0; i < s.playouts; i++ {
		value, err := s.samplePlayout(gs, m, pov)
		if err != nil {
			s.metrics.AddFailure()
			log.Warn().Err(err).Msg("discarding failed playout sample")
			continue
		}
		sum += value
		valid++
		s.metrics.AddPlayout()
	}
	if valid == 0 {
		return 0, false
	}
	return sum / float64(valid), true
}

func (s *Simulation) samplePlayout(gs *game.GameState, m game.Move, pov game.Side) (value float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("playout panic: %v", r)
		}
	}()
	clone := gs.Copy()
	clone.ApplyMove(m)
	return s.playout(clone, pov, s.depth), nil
}

// playout recurses to the depth cutoff, drawing a fresh roll at each ply
// and sampling a bounded subset of the legal moves. The side to move is
// whatever the state says; own plies maximize, opponent plies minimize.
func (s *Simulation) playout(gs *game.GameState, pov game.Side, depth int) float64 {
	if winner, over := gs.Winner(); over {
		if winner == pov {
			return WinScore
		}
		return -WinScore
	}
	if depth <= 0 {
		return game.EvaluateWith(gs, pov, s.params)
	}

	if !gs.Rolled {
		gs.RollDice(s.dice)
	}
	moves := game.LegalMoves(gs)
	if len(moves) == 0 {
		gs.PassTurn()
		return s.playout(gs, pov, depth-1)
	}

	width := s.samples
	if width > len(moves) {
		width = len(moves)
	}
	order := s.rng.Perm(len(moves))

	maximizing := gs.Current == pov
	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	for _, i := range order[:width] {
		child := gs.Copy()
		child.ApplyMove(moves[i])
		value := s.playout(child, pov, depth-1)
		if maximizing && value > best || !maximizing && value < best {
			best = value
		}
	}
	return best
}

// rescale maps scores linearly onto [0,1]; a constant slice maps to 0.5.
func rescale(scores []float64) []float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range scores {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	out := make([]float64, len(scores))
	if hi == lo {
		for i := range out {
			out[i] = 0.5
		}
		return out
	}
	for i, v := range scores {
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}
