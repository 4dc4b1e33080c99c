package game

import "fmt"

// Ruleset is the effective rules value for one game: resolved once at
// configuration time and threaded through the engine unchanged. Switching
// rulesets means discarding the game and creating a new one.
type Ruleset struct {
	Name            string
	PiecesPerPlayer int
	DiceCount       int

	GateBlocking     bool
	SafeMarkets      bool
	HouseBonus       bool
	TempleBlessing   bool
	CaptureExtraTurn bool

	PathType PathType

	path *Path
}

// Path returns the resolved path topology for this ruleset.
func (r *Ruleset) Path() *Path { return r.path }

// PiecesToWin is the number of pieces a side must bring home.
func (r *Ruleset) PiecesToWin() int { return r.PiecesPerPlayer }

// MaxRoll is the highest dice total a side can reach, including the house
// addend when that rule is active.
func (r *Ruleset) MaxRoll() int {
	if r.HouseBonus {
		return r.DiceCount + 1
	}
	return r.DiceCount
}

// IsSafeSquare reports whether a piece of the given side can never be
// captured on sq: either the safe-markets rule protects it, or the square
// lies on the side's private lane and the opponent never reaches it.
func (r *Ruleset) IsSafeSquare(s Side, sq Square) bool {
	if r.SafeMarkets && IsMarket(sq) {
		return true
	}
	return !r.path.Contains(s.Opponent(), sq)
}

// SafeSquares returns every square on the side's path where its pieces are
// guaranteed safe under this ruleset.
func (r *Ruleset) SafeSquares(s Side) []Square {
	seen := map[Square]bool{}
	var safe []Square
	for _, sq := range r.path.ForSide(s) {
		if seen[sq] {
			continue
		}
		seen[sq] = true
		if r.IsSafeSquare(s, sq) {
			safe = append(safe, sq)
		}
	}
	return safe
}

var rulesets = map[string]Ruleset{
	"finkel": {
		Name:            "finkel",
		PiecesPerPlayer: 7,
		DiceCount:       4,
		PathType:        PathShort,
	},
	"masters": {
		Name:            "masters",
		PiecesPerPlayer: 5,
		DiceCount:       4,
		GateBlocking:    true,
		SafeMarkets:     true,
		HouseBonus:      true,
		TempleBlessing:  true,
		PathType:        PathLong,
	},
	"blitz": {
		Name:             "blitz",
		PiecesPerPlayer:  3,
		DiceCount:        3,
		SafeMarkets:      true,
		CaptureExtraTurn: true,
		PathType:         PathShort,
	},
}

// ResolveRuleset looks up a named ruleset and binds its path topology.
// Unknown names are a configuration error.
func ResolveRuleset(name string) (*Ruleset, error) {
	r, ok := rulesets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRuleset, name)
	}
	path, err := GetPath(r.PathType)
	if err != nil {
		return nil, fmt.Errorf("ruleset %q: %w", name, err)
	}
	r.path = path
	return &r, nil
}

// RulesetNames lists the known ruleset names.
func RulesetNames() []string {
	return []string{"finkel", "masters", "blitz"}
}
