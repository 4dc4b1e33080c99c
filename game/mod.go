package game

import "errors"

// Configuration errors. These are the only hard failures in the package;
// invalid interactive requests are rejected with booleans instead.
var (
	ErrUnknownRuleset = errors.New("unknown ruleset")
	ErrUnknownPath    = errors.New("unknown path type")
)

// Side is one of the two players.
type Side int

const (
	White Side = iota
	Black
)

func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

// PositionKind says where a piece is. Exactly one kind holds per piece at
// all times; "completed" is AtStart with the promotion flag set, since
// pieces return home after finishing the circuit.
type PositionKind int

const (
	AtStart PositionKind = iota
	OnSquare
	// InTransit marks a piece whose move or capture is still being resolved
	// by the presentation layer. It has no spatial meaning and is neither
	// selectable nor capturable.
	InTransit
)

type Position struct {
	Kind   PositionKind
	Square Square
}

func Start() Position       { return Position{Kind: AtStart} }
func On(sq Square) Position { return Position{Kind: OnSquare, Square: sq} }

func (p Position) OnBoard() bool { return p.Kind == OnSquare }
