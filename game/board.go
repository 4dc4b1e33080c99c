package game

import "fmt"

// Square identifies a board cell on the classic 3x8 layout. 0 means "no
// square" (a piece at start or already home).
//
//	 4  3  2  1          18 17      white lane
//	 9 10 11 12 13 14 15 16         shared middle lane
//	 8  7  6  5          20 19      black lane
type Square int

const NoSquare Square = 0

type PathType int

const (
	// PathShort is the Finkel path: own lane, middle lane, out through the
	// side's exit squares.
	PathShort PathType = iota
	// PathLong is the Masters path: the short path followed by a return pass
	// through the middle lane in reverse. Middle squares appear twice on it.
	PathLong
)

func (pt PathType) String() string {
	switch pt {
	case PathShort:
		return "short"
	case PathLong:
		return "long"
	default:
		return fmt.Sprintf("PathType(%d)", int(pt))
	}
}

// Special square sets. These are properties of the board itself; whether a
// set has any effect is decided by the active ruleset.
var (
	rosetteSquares  = map[Square]bool{4: true, 8: true, 12: true, 18: true, 20: true}
	gateSquares     = map[Square]bool{9: true}
	marketSquares   = map[Square]bool{12: true, 16: true}
	houseSquares    = map[Square]bool{10: true, 13: true, 15: true}
	templeSquares   = map[Square]bool{11: true, 14: true}
	treasurySquares = map[Square]bool{18: true, 20: true}
)

func IsRosette(sq Square) bool  { return rosetteSquares[sq] }
func IsGate(sq Square) bool     { return gateSquares[sq] }
func IsMarket(sq Square) bool   { return marketSquares[sq] }
func IsHouse(sq Square) bool    { return houseSquares[sq] }
func IsTemple(sq Square) bool   { return templeSquares[sq] }
func IsTreasury(sq Square) bool { return treasurySquares[sq] }

// HouseSquares returns the house square group in a stable order.
func HouseSquares() []Square { return []Square{10, 13, 15} }

// TempleSquares returns the temple square group in a stable order.
func TempleSquares() []Square { return []Square{11, 14} }

// GateSquare is the single square whose occupation can block completion.
const GateSquare Square = 9

// Path holds the ordered square sequence each side traverses from entry to
// completion. Both sides' sequences have equal length.
type Path struct {
	Type  PathType
	sides [2][]Square
}

var shortPath = &Path{
	Type: PathShort,
	sides: [2][]Square{
		White: {1, 2, 3, 4, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18},
		Black: {5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 19, 20},
	},
}

var longPath = &Path{
	Type: PathLong,
	sides: [2][]Square{
		White: {1, 2, 3, 4, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 16, 15, 14, 13, 12, 11, 10, 9},
		Black: {5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 19, 20, 16, 15, 14, 13, 12, 11, 10, 9},
	},
}

// GetPath returns the path topology for the given type.
func GetPath(pt PathType) (*Path, error) {
	switch pt {
	case PathShort:
		return shortPath, nil
	case PathLong:
		return longPath, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownPath, int(pt))
	}
}

// ForSide returns the ordered squares the given side walks.
func (p *Path) ForSide(s Side) []Square {
	return p.sides[s]
}

// Length is the number of steps from entry to completion.
func (p *Path) Length() int {
	return len(p.sides[White])
}

// IndexOf resolves a piece's position on the path to a path index. On the
// long path the middle squares occur twice: an unpromoted piece sits at the
// first occurrence, a promoted one at the second. Returns -1 if the square
// is not on the side's path.
func (p *Path) IndexOf(s Side, sq Square, promoted bool) int {
	side := p.sides[s]
	if !promoted {
		for i, q := range side {
			if q == sq {
				return i
			}
		}
		return -1
	}
	for i := len(side) - 1; i >= 0; i-- {
		if side[i] == sq {
			return i
		}
	}
	return -1
}

// Contains reports whether sq appears anywhere on the side's path.
func (p *Path) Contains(s Side, sq Square) bool {
	return p.IndexOf(s, sq, false) >= 0
}
