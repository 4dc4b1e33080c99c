package game

// Phase of the overall game.
type Phase int

const (
	// PhaseInitialRoll: a single binary die decides who starts.
	PhaseInitialRoll Phase = iota
	PhasePlaying
)

const noSelection = -1

// GameState is the authoritative game model. It is mutated exclusively
// through the roll/select/move/pass operations below; the simulation agent
// works on deep Copy()s and never touches the live instance.
type GameState struct {
	Rules *Ruleset // resolved effective rules, shared and immutable

	Phase   Phase
	Current Side

	// Per-side piece arrays, indexed by Side then piece index.
	Positions [2][]Position
	Promoted  [2][]bool

	Dice      []int // raw binary dice faces of the current roll
	DiceTotal int   // sum after temple/house adjustments
	Rolled    bool

	Selected int   // selected piece index for Current, or -1
	Eligible []int // piece indices allowed to move on the current roll
}

// NewGameState creates a fresh game: all pieces at start, unpromoted,
// waiting on the initial roll.
func NewGameState(rules *Ruleset) *GameState {
	gs := &GameState{
		Rules:    rules,
		Phase:    PhaseInitialRoll,
		Current:  White,
		Selected: noSelection,
	}
	for s := range gs.Positions {
		gs.Positions[s] = make([]Position, rules.PiecesPerPlayer)
		gs.Promoted[s] = make([]bool, rules.PiecesPerPlayer)
	}
	return gs
}

// Copy returns a deep, independent snapshot. Mutating the copy never
// affects the original.
func (gs *GameState) Copy() *GameState {
	c := &GameState{
		Rules:     gs.Rules,
		Phase:     gs.Phase,
		Current:   gs.Current,
		DiceTotal: gs.DiceTotal,
		Rolled:    gs.Rolled,
		Selected:  gs.Selected,
	}
	for s := range gs.Positions {
		c.Positions[s] = make([]Position, len(gs.Positions[s]))
		copy(c.Positions[s], gs.Positions[s])
		c.Promoted[s] = make([]bool, len(gs.Promoted[s]))
		copy(c.Promoted[s], gs.Promoted[s])
	}
	c.Dice = make([]int, len(gs.Dice))
	copy(c.Dice, gs.Dice)
	c.Eligible = make([]int, len(gs.Eligible))
	copy(c.Eligible, gs.Eligible)
	return c
}

// DetermineStartingPlayer flips a single binary die; the flipped player
// goes first by convention. Only valid during the initial-roll phase.
func (gs *GameState) DetermineStartingPlayer(dice DiceSource) (Side, bool) {
	if gs.Phase != PhaseInitialRoll {
		return gs.Current, false
	}
	flip := dice.Roll(1)
	if len(flip) > 0 && flip[0] == 1 {
		gs.Current = White
	} else {
		gs.Current = Black
	}
	gs.Phase = PhasePlaying
	return gs.Current, true
}

// RollDice draws the ruleset's dice for the side to move, applies the
// temple blessing and house bonus, clears any previous selection and
// recomputes the eligible-piece set. Rejected outside the playing phase,
// while a roll is already pending, or while a move is in transit.
func (gs *GameState) RollDice(dice DiceSource) bool {
	if gs.Phase != PhasePlaying || gs.Rolled || gs.TransitActive() {
		return false
	}
	if _, over := gs.Winner(); over {
		return false
	}

	gs.Dice = dice.Roll(gs.Rules.DiceCount)
	raw := 0
	for _, f := range gs.Dice {
		raw += f
	}

	// Temple override fires first and only on a zero roll; the house addend
	// then applies on top either way.
	total := raw
	if raw == 0 && gs.Rules.TempleBlessing && gs.TempleBlessingFor(gs.Current) {
		total = 4
	}
	if gs.Rules.HouseBonus {
		total += gs.HouseBonusFor(gs.Current)
	}

	gs.DiceTotal = total
	gs.Rolled = true
	gs.Selected = noSelection
	gs.computeEligible()
	return true
}

// SelectPiece marks a piece for the pending move. No-op unless the index
// is in the eligible set.
func (gs *GameState) SelectPiece(piece int) bool {
	if !gs.Rolled || !gs.isEligible(piece) {
		return false
	}
	gs.Selected = piece
	return true
}

// MovePiece executes the pending move for the selected piece. On success
// the roll, selection and eligibility are cleared and the turn switches
// unless the move granted an extra turn. Reports whether an extra turn was
// granted and whether the move was accepted.
func (gs *GameState) MovePiece(piece int) (extraTurn bool, ok bool) {
	if !gs.Rolled || gs.DiceTotal <= 0 || gs.Selected != piece || gs.TransitActive() {
		return false, false
	}
	if !gs.isEligible(piece) {
		return false, false
	}
	move, legal := ComputeMove(gs, gs.Current, piece, gs.DiceTotal)
	if !legal {
		return false, false
	}
	return gs.ApplyMove(move), true
}

// ApplyMove executes an already-computed legal move plus the turn
// bookkeeping: clear dice state, switch sides unless an extra turn was
// granted. The simulation agent calls this on clones.
func (gs *GameState) ApplyMove(m Move) (extraTurn bool) {
	executeMove(gs, m)
	gs.clearRoll()
	if !m.ExtraTurn {
		gs.Current = gs.Current.Opponent()
	}
	return m.ExtraTurn
}

// PassTurn gives up the turn. Valid only when a roll is pending and no
// piece can legally move with it.
func (gs *GameState) PassTurn() bool {
	if gs.Phase != PhasePlaying || !gs.Rolled || len(gs.Eligible) > 0 {
		return false
	}
	gs.clearRoll()
	gs.Current = gs.Current.Opponent()
	return true
}

func (gs *GameState) clearRoll() {
	gs.Dice = nil
	gs.DiceTotal = 0
	gs.Rolled = false
	gs.Selected = noSelection
	gs.Eligible = nil
}

// CheckWinCondition reports whether the side has won: every piece promoted
// and back at start, i.e. all have completed the circuit.
func (gs *GameState) CheckWinCondition(s Side) bool {
	for i := range gs.Positions[s] {
		if gs.Positions[s][i].Kind != AtStart || !gs.Promoted[s][i] {
			return false
		}
	}
	return true
}

// Winner returns the winning side, if any. There are no draws.
func (gs *GameState) Winner() (Side, bool) {
	if gs.CheckWinCondition(White) {
		return White, true
	}
	if gs.CheckWinCondition(Black) {
		return Black, true
	}
	return White, false
}

// PieceAt finds the piece of the given side occupying sq, or -1.
func (gs *GameState) PieceAt(s Side, sq Square) int {
	for i, pos := range gs.Positions[s] {
		if pos.Kind == OnSquare && pos.Square == sq {
			return i
		}
	}
	return -1
}

// controlCount tallies, per side, the squares of a group occupied by that
// side alone. Shared or empty squares credit neither side.
func (gs *GameState) controlCount(squares []Square) (white, black int) {
	for _, sq := range squares {
		w := gs.PieceAt(White, sq) >= 0
		b := gs.PieceAt(Black, sq) >= 0
		switch {
		case w && !b:
			white++
		case b && !w:
			black++
		}
	}
	return white, black
}

// CalculateHouseControl returns each side's count of solely-occupied house
// squares.
func (gs *GameState) CalculateHouseControl() (white, black int) {
	return gs.controlCount(HouseSquares())
}

// CalculateTempleControl returns each side's count of solely-occupied
// temple squares.
func (gs *GameState) CalculateTempleControl() (white, black int) {
	return gs.controlCount(TempleSquares())
}

// HouseBonusFor returns 1 when the side strictly outnumbers the opponent
// on house squares, else 0.
func (gs *GameState) HouseBonusFor(s Side) int {
	w, b := gs.CalculateHouseControl()
	mine, theirs := w, b
	if s == Black {
		mine, theirs = b, w
	}
	if mine > theirs {
		return 1
	}
	return 0
}

// TempleBlessingFor reports whether the side strictly outnumbers the
// opponent on temple squares.
func (gs *GameState) TempleBlessingFor(s Side) bool {
	w, b := gs.CalculateTempleControl()
	if s == White {
		return w > b
	}
	return b > w
}

// TransitActive reports whether any piece is mid-move. While set, the
// eligible set and legal-move queries are forced empty so no second move
// can start against a transiently-undefined position.
func (gs *GameState) TransitActive() bool {
	for s := range gs.Positions {
		for _, pos := range gs.Positions[s] {
			if pos.Kind == InTransit {
				return true
			}
		}
	}
	return false
}

// BeginTransit marks a piece as mid-move for the presentation layer. The
// prior square is kept so EndTransit can restore it.
func (gs *GameState) BeginTransit(s Side, piece int) bool {
	if piece < 0 || piece >= len(gs.Positions[s]) {
		return false
	}
	if gs.Positions[s][piece].Kind == InTransit {
		return false
	}
	gs.Positions[s][piece] = Position{Kind: InTransit, Square: gs.Positions[s][piece].Square}
	gs.Eligible = nil
	return true
}

// EndTransit restores a piece from the transit marker and recomputes
// eligibility if a roll is still pending.
func (gs *GameState) EndTransit(s Side, piece int) bool {
	if piece < 0 || piece >= len(gs.Positions[s]) {
		return false
	}
	pos := gs.Positions[s][piece]
	if pos.Kind != InTransit {
		return false
	}
	if pos.Square == NoSquare {
		gs.Positions[s][piece] = Start()
	} else {
		gs.Positions[s][piece] = On(pos.Square)
	}
	if gs.Rolled && !gs.TransitActive() {
		gs.computeEligible()
	}
	return true
}

func (gs *GameState) isEligible(piece int) bool {
	for _, i := range gs.Eligible {
		if i == piece {
			return true
		}
	}
	return false
}

// computeEligible rebuilds the eligible set for the current roll. At most
// one piece may enter from start per roll: the lowest-index unpromoted
// piece still at start, and only if entering is legal. Every on-board
// piece with a legal move is eligible regardless of index.
func (gs *GameState) computeEligible() {
	gs.Eligible = nil
	if gs.TransitActive() {
		return
	}
	entry := -1
	for i, pos := range gs.Positions[gs.Current] {
		switch pos.Kind {
		case AtStart:
			if entry < 0 && !gs.Promoted[gs.Current][i] {
				entry = i
			}
		case OnSquare:
			if _, legal := ComputeMove(gs, gs.Current, i, gs.DiceTotal); legal {
				gs.Eligible = append(gs.Eligible, i)
			}
		}
	}
	if entry >= 0 {
		if _, legal := ComputeMove(gs, gs.Current, entry, gs.DiceTotal); legal {
			gs.Eligible = append(gs.Eligible, entry)
		}
	}
}
