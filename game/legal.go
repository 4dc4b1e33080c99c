package game

// Move is a candidate action for one piece, fully resolved against the
// current state: destination, capture, promotion and extra-turn effects.
type Move struct {
	Side  Side
	Piece int

	From      Position
	FromIndex int // path index before the move, -1 when entering from start
	To        Square
	ToIndex   int // path index after the move; equals path length on completion

	Completes bool
	Captures  bool
	Captured  int // opponent piece index when Captures
	Promotes  bool
	ExtraTurn bool
}

// ComputeMove resolves the candidate move of one piece by the given dice
// total. Returns false when the move is illegal. Pure: identical state and
// total always yield the identical move.
func ComputeMove(gs *GameState, s Side, piece int, total int) (Move, bool) {
	if total <= 0 || piece < 0 || piece >= len(gs.Positions[s]) {
		return Move{}, false
	}
	path := gs.Rules.Path()
	steps := path.ForSide(s)
	pos := gs.Positions[s][piece]

	m := Move{Side: s, Piece: piece, From: pos}

	switch pos.Kind {
	case InTransit:
		return Move{}, false

	case AtStart:
		// A promoted piece at start has completed the circuit.
		if gs.Promoted[s][piece] {
			return Move{}, false
		}
		if total > len(steps) {
			return Move{}, false
		}
		m.FromIndex = -1
		m.ToIndex = total - 1
		m.To = steps[m.ToIndex]

	case OnSquare:
		idx := path.IndexOf(s, pos.Square, gs.Promoted[s][piece])
		if idx < 0 {
			return Move{}, false
		}
		m.FromIndex = idx
		m.ToIndex = idx + total
		if m.ToIndex >= len(steps) {
			// Completing the circuit. An opponent holding the gate square
			// blocks completion under the gate-blocking rule.
			if gs.Rules.GateBlocking && gs.PieceAt(s.Opponent(), GateSquare) >= 0 {
				return Move{}, false
			}
			m.Completes = true
			m.To = NoSquare
		} else {
			m.To = steps[m.ToIndex]
		}
	}

	if !m.Completes {
		// Same-side blocking. The mover itself does not block: on the long
		// path a piece can land on the other occurrence of its own square.
		if blocker := gs.PieceAt(s, m.To); blocker >= 0 && blocker != piece {
			return Move{}, false
		}
		if victim := gs.PieceAt(s.Opponent(), m.To); victim >= 0 {
			if gs.Rules.SafeMarkets && IsMarket(m.To) {
				return Move{}, false
			}
			m.Captures = true
			m.Captured = victim
		}
	}

	m.Promotes = m.Completes || crossesTreasury(steps, m.FromIndex, m.ToIndex)
	m.ExtraTurn = (!m.Completes && IsRosette(m.To)) ||
		(m.Captures && gs.Rules.CaptureExtraTurn)

	return m, true
}

// crossesTreasury reports whether any path square strictly after from and
// up to to (inclusive, capped at the path end) is a treasury square.
func crossesTreasury(steps []Square, from, to int) bool {
	last := to
	if last > len(steps)-1 {
		last = len(steps) - 1
	}
	for i := from + 1; i <= last; i++ {
		if IsTreasury(steps[i]) {
			return true
		}
	}
	return false
}

// LegalMoves enumerates the legal moves for the side to play under the
// current roll, honoring the eligibility rules: a single entry candidate
// (the lowest-index unpromoted piece at start) plus every on-board piece
// with a legal move. Empty while no roll is pending or a move is in
// transit.
func LegalMoves(gs *GameState) []Move {
	if !gs.Rolled || gs.DiceTotal <= 0 || gs.TransitActive() {
		return nil
	}
	var moves []Move
	entry := -1
	for i, pos := range gs.Positions[gs.Current] {
		switch pos.Kind {
		case AtStart:
			if entry < 0 && !gs.Promoted[gs.Current][i] {
				entry = i
			}
		case OnSquare:
			if m, legal := ComputeMove(gs, gs.Current, i, gs.DiceTotal); legal {
				moves = append(moves, m)
			}
		}
	}
	if entry >= 0 {
		if m, legal := ComputeMove(gs, gs.Current, entry, gs.DiceTotal); legal {
			moves = append(moves, m)
		}
	}
	return moves
}

// executeMove applies a computed move's side effects: capture first, then
// the mover's position and promotion flag.
func executeMove(gs *GameState, m Move) {
	if m.Captures {
		gs.Positions[m.Side.Opponent()][m.Captured] = Start()
		gs.Promoted[m.Side.Opponent()][m.Captured] = false
	}
	if m.Completes {
		gs.Positions[m.Side][m.Piece] = Start()
		gs.Promoted[m.Side][m.Piece] = true
		return
	}
	gs.Positions[m.Side][m.Piece] = On(m.To)
	if m.Promotes {
		gs.Promoted[m.Side][m.Piece] = true
	}
}
