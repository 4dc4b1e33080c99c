package server

import (
	"encoding/json"

	"ur/engine"
	"ur/game"
)

// Wire representation of a state snapshot. Display-only derived data
// (orientation, pixels) is the client's business; this carries the model
// only.
type pieceView struct {
	Kind     string `json:"kind"` // start | square | transit
	Square   int    `json:"square,omitempty"`
	Promoted bool   `json:"promoted"`
}

type stateView struct {
	Ruleset   string      `json:"ruleset"`
	Phase     string      `json:"phase"`
	Current   string      `json:"current"`
	White     []pieceView `json:"white"`
	Black     []pieceView `json:"black"`
	Dice      []int       `json:"dice,omitempty"`
	DiceTotal int         `json:"diceTotal"`
	Rolled    bool        `json:"rolled"`
	Selected  int         `json:"selected"`
	Eligible  []int       `json:"eligible,omitempty"`
	Winner    string      `json:"winner,omitempty"`
	Event     string      `json:"event,omitempty"`
	ExtraTurn bool        `json:"extraTurn,omitempty"`
}

func pieces(gs *game.GameState, s game.Side) []pieceView {
	views := make([]pieceView, len(gs.Positions[s]))
	for i, pos := range gs.Positions[s] {
		v := pieceView{Promoted: gs.Promoted[s][i]}
		switch pos.Kind {
		case game.AtStart:
			v.Kind = "start"
		case game.OnSquare:
			v.Kind = "square"
			v.Square = int(pos.Square)
		case game.InTransit:
			v.Kind = "transit"
		}
		views[i] = v
	}
	return views
}

func snapshotView(gs *game.GameState) stateView {
	phase := "playing"
	if gs.Phase == game.PhaseInitialRoll {
		phase = "initial-roll"
	}
	view := stateView{
		Ruleset:   gs.Rules.Name,
		Phase:     phase,
		Current:   gs.Current.String(),
		White:     pieces(gs, game.White),
		Black:     pieces(gs, game.Black),
		Dice:      gs.Dice,
		DiceTotal: gs.DiceTotal,
		Rolled:    gs.Rolled,
		Selected:  gs.Selected,
		Eligible:  gs.Eligible,
	}
	if winner, over := gs.Winner(); over {
		view.Winner = winner.String()
	}
	return view
}

func marshalSnapshot(gs *game.GameState) json.RawMessage {
	data, _ := json.Marshal(snapshotView(gs))
	return data
}

func marshalEvent(e engine.Event) json.RawMessage {
	view := snapshotView(e.State)
	view.Event = e.Kind.String()
	view.ExtraTurn = e.ExtraTurn
	data, _ := json.Marshal(view)
	return data
}
