package game

import "golang.org/x/exp/rand"

// DiceSource draws binary dice. The game only ever rolls tetrahedral dice
// with two marked corners, so each die is 0 or 1.
type DiceSource interface {
	Roll(count int) []int
}

type randomDice struct {
	rng *rand.Rand
}

// NewDice returns a seeded random dice source.
func NewDice(seed uint64) DiceSource {
	return &randomDice{rng: rand.New(rand.NewSource(seed))}
}

func (d *randomDice) Roll(count int) []int {
	faces := make([]int, count)
	for i := range faces {
		faces[i] = d.rng.Intn(2)
	}
	return faces
}

// FixedDice replays scripted rolls, then falls back to zeros. Test helper
// and deterministic replay source.
type FixedDice struct {
	Rolls [][]int
	next  int
}

func (d *FixedDice) Roll(count int) []int {
	if d.next < len(d.Rolls) {
		roll := d.Rolls[d.next]
		d.next++
		faces := make([]int, count)
		copy(faces, roll)
		return faces
	}
	return make([]int, count)
}
