// Package experiments runs head-to-head agent matchups for difficulty
// calibration and records per-game and per-move results as CSV.
package experiments

import (
	"time"

	"github.com/rs/zerolog/log"

	"ur/engine"
	"ur/game"
	"ur/player"
	"ur/searcher"
)

// AgentConfig describes one agent entry in a matchup.
type AgentConfig struct {
	ID       int
	Label    string
	Worst    bool    // heuristic worst-move variant
	Playouts int     // 0 = pure heuristic agent
	Depth    int
	Samples  int
	Blend    float64
}

func (c AgentConfig) strategy(seed uint64, collector searcher.Collector) searcher.Strategy {
	if c.Playouts <= 0 {
		if c.Worst {
			return searcher.NewHeuristic(searcher.WithWorstMove())
		}
		return searcher.NewHeuristic()
	}
	return searcher.NewSimulation(
		searcher.WithPlayouts(c.Playouts),
		searcher.WithDepth(c.Depth),
		searcher.WithSamples(c.Samples),
		searcher.WithBlend(c.Blend),
		searcher.WithSeed(seed),
		searcher.WithMetrics(collector),
	)
}

type GameRecord struct {
	ID             int
	Agent1         int
	Agent2         int
	Ruleset        string
	StartingPlayer string
	Winner         string
	StartTime      time.Time
	EndTime        time.Time
}

type MoveRecord struct {
	Game       int
	Step       int
	Player     string
	Candidates int
	Playouts   int64
	Failures   int64
	Duration   time.Duration
}

// recordingCollector appends every completed decision so the harness can
// dump per-move rows after the game.
type recordingCollector struct {
	inner   searcher.Collector
	player  string
	game    int
	step    *int
	records *[]MoveRecord
}

func (r *recordingCollector) Start(candidates int) { r.inner.Start(candidates) }
func (r *recordingCollector) AddPlayout()          { r.inner.AddPlayout() }
func (r *recordingCollector) AddFailure()          { r.inner.AddFailure() }

func (r *recordingCollector) Complete() searcher.DecisionMetrics {
	m := r.inner.Complete()
	*r.step++
	*r.records = append(*r.records, MoveRecord{
		Game:       r.game,
		Step:       *r.step,
		Player:     r.player,
		Candidates: m.Candidates,
		Playouts:   m.Playouts,
		Failures:   m.Failures,
		Duration:   m.Duration,
	})
	return m
}

// Matchup plays the configured number of games per ordered pairing on the
// given ruleset and returns all records.
func Matchup(ruleset string, configs []AgentConfig, gamesPer int, seed uint64) ([]GameRecord, []MoveRecord, error) {
	var games []GameRecord
	var moves []MoveRecord
	gameID := 0

	for _, a := range configs {
		for _, b := range configs {
			if a.ID == b.ID && len(configs) > 1 {
				continue
			}
			for i := 0; i < gamesPer; i++ {
				gameID++
				record, err := playGame(gameID, ruleset, a, b, seed+uint64(gameID), &moves)
				if err != nil {
					return nil, nil, err
				}
				games = append(games, record)
				log.Info().Int("game", gameID).Str("winner", record.Winner).
					Str("agents", a.Label+" vs "+b.Label).Msg("game finished")
			}
		}
	}
	return games, moves, nil
}

func playGame(id int, ruleset string, a, b AgentConfig, seed uint64, moves *[]MoveRecord) (GameRecord, error) {
	g, err := engine.NewGame(ruleset, game.NewDice(seed))
	if err != nil {
		return GameRecord{}, err
	}

	step := 0
	white := player.NewComputer(a.Label, g, player.WithStrategy(a.strategy(seed+100, &recordingCollector{
		inner: searcher.NewCollector(), player: game.White.String(), game: id, step: &step, records: moves,
	})))
	black := player.NewComputer(b.Label, g, player.WithStrategy(b.strategy(seed+200, &recordingCollector{
		inner: searcher.NewCollector(), player: game.Black.String(), game: id, step: &step, records: moves,
	})))

	record := GameRecord{
		ID:        id,
		Agent1:    a.ID,
		Agent2:    b.ID,
		Ruleset:   ruleset,
		StartTime: time.Now(),
	}

	// Drain events to catch who the flip gave the first turn to.
	subID, events := g.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range events {
			if e.Kind == engine.EventStart {
				record.StartingPlayer = e.State.Current.String()
			}
		}
	}()

	local := engine.NewLocal(g, white, black)
	winner, ok := local.Run()
	g.Unsubscribe(subID)
	<-done

	record.EndTime = time.Now()
	if ok {
		record.Winner = winner.String()
	}
	return record, nil
}
