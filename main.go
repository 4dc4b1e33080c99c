package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ur/engine"
	"ur/experiments"
	"ur/game"
	"ur/player"
	"ur/server"
)

func main() {
	mode := flag.String("mode", "game", "game | serve | experiment")
	ruleset := flag.String("ruleset", "masters", "ruleset name: finkel, masters, blitz")
	white := flag.String("white", "hard", "white agent: human, easy, medium, hard, heuristic")
	black := flag.String("black", "medium", "black agent")
	addr := flag.String("addr", ":8080", "listen address for serve mode")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "dice seed")
	level := flag.String("log", "info", "log level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := engine.Config{
		Ruleset:  *ruleset,
		White:    *white,
		Black:    *black,
		Seed:     *seed,
		LogLevel: *level,
	}
	if err := cfg.Init(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	defer cfg.Close()

	switch *mode {
	case "game":
		runGame(cfg)
	case "serve":
		runServer(cfg, *addr)
	case "experiment":
		runExperiment(cfg)
	default:
		log.Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}

func runGame(cfg engine.Config) {
	g, err := cfg.NewSession()
	if err != nil {
		log.Fatal().Err(err).Msg("session setup failed")
	}
	whiteAgent, blackAgent := cfg.Agents(g)
	winner, ok := engine.NewLocal(g, whiteAgent, blackAgent).Run()
	if !ok {
		log.Warn().Msg("game did not finish")
		return
	}
	log.Info().Stringer("winner", winner).Msg("done")
}

func runServer(cfg engine.Config, addr string) {
	g, err := cfg.NewSession()
	if err != nil {
		log.Fatal().Err(err).Msg("session setup failed")
	}
	hub := server.New(g, []string{"localhost:*", "127.0.0.1:*"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	// Computer sides act on their own turns; subscribe an orchestrator that
	// pokes them after every mutation.
	whiteAgent, blackAgent := cfg.Agents(g)
	go pokeAgents(ctx, g, whiteAgent, blackAgent)

	mux := http.NewServeMux()
	mux.Handle("/ws", hub.Handler())
	log.Info().Str("addr", addr).Str("ruleset", cfg.Ruleset).Msg("serving")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// pokeAgents invokes the side to move's agent hooks after every mutation,
// so computer sides drive themselves while human sides stay client-driven.
func pokeAgents(ctx context.Context, g *engine.Game, white, black player.Agent) {
	agents := [2]player.Agent{white, black}
	defer white.Cleanup()
	defer black.Cleanup()

	id, events := g.Subscribe()
	defer g.Unsubscribe(id)

	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			if e.Kind == engine.EventSelect {
				continue
			}
			st := e.State
			if st.Phase != game.PhasePlaying {
				continue
			}
			if _, over := st.Winner(); over {
				continue
			}
			agent := agents[st.Current]
			if !st.Rolled {
				agent.OnTurnStart(st)
			} else {
				agent.OnMoveRequired(st)
			}
		}
	}
}

func runExperiment(cfg engine.Config) {
	configs := []experiments.AgentConfig{
		{ID: 1, Label: "heuristic", Playouts: 0},
		{ID: 2, Label: "blend", Playouts: 24, Depth: 8, Samples: 3, Blend: 0.5},
		{ID: 3, Label: "simulation", Playouts: 24, Depth: 8, Samples: 3, Blend: 1.0},
	}
	games, moves, err := experiments.Matchup(cfg.Ruleset, configs, 10, cfg.Seed)
	if err != nil {
		log.Fatal().Err(err).Msg("matchup failed")
	}
	writer, err := experiments.NewWriter()
	if err != nil {
		log.Fatal().Err(err).Msg("writer setup failed")
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		log.Fatal().Err(err).Msg("write agent configs")
	}
	if err := writer.WriteGameRecords(games); err != nil {
		log.Fatal().Err(err).Msg("write game records")
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		log.Fatal().Err(err).Msg("write move records")
	}
	log.Info().Int("games", len(games)).Int("moves", len(moves)).Msg("experiment complete")
}
