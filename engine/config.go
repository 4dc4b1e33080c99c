package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ur/game"
	"ur/player"
)

// Config is the explicit configuration value threaded into whatever needs
// it at construction time. There is no global settings accessor; callers
// Init once at startup and Close on teardown.
type Config struct {
	Ruleset    string
	White      string // "human" or a difficulty: easy, medium, hard, heuristic
	Black      string
	ThinkDelay time.Duration
	Seed       uint64
	LogLevel   string

	initialized bool
}

func DefaultConfig() Config {
	return Config{
		Ruleset:  "masters",
		White:    "human",
		Black:    "hard",
		Seed:     uint64(time.Now().UnixNano()),
		LogLevel: "info",
	}
}

// Init validates the configuration and applies the logging level. Unknown
// ruleset names fail here, before a game exists.
func (c *Config) Init() error {
	if c.Ruleset == "" {
		c.Ruleset = "masters"
	}
	if _, err := game.ResolveRuleset(c.Ruleset); err != nil {
		return err
	}
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	zerolog.SetGlobalLevel(level)
	c.initialized = true
	return nil
}

func (c *Config) Close() {
	c.initialized = false
}

// NewSession builds the live game for this configuration.
func (c *Config) NewSession() (*Game, error) {
	if !c.initialized {
		return nil, fmt.Errorf("config not initialized")
	}
	return NewGame(c.Ruleset, game.NewDice(c.Seed))
}

// Agents builds the two player agents against the given session.
func (c *Config) Agents(g *Game) (white, black player.Agent) {
	return c.agent(g, game.White, c.White), c.agent(g, game.Black, c.Black)
}

func (c *Config) agent(g *Game, side game.Side, kind string) player.Agent {
	name := fmt.Sprintf("%s (%s)", side, kind)
	if kind == "" || kind == "human" {
		return player.NewHuman(name)
	}
	log.Debug().Str("agent", name).Msg("creating computer agent")
	return player.NewComputer(name, g,
		player.WithStrategy(player.StrategyForDifficulty(kind)),
		player.WithThinkDelay(c.ThinkDelay),
	)
}
