// Package config holds the runtime settings of the server and terminal
// binaries.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/benbeisheim/chessai-backend/internal/model"
)

// ErrInvalidConfig indicates invalid configuration values.
var ErrInvalidConfig = errors.New("invalid configuration")

const (
	EnvAddr           = "CHESSAI_ADDR"
	EnvAllowedOrigins = "CHESSAI_ALLOWED_ORIGINS"
)

type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string
	// AllowedOrigins is a comma separated CORS origin list.
	AllowedOrigins string
	// HumanColor is the side the terminal player takes.
	HumanColor model.Color
	AI         model.Weights
}

func Default() Config {
	return Config{
		Addr:           ":3000",
		AllowedOrigins: "http://localhost:5173",
		HumanColor:     model.White,
		AI:             model.DefaultWeights(),
	}
}

// Load parses args into a Config. Environment variables replace the
// defaults and explicit flags replace both.
func Load(name string, args []string) (Config, error) {
	cfg := Default()
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv(EnvAllowedOrigins); v != "" {
		cfg.AllowedOrigins = v
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.AllowedOrigins, "origins", cfg.AllowedOrigins, "Comma separated CORS origins")
	human := fs.String("color", string(cfg.HumanColor), "Side the human plays: white or black")
	fs.Float64Var(&cfg.AI.CenterBonus, "ai-center", cfg.AI.CenterBonus, "AI bonus for moving into the centre")
	fs.Float64Var(&cfg.AI.MobilityWeight, "ai-mobility", cfg.AI.MobilityWeight, "AI weight per legal move after moving")
	fs.Float64Var(&cfg.AI.OpeningPenalty, "ai-opening", cfg.AI.OpeningPenalty, "AI penalty for a first queen or rook move")
	fs.Float64Var(&cfg.AI.RiskWeight, "ai-risk", cfg.AI.RiskWeight, "AI penalty weight per capturable major piece")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.HumanColor = model.Color(strings.ToLower(*human))
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	}
	if c.HumanColor != model.White && c.HumanColor != model.Black {
		return fmt.Errorf("%w: color %q", ErrInvalidConfig, c.HumanColor)
	}
	if c.AI.CenterBonus < 0 || c.AI.MobilityWeight < 0 || c.AI.OpeningPenalty < 0 || c.AI.RiskWeight < 0 {
		return fmt.Errorf("%w: negative AI weight", ErrInvalidConfig)
	}
	return nil
}

// Origins splits AllowedOrigins into trimmed entries.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
