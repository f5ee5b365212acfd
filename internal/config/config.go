// Package config reads the host settings from the environment and flags.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config controls where the host keeps its data and how it prints.
type Config struct {
	DataDir       string `env:"CHESSPLAY_DATA_DIR"`
	InMemory      bool   `env:"CHESSPLAY_IN_MEMORY"      envDefault:"false"`
	NoColor       bool   `env:"CHESSPLAY_NO_COLOR"       envDefault:"false"`
	PerftParallel bool   `env:"CHESSPLAY_PERFT_PARALLEL" envDefault:"true"`
	CPUProfile    string `env:"CPUPROFILE"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// RegisterFlags binds command-line flags to cfg. Values already loaded from
// the environment become the flag defaults, so flags take precedence.
func (cfg *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for the game database (default: platform data dir)")
	fs.BoolVar(&cfg.InMemory, "in-memory", cfg.InMemory, "keep preferences and saved games in memory only")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable coloured output")
	fs.BoolVar(&cfg.PerftParallel, "perft-parallel", cfg.PerftParallel, "spread perft root moves across CPUs")
	fs.StringVar(&cfg.CPUProfile, "cpuprofile", cfg.CPUProfile, "write cpu profile to file")
}
