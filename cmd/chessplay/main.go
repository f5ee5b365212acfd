package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"

	"github.com/fatih/color"

	"github.com/hailam/chessrules/internal/config"
	"github.com/hailam/chessrules/internal/repl"
	"github.com/hailam/chessrules/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if cfg.CPUProfile != "" {
		f, err := os.Create(cfg.CPUProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", cfg.CPUProfile)
	}

	if cfg.NoColor {
		color.NoColor = true
	}

	opts := []repl.Option{repl.WithParallelPerft(cfg.PerftParallel)}

	// Play on without persistence if the database can't be opened.
	store, err := openStorage(cfg)
	if err != nil {
		log.Printf("Warning: Failed to open storage: %v (preferences and saved games disabled)", err)
	} else {
		defer store.Close()
		opts = append(opts, repl.WithStorage(store))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := repl.New(os.Stdin, os.Stdout, opts...)
	if err := r.Run(ctx); err != nil && ctx.Err() == nil {
		log.Printf("input error: %v", err)
	}
}

func openStorage(cfg config.Config) (*storage.Storage, error) {
	if cfg.InMemory {
		return storage.OpenInMemory()
	}
	dir, err := storage.DatabaseDir(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return storage.Open(dir)
}
