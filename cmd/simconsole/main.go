package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/conveyorsim/conveyor/engine"
)

func main() {
	configPath := flag.String("config", "conveyor.toml", "path to the engine configuration file")
	tickIntervalMs := flag.Int64("tick-interval-ms", int64(16), "wall-clock interval in ms between background Step calls")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	uc, err := engine.LoadConfig(*configPath)
	if err != nil {
		log.Error("load config", "err", err)
		os.Exit(1)
	}
	conf := uc.Config()
	conf.Log = log

	w, err := conf.New()
	if err != nil {
		log.Error("create world", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The Sim loop is the only goroutine that ever touches the world:
	// it owns the background ticker and executes every console command
	// submitted through Do.
	sim := NewSim(w, time.Duration(*tickIntervalMs)*time.Millisecond)

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		sim.Run(gctx)
		return nil
	})
	group.Go(func() error {
		NewConsole(sim, log).Run(gctx)
		return nil
	})

	if err := group.Wait(); err != nil {
		log.Error("simconsole exited with error", "err", err)
		os.Exit(1)
	}
}
