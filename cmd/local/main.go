package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	messagecleanup "message-cleanup-backend"
)

var (
	app      = kingpin.New("local", "Runs the expired message cleanup against a real or emulated Firestore")
	once     = app.Flag("once", "Run a single sweep and exit").Bool()
	delay    = app.Flag("delay", "Wait before the first sweep").Default("0s").Duration()
	interval = app.Flag("interval", "Time between sweeps").Default("1h").Duration()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := messagecleanup.LoadConfig()
	if err != nil {
		messagecleanup.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handlers, err := messagecleanup.NewHandlers(ctx, cfg)
	if err != nil {
		messagecleanup.Fatalf("Failed to initialize handlers: %v", err)
	}

	if *delay > 0 {
		messagecleanup.Infof("=== Starting Delayed Cleanup (delay: %v) ===", *delay)
		select {
		case <-time.After(*delay):
		case <-ctx.Done():
			return
		}
	}

	_ = handlers.ManualCleanupHandler(ctx)
	if *once {
		return
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			_ = handlers.ManualCleanupHandler(ctx)
		case <-ctx.Done():
			messagecleanup.Info("Stopping local cleanup loop")
			return
		}
	}
}
