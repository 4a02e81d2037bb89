package main

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/alecthomas/kingpin.v2"

	messagecleanup "message-cleanup-backend"
)

var (
	app    = kingpin.New("sweep-now", "Publishes a sweep request so expired messages are cleaned up without waiting for the schedule")
	source = app.Flag("source", "Value of the source attribute on the request").Default("manual").String()
	topic  = app.Flag("topic", "Overrides SWEEP_TOPIC").String()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := messagecleanup.LoadConfig()
	if err != nil {
		messagecleanup.Fatalf("Failed to load config: %v", err)
	}
	messagecleanup.ConfigureLogging(cfg.LogLevel, cfg.LogFormat)
	if *topic != "" {
		cfg.SweepTopic = *topic
	}
	if cfg.ProjectID == "" {
		app.Fatalf("GCP_PROJECT is not set")
	}

	ctx := context.Background()
	publisher, err := messagecleanup.NewPubSubPublisher(ctx, cfg.ProjectID)
	if err != nil {
		messagecleanup.Fatalf("%v", err)
	}
	defer publisher.Close()

	id, err := messagecleanup.NewSweepPublisher(publisher, cfg.SweepTopic).Publish(ctx, *source)
	if err != nil {
		messagecleanup.Fatalf("%v", err)
	}
	fmt.Println(id)
}
