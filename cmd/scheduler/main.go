package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"

	messagecleanup "message-cleanup-backend"
)

func main() {
	cfg, err := messagecleanup.LoadConfig()
	if err != nil {
		messagecleanup.Fatalf("Failed to load config: %v", err)
	}

	handlers, err := messagecleanup.NewHandlers(context.Background(), cfg)
	if err != nil {
		messagecleanup.Fatalf("Failed to initialize handlers: %v", err)
	}

	lambda.Start(handlers.ScheduledCleanupHandler)
}
