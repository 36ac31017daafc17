package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"quiz-service/cmd/api/app"
	"quiz-service/cmd/api/server"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := server.WithSignal(context.Background())
	defer stop()

	a, err := app.New(ctx)
	if err != nil {
		log.Printf("failed to start application: %v", err)
		return 1
	}

	if err := a.Run(ctx); err != nil {
		a.Logger.Error("application exited with error", zap.Error(err))
		return 1
	}
	return 0
}
