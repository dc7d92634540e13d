package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"boulder-rain/internal/app"
	"boulder-rain/internal/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, app.ConfigFromEnv(telemetry.WrapLogger(log.Default()))); err != nil {
		log.Fatalf("%v", err)
	}
}
