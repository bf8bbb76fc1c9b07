// Package main runs the interactive Hoppin client. main wires the API
// client, session store, trip manager, and controller together; the command
// loop lives in repl.go.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/hoppin-app/hoppin-go/internal/api"
	"github.com/hoppin-app/hoppin-go/internal/app"
	"github.com/hoppin-app/hoppin-go/internal/config"
	"github.com/hoppin-app/hoppin-go/internal/session"
	"github.com/hoppin-app/hoppin-go/internal/trips"
)

func main() {
	// .env is a development convenience; a missing file is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// Text handler on stderr: stdout belongs to the interactive prompt.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	client := api.NewClient(cfg.APIURL, nil)
	store := session.NewStore(client, session.NewStorage(cfg.SessionFile))
	manager := trips.NewManager(client)
	controller := app.NewController(store, manager, logger)

	ctx := context.Background()
	controller.Start(ctx)

	repl := newREPL(controller, os.Stdin, os.Stdout)
	repl.run(ctx)
}
