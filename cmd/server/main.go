package main

import (
	"context"
	"log"

	"bookworm/internal/server"
	"bookworm/internal/server/config"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("app init error: %v", err)
	}

	app.Run(ctx)
}
