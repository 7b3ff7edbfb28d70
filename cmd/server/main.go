package main

import (
	"context"
	"log"

	"github.com/inventa-labs/inventa/internal/server"
	"github.com/inventa-labs/inventa/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
