package main

import (
	"context"
	"log"

	"github.com/inventa-labs/inventa/internal/client/cli"
	"github.com/inventa-labs/inventa/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
