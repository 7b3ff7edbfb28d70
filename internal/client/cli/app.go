// Package cli implements the interactive Inventa command-line client.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/inventa-labs/inventa/internal/client/api"
	"github.com/inventa-labs/inventa/internal/client/config"
)

type App struct {
	config   *config.Config
	client   *api.Client
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	return &App{
		config: c,
		client: api.NewClient(c.ServerURL),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.client.Token() != ""
}
