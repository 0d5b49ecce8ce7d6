// Command blocify shows a Spotify user's top artists and tracks, either as a
// web application or on the command line.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/justestif/blocify/internal/config"
	"github.com/justestif/blocify/internal/logging"
)

const version = "0.1.0"

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "blocify",
		Usage:   "See your top Spotify artists and tracks",
		Version: version,
		Action:  serve,
		Commands: []*cli.Command{
			serveCommand(),
			loginURLCommand(),
			topCommand(),
			logoutCommand(),
		},
	}
}

// loadConfig reads the environment and configures logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, fmt.Errorf("configuring logging: %w", err)
	}

	return cfg, nil
}
