package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/nyx/cmd/app/commands"
	"github.com/allisson/nyx/internal/app"
	"github.com/allisson/nyx/internal/config"
)

// getSystemCommands returns the commands that operate the service itself
// rather than individual secrets.
func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Serve the secret API, probes and metrics until interrupted",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Apply the secret_records schema to the configured database",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "dir",
					Value: "migrations",
					Usage: "Directory holding the postgresql and mysql migration sets",
				},
				&cli.BoolFlag{
					Name:  "down",
					Usage: "Roll every migration back, dropping stored secrets",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg, app.WithLogOutput(os.Stderr))
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), commands.DefaultIO().Writer, commands.MigrateOptions{
					Driver: cfg.DBDriver,
					DSN:    cfg.DBConnectionString,
					Dir:    cmd.String("dir"),
					Down:   cmd.Bool("down"),
				})
			},
		},
	}
}
