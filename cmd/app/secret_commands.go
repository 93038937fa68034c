package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/nyx/cmd/app/commands"
	"github.com/allisson/nyx/internal/app"
	"github.com/allisson/nyx/internal/config"
	secretsUseCase "github.com/allisson/nyx/internal/secrets/usecase"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func referenceFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "reference",
		Aliases:  []string{"r"},
		Required: true,
		Usage:    "Secret reference returned by seal",
	}
}

// withSecretUseCase builds a container, hands its secret use case to fn and
// shuts the container down afterwards.
func withSecretUseCase(
	ctx context.Context,
	fn func(container *app.Container, useCase secretsUseCase.SecretUseCase) error,
) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	container := app.NewContainer(cfg, app.WithLogOutput(os.Stderr))
	defer func() { _ = container.Shutdown(ctx) }()

	useCase, err := container.SecretUseCase()
	if err != nil {
		return err
	}

	return fn(container, useCase)
}

func getSecretCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "seal",
			Usage: "Seal a secret read from standard input and print its reference",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "key-size",
					Aliases: []string{"k"},
					Value:   0,
					Usage:   "RSA key size in bits (2048, 3072 or 4096; 0 uses RSA_KEY_SIZE_BITS)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withSecretUseCase(ctx, func(container *app.Container, useCase secretsUseCase.SecretUseCase) error {
					return commands.RunSeal(
						ctx,
						useCase,
						container.Logger(),
						commands.DefaultIO(),
						int(cmd.Int("key-size")),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "unseal",
			Usage: "Read a secret once and destroy it",
			Flags: []cli.Flag{
				referenceFlag(),
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withSecretUseCase(ctx, func(container *app.Container, useCase secretsUseCase.SecretUseCase) error {
					return commands.RunUnseal(
						ctx,
						useCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("reference"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "delete-secret",
			Usage: "Destroy a secret without reading it",
			Flags: []cli.Flag{
				referenceFlag(),
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withSecretUseCase(ctx, func(container *app.Container, useCase secretsUseCase.SecretUseCase) error {
					return commands.RunDeleteSecret(
						ctx,
						useCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("reference"),
						cmd.String("format"),
					)
				})
			},
		},
	}
}
