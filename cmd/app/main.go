// Command nyx runs the burn-after-read secret service and its operator commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:     "nyx",
		Usage:    "Burn-after-read secret exchange",
		Version:  version,
		Commands: append(getSystemCommands(version), getSecretCommands()...),
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
