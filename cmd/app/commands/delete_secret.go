package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	secretsUseCase "github.com/allisson/nyx/internal/secrets/usecase"
)

// RunDeleteSecret destroys a secret without decrypting it. Deleting a reference
// that was already consumed is not an error; the output reports it.
func RunDeleteSecret(
	ctx context.Context,
	secretUseCase secretsUseCase.SecretUseCase,
	logger *slog.Logger,
	writer io.Writer,
	reference string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	deleted, err := secretUseCase.Delete(ctx, reference)
	if err != nil {
		return fmt.Errorf("failed to delete secret: %w", err)
	}

	logger.Info("delete secret completed",
		slog.String("secret_id", reference),
		slog.Bool("deleted", deleted),
	)

	if format == "json" {
		return writeJSON(writer, map[string]interface{}{
			"reference": reference,
			"deleted":   deleted,
		})
	}

	if deleted {
		_, err = fmt.Fprintf(writer, "Secret %s deleted\n", reference)
	} else {
		_, err = fmt.Fprintf(writer, "Secret %s not found (already consumed or never issued)\n", reference)
	}
	return err
}
