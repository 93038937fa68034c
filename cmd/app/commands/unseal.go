package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/allisson/nyx/internal/crypto/domain"
	secretsUseCase "github.com/allisson/nyx/internal/secrets/usecase"
)

// RunUnseal consumes the secret behind reference and writes its content.
// The secret is destroyed even if writing the output fails afterwards.
func RunUnseal(
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

	plaintext, err := secretUseCase.Unseal(ctx, reference)
	if err != nil {
		return fmt.Errorf("failed to unseal secret: %w", err)
	}
	defer cryptoDomain.Zero(plaintext)

	logger.Info("secret unsealed")

	if format == "json" {
		return writeJSON(writer, map[string]interface{}{
			"content": string(plaintext),
		})
	}

	_, err = writer.Write(plaintext)
	return err
}
