package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	cryptoDomain "github.com/allisson/nyx/internal/crypto/domain"
	secretsUseCase "github.com/allisson/nyx/internal/secrets/usecase"
)

// maxSealInputBytes caps what seal reads from standard input. Anything this large
// cannot fit a single RSA block anyway.
const maxSealInputBytes = 64 * 1024

// RunSeal reads a secret from the command's reader, seals it and prints the
// reference. One trailing newline is dropped so `echo secret | nyx seal` seals
// exactly "secret".
func RunSeal(
	ctx context.Context,
	secretUseCase secretsUseCase.SecretUseCase,
	logger *slog.Logger,
	cmdIO IOTuple,
	keySizeBits int,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	plaintext, err := readSecret(cmdIO.Reader)
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(plaintext)

	sealed, err := secretUseCase.Seal(ctx, plaintext, keySizeBits)
	if err != nil {
		return fmt.Errorf("failed to seal secret: %w", err)
	}

	// The reference is a credential and never reaches the log.
	logger.Info("secret sealed", slog.Int("key_size_bits", sealed.KeySizeBits))

	if format == "json" {
		return writeJSON(cmdIO.Writer, map[string]interface{}{
			"reference":     sealed.Reference,
			"key_size_bits": sealed.KeySizeBits,
			"created_at":    sealed.CreatedAt.Format(time.RFC3339Nano),
		})
	}

	_, err = fmt.Fprintln(cmdIO.Writer, sealed.Reference)
	return err
}

// readSecret reads at most maxSealInputBytes and strips one trailing "\n" or
// "\r\n". A bare trailing "\r" is content.
func readSecret(reader io.Reader) ([]byte, error) {
	if reader == nil {
		return nil, fmt.Errorf("no input to seal")
	}

	data, err := io.ReadAll(io.LimitReader(reader, maxSealInputBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}
	if len(data) > maxSealInputBytes {
		cryptoDomain.Zero(data)
		return nil, fmt.Errorf("secret exceeds %d bytes", maxSealInputBytes)
	}

	if trimmed, ok := bytes.CutSuffix(data, []byte("\n")); ok {
		data = bytes.TrimSuffix(trimmed, []byte("\r"))
	}
	return data, nil
}
