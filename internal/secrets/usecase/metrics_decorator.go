package usecase

import (
	"context"
	"time"

	"github.com/allisson/nyx/internal/metrics"
	secretsDomain "github.com/allisson/nyx/internal/secrets/domain"
)

// secretUseCaseWithMetrics decorates SecretUseCase with metrics instrumentation.
type secretUseCaseWithMetrics struct {
	next    SecretUseCase
	metrics metrics.BusinessMetrics
}

// NewSecretUseCaseWithMetrics wraps a SecretUseCase with metrics recording.
func NewSecretUseCaseWithMetrics(useCase SecretUseCase, m metrics.BusinessMetrics) SecretUseCase {
	return &secretUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Seal records metrics for seal operations.
func (s *secretUseCaseWithMetrics) Seal(
	ctx context.Context,
	plaintext []byte,
	keySizeBits int,
) (*secretsDomain.SealedSecret, error) {
	start := time.Now()
	sealed, err := s.next.Seal(ctx, plaintext, keySizeBits)
	s.record(ctx, "secret_seal", start, err)
	return sealed, err
}

// Unseal records metrics for unseal operations.
func (s *secretUseCaseWithMetrics) Unseal(ctx context.Context, reference string) ([]byte, error) {
	start := time.Now()
	plaintext, err := s.next.Unseal(ctx, reference)
	s.record(ctx, "secret_unseal", start, err)
	return plaintext, err
}

// Delete records metrics for administrative delete operations.
func (s *secretUseCaseWithMetrics) Delete(ctx context.Context, reference string) (bool, error) {
	start := time.Now()
	deleted, err := s.next.Delete(ctx, reference)
	s.record(ctx, "secret_delete", start, err)
	return deleted, err
}

func (s *secretUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}

	s.metrics.RecordOperation(ctx, "secrets", operation, status)
	s.metrics.RecordDuration(ctx, "secrets", operation, time.Since(start), status)
}
