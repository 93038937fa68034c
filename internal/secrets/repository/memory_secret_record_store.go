package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	apperrors "github.com/allisson/nyx/internal/errors"
	secretsDomain "github.com/allisson/nyx/internal/secrets/domain"
)

// MemorySecretRecordStore keeps records in process memory. Records do not survive
// a restart and are not shared between processes; use it for development and tests.
type MemorySecretRecordStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]secretsDomain.SecretRecord
}

// Insert stores a new record with a fresh random ID.
func (m *MemorySecretRecordStore) Insert(
	_ context.Context,
	ciphertext, privateKeyMaterial string,
) (*secretsDomain.SecretRecord, error) {
	record, err := secretsDomain.NewSecretRecord(ciphertext, privateKeyMaterial)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[record.ID]; exists {
		return nil, apperrors.Wrap(apperrors.ErrConflict, "secret record id already in use")
	}
	m.records[record.ID] = *record

	return record, nil
}

// TakeAndDelete removes and returns the record under the store lock.
func (m *MemorySecretRecordStore) TakeAndDelete(
	_ context.Context,
	id uuid.UUID,
) (*secretsDomain.SecretRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, exists := m.records[id]
	if !exists {
		return nil, secretsDomain.ErrSecretNotFound
	}
	delete(m.records, id)

	return &record, nil
}

// Delete removes the record and reports whether it existed.
func (m *MemorySecretRecordStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, exists := m.records[id]
	delete(m.records, id)

	return exists, nil
}

// Len returns the number of stored records.
func (m *MemorySecretRecordStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// Ping always succeeds.
func (m *MemorySecretRecordStore) Ping(context.Context) error {
	return nil
}

// NewMemorySecretRecordStore creates an empty in-memory SecretRecordStore.
func NewMemorySecretRecordStore() *MemorySecretRecordStore {
	return &MemorySecretRecordStore{records: make(map[uuid.UUID]secretsDomain.SecretRecord)}
}
