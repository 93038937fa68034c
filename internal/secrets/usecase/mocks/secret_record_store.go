// Package mocks provides mock implementations of the secrets use case interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	secretsDomain "github.com/allisson/nyx/internal/secrets/domain"
)

// MockSecretRecordStore is a mock implementation of SecretRecordStore for testing.
type MockSecretRecordStore struct {
	mock.Mock
}

// NewMockSecretRecordStore creates a MockSecretRecordStore whose expectations are
// asserted when the test finishes.
func NewMockSecretRecordStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSecretRecordStore {
	m := &MockSecretRecordStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Insert mocks the Insert method of SecretRecordStore.
func (m *MockSecretRecordStore) Insert(
	ctx context.Context,
	ciphertext, privateKeyMaterial string,
) (*secretsDomain.SecretRecord, error) {
	args := m.Called(ctx, ciphertext, privateKeyMaterial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.SecretRecord), args.Error(1)
}

// TakeAndDelete mocks the TakeAndDelete method of SecretRecordStore.
func (m *MockSecretRecordStore) TakeAndDelete(
	ctx context.Context,
	id uuid.UUID,
) (*secretsDomain.SecretRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.SecretRecord), args.Error(1)
}

// Delete mocks the Delete method of SecretRecordStore.
func (m *MockSecretRecordStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// Ping mocks the Ping method of SecretRecordStore.
func (m *MockSecretRecordStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
