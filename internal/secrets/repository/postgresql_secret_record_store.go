// Package repository implements SecretRecordStore on PostgreSQL, MySQL, Redis and
// process memory. Every implementation makes TakeAndDelete a single atomic step
// so that a record is handed out at most once.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/nyx/internal/database"
	apperrors "github.com/allisson/nyx/internal/errors"
	secretsDomain "github.com/allisson/nyx/internal/secrets/domain"
)

// PostgreSQLSecretRecordStore implements SecretRecordStore for PostgreSQL databases.
type PostgreSQLSecretRecordStore struct {
	db *sql.DB
}

// Insert stores a new record with a fresh random ID.
func (p *PostgreSQLSecretRecordStore) Insert(
	ctx context.Context,
	ciphertext, privateKeyMaterial string,
) (*secretsDomain.SecretRecord, error) {
	record, err := secretsDomain.NewSecretRecord(ciphertext, privateKeyMaterial)
	if err != nil {
		return nil, err
	}

	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO secret_records (id, ciphertext, private_key, created_at)
			  VALUES ($1, $2, $3, $4)`

	_, err = querier.ExecContext(
		ctx,
		query,
		record.ID,
		record.Ciphertext,
		record.PrivateKeyMaterial,
		record.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.Storage(err, "failed to insert secret record")
	}

	return record, nil
}

// TakeAndDelete deletes the record and returns the deleted row in one statement.
// Concurrent callers race on the row lock; the losers see zero rows.
func (p *PostgreSQLSecretRecordStore) TakeAndDelete(
	ctx context.Context,
	id uuid.UUID,
) (*secretsDomain.SecretRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM secret_records
			  WHERE id = $1
			  RETURNING id, ciphertext, private_key, created_at`

	var record secretsDomain.SecretRecord
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&record.Ciphertext,
		&record.PrivateKeyMaterial,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, secretsDomain.ErrSecretNotFound
		}
		return nil, apperrors.Storage(err, "failed to take secret record")
	}

	return &record, nil
}

// Delete removes the record and reports whether a row existed.
func (p *PostgreSQLSecretRecordStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM secret_records WHERE id = $1`, id)
	if err != nil {
		return false, apperrors.Storage(err, "failed to delete secret record")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Storage(err, "failed to get rows affected")
	}

	return affected > 0, nil
}

// Ping checks the database connection.
func (p *PostgreSQLSecretRecordStore) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// NewPostgreSQLSecretRecordStore creates a new PostgreSQL SecretRecordStore instance.
func NewPostgreSQLSecretRecordStore(db *sql.DB) *PostgreSQLSecretRecordStore {
	return &PostgreSQLSecretRecordStore{db: db}
}
