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

// MySQLSecretRecordStore implements SecretRecordStore for MySQL databases. MySQL
// has no DELETE ... RETURNING, so TakeAndDelete locks the row inside a
// transaction before deleting it.
type MySQLSecretRecordStore struct {
	db        *sql.DB
	txManager database.TxManager
}

// Insert stores a new record with a fresh random ID.
func (m *MySQLSecretRecordStore) Insert(
	ctx context.Context,
	ciphertext, privateKeyMaterial string,
) (*secretsDomain.SecretRecord, error) {
	record, err := secretsDomain.NewSecretRecord(ciphertext, privateKeyMaterial)
	if err != nil {
		return nil, err
	}

	id, err := record.ID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal secret id")
	}

	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO secret_records (id, ciphertext, private_key, created_at)
			  VALUES (?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		record.Ciphertext,
		record.PrivateKeyMaterial,
		record.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.Storage(err, "failed to insert secret record")
	}

	return record, nil
}

// TakeAndDelete reads the row under SELECT ... FOR UPDATE and deletes it in the
// same transaction. A concurrent taker blocks on the row lock and then finds
// nothing.
func (m *MySQLSecretRecordStore) TakeAndDelete(
	ctx context.Context,
	id uuid.UUID,
) (*secretsDomain.SecretRecord, error) {
	binaryID, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal secret id")
	}

	var record secretsDomain.SecretRecord
	err = m.txManager.WithTx(ctx, func(txCtx context.Context) error {
		querier := database.GetTx(txCtx, m.db)

		query := `SELECT id, ciphertext, private_key, created_at
				  FROM secret_records
				  WHERE id = ?
				  FOR UPDATE`

		var rawID []byte
		err := querier.QueryRowContext(txCtx, query, binaryID).Scan(
			&rawID,
			&record.Ciphertext,
			&record.PrivateKeyMaterial,
			&record.CreatedAt,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return secretsDomain.ErrSecretNotFound
			}
			return apperrors.Storage(err, "failed to lock secret record")
		}

		if err := record.ID.UnmarshalBinary(rawID); err != nil {
			return apperrors.Wrap(err, "failed to unmarshal secret id")
		}

		result, err := querier.ExecContext(txCtx, `DELETE FROM secret_records WHERE id = ?`, binaryID)
		if err != nil {
			return apperrors.Storage(err, "failed to delete secret record")
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return apperrors.Storage(err, "failed to get rows affected")
		}
		if affected != 1 {
			return secretsDomain.ErrSecretNotFound
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, secretsDomain.ErrSecretNotFound) || errors.Is(err, apperrors.ErrStorage) {
			return nil, err
		}
		return nil, apperrors.Storage(err, "failed to take secret record")
	}

	return &record, nil
}

// Delete removes the record and reports whether a row existed.
func (m *MySQLSecretRecordStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	binaryID, err := id.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal secret id")
	}

	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM secret_records WHERE id = ?`, binaryID)
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
func (m *MySQLSecretRecordStore) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

// NewMySQLSecretRecordStore creates a new MySQL SecretRecordStore instance.
func NewMySQLSecretRecordStore(db *sql.DB, txManager database.TxManager) *MySQLSecretRecordStore {
	return &MySQLSecretRecordStore{db: db, txManager: txManager}
}
