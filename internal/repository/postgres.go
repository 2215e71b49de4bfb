package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresUploadRepository struct {
	db DBTX
}

func NewPostgresUploadRepository(db DBTX) *PostgresUploadRepository {
	return &PostgresUploadRepository{db: db}
}

var _ UploadRepository = (*PostgresUploadRepository)(nil)

const uploadColumns = `storage_key, original_filename, declared_type, detected_type, size_bytes, sha256, location, created_at`

func (r *PostgresUploadRepository) Create(ctx context.Context, rec UploadRecord) error {
	const q = `
		INSERT INTO uploads (` + uploadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, q,
		rec.StorageKey,
		rec.OriginalFilename,
		rec.DeclaredType,
		rec.DetectedType,
		rec.Size,
		rec.SHA256,
		rec.Location,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert upload record: %w", err)
	}
	return nil
}

func (r *PostgresUploadRepository) GetByKey(ctx context.Context, key string) (UploadRecord, error) {
	const q = `SELECT ` + uploadColumns + ` FROM uploads WHERE storage_key = $1`

	rows, err := r.db.Query(ctx, q, key)
	if err != nil {
		return UploadRecord{}, fmt.Errorf("failed to query upload record: %w", err)
	}
	rec, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[UploadRecord])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UploadRecord{}, ErrNotFound
		}
		return UploadRecord{}, fmt.Errorf("failed to scan upload record: %w", err)
	}
	return rec, nil
}

func (r *PostgresUploadRepository) List(ctx context.Context, limit int) ([]UploadRecord, error) {
	const q = `
		SELECT ` + uploadColumns + `
		FROM uploads
		ORDER BY created_at DESC, storage_key DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, q, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list upload records: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByPos[UploadRecord])
	if err != nil {
		return nil, fmt.Errorf("failed to scan upload records: %w", err)
	}
	return records, nil
}

func (r *PostgresUploadRepository) ListCreatedBefore(ctx context.Context, cutoff time.Time, limit int) ([]UploadRecord, error) {
	const q = `
		SELECT ` + uploadColumns + `
		FROM uploads
		WHERE created_at < $1
		ORDER BY created_at ASC, storage_key ASC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, q, cutoff, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list expired upload records: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByPos[UploadRecord])
	if err != nil {
		return nil, fmt.Errorf("failed to scan upload records: %w", err)
	}
	return records, nil
}

func (r *PostgresUploadRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM uploads WHERE storage_key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete upload record: %w", err)
	}
	return nil
}
