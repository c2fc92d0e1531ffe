package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"vault-purge/internal/model"
)

type CipherRepository struct {
	pool *pgxpool.Pool
}

func NewCipherRepository(pool *pgxpool.Pool) *CipherRepository {
	return &CipherRepository{pool: pool}
}

func (r *CipherRepository) Create(ctx context.Context, cipher model.Cipher) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO ciphers (id, user_id, data, created_at, updated_at, deleted_at)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))`,
		cipher.ID, cipher.UserID, cipher.Data,
		cipher.CreatedAt, cipher.UpdatedAt, cipher.DeletedAt)
	if err != nil {
		return fmt.Errorf("create cipher: %w", err)
	}
	return nil
}

// SoftDelete moves an active cipher to the trash by stamping deleted_at.
// The timestamp must already be in model.TimestampLayout.
func (r *CipherRepository) SoftDelete(ctx context.Context, id string, deletedAt string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE ciphers
		 SET deleted_at = $2, updated_at = $2
		 WHERE id = $1 AND deleted_at IS NULL`,
		id, deletedAt)
	if err != nil {
		return fmt.Errorf("soft delete cipher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCipherNotFound
	}
	return nil
}

func (r *CipherRepository) Restore(ctx context.Context, id string, restoredAt string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE ciphers
		 SET deleted_at = NULL, updated_at = $2
		 WHERE id = $1 AND deleted_at IS NOT NULL`,
		id, restoredAt)
	if err != nil {
		return fmt.Errorf("restore cipher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCipherNotFound
	}
	return nil
}

// CountPurgeable reports how many soft-deleted ciphers predate the cutoff.
// deleted_at and cutoff share model.TimestampLayout, so the string comparison
// below orders chronologically.
func (r *CipherRepository) CountPurgeable(ctx context.Context, cutoff string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM ciphers
		 WHERE deleted_at IS NOT NULL AND deleted_at < $1`, cutoff).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count purgeable ciphers: %w", err)
	}
	return count, nil
}

// PurgePurgeable permanently removes soft-deleted ciphers older than the
// cutoff and returns the number of rows actually deleted.
func (r *CipherRepository) PurgePurgeable(ctx context.Context, cutoff string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM ciphers
		 WHERE deleted_at IS NOT NULL AND deleted_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge ciphers: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *CipherRepository) ListDeleted(ctx context.Context) ([]model.Cipher, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, data, created_at, updated_at, deleted_at
		 FROM ciphers
		 WHERE deleted_at IS NOT NULL
		 ORDER BY deleted_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list deleted ciphers: %w", err)
	}
	defer rows.Close()

	ciphers := make([]model.Cipher, 0)
	for rows.Next() {
		var c model.Cipher
		if err := rows.Scan(&c.ID, &c.UserID, &c.Data, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan cipher: %w", err)
		}
		ciphers = append(ciphers, c)
	}
	return ciphers, rows.Err()
}
