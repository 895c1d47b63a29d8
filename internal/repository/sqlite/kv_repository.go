package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/photodeck/internal/logger"
	"github.com/vytor/photodeck/internal/repository"
)

type kvRepository struct {
	db *sql.DB
}

// NewKVRepository creates a new KVRepository implementation
func NewKVRepository(db *sql.DB) repository.KVRepository {
	return &kvRepository{db: db}
}

func (r *kvRepository) Get(ctx context.Context, key string) (string, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")

	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("key not found: %s", key)
		return "", false, nil
	}
	if err != nil {
		log.Error("failed to get key %s: %v", key, err)
		return "", false, err
	}
	log.Debug("key found: %s (%d bytes)", key, len(value))
	return value, true, nil
}

func (r *kvRepository) Set(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("setting key: %s (%d bytes)", key, len(value))

	_, err := r.db.ExecContext(ctx, `
INSERT INTO kv (key, value, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
`, key, value)
	if err != nil {
		log.Error("failed to set key %s: %v", key, err)
	}
	return err
}

func (r *kvRepository) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("deleting key: %s", key)

	_, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		log.Error("failed to delete key %s: %v", key, err)
	}
	return err
}
