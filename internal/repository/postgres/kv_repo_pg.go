package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/njprem/TravelWisata_BackEnd/internal/repository/ports"
)

const schema = `
	CREATE TABLE IF NOT EXISTS local_storage (
		storage_key TEXT PRIMARY KEY,
		value       BYTEA NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

type KeyValueRepository struct {
	db *sqlx.DB
}

func NewKeyValueRepo(db *sqlx.DB) *KeyValueRepository {
	return &KeyValueRepository{db: db}
}

func (r *KeyValueRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *KeyValueRepository) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `
		SELECT value
		FROM local_storage
		WHERE storage_key = $1
	`
	var value []byte
	if err := r.db.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *KeyValueRepository) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	const query = `
		SELECT storage_key, value
		FROM local_storage
		WHERE storage_key = ANY($1)
	`
	rows, err := r.db.QueryxContext(ctx, query, pq.Array(keys))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key   string
			value []byte
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *KeyValueRepository) Set(ctx context.Context, key string, value []byte) error {
	const query = `
		INSERT INTO local_storage (storage_key, value)
		VALUES ($1, $2)
		ON CONFLICT (storage_key) DO UPDATE
		SET value = EXCLUDED.value,
		    updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, key, value)
	return err
}

func (r *KeyValueRepository) Delete(ctx context.Context, key string) error {
	const query = `
		DELETE FROM local_storage
		WHERE storage_key = $1
	`
	_, err := r.db.ExecContext(ctx, query, key)
	return err
}

var _ ports.KeyValueStore = (*KeyValueRepository)(nil)
