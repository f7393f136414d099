package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/njprem/TravelWisata_BackEnd/internal/repository/ports"
)

const schema = `
	CREATE TABLE IF NOT EXISTS local_storage (
		storage_key TEXT PRIMARY KEY,
		value       BLOB NOT NULL,
		updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)
`

// Open connects to the SQLite file at path and creates the storage table.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// modernc serialises writers per connection; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return db, nil
}

type KeyValueRepository struct {
	db *sqlx.DB
}

func NewKeyValueRepo(db *sqlx.DB) *KeyValueRepository {
	return &KeyValueRepository{db: db}
}

func (r *KeyValueRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.GetContext(ctx, &value, `SELECT value FROM local_storage WHERE storage_key = ?`, key)
	if err != nil {
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
	query, args, err := sqlx.In(`SELECT storage_key, value FROM local_storage WHERE storage_key IN (?)`, keys)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryxContext(ctx, r.db.Rebind(query), args...)
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
	return out, rows.Err()
}

func (r *KeyValueRepository) Set(ctx context.Context, key string, value []byte) error {
	const query = `
		INSERT INTO local_storage (storage_key, value)
		VALUES (?, ?)
		ON CONFLICT (storage_key) DO UPDATE
		SET value = excluded.value,
		    updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, query, key, value)
	return err
}

func (r *KeyValueRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM local_storage WHERE storage_key = ?`, key)
	return err
}

var _ ports.KeyValueStore = (*KeyValueRepository)(nil)
