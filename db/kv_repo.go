package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tfkr-ae/sitefilter/domain"
)

var _ domain.KeyValueStore = (*Repository)(nil)

// Get implements the domain.KeyValueStore interface.
// A missing key is reported through the boolean, not as an error.
func (repo *Repository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	query := `SELECT value FROM kv WHERE key = ?`

	err := repo.dbConn.GetContext(ctx, &value, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("getting value for %s: %w", key, err)
	}

	return value, true, nil
}

// Set implements the domain.KeyValueStore interface.
// The whole value is replaced; the last writer wins.
func (repo *Repository) Set(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO kv(key, value, updated_at)
		      VALUES (?, ?, ?)
		      ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`

	if value == nil {
		value = []byte{}
	}

	_, err := repo.dbConn.ExecContext(ctx, query, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("setting value for %s: %w", key, err)
	}

	return nil
}
