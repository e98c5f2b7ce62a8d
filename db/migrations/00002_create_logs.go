package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

func init() {
	goose.AddMigrationContext(upCreateLogs, downCreateLogs)
}

func upCreateLogs(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS logs (
			id        TEXT PRIMARY KEY,
			timestamp DATETIME NOT NULL,
			level     TEXT NOT NULL,
			message   TEXT NOT NULL,
			context   TEXT NOT NULL DEFAULT '{}',
			domain    TEXT,
			keyword   TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("creating logs table : %w", err)
	}

	_, err = tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_logs_timestamp ON logs(timestamp)`)
	if err != nil {
		return fmt.Errorf("creating logs timestamp index : %w", err)
	}

	_, err = tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_logs_domain ON logs(domain)`)
	if err != nil {
		return fmt.Errorf("creating logs domain index : %w", err)
	}
	return nil
}

func downCreateLogs(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `DROP INDEX IF EXISTS idx_logs_domain`); err != nil {
		return fmt.Errorf("dropping logs domain index : %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DROP INDEX IF EXISTS idx_logs_timestamp`); err != nil {
		return fmt.Errorf("dropping logs timestamp index : %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS logs`); err != nil {
		return fmt.Errorf("dropping logs table : %w", err)
	}
	return nil
}
