package main

import (
	"context"
	"database/sql"
	"fmt"

	"melodex/internal/store"
)

// bootstrapSchema applies the embedded DDL when the core tables are missing.
// Every statement is IF NOT EXISTS, so running against a provisioned database
// is a no-op. Full migration tooling lives outside this service.
func bootstrapSchema(ctx context.Context, db *sql.DB) error {
	exists, err := tableExists(ctx, db, "user_album_likes")
	if err != nil {
		return fmt.Errorf("check likes table: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := db.ExecContext(ctx, store.Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func tableExists(ctx context.Context, db *sql.DB, table string) (bool, error) {
	var name sql.NullString
	if err := db.QueryRowContext(ctx, `SELECT to_regclass($1)`, table).Scan(&name); err != nil {
		return false, err
	}
	return name.Valid, nil
}
