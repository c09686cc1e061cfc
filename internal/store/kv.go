package store

import (
	"context"
	"database/sql"
	"time"
)

// GetValue returns the stored value for ns, or "" if missing.
func GetValue(ctx context.Context, db *sql.DB, ns string) (string, error) {
	var v string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE ns = ? LIMIT 1;`,
		ns,
	).Scan(&v)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func PutValue(ctx context.Context, db *sql.DB, ns, value string) error {
	_, err := db.ExecContext(ctx, `
INSERT OR REPLACE INTO kv(ns, value, updated_at)
VALUES(?,?,?);`,
		ns, value, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func DeleteValue(ctx context.Context, db *sql.DB, ns string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM kv WHERE ns = ?;`, ns)
	return err
}
