package store

import (
	"context"
	"database/sql"
	"time"
)

type Bookmark struct {
	PositionID int64  `json:"positionId"`
	Title      string `json:"title"`
	Company    string `json:"company"`
	CreatedAt  string `json:"createdAt"`
}

func ListBookmarks(ctx context.Context, db *sql.DB) ([]Bookmark, error) {
	rows, err := db.QueryContext(ctx, `
SELECT position_id, title, company, created_at
FROM bookmarks
ORDER BY created_at DESC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Bookmark
	for rows.Next() {
		var b Bookmark
		if err := rows.Scan(&b.PositionID, &b.Title, &b.Company, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func AddBookmark(ctx context.Context, db *sql.DB, positionID int64, title, company string) error {
	_, err := db.ExecContext(ctx, `
INSERT OR REPLACE INTO bookmarks(position_id, title, company, created_at)
VALUES(?,?,?,?);`,
		positionID, title, company, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func RemoveBookmark(ctx context.Context, db *sql.DB, positionID int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM bookmarks WHERE position_id = ?;`, positionID)
	return err
}

func IsBookmarked(ctx context.Context, db *sql.DB, positionID int64) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx,
		`SELECT 1 FROM bookmarks WHERE position_id = ? LIMIT 1;`,
		positionID,
	).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
