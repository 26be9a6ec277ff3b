package models

import (
	"database/sql"
	"time"
)

// Generation is the database representation of a generation task row.
type Generation struct {
	TaskID      string         `db:"task_id"`
	Model       string         `db:"model"`
	Prompt      string         `db:"prompt"`
	Images      []string       `db:"images"`
	AspectRatio string         `db:"aspect_ratio"`
	Status      string         `db:"status"`
	VideoURL    sql.NullString `db:"video_url"`
	CreatedAt   time.Time      `db:"created_at"`
	CompletedAt sql.NullTime   `db:"completed_at"`
}
