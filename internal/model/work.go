package model

import (
	"time"
)

const DefaultWorkCategory = "uncategorized"

type Work struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"userId"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	CoverImage  *string   `db:"cover_image" json:"coverImage"`
	Category    string    `db:"category" json:"category"`
	Link        *string   `db:"link" json:"link"`
	SortOrder   int       `db:"sort_order" json:"sortOrder"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
