package model

import (
	"time"
)

// DefaultTemplateFolder is used when a portfolio has no active template.
const DefaultTemplateFolder = "minimal"

type Template struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  string    `db:"description" json:"description"`
	PreviewImage string    `db:"preview_image" json:"previewImage"`
	FolderPath   string    `db:"folder_path" json:"folderPath"`
	IsActive     bool      `db:"is_active" json:"isActive"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
