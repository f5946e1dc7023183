package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/folio/internal/model"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
)

type TemplateRepository interface {
	ByID(ctx context.Context, id int64) (*model.Template, error)
	Active(ctx context.Context) ([]*model.Template, error)
	All(ctx context.Context) ([]*model.Template, error)
	// Upsert inserts or refreshes a template keyed by folder_path and marks it active.
	Upsert(ctx context.Context, template *model.Template) error
	SetActive(ctx context.Context, id int64, active bool) error
}

type templateRepository struct {
	db *sqlx.DB
}

func NewTemplateRepository(db *sqlx.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) ByID(ctx context.Context, id int64) (*model.Template, error) {
	template := &model.Template{}

	err := r.db.GetContext(ctx, template, `SELECT * FROM templates WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}

	return template, nil
}

func (r *templateRepository) Active(ctx context.Context) ([]*model.Template, error) {
	templates := []*model.Template{}

	err := r.db.SelectContext(ctx, &templates, `SELECT * FROM templates WHERE is_active = $1 ORDER BY id ASC`, true)
	if err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *templateRepository) All(ctx context.Context) ([]*model.Template, error) {
	templates := []*model.Template{}

	err := r.db.SelectContext(ctx, &templates, `SELECT * FROM templates ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *templateRepository) Upsert(ctx context.Context, template *model.Template) error {
	now := time.Now().UTC()
	template.IsActive = true
	template.UpdatedAt = now
	if template.CreatedAt.IsZero() {
		template.CreatedAt = now
	}

	query := `INSERT INTO templates (name, description, preview_image, folder_path, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (folder_path) DO UPDATE SET
	              name = excluded.name,
	              description = excluded.description,
	              preview_image = excluded.preview_image,
	              is_active = excluded.is_active,
	              updated_at = excluded.updated_at
	          RETURNING id`

	return r.db.QueryRowxContext(ctx, query,
		template.Name,
		template.Description,
		template.PreviewImage,
		template.FolderPath,
		template.IsActive,
		template.CreatedAt,
		template.UpdatedAt,
	).Scan(&template.ID)
}

func (r *templateRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE templates SET is_active = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, active, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	return expectRow(result, ErrTemplateNotFound)
}
