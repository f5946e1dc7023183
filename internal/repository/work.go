package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/folio/internal/model"
)

var (
	ErrWorkNotFound = errors.New("work not found")
)

type WorkRepository interface {
	// List returns the user's works in display order.
	List(ctx context.Context, userID int64) ([]*model.Work, error)
	ByID(ctx context.Context, userID, id int64) (*model.Work, error)
	// MaxSortOrder returns -1 when the user has no works.
	MaxSortOrder(ctx context.Context, userID int64) (int, error)
	Create(ctx context.Context, work *model.Work) error
	Update(ctx context.Context, work *model.Work) error
	Delete(ctx context.Context, userID, id int64) error
	// Reorder assigns sort_order = index to each listed work owned by the user.
	// Ids the user does not own are ignored.
	Reorder(ctx context.Context, userID int64, ids []int64) error
}

type workRepository struct {
	db *sqlx.DB
}

func NewWorkRepository(db *sqlx.DB) WorkRepository {
	return &workRepository{db: db}
}

func (r *workRepository) List(ctx context.Context, userID int64) ([]*model.Work, error) {
	works := []*model.Work{}
	query := `SELECT * FROM works WHERE user_id = $1 ORDER BY sort_order ASC, created_at DESC, id DESC`

	err := r.db.SelectContext(ctx, &works, query, userID)
	if err != nil {
		return nil, err
	}

	return works, nil
}

func (r *workRepository) ByID(ctx context.Context, userID, id int64) (*model.Work, error) {
	work := &model.Work{}
	query := `SELECT * FROM works WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, work, query, id, userID)
	if err == sql.ErrNoRows {
		return nil, ErrWorkNotFound
	}
	if err != nil {
		return nil, err
	}

	return work, nil
}

func (r *workRepository) MaxSortOrder(ctx context.Context, userID int64) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(sort_order), -1) FROM works WHERE user_id = $1`

	err := r.db.GetContext(ctx, &max, query, userID)
	if err != nil {
		return 0, err
	}

	return max, nil
}

func (r *workRepository) Create(ctx context.Context, work *model.Work) error {
	now := time.Now().UTC()
	if work.CreatedAt.IsZero() {
		work.CreatedAt = now
	}
	work.UpdatedAt = work.CreatedAt
	if work.Category == "" {
		work.Category = model.DefaultWorkCategory
	}

	query := `INSERT INTO works (user_id, title, description, cover_image, category, link, sort_order, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`

	return r.db.QueryRowxContext(ctx, query,
		work.UserID,
		work.Title,
		work.Description,
		work.CoverImage,
		work.Category,
		work.Link,
		work.SortOrder,
		work.CreatedAt,
		work.UpdatedAt,
	).Scan(&work.ID)
}

func (r *workRepository) Update(ctx context.Context, work *model.Work) error {
	work.UpdatedAt = time.Now().UTC()

	query := `UPDATE works
	          SET title = $1, description = $2, cover_image = $3, category = $4, link = $5, sort_order = $6, updated_at = $7
	          WHERE id = $8 AND user_id = $9`

	result, err := r.db.ExecContext(ctx, query,
		work.Title,
		work.Description,
		work.CoverImage,
		work.Category,
		work.Link,
		work.SortOrder,
		work.UpdatedAt,
		work.ID,
		work.UserID,
	)
	if err != nil {
		return err
	}

	return expectRow(result, ErrWorkNotFound)
}

func (r *workRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM works WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	return expectRow(result, ErrWorkNotFound)
}

func (r *workRepository) Reorder(ctx context.Context, userID int64, ids []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE works SET sort_order = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`

	now := time.Now().UTC()
	for i, id := range ids {
		_, err := tx.ExecContext(ctx, query, i, now, id, userID)
		if err != nil {
			return fmt.Errorf("failed to reorder work %d: %w", id, err)
		}
	}

	return tx.Commit()
}
