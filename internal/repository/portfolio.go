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
	ErrPortfolioNotFound = errors.New("portfolio not found")
	ErrPortfolioExists   = errors.New("portfolio already exists")
)

type PortfolioRepository interface {
	ByUserID(ctx context.Context, userID int64) (*model.Portfolio, error)
	Create(ctx context.Context, portfolio *model.Portfolio) error
	Update(ctx context.Context, portfolio *model.Portfolio) error
	UpdateGeneratedURL(ctx context.Context, userID int64, url string) error
}

type portfolioRepository struct {
	db *sqlx.DB
}

func NewPortfolioRepository(db *sqlx.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

func (r *portfolioRepository) ByUserID(ctx context.Context, userID int64) (*model.Portfolio, error) {
	var portfolio model.Portfolio
	err := r.db.GetContext(ctx, &portfolio, `SELECT * FROM portfolios WHERE user_id = $1`, userID)

	if err == sql.ErrNoRows {
		return nil, ErrPortfolioNotFound
	}
	if err != nil {
		return nil, err
	}

	return &portfolio, nil
}

func (r *portfolioRepository) Create(ctx context.Context, portfolio *model.Portfolio) error {
	return insertPortfolio(ctx, r.db, portfolio)
}

// insertPortfolio runs on either the pool or a transaction.
func insertPortfolio(ctx context.Context, q sqlx.QueryerContext, portfolio *model.Portfolio) error {
	now := time.Now().UTC()
	if portfolio.CreatedAt.IsZero() {
		portfolio.CreatedAt = now
	}
	portfolio.UpdatedAt = portfolio.CreatedAt
	if portfolio.Title == "" {
		portfolio.Title = model.DefaultPortfolioTitle
	}
	if portfolio.SocialLinks == nil {
		portfolio.SocialLinks = model.StringMap{}
	}
	if portfolio.CustomConfig == nil {
		portfolio.CustomConfig = model.StringMap{}
	}

	query := `INSERT INTO portfolios (user_id, template_id, title, bio, social_links, custom_config, generated_url, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`

	err := q.QueryRowxContext(ctx, query,
		portfolio.UserID,
		portfolio.TemplateID,
		portfolio.Title,
		portfolio.Bio,
		portfolio.SocialLinks,
		portfolio.CustomConfig,
		portfolio.GeneratedURL,
		portfolio.CreatedAt,
		portfolio.UpdatedAt,
	).Scan(&portfolio.ID)
	if err != nil && isUniqueViolation(err) {
		return ErrPortfolioExists
	}

	return err
}

func (r *portfolioRepository) Update(ctx context.Context, portfolio *model.Portfolio) error {
	portfolio.UpdatedAt = time.Now().UTC()

	query := `UPDATE portfolios
	          SET template_id = $1, title = $2, bio = $3, social_links = $4, custom_config = $5, updated_at = $6
	          WHERE user_id = $7`

	result, err := r.db.ExecContext(ctx, query,
		portfolio.TemplateID,
		portfolio.Title,
		portfolio.Bio,
		portfolio.SocialLinks,
		portfolio.CustomConfig,
		portfolio.UpdatedAt,
		portfolio.UserID,
	)
	if err != nil {
		return err
	}

	return expectRow(result, ErrPortfolioNotFound)
}

// UpdateGeneratedURL overwrites any previously generated URL.
func (r *portfolioRepository) UpdateGeneratedURL(ctx context.Context, userID int64, url string) error {
	query := `UPDATE portfolios SET generated_url = $1, updated_at = $2 WHERE user_id = $3`

	result, err := r.db.ExecContext(ctx, query, url, time.Now().UTC(), userID)
	if err != nil {
		return err
	}

	return expectRow(result, ErrPortfolioNotFound)
}

func expectRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
