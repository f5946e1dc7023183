package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/templui/folio/internal/model"
	"github.com/templui/folio/internal/repository"
	"github.com/templui/folio/internal/validation"
)

const maxPortfolioTitleLength = 100

// PortfolioPatch updates a portfolio. Nil fields keep their stored value;
// a TemplateID of 0 clears the template so the default one is used.
type PortfolioPatch struct {
	Title        *string           `json:"title"`
	Bio          *string           `json:"bio"`
	TemplateID   *int64            `json:"templateId"`
	SocialLinks  map[string]string `json:"socialLinks"`
	CustomConfig map[string]string `json:"customConfig"`
}

type PortfolioService struct {
	portfolioRepository repository.PortfolioRepository
	templateRepository  repository.TemplateRepository
}

func NewPortfolioService(portfolioRepository repository.PortfolioRepository, templateRepository repository.TemplateRepository) *PortfolioService {
	return &PortfolioService{
		portfolioRepository: portfolioRepository,
		templateRepository:  templateRepository,
	}
}

// Config returns the user's portfolio with its template loaded.
func (s *PortfolioService) Config(ctx context.Context, userID int64) (*model.Portfolio, error) {
	portfolio, err := s.portfolioRepository.ByUserID(ctx, userID)
	if errors.Is(err, repository.ErrPortfolioNotFound) {
		return nil, notFound("portfolio not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}

	err = loadTemplate(ctx, s.templateRepository, portfolio)
	if err != nil {
		return nil, err
	}

	return portfolio, nil
}

// UpdateConfig applies the patch, creating the portfolio if the user has none.
func (s *PortfolioService) UpdateConfig(ctx context.Context, userID int64, patch PortfolioPatch) (*model.Portfolio, error) {
	portfolio, err := s.portfolioRepository.ByUserID(ctx, userID)
	exists := true
	if errors.Is(err, repository.ErrPortfolioNotFound) {
		exists = false
		portfolio = &model.Portfolio{UserID: userID, Title: model.DefaultPortfolioTitle}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}

	err = s.applyPatch(ctx, portfolio, patch)
	if err != nil {
		return nil, err
	}

	if exists {
		err = s.portfolioRepository.Update(ctx, portfolio)
	} else {
		err = s.portfolioRepository.Create(ctx, portfolio)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save portfolio: %w", err)
	}

	err = loadTemplate(ctx, s.templateRepository, portfolio)
	if err != nil {
		return nil, err
	}

	slog.Info("portfolio updated", "user_id", userID)
	return portfolio, nil
}

// Templates lists the templates users can pick.
func (s *PortfolioService) Templates(ctx context.Context) ([]*model.Template, error) {
	templates, err := s.templateRepository.Active(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

func (s *PortfolioService) applyPatch(ctx context.Context, portfolio *model.Portfolio, patch PortfolioPatch) error {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		err := validation.ValidateTitle("title", title, maxPortfolioTitleLength)
		if err != nil {
			return invalid(err)
		}
		portfolio.Title = title
	}

	if patch.Bio != nil {
		portfolio.Bio = optional(*patch.Bio)
	}

	if patch.SocialLinks != nil {
		links := model.StringMap(patch.SocialLinks).Clone()
		err := validation.ValidateStringMap("socialLinks", links, model.SocialLinkKeys, true)
		if err != nil {
			return invalid(err)
		}
		portfolio.SocialLinks = links
	}

	if patch.CustomConfig != nil {
		config := model.StringMap(patch.CustomConfig).Clone()
		err := validation.ValidateStringMap("customConfig", config, model.CustomConfigKeys, true)
		if err != nil {
			return invalid(err)
		}
		portfolio.CustomConfig = config
	}

	if patch.TemplateID != nil {
		if *patch.TemplateID == 0 {
			portfolio.TemplateID = nil
			return nil
		}

		template, err := s.templateRepository.ByID(ctx, *patch.TemplateID)
		if errors.Is(err, repository.ErrTemplateNotFound) || (err == nil && !template.IsActive) {
			return invalid(errors.New("template not found or inactive"))
		}
		if err != nil {
			return fmt.Errorf("failed to load template: %w", err)
		}
		portfolio.TemplateID = &template.ID
	}

	return nil
}

// loadTemplate attaches the referenced template. A dangling reference
// leaves Template nil.
func loadTemplate(ctx context.Context, templates repository.TemplateRepository, portfolio *model.Portfolio) error {
	portfolio.Template = nil
	if portfolio.TemplateID == nil {
		return nil
	}

	template, err := templates.ByID(ctx, *portfolio.TemplateID)
	if errors.Is(err, repository.ErrTemplateNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load template: %w", err)
	}

	portfolio.Template = template
	return nil
}
