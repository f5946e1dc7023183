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

const (
	maxWorkTitleLength    = 100
	maxWorkCategoryLength = 50
)

// WorkInput is the payload for creating or updating a work. On update, nil
// fields keep their stored value.
type WorkInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CoverImage  *string `json:"coverImage"`
	Category    *string `json:"category"`
	Link        *string `json:"link"`
	SortOrder   *int    `json:"sortOrder"`
}

type WorkService struct {
	workRepository repository.WorkRepository
}

func NewWorkService(workRepository repository.WorkRepository) *WorkService {
	return &WorkService{workRepository: workRepository}
}

func (s *WorkService) List(ctx context.Context, userID int64) ([]*model.Work, error) {
	works, err := s.workRepository.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list works: %w", err)
	}
	return works, nil
}

// Create appends a work after the user's current last one.
func (s *WorkService) Create(ctx context.Context, userID int64, input WorkInput) (*model.Work, error) {
	if input.Title == nil {
		return nil, invalid(errors.New("title is required"))
	}

	work := &model.Work{UserID: userID}
	err := applyWorkInput(work, input)
	if err != nil {
		return nil, err
	}

	if input.SortOrder == nil {
		max, err := s.workRepository.MaxSortOrder(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to read sort order: %w", err)
		}
		work.SortOrder = max + 1
	}

	err = s.workRepository.Create(ctx, work)
	if err != nil {
		return nil, fmt.Errorf("failed to create work: %w", err)
	}

	slog.Info("work created", "user_id", userID, "work_id", work.ID)
	return work, nil
}

func (s *WorkService) Update(ctx context.Context, userID, workID int64, input WorkInput) (*model.Work, error) {
	work, err := s.workRepository.ByID(ctx, userID, workID)
	if errors.Is(err, repository.ErrWorkNotFound) {
		return nil, notFound("work not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load work: %w", err)
	}

	err = applyWorkInput(work, input)
	if err != nil {
		return nil, err
	}

	err = s.workRepository.Update(ctx, work)
	if errors.Is(err, repository.ErrWorkNotFound) {
		return nil, notFound("work not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update work: %w", err)
	}

	return work, nil
}

func (s *WorkService) Delete(ctx context.Context, userID, workID int64) error {
	err := s.workRepository.Delete(ctx, userID, workID)
	if errors.Is(err, repository.ErrWorkNotFound) {
		return notFound("work not found")
	}
	if err != nil {
		return fmt.Errorf("failed to delete work: %w", err)
	}

	slog.Info("work deleted", "user_id", userID, "work_id", workID)
	return nil
}

// Reorder renumbers the listed works 0..n-1 in the given order. A nil list
// means the request carried no array at all.
func (s *WorkService) Reorder(ctx context.Context, userID int64, ids []int64) error {
	if ids == nil {
		return invalid(errors.New("workIds must be an array of work ids"))
	}

	err := s.workRepository.Reorder(ctx, userID, ids)
	if err != nil {
		return fmt.Errorf("failed to reorder works: %w", err)
	}
	return nil
}

func applyWorkInput(work *model.Work, input WorkInput) error {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		err := validation.ValidateTitle("title", title, maxWorkTitleLength)
		if err != nil {
			return invalid(err)
		}
		work.Title = title
	}

	if input.Description != nil {
		work.Description = optional(*input.Description)
	}
	if input.CoverImage != nil {
		work.CoverImage = optional(*input.CoverImage)
	}

	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			category = model.DefaultWorkCategory
		}
		if len(category) > maxWorkCategoryLength {
			return invalid(fmt.Errorf("category is too long (max %d characters)", maxWorkCategoryLength))
		}
		work.Category = category
	}

	if input.Link != nil {
		link, err := validation.NormalizeLink(*input.Link)
		if err != nil {
			return invalid(err)
		}
		work.Link = link
	}

	if input.SortOrder != nil {
		work.SortOrder = *input.SortOrder
	}

	return nil
}

// optional maps blank strings to nil.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
