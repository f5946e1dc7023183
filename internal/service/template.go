package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/templui/folio/internal/model"
	"github.com/templui/folio/internal/repository"
	"github.com/templui/folio/internal/sitegen"
)

type SyncResult struct {
	Synced      int `json:"synced"`
	Deactivated int `json:"deactivated"`
}

// TemplateService keeps the templates table in step with the bundles on disk.
type TemplateService struct {
	templateRepository repository.TemplateRepository
	bundles            *sitegen.TemplateRepository
}

func NewTemplateService(templateRepository repository.TemplateRepository, bundles *sitegen.TemplateRepository) *TemplateService {
	return &TemplateService{
		templateRepository: templateRepository,
		bundles:            bundles,
	}
}

// Sync upserts every bundle found on disk and deactivates rows whose folder
// is gone.
func (s *TemplateService) Sync(ctx context.Context) (*SyncResult, error) {
	manifests, err := s.bundles.Scan()
	if err != nil {
		return nil, fmt.Errorf("failed to scan templates: %w", err)
	}

	result := &SyncResult{}
	present := make(map[string]bool, len(manifests))
	for _, m := range manifests {
		template := &model.Template{
			Name:         m.Name,
			Description:  m.Description,
			PreviewImage: m.PreviewImage,
			FolderPath:   m.Folder,
		}
		err = s.templateRepository.Upsert(ctx, template)
		if err != nil {
			return nil, fmt.Errorf("failed to save template %s: %w", m.Folder, err)
		}
		present[m.Folder] = true
		result.Synced++
	}

	all, err := s.templateRepository.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	for _, t := range all {
		if !t.IsActive || present[t.FolderPath] {
			continue
		}
		err = s.templateRepository.SetActive(ctx, t.ID, false)
		if err != nil {
			return nil, fmt.Errorf("failed to deactivate template %s: %w", t.FolderPath, err)
		}
		result.Deactivated++
	}

	slog.Info("templates synced", "root", s.bundles.Root(), "synced", result.Synced, "deactivated", result.Deactivated)
	return result, nil
}
