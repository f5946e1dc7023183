package service

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/templui/folio/internal/lock"
	"github.com/templui/folio/internal/markdown"
	"github.com/templui/folio/internal/metrics"
	"github.com/templui/folio/internal/model"
	"github.com/templui/folio/internal/repository"
	"github.com/templui/folio/internal/sitegen"
)

const (
	// GeneratedURLPrefix is where the generated root is served.
	GeneratedURLPrefix = "/generated"
	// TemplateAssetsURLPrefix is where template bundle assets are served for previews.
	TemplateAssetsURLPrefix = "/template-assets"
)

type GenerateResult struct {
	URL string `json:"url"`
}

// Preview is the data a generation would render, without writing anything.
type Preview struct {
	User      model.SafeUser        `json:"user"`
	Portfolio sitegen.PortfolioView `json:"portfolio"`
	Works     []sitegen.WorkView    `json:"works"`
}

type GeneratorService struct {
	userRepository      repository.UserRepository
	portfolioRepository repository.PortfolioRepository
	workRepository      repository.WorkRepository
	templateRepository  repository.TemplateRepository
	bundles             *sitegen.TemplateRepository
	renderer            *sitegen.Renderer
	parser              *markdown.Parser
	locker              lock.Locker
	emailService        *EmailService
	generatedDir        string
}

func NewGeneratorService(
	userRepository repository.UserRepository,
	portfolioRepository repository.PortfolioRepository,
	workRepository repository.WorkRepository,
	templateRepository repository.TemplateRepository,
	bundles *sitegen.TemplateRepository,
	renderer *sitegen.Renderer,
	parser *markdown.Parser,
	locker lock.Locker,
	emailService *EmailService,
	generatedDir string,
) *GeneratorService {
	return &GeneratorService{
		userRepository:      userRepository,
		portfolioRepository: portfolioRepository,
		workRepository:      workRepository,
		templateRepository:  templateRepository,
		bundles:             bundles,
		renderer:            renderer,
		parser:              parser,
		locker:              locker,
		emailService:        emailService,
		generatedDir:        generatedDir,
	}
}

// siteData is everything loaded for one user before rendering.
type siteData struct {
	user      *model.User
	portfolio *model.Portfolio
	works     []*model.Work
}

// Generate renders the user's portfolio into a new directory under the
// generated root and points the portfolio's generated URL at it. Earlier
// snapshots are left in place. The URL is only stored once the page and
// its assets are on disk. ctx only bounds waiting for the lock; once held,
// the generation runs to completion even if the caller goes away.
func (s *GeneratorService) Generate(ctx context.Context, userID int64) (*GenerateResult, error) {
	waitStart := time.Now()
	unlock, err := s.locker.Lock(ctx, fmt.Sprintf("generate:%d", userID))
	if err != nil {
		return nil, fmt.Errorf("failed to acquire generation lock: %w", err)
	}
	defer unlock()
	metrics.GenerationLockWait.Observe(time.Since(waitStart).Seconds())

	start := time.Now()
	result, err := s.generate(context.WithoutCancel(ctx), userID)
	outcome := generationOutcome(err)
	metrics.ObserveGeneration(outcome, start)

	if err != nil {
		slog.Warn("site generation failed", "user_id", userID, "outcome", outcome, "error", err)
		return nil, err
	}

	slog.Info("site generated", "user_id", userID, "url", result.URL, "duration", time.Since(start))
	return result, nil
}

func (s *GeneratorService) generate(ctx context.Context, userID int64) (*GenerateResult, error) {
	data, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	renderCtx, err := s.renderContext(data)
	if err != nil {
		return nil, err
	}

	// Render before touching the filesystem so a bad template leaves nothing behind
	page, err := s.renderer.Render(ctx, s.templateDir(data.portfolio), renderCtx)
	if err != nil {
		return nil, newError(ErrRender, "failed to render template", err)
	}

	dirName := OutputDirName(data.user)
	outDir := filepath.Join(s.generatedDir, dirName)

	err = os.MkdirAll(outDir, 0755)
	if err != nil {
		return nil, newError(ErrIO, "failed to create output directory", err)
	}

	err = os.WriteFile(filepath.Join(outDir, sitegen.PageFile), page, 0644)
	if err != nil {
		return nil, newError(ErrIO, "failed to write page", err)
	}

	_, err = sitegen.CopyStaticAssets(s.templateDir(data.portfolio), outDir)
	if err != nil {
		return nil, newError(ErrIO, "failed to copy template assets", err)
	}

	url := path.Join(GeneratedURLPrefix, dirName)
	err = s.portfolioRepository.UpdateGeneratedURL(ctx, userID, url)
	if errors.Is(err, repository.ErrPortfolioNotFound) {
		return nil, newError(ErrPreconditionFailed, "configure portfolio first", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save generated url: %w", err)
	}

	err = s.emailService.SendSiteGeneratedEmail(ctx, data.user.Email, data.user.Username, url)
	if err != nil {
		slog.Warn("failed to send site generated email", "error", err, "user_id", userID)
	}

	return &GenerateResult{URL: url}, nil
}

// Preview returns the render input for the user without writing anything.
func (s *GeneratorService) Preview(ctx context.Context, userID int64) (*Preview, error) {
	data, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	works := make([]sitegen.WorkView, 0, len(data.works))
	for _, w := range data.works {
		works = append(works, sitegen.NewWorkView(w))
	}

	return &Preview{
		User:      data.user.Safe(),
		Portfolio: sitegen.NewPortfolioView(data.portfolio),
		Works:     works,
	}, nil
}

// RenderPreview renders the page in memory, for showing the site before
// committing to a generation.
func (s *GeneratorService) RenderPreview(ctx context.Context, userID int64) ([]byte, error) {
	data, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	renderCtx, err := s.renderContext(data)
	if err != nil {
		return nil, err
	}

	folder := s.templateFolder(data.portfolio)
	page, err := s.renderer.Render(ctx, s.bundles.Dir(folder), renderCtx)
	if err != nil {
		return nil, newError(ErrRender, "failed to render template", err)
	}

	// The page is not served from its bundle, so point relative links there
	base := path.Join(TemplateAssetsURLPrefix, sitegen.SafeSegment(folder, model.DefaultTemplateFolder)) + "/"
	return sitegen.WithBase(page, base), nil
}

func (s *GeneratorService) load(ctx context.Context, userID int64) (*siteData, error) {
	user, err := s.userRepository.ByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, notFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	portfolio, err := s.portfolioRepository.ByUserID(ctx, userID)
	if errors.Is(err, repository.ErrPortfolioNotFound) {
		return nil, newError(ErrPreconditionFailed, "configure portfolio first", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}

	err = loadTemplate(ctx, s.templateRepository, portfolio)
	if err != nil {
		return nil, err
	}

	works, err := s.workRepository.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load works: %w", err)
	}

	return &siteData{user: user, portfolio: portfolio, works: works}, nil
}

// templateFolder falls back to the default bundle unless an active template is set.
func (s *GeneratorService) templateFolder(portfolio *model.Portfolio) string {
	if portfolio.Template != nil && portfolio.Template.IsActive {
		return portfolio.Template.FolderPath
	}
	return model.DefaultTemplateFolder
}

func (s *GeneratorService) templateDir(portfolio *model.Portfolio) string {
	return s.bundles.Dir(s.templateFolder(portfolio))
}

func (s *GeneratorService) renderContext(data *siteData) (*sitegen.RenderContext, error) {
	view := sitegen.NewPortfolioView(data.portfolio)

	if view.Bio != "" {
		bio, err := s.parser.Parse([]byte(view.Bio))
		if err != nil {
			return nil, newError(ErrRender, "failed to render bio", err)
		}
		view.BioHTML = template.HTML(bio)
	}

	works := make([]sitegen.WorkView, 0, len(data.works))
	for _, w := range data.works {
		works = append(works, sitegen.NewWorkView(w))
	}

	return &sitegen.RenderContext{
		User:        data.user.Safe(),
		Portfolio:   view,
		Works:       works,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// OutputDirName is the sanitized username plus 8 random hex characters, so
// every generation gets its own directory.
func OutputDirName(user *model.User) string {
	base := sitegen.SafeSegment(user.Username, fmt.Sprintf("user-%d", user.ID))
	return base + "-" + uuid.NewString()[:8]
}

func generationOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrPreconditionFailed):
		return metrics.OutcomePrecondition
	case errors.Is(err, ErrRender):
		return metrics.OutcomeRenderError
	case errors.Is(err, ErrIO):
		return metrics.OutcomeIOError
	default:
		return metrics.OutcomeError
	}
}
