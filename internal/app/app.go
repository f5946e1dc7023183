package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/templui/folio"
	"github.com/templui/folio/internal/config"
	"github.com/templui/folio/internal/db"
	"github.com/templui/folio/internal/lock"
	"github.com/templui/folio/internal/markdown"
	"github.com/templui/folio/internal/repository"
	"github.com/templui/folio/internal/service"
	"github.com/templui/folio/internal/sitegen"
	"github.com/templui/folio/internal/storage"
)

type App struct {
	Cfg              *config.Config
	DB               *sqlx.DB
	Redis            *redis.Client
	Storage          storage.Storage
	AuthService      *service.AuthService
	WorkService      *service.WorkService
	PortfolioService *service.PortfolioService
	GeneratorService *service.GeneratorService
	TemplateService  *service.TemplateService
	UploadService    *service.UploadService
	EmailService     *service.EmailService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	a := &App{Cfg: cfg, DB: database}

	// Run database migrations
	err = db.RunMigrations(ctx, database.DB, cfg.DBDriver)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	err = os.MkdirAll(cfg.GeneratedDir, 0755)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create generated dir: %w", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	portfolioRepository := repository.NewPortfolioRepository(database)
	workRepository := repository.NewWorkRepository(database)
	templateRepository := repository.NewTemplateRepository(database)

	// Storage
	a.Storage, err = storage.New(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Generation lock
	locker, err := a.newLocker(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	// Services
	parser := markdown.NewParser()
	bundles := sitegen.NewTemplateRepository(cfg.TemplatesDir, parser)

	a.EmailService = service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	a.AuthService = service.NewAuthService(
		userRepository,
		service.NewBcryptHasher(),
		a.EmailService,
		cfg.JWTSecret,
		cfg.JWTExpiry,
	)
	a.WorkService = service.NewWorkService(workRepository)
	a.PortfolioService = service.NewPortfolioService(portfolioRepository, templateRepository)
	a.GeneratorService = service.NewGeneratorService(
		userRepository,
		portfolioRepository,
		workRepository,
		templateRepository,
		bundles,
		sitegen.NewRenderer(),
		parser,
		locker,
		a.EmailService,
		cfg.GeneratedDir,
	)
	a.TemplateService = service.NewTemplateService(templateRepository, bundles)
	a.UploadService = service.NewUploadService(a.Storage, userRepository, cfg.MaxFileSize)

	// Seed built-in bundles, then register everything found on disk
	err = installBundles(cfg.TemplatesDir)
	if err != nil {
		a.Close()
		return nil, err
	}

	_, err = a.TemplateService.Sync(ctx)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to sync templates: %w", err)
	}

	return a, nil
}

func installBundles(root string) error {
	bundles, err := fs.Sub(folio.TemplatesFS, "templates")
	if err != nil {
		return err
	}

	installed, err := sitegen.InstallBundles(bundles, root)
	if err != nil {
		return fmt.Errorf("failed to install template bundles: %w", err)
	}
	if len(installed) > 0 {
		slog.Info("installed template bundles", "dir", root, "bundles", installed)
	}
	return nil
}

// newLocker uses Redis when REDIS_URL is set so generations are serialized
// across processes, and an in-process lock otherwise.
func (a *App) newLocker(ctx context.Context) (lock.Locker, error) {
	if a.Cfg.RedisURL == "" {
		return lock.NewLocal(), nil
	}

	client, err := lock.NewRedisClient(ctx, a.Cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	a.Redis = client

	slog.Info("using redis generation lock")
	return lock.NewRedis(client, lock.DefaultTTL), nil
}

func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
