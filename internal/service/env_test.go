package service

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/templui/folio/internal/lock"
	"github.com/templui/folio/internal/markdown"
	"github.com/templui/folio/internal/model"
	"github.com/templui/folio/internal/repository"
	"github.com/templui/folio/internal/sitegen"
	"github.com/templui/folio/internal/storage"
	"github.com/templui/folio/internal/testutil"
	"golang.org/x/crypto/bcrypt"
)

// countingHasher records how often passwords are hashed.
type countingHasher struct {
	BcryptHasher
	hashes atomic.Int32
}

func (h *countingHasher) Hash(password string) (string, error) {
	h.hashes.Add(1)
	return h.BcryptHasher.Hash(password)
}

type testEnv struct {
	db           *sqlx.DB
	templatesDir string
	generatedDir string
	uploadDir    string
	hasher       *countingHasher

	users      repository.UserRepository
	portfolios repository.PortfolioRepository
	templates  repository.TemplateRepository

	auth      *AuthService
	works     *WorkService
	portfolio *PortfolioService
	generator *GeneratorService
	templateS *TemplateService
	upload    *UploadService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	root := t.TempDir()
	env := &testEnv{
		db:           testutil.NewDB(t),
		templatesDir: filepath.Join(root, "templates"),
		generatedDir: filepath.Join(root, "generated"),
		uploadDir:    filepath.Join(root, "uploads"),
		hasher:       &countingHasher{BcryptHasher: BcryptHasher{Cost: bcrypt.MinCost}},
	}
	testutil.WriteFiles(t, filepath.Join(env.templatesDir, model.DefaultTemplateFolder), testutil.MinimalTemplate)

	env.users = repository.NewUserRepository(env.db)
	env.portfolios = repository.NewPortfolioRepository(env.db)
	env.templates = repository.NewTemplateRepository(env.db)
	workRepository := repository.NewWorkRepository(env.db)

	parser := markdown.NewParser()
	bundles := sitegen.NewTemplateRepository(env.templatesDir, parser)
	emailService := NewEmailService("", "noreply@example.com", "http://localhost:3000", "Folio", true)

	fileStorage, err := storage.NewLocalStorage(env.uploadDir, "/uploads")
	require.NoError(t, err)

	env.auth = NewAuthService(env.users, env.hasher, emailService, "test-secret", time.Hour)
	env.works = NewWorkService(workRepository)
	env.portfolio = NewPortfolioService(env.portfolios, env.templates)
	env.generator = NewGeneratorService(
		env.users, env.portfolios, workRepository, env.templates,
		bundles, sitegen.NewRenderer(), parser, lock.NewLocal(), emailService, env.generatedDir,
	)
	env.templateS = NewTemplateService(env.templates, bundles)
	env.upload = NewUploadService(fileStorage, env.users, 1<<20)

	return env
}

func (e *testEnv) register(t *testing.T, username string) *AuthResult {
	t.Helper()

	res, err := e.auth.Register(context.Background(), username, username+"@example.com", "secret123")
	require.NoError(t, err)
	return res
}

func ptr[T any](v T) *T {
	return &v
}
