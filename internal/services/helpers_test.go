package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/config"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/repositories"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/repositories/postgres"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/validator"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/pkg"
)

const testPassword = "password123"

type testEnv struct {
	db       *gorm.DB
	repo     repositories.Repository
	services ServiceManager
	redis    *miniredis.Miniredis

	admin        *models.User
	teacher      *models.User
	otherTeacher *models.User
	student      *models.User
	otherStudent *models.User
}

type envOption func(*envOptions)

type envOptions struct {
	withRedis         bool
	uniqueEnrollments bool
	translator        repositories.TranslationProvider
	identity          repositories.IdentityProvider
}

func withRedis() envOption {
	return func(o *envOptions) { o.withRedis = true }
}

func withUniqueEnrollments() envOption {
	return func(o *envOptions) { o.uniqueEnrollments = true }
}

func withTranslator(t repositories.TranslationProvider) envOption {
	return func(o *envOptions) { o.translator = t }
}

func withIdentityProvider(p repositories.IdentityProvider) envOption {
	return func(o *envOptions) { o.identity = p }
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := pkg.InitDatabase(&config.Config{
		Environment: "production",
		Database: config.DatabaseConfig{
			Driver:       config.DriverSQLite,
			DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
			MaxOpenConns: 1,
			MaxIdleConns: 1,
			AutoMigrate:  true,
		},
	})
	if err != nil {
		t.Fatalf("InitDatabase() error = %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB() error = %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	options := &envOptions{translator: &stubTranslator{}}
	for _, opt := range opts {
		opt(options)
	}

	env := &testEnv{db: newTestDB(t)}

	var redisClient *redis.Client
	if options.withRedis {
		env.redis = miniredis.RunT(t)
		redisClient = redis.NewClient(&redis.Options{Addr: env.redis.Addr()})
		t.Cleanup(func() { _ = redisClient.Close() })
	}

	env.repo = postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{
		DB:               env.db,
		RedisClient:      redisClient,
		Translator:       options.translator,
		IdentityProvider: options.identity,
	})

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	env.services = NewServiceManager(env.db, env.repo, logger, validator.New(), ServiceManagerConfig{
		Auth: AuthSettings{
			JWTSecret:  "test-secret",
			TokenTTL:   time.Hour,
			BcryptCost: bcrypt.MinCost,
			Issuer:     "test",
		},
		UniqueEnrollments: options.uniqueEnrollments,
	})
	if err := env.services.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	env.admin = env.createUser(t, "Ada Admin", "admin@example.com", models.RoleAdmin)
	env.teacher = env.createUser(t, "Tina Teacher", "tina@example.com", models.RoleTeacher)
	env.otherTeacher = env.createUser(t, "Tom Teacher", "tom@example.com", models.RoleTeacher)
	env.student = env.createUser(t, "Sam Student", "sam@example.com", models.RoleStudent)
	env.otherStudent = env.createUser(t, "Sue Student", "sue@example.com", models.RoleStudent)

	return env
}

func (e *testEnv) createUser(t *testing.T, name, email string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error = %v", err)
	}
	user := &models.User{Name: name, Email: email, PasswordHash: string(hash), Role: role}
	if err := e.repo.User().Create(context.Background(), nil, user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func (e *testEnv) createLanguage(t *testing.T, name string) *models.Language {
	t.Helper()

	language := &models.Language{Name: name}
	if err := e.repo.Language().Create(context.Background(), nil, language); err != nil {
		t.Fatalf("create language %s: %v", name, err)
	}
	return language
}

func (e *testEnv) createCourse(t *testing.T, title string, languageID uint, teacher *models.User) *models.Course {
	t.Helper()

	course := &models.Course{Title: title, LanguageID: languageID, Level: models.LevelA1, IsActive: true}
	if teacher != nil {
		course.TeacherID = &teacher.ID
	}
	if err := e.repo.Course().Create(context.Background(), nil, course); err != nil {
		t.Fatalf("create course %s: %v", title, err)
	}
	return course
}

func (e *testEnv) count(t *testing.T, model interface{}) int64 {
	t.Helper()

	var n int64
	if err := e.db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count error = %v", err)
	}
	return n
}

// wantPermission asserts err is a PermissionError carrying message.
func wantPermission(t *testing.T, err error, message string) {
	t.Helper()

	var permErr *PermissionError
	if !errors.As(err, &permErr) {
		t.Fatalf("error = %v, want PermissionError", err)
	}
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("PermissionError should unwrap to ErrForbidden")
	}
	if message != "" && permErr.Message != message {
		t.Errorf("message = %q, want %q", permErr.Message, message)
	}
}

// wantFieldError asserts err is a ValidationErrors mentioning field.
func wantFieldError(t *testing.T, err error, field string) {
	t.Helper()

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("error = %v, want ValidationErrors", err)
	}
	if _, ok := verrs.Fields()[field]; !ok {
		t.Errorf("fields = %v, want an error on %s", verrs.Fields(), field)
	}
}

func ptr[T any](v T) *T {
	return &v
}

type stubTranslator struct {
	err   error
	calls int
}

func (s *stubTranslator) Translate(ctx context.Context, text, source, target string) (*repositories.Translation, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &repositories.Translation{Text: "[" + target + "] " + text, Provider: "MyMemory"}, nil
}

type stubIdentityProvider struct {
	identity *repositories.ExternalIdentity
	err      error
}

func (s *stubIdentityProvider) ExchangeCode(ctx context.Context, code, state string) (*repositories.ExternalIdentity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}
