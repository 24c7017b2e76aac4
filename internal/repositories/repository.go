package repositories

import "context"

// Repository aggregates every store the service reads or writes.
type Repository interface {
	// Identity
	User() UserRepository
	Token() TokenRepository

	// Catalog
	Language() LanguageRepository
	Course() CourseRepository

	// Scheduling and enrollment
	Lesson() LessonRepository
	Enrollment() EnrollmentRepository

	// Reporting
	Dashboard() DashboardRepository

	// External collaborators. SSO returns nil when single sign-on is not configured.
	SSO() IdentityProvider
	Translator() TranslationProvider

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with database connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
