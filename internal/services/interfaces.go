package services

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/repositories"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/validator"
)

const (
	DefaultLessonsPerPage     = 10
	DefaultEnrollmentsPerPage = 15
	MaxPerPage                = 100
	MaxPage                   = 1_000_000

	StatsTopLimit    = 5
	StatsMonthWindow = 6
)

// ===== REQUEST DTOs =====

type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type SSOLoginRequest = validator.SSOLoginRequest

type CreateLanguageRequest = validator.LanguageCreateRequest
type UpdateLanguageRequest = validator.LanguageUpdateRequest

type CreateCourseRequest = validator.CourseCreateRequest
type UpdateCourseRequest = validator.CourseUpdateRequest

type CreateLessonRequest = validator.LessonCreateRequest
type UpdateLessonRequest = validator.LessonUpdateRequest

type CreateEnrollmentRequest = validator.EnrollmentCreateRequest
type UpdateEnrollmentRequest = validator.EnrollmentUpdateRequest

type TranslateRequest = validator.TranslateRequest

// LessonListParams are the query parameters of the lesson listing.
type LessonListParams struct {
	CourseID  *uint
	TeacherID *uint
	Search    string
	SortBy    string
	SortDir   string
	Page      int
	PerPage   int
}

// EnrollmentListParams are the query parameters of the enrollment listing.
type EnrollmentListParams struct {
	CourseID  *uint
	StudentID *uint
	Statuses  []models.EnrollmentStatus
	Search    string
	Page      int
	PerPage   int
}

// ===== RESPONSE DTOs =====

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	Data        *models.User `json:"data"`
}

// TokenClaims are the claims of an issued access token. The subject is the user id.
type TokenClaims struct {
	Role models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type PageMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

type LessonListResponse struct {
	Lessons []*models.Lesson `json:"lessons"`
	Meta    PageMeta         `json:"meta"`
}

type EnrollmentListResponse struct {
	Enrollments []*models.EnrollmentDetail `json:"enrollments"`
	Meta        PageMeta                   `json:"meta"`
}

type TeacherCoursesResponse struct {
	Teacher models.UserSummary `json:"teacher"`
	Courses []*models.Course   `json:"courses"`
}

type StudentEnrollmentsResponse struct {
	Student     models.UserSummary         `json:"student"`
	Enrollments []*models.EnrollmentDetail `json:"enrollments"`
}

type AdminStatsResponse struct {
	KPIs                       repositories.KPIData          `json:"kpis"`
	UsersByRole                []repositories.RoleCountData  `json:"users_by_role"`
	CoursesByLanguage          []repositories.LabelValueData `json:"courses_by_language"`
	CoursesByLevel             []repositories.LabelValueData `json:"courses_by_level"`
	EnrollmentsByStatus        []repositories.LabelValueData `json:"enrollments_by_status"`
	TopTeachersByActiveCourses []repositories.RankedData     `json:"top_teachers_by_active_courses"`
	TopCoursesByEnrollments    []repositories.RankedData     `json:"top_courses_by_enrollments"`
	LessonsPerMonth            []repositories.LabelValueData `json:"lessons_per_month"`
}

type TranslationSide struct {
	Lang string `json:"lang"`
	Text string `json:"text"`
}

type TranslateResponse struct {
	Source   TranslationSide `json:"source"`
	Target   TranslationSide `json:"target"`
	Provider string          `json:"provider"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	LoginWithSSO(ctx context.Context, req *SSOLoginRequest) (*AuthResponse, error)
	SSOEnabled() bool

	// Authenticate resolves a bearer token to its user. Every failure is ErrUnauthorized.
	Authenticate(ctx context.Context, token string) (*models.User, *TokenClaims, error)
	Logout(ctx context.Context, claims *TokenClaims) error
}

type LanguageService interface {
	List(ctx context.Context) ([]*models.Language, error)
	GetByID(ctx context.Context, id uint) (*models.Language, error)
	Create(ctx context.Context, actor *models.User, req *CreateLanguageRequest) (*models.Language, error)
	Update(ctx context.Context, actor *models.User, id uint, req *UpdateLanguageRequest) (*models.Language, error)
	Delete(ctx context.Context, actor *models.User, id uint) error
}

type CourseService interface {
	List(ctx context.Context) ([]*models.Course, error)
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	Create(ctx context.Context, actor *models.User, req *CreateCourseRequest) (*models.Course, error)
	Update(ctx context.Context, actor *models.User, id uint, req *UpdateCourseRequest) (*models.Course, error)
	Delete(ctx context.Context, actor *models.User, id uint) error
	ListByTeacher(ctx context.Context, actor *models.User, teacherID uint) (*TeacherCoursesResponse, error)
}

type LessonService interface {
	List(ctx context.Context, actor *models.User, params LessonListParams) (*LessonListResponse, error)
	GetByID(ctx context.Context, actor *models.User, id uint) (*models.Lesson, error)
	Create(ctx context.Context, actor *models.User, req *CreateLessonRequest) (*models.Lesson, error)
	Update(ctx context.Context, actor *models.User, id uint, req *UpdateLessonRequest) (*models.Lesson, error)
	Delete(ctx context.Context, actor *models.User, id uint) error
}

type EnrollmentService interface {
	Create(ctx context.Context, actor *models.User, req *CreateEnrollmentRequest) (*models.EnrollmentDetail, error)
	List(ctx context.Context, actor *models.User, params EnrollmentListParams) (*EnrollmentListResponse, error)
	UpdateStatus(ctx context.Context, actor *models.User, id uint, req *UpdateEnrollmentRequest) (*models.EnrollmentDetail, error)
	ListByStudent(ctx context.Context, actor *models.User, studentID uint) (*StudentEnrollmentsResponse, error)
}

type DashboardService interface {
	GetAdminStats(ctx context.Context, actor *models.User) (*AdminStatsResponse, error)
	// ExportAdminStats renders the admin stats as an XLSX workbook.
	ExportAdminStats(ctx context.Context, actor *models.User) ([]byte, error)
}

type TranslationService interface {
	Translate(ctx context.Context, req *TranslateRequest) (*TranslateResponse, error)
}

// ServiceManager manages all service instances
type ServiceManager interface {
	Auth() AuthService
	Language() LanguageService
	Course() CourseService
	Lesson() LessonService
	Enrollment() EnrollmentService
	Dashboard() DashboardService
	Translation() TranslationService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
