package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/services"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/utils"
)

type HandlerManager struct {
	serviceManager services.ServiceManager
	logger         utils.Logger

	authHandler        *AuthHandler
	languageHandler    *LanguageHandler
	courseHandler      *CourseHandler
	lessonHandler      *LessonHandler
	enrollmentHandler  *EnrollmentHandler
	dashboardHandler   *DashboardHandler
	translationHandler *TranslationHandler
	authMiddleware     *AuthMiddleware
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		serviceManager:     serviceManager,
		logger:             logger,
		authHandler:        NewAuthHandler(serviceManager.Auth(), logger),
		languageHandler:    NewLanguageHandler(serviceManager.Language(), logger),
		courseHandler:      NewCourseHandler(serviceManager.Course(), logger),
		lessonHandler:      NewLessonHandler(serviceManager.Lesson(), logger),
		enrollmentHandler:  NewEnrollmentHandler(serviceManager.Enrollment(), logger),
		dashboardHandler:   NewDashboardHandler(serviceManager.Dashboard(), logger),
		translationHandler: NewTranslationHandler(serviceManager.Translation(), logger),
		authMiddleware:     NewAuthMiddleware(serviceManager.Auth(), logger),
	}
}

// SetupRoutes sets up all API routes under prefix
func (hm *HandlerManager) SetupRoutes(router *gin.Engine, prefix string) {
	router.GET("/health", hm.HealthCheck)

	api := router.Group(prefix)

	// Public routes
	api.POST("/register", hm.authHandler.Register)
	api.POST("/login", hm.authHandler.Login)
	api.POST("/login/sso", hm.authHandler.LoginWithSSO)
	api.GET("/languages", hm.languageHandler.ListLanguages)
	api.GET("/languages/:id", hm.languageHandler.GetLanguage)
	api.GET("/courses", hm.courseHandler.ListCourses)
	api.GET("/courses/:id", hm.courseHandler.GetCourse)

	// Authenticated routes. Role rules are enforced by the services.
	protected := api.Group("")
	protected.Use(hm.authMiddleware.RequireAuth())
	{
		protected.POST("/logout", hm.authHandler.Logout)
		protected.GET("/me", hm.authHandler.Me)

		protected.POST("/languages", hm.languageHandler.CreateLanguage)
		protected.PUT("/languages/:id", hm.languageHandler.UpdateLanguage)
		protected.PATCH("/languages/:id", hm.languageHandler.UpdateLanguage)
		protected.DELETE("/languages/:id", hm.languageHandler.DeleteLanguage)

		protected.POST("/courses", hm.courseHandler.CreateCourse)
		protected.PUT("/courses/:id", hm.courseHandler.UpdateCourse)
		protected.PATCH("/courses/:id", hm.courseHandler.UpdateCourse)
		protected.DELETE("/courses/:id", hm.courseHandler.DeleteCourse)
		protected.GET("/teacher/:id/courses", hm.courseHandler.GetTeacherCourses)

		lessons := protected.Group("/lessons")
		{
			lessons.GET("", hm.lessonHandler.ListLessons)
			lessons.POST("", hm.lessonHandler.CreateLesson)
			lessons.GET("/:id", hm.lessonHandler.GetLesson)
			lessons.PUT("/:id", hm.lessonHandler.UpdateLesson)
			lessons.PATCH("/:id", hm.lessonHandler.UpdateLesson)
			lessons.DELETE("/:id", hm.lessonHandler.DeleteLesson)
		}

		enrollments := protected.Group("/enrollments")
		{
			enrollments.GET("", hm.enrollmentHandler.ListEnrollments)
			enrollments.POST("", hm.enrollmentHandler.CreateEnrollment)
			enrollments.PUT("/:id", hm.enrollmentHandler.UpdateEnrollment)
			enrollments.PATCH("/:id", hm.enrollmentHandler.UpdateEnrollment)
		}
		protected.GET("/student/:id/enrollments", hm.enrollmentHandler.GetStudentEnrollments)

		protected.GET("/translate", hm.translationHandler.Translate)

		admin := protected.Group("/admin")
		{
			admin.GET("/stats", hm.dashboardHandler.GetAdminStats)
			admin.GET("/stats/export", hm.dashboardHandler.ExportAdminStats)
		}
	}
}

// HealthCheck reports whether the database and cache are reachable
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	body := gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "lingua-api",
	}

	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		utils.GetLogger(c, hm.logger).Error("Health check failed", "error", err)
		body["status"] = "unhealthy"
		body["error"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}

	c.JSON(http.StatusOK, body)
}
