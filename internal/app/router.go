package app

import (
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"
	"lms_backend/pkg/security"
	"lms_backend/pkg/tracing"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api/v1")

	// public surface, optional auth so admins see drafts in listings
	public := api.Group("")
	public.Use(middleware.TryAuthMiddleware(cfg))
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		public.GET("/categories", c.category.ListCategories)
		public.GET("/courses", c.course.ListCourses)
		public.GET("/courses/:id", c.course.GetCourse)

		public.GET("/certificates/:certificateId", c.certificate.Verify)

		public.GET("/lessons/:lessonId/comments", c.comment.ListComments)
		public.GET("/comments/:commentId/replies", c.comment.ListReplies)
	}

	// everything below requires a valid token
	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(s.activity))
	{
		auth.GET("/auth/me", c.auth.Me)

		auth.GET("/users/profile", c.user.GetProfile)
		auth.PUT("/users/profile", c.user.UpdateProfile)
		auth.POST("/users/profile/avatar", c.user.UploadAvatar)

		auth.POST("/courses/:id/enroll", c.enrollment.Enroll)
		auth.DELETE("/courses/:id/enroll", c.enrollment.Drop)
		auth.GET("/enrollments", c.enrollment.MyEnrollments)

		auth.GET("/courses/:id/progress", c.progress.CourseProgress)
		auth.POST("/lessons/:lessonId/progress", c.progress.TouchLesson)
		auth.POST("/lessons/:lessonId/complete", c.progress.CompleteLesson)

		auth.GET("/modules/:moduleId/lessons", c.course.ListModuleLessons)
		auth.GET("/modules/:moduleId/assessments", c.assessment.ListModuleAssessments)

		auth.GET("/assessments/:id/take", c.assessment.TakeAssessment)
		auth.POST("/assessments/:id/attempts", c.assessment.StartAttempt)
		auth.POST("/attempts/:attemptId/submit", c.assessment.SubmitAttempt)
		auth.GET("/attempts", c.assessment.MyAttempts)

		auth.GET("/certificates", c.certificate.MyCertificates)
		auth.GET("/activity", c.activity.MyActivity)
		auth.GET("/access/courses", c.access.MyAccessibleCourses)

		auth.POST("/lessons/:lessonId/comments", c.comment.PostComment)
		auth.DELETE("/comments/:commentId", c.comment.DeleteComment)

		// authoring, open to contributors and admins
		authoring := auth.Group("")
		authoring.Use(middleware.RoleMiddleware(model.RoleContributor))
		{
			authoring.POST("/courses", c.course.CreateCourse)
			authoring.PUT("/courses/:id", c.course.UpdateCourse)
			authoring.PUT("/courses/:id/status", c.course.SetStatus)
			authoring.DELETE("/courses/:id", c.course.DeleteCourse)
			authoring.POST("/courses/:id/thumbnail", c.course.UploadThumbnail)

			authoring.POST("/courses/:id/modules", c.course.AddModule)
			authoring.PUT("/modules/:moduleId", c.course.UpdateModule)
			authoring.DELETE("/modules/:moduleId", c.course.DeleteModule)

			authoring.POST("/modules/:moduleId/lessons", c.course.AddLesson)
			authoring.PUT("/lessons/:lessonId", c.course.UpdateLesson)
			authoring.DELETE("/lessons/:lessonId", c.course.DeleteLesson)
			authoring.POST("/lessons/:lessonId/video", c.course.UploadLessonVideo)

			authoring.POST("/assessments", c.assessment.CreateAssessment)
			authoring.PUT("/assessments/:id", c.assessment.UpdateAssessment)
			authoring.DELETE("/assessments/:id", c.assessment.DeleteAssessment)
			authoring.POST("/assessments/:id/questions", c.assessment.CreateQuestion)
			authoring.PUT("/questions/:questionId", c.assessment.UpdateQuestion)
			authoring.DELETE("/questions/:questionId", c.assessment.DeleteQuestion)
		}
	}

	// admin surface
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.PUT("/users/:id/role", c.user.SetRole)
		admin.GET("/users/:id/activity", c.activity.UserActivity)

		admin.POST("/categories", c.category.CreateCategory)
		admin.PUT("/categories/:id", c.category.UpdateCategory)
		admin.DELETE("/categories/:id", c.category.DeleteCategory)

		admin.GET("/courses/:id/enrollments", c.enrollment.CourseEnrollments)
		admin.GET("/courses/:id/access", c.access.ListForCourse)

		admin.POST("/access", c.access.Grant)
		admin.DELETE("/access/:id", c.access.Revoke)

		admin.POST("/groups", c.group.CreateGroup)
		admin.GET("/groups", c.group.ListGroups)
		admin.GET("/groups/:id", c.group.GetGroup)
		admin.PUT("/groups/:id", c.group.UpdateGroup)
		admin.DELETE("/groups/:id", c.group.DeleteGroup)
		admin.POST("/groups/:id/members/:userId", c.group.AddMember)
		admin.DELETE("/groups/:id/members/:userId", c.group.RemoveMember)
		admin.POST("/groups/:id/courses/:courseId", c.group.AttachCourse)
		admin.DELETE("/groups/:id/courses/:courseId", c.group.DetachCourse)

		admin.GET("/assessments/:id", c.assessment.GetAssessment)
		admin.GET("/assessments/:id/attempts", c.assessment.ListAttempts)
		admin.PUT("/attempts/:attemptId/grade", c.assessment.GradeAttempt)
	}
}
