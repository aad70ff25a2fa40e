package app

import (
	"github.com/18d-shady/cbt-backend/internal/config"
	"github.com/18d-shady/cbt-backend/internal/middleware"
	"github.com/18d-shady/cbt-backend/internal/model"
	"github.com/18d-shady/cbt-backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(
		middleware.AuthMiddleware(cfg),
		middleware.SubscriptionMiddleware(repos.school),
	)
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Check)
		public.POST("/login", c.auth.Login)
		public.POST("/token/refresh", c.auth.Refresh)
	}
}

func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/subjects", c.exam.Subjects)
	group.POST("/answer", c.answer.Submit)

	exam := group.Group("/exam/:id")
	{
		exam.GET("", c.exam.GetExam)
		exam.GET("/question/:index", c.exam.QuestionByIndex)
		exam.POST("/start", c.session.Start)
		exam.GET("/time", c.session.Time)
		exam.POST("/end", c.session.End)
	}
}

func (a *App) registerAdminRoutes(group *gin.RouterGroup, c *controllers) {
	admin := group.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.POST("/courses", c.catalog.CreateCourse)
		admin.GET("/courses", c.catalog.ListCourses)

		admin.POST("/exams", c.catalog.CreateExam)
		admin.PUT("/exams/:id", c.catalog.UpdateExam)
		admin.GET("/exams/:id/essays", c.grading.ListEssays)
		admin.POST("/exams/:id/grade-essays", c.grading.GradeEssays)

		admin.POST("/questions", c.catalog.CreateQuestion)
		admin.DELETE("/questions/:id", c.catalog.DeleteQuestion)
		admin.POST("/questions/:id/images", c.catalog.UploadQuestionImage)

		admin.POST("/registrations", c.catalog.RegisterStudent)
		admin.POST("/classes/:id/register-courses", c.catalog.RegisterClassCourses)

		admin.POST("/students/:id/reset", c.grading.ResetStudent)
	}
}
