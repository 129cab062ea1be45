package app

import (
	"lms_backend/docs"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(r *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", monitoring.PrometheusHandler())

	api := r.Group("/api")
	api.GET("/health", c.health.HealthCheck)

	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(a.verifier))
	{
		auth.GET("/me", c.user.Profile)
		auth.GET("/courses", c.course.ListCourses)
		auth.GET("/courses/:courseId", c.course.GetCourse)
		auth.POST("/courses/:courseId/enroll", c.course.Enroll)
		auth.POST("/courses/:courseId/reviews", c.course.AddReview)
		auth.GET("/courses/:courseId/modules/:moduleId/lessons/:lessonId", c.learning.ViewLesson)

		auth.POST("/lessons/:lessonId/visit", c.learning.VisitLesson)
		auth.GET("/quizzes/:quizId", c.learning.GetQuiz)
		auth.POST("/quizzes/:quizId/attempts", c.learning.SubmitQuiz)
		auth.POST("/assignments/:assignmentId/submissions", c.learning.SubmitAssignment)
		auth.POST("/assignments/:assignmentId/submissions/upload", c.learning.UploadSubmission)

		auth.GET("/certificates", c.learning.Certificates)
		auth.GET("/dashboard", c.learning.Dashboard)
		auth.GET("/notifications", c.notification.List)
		auth.PATCH("/notifications/:id/read", c.notification.MarkRead)
	}

	instructor := api.Group("/instructor")
	instructor.Use(middleware.AuthMiddleware(a.verifier), middleware.RoleMiddleware(model.Instructor))
	{
		instructor.POST("/courses", c.instructor.CreateCourse)
		instructor.GET("/courses/:courseId", c.instructor.ManageCourse)
		instructor.DELETE("/courses/:courseId", c.instructor.DeleteCourse)
		instructor.POST("/courses/:courseId/modules", c.instructor.AddModule)
		instructor.GET("/courses/:courseId/analytics", c.analytics.CourseAnalytics)
		instructor.POST("/modules/:moduleId/lessons", c.instructor.AddLesson)
		instructor.POST("/lessons/:lessonId/quizzes", c.instructor.AddQuiz)
		instructor.POST("/lessons/:lessonId/assignments", c.instructor.AddAssignment)
		instructor.POST("/quizzes/:quizId/questions", c.instructor.AddQuestion)
		instructor.GET("/quizzes/:quizId/results", c.instructor.QuizResults)
		instructor.GET("/assignments/:assignmentId/submissions", c.instructor.AssignmentSubmissions)
		instructor.PUT("/submissions/:submissionId/grade", c.instructor.GradeSubmission)

		instructor.GET("/quiz-performance", c.analytics.QuizPerformance)
		instructor.GET("/dashboard", c.analytics.Dashboard)
	}
}
