package handlers

import (
	"strings"
	"time"

	"coursemarket/internal/auth"
	"coursemarket/internal/middleware"
	"coursemarket/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(
	userHandler *UserHandler,
	courseHandler *CourseHandler,
	educatorHandler *EducatorHandler,
	webhookHandler *WebhookHandler,
	verifier *auth.TokenVerifier,
	limiter *middleware.RateLimiter,
	users service.UserStore,
	allowedOrigins string,
) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	if allowedOrigins != "" {
		config.AllowOrigins = strings.Split(allowedOrigins, ",")
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(config))

	// Вебхуки — вне /api и без auth: подпись и есть аутентификация
	r.POST("/clerk", webhookHandler.Clerk)
	r.POST("/stripe", webhookHandler.Stripe)

	api := r.Group("/api")
	{
		course := api.Group("/course")
		{
			course.GET("/all", courseHandler.List)
			course.GET("/:id", courseHandler.GetOne)
		}

		user := api.Group("/user")
		user.Use(middleware.AuthMiddleware(verifier))
		{
			user.GET("/data", userHandler.GetData)
			user.GET("/enrolled-courses", userHandler.EnrolledCourses)
			user.POST("/purchase", limiter.Limit("purchase", 10, 1*time.Minute), userHandler.Purchase)
			user.POST("/update-course-progress", userHandler.UpdateCourseProgress)
			user.POST("/get-course-progress", userHandler.GetCourseProgress)
			user.POST("/add-rating", userHandler.AddRating)
		}

		educator := api.Group("/educator")
		educator.Use(middleware.AuthMiddleware(verifier))
		{
			// Роль повышает сам пользователь, дальше нужна роль educator
			educator.GET("/update-role", educatorHandler.UpdateRole)

			protected := educator.Group("")
			protected.Use(middleware.EducatorRequired(users))
			{
				protected.POST("/add-course", educatorHandler.AddCourse)
				protected.GET("/courses", educatorHandler.Courses)
				protected.GET("/dashboard", educatorHandler.Dashboard)
				protected.GET("/enrolled-students", educatorHandler.EnrolledStudents)
			}
		}
	}

	return r
}
