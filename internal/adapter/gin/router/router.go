package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"quiz-service/api"
	"quiz-service/internal/adapter/gin/handler"
	"quiz-service/internal/adapter/gin/middleware"
	"quiz-service/internal/adapter/gin/validation"
	"quiz-service/pkg/logger"
)

// Dependencies holds everything the router wires into routes. Metrics and
// RateLimiter are optional.
type Dependencies struct {
	Users       *handler.UserHandler
	Quizzes     *handler.QuizHandler
	Enrollment  *handler.EnrollmentHandler
	Health      *handler.HealthHandler
	Validator   *validation.Validator
	Metrics     *middleware.Metrics
	RateLimiter *middleware.RateLimiter
	Log         *zap.Logger
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(deps.Log))
	router.Use(logger.RequestID())
	router.Use(middleware.Logger(deps.Log))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
		router.GET("/metrics", deps.Metrics.Handler())
	}
	if deps.RateLimiter != nil {
		router.Use(deps.RateLimiter.Middleware())
	}

	router.GET("/", deps.Health.Root)
	router.GET("/health", deps.Health.Health)
	router.GET("/swagger/*any", swagger())

	users := router.Group("/users")
	{
		users.POST("", validation.Body[handler.CreateUserRequest](deps.Validator), deps.Users.CreateUser)
		users.GET("/:userId", deps.Users.GetUser)
		users.DELETE("/:userId", deps.Users.DeleteUser)
		users.POST("/:userId/quizzes/:quizId", deps.Enrollment.Enroll)
		// path registered by earlier clients
		users.POST("/:userId/quizes/:quizId", deps.Enrollment.Enroll)
	}

	quizzes := router.Group("/quizzes")
	{
		quizzes.POST("", validation.Body[handler.CreateQuizRequest](deps.Validator), deps.Quizzes.CreateQuiz)
		quizzes.GET("", deps.Quizzes.ListQuizzes)
		quizzes.GET("/:quizId", deps.Quizzes.GetQuiz)
		quizzes.PATCH("/:quizId", validation.Body[handler.UpdateQuizRequest](deps.Validator), deps.Quizzes.UpdateQuiz)
		quizzes.DELETE("/:quizId", deps.Quizzes.DeleteQuiz)
	}

	return router
}

// swagger serves the embedded OpenAPI document at /swagger/doc.json and the
// Swagger UI for every other path under /swagger/.
func swagger() gin.HandlerFunc {
	ui := httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))
	return func(c *gin.Context) {
		if c.Param("any") == "/doc.json" {
			c.Data(http.StatusOK, "application/json; charset=utf-8", api.SwaggerJSON)
			return
		}
		ui(c.Writer, c.Request)
	}
}
