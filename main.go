package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"main/ai"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxRequestBodySize = 1 << 20 // 1 MiB

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"TASKS_COLLECTION",
		"USERS_COLLECTION",
		"SESSIONS_COLLECTION",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"REFRESH_TOKEN_EXPIRATION_TIME",
		"OPENAI_API_KEY",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	utils.InitMongoClient()

	// Redis backs the token blacklist and the AI rate limiter. The service
	// still runs without it, with both features degraded.
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		blacklist, err := services.NewTokenBlacklist(redisURL)
		if err != nil {
			log.Printf("Redis unavailable, token revocation disabled: %v", err)
		} else {
			services.TokenBlacklist = blacklist
		}
	}
}

func setupRouter() *gin.Engine {
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(maxRequestBodySize))

	// Repositories and services
	usersRepo := repository.GetUsersRepo(utils.MongoClient)
	sessionsRepo := repository.GetSessionsRepo(utils.MongoClient)
	tasksRepo := repository.GetTasksRepo(utils.MongoClient)

	taskService := usecase.NewTaskService(tasksRepo)
	taskHandler := handler.NewTaskHandler(taskService)

	openAIClient := ai.NewOpenAIClient(os.Getenv("OPENAI_API_KEY"))
	parser := ai.NewParser(openAIClient)
	summarizer := ai.NewSummarizer(openAIClient)

	var limiter *services.RateLimiter
	if services.TokenBlacklist != nil {
		limiter = services.NewRateLimiter(
			services.TokenBlacklist.Client,
			utils.GetEnvAsInt("AI_RATE_LIMIT", 10),
			utils.GetEnvAsDuration("AI_RATE_WINDOW", time.Minute),
		)
	}
	aiHandler := handler.NewAIHandler(taskService, parser, summarizer, limiter)

	router.GET("/health", handler.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", func(c *gin.Context) {
				handler.RegistrationHandler(c, usersRepo)
			})
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, usersRepo, sessionsRepo)
			})
		}
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		user := protected.Group("/user")
		{
			user.GET("/profile", func(c *gin.Context) {
				handler.GetUserProfileHandler(c, usersRepo)
			})
			user.POST("/logout", func(c *gin.Context) {
				handler.LogoutHandler(c, sessionsRepo)
			})
		}

		sessions := protected.Group("/sessions")
		{
			sessions.GET("/active", func(c *gin.Context) {
				handler.GetActiveSessions(c, sessionsRepo)
			})
		}

		tasks := protected.Group("/tasks")
		{
			tasks.POST("/", taskHandler.CreateTask)
			tasks.GET("/", taskHandler.GetUserTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		aiGroup := protected.Group("/ai")
		{
			aiGroup.POST("/parse-todo", aiHandler.ParseTodo)
			aiGroup.POST("/summary", aiHandler.Summary)
		}
	}

	return router
}

func main() {
	utils.StartSystemMetrics(utils.GetEnvAsDuration("SYSTEM_METRICS_INTERVAL", 15*time.Second))

	router := setupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
