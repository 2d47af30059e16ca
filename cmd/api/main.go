package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/equihire-api/internal/config"
	"github.com/yourusername/equihire-api/internal/domain/entity"
	"github.com/yourusername/equihire-api/internal/handler"
	"github.com/yourusername/equihire-api/internal/middleware"
	pgRepo "github.com/yourusername/equihire-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/equihire-api/internal/repository/redis"
	"github.com/yourusername/equihire-api/internal/service"
	"github.com/yourusername/equihire-api/pkg/auth"
	"github.com/yourusername/equihire-api/pkg/database"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Loading configuration from %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Repositories
	userRepo := pgRepo.NewUserRepo(db)
	jobRepo := pgRepo.NewJobPostingRepo(db)
	testRepo := pgRepo.NewTestRepo(db)
	attemptRepo := pgRepo.NewAttemptRepo(db)

	verificationRepo, err := redisRepo.NewVerificationRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize VerificationRepo: %v", err)
		os.Exit(1)
	}

	// Email delivery for one-time codes. Disabled email keeps the flows
	// working in development, with codes visible in the logs only.
	var emailService service.EmailService
	if cfg.Email.Enabled {
		emailService, err = service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Failed to initialize email service: %v", err)
			os.Exit(1)
		}
	} else {
		log.Println("Email delivery disabled, verification codes will be logged")
		emailService = &service.NoopEmailService{}
	}

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Services
	verificationService, err := service.NewVerificationService(
		verificationRepo,
		emailService,
		time.Duration(cfg.Verification.CodeTTLSec)*time.Second,
	)
	if err != nil {
		log.Printf("Failed to initialize VerificationService: %v", err)
		os.Exit(1)
	}

	authService, err := service.NewAuthService(userRepo, verificationService, jwtService)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}

	userService, err := service.NewUserService(userRepo)
	if err != nil {
		log.Printf("Failed to initialize UserService: %v", err)
		os.Exit(1)
	}

	jobService, err := service.NewJobService(jobRepo)
	if err != nil {
		log.Printf("Failed to initialize JobService: %v", err)
		os.Exit(1)
	}

	testService, err := service.NewTestService(testRepo, jobRepo)
	if err != nil {
		log.Printf("Failed to initialize TestService: %v", err)
		os.Exit(1)
	}

	attemptService, err := service.NewAttemptService(attemptRepo, testRepo, userRepo)
	if err != nil {
		log.Printf("Failed to initialize AttemptService: %v", err)
		os.Exit(1)
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authService, userService)
	jobHandler := handler.NewJobHandler(jobService)
	testHandler := handler.NewTestHandler(testService, attemptService)
	attemptHandler := handler.NewAttemptHandler(attemptService)

	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	router := gin.Default()

	// Trusted proxies for correct c.ClientIP(). Production behind a load
	// balancer needs the balancer's IP here instead of nil.
	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		// Authentication. Both registration and login finish in two steps:
		// the first issues a one-time code, the second confirms it.
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/register/confirm", authHandler.ConfirmRegistration)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/login/confirm", authHandler.ConfirmLogin)
		}

		users := api.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		{
			users.GET("/me", authHandler.GetMe)
		}

		// Job postings
		jobs := api.Group("/jobs")
		{
			jobs.GET("", jobHandler.ListActiveJobPostings)

			jobWithID := jobs.Group("/:id")
			jobWithID.Use(middleware.ExtractUintParam("id", "jobID"))
			{
				jobWithID.GET("", jobHandler.GetJobPosting)
				jobWithID.GET("/tests", testHandler.ListTestsForJobPosting)

				companyJobs := jobWithID.Group("")
				companyJobs.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleCompany))
				{
					companyJobs.PUT("", jobHandler.UpdateJobPosting)
					companyJobs.DELETE("", jobHandler.DeactivateJobPosting)
				}
			}

			companyCreate := jobs.Group("")
			companyCreate.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleCompany))
			{
				companyCreate.POST("", jobHandler.CreateJobPosting)
				companyCreate.GET("/mine", jobHandler.ListMyJobPostings)
			}
		}

		// Tests
		tests := api.Group("/tests")
		tests.Use(authMiddleware.RequireAuth())
		{
			companyTests := tests.Group("")
			companyTests.Use(authMiddleware.RequireRole(entity.RoleCompany))
			{
				companyTests.POST("", testHandler.CreateTest)
				companyTests.GET("/mine", testHandler.ListMyTests)
			}

			testWithID := tests.Group("/:id")
			testWithID.Use(middleware.ExtractUintParam("id", "testID"))
			{
				testWithID.GET("", testHandler.GetTest)

				companyTestWithID := testWithID.Group("")
				companyTestWithID.Use(authMiddleware.RequireRole(entity.RoleCompany))
				{
					companyTestWithID.DELETE("", testHandler.DeleteTest)
					companyTestWithID.GET("/results/export", testHandler.ExportTestResults)
				}

				candidateTests := testWithID.Group("")
				candidateTests.Use(authMiddleware.RequireRole(entity.RoleCandidate))
				{
					candidateTests.POST("/attempts", attemptHandler.StartAttempt)
				}
			}
		}

		// Attempts
		attempts := api.Group("/attempts")
		attempts.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleCandidate))
		{
			attemptWithID := attempts.Group("/:id")
			attemptWithID.Use(middleware.ExtractUintParam("id", "attemptID"))
			{
				attemptWithID.POST("/submit", attemptHandler.SubmitAttempt)
				attemptWithID.GET("/results", attemptHandler.GetResults)
			}
		}
	}

	// HTTP server with timeouts against slow clients
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	sqlDB, err := database.GetSQLDB(db)
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
		}
	}

	log.Println("Server exited")
}
