package main

import (
	"context"
	"log"

	"github.com/ManishJoc14/note-library/internal/attempt"
	"github.com/ManishJoc14/note-library/internal/config"
	"github.com/ManishJoc14/note-library/internal/crypto"
	"github.com/ManishJoc14/note-library/internal/database"
	"github.com/ManishJoc14/note-library/internal/handlers"
	"github.com/ManishJoc14/note-library/internal/middleware"
	"github.com/ManishJoc14/note-library/internal/services"
	"github.com/ManishJoc14/note-library/internal/storage"
	"github.com/ManishJoc14/note-library/internal/ws"

	_ "github.com/ManishJoc14/note-library/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Note Library API
// @version         1.0
// @description     Student learning portal: study notes, timed quizzes with encrypted answer keys, and per-user quiz summaries
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	cipher := crypto.NewCipher(cfg.EncryptionKey)

	var store storage.Storage
	if cfg.B2AccountID != "" && cfg.B2AppKey != "" && cfg.B2Bucket != "" {
		b2Store, err := storage.NewB2(context.Background(), cfg.B2AccountID, cfg.B2AppKey, cfg.B2Bucket)
		if err != nil {
			log.Fatalf("failed to init b2 storage: %v", err)
		}
		store = b2Store
		log.Printf("storage: b2 bucket %s", cfg.B2Bucket)
	} else {
		localStore, err := storage.NewLocal(cfg.UploadDir)
		if err != nil {
			log.Fatalf("failed to init local storage: %v", err)
		}
		store = localStore
		log.Printf("storage: local dir %s", cfg.UploadDir)
	}

	hub := ws.NewHub()
	manager := attempt.NewManager()

	authService := services.NewAuthService(db, cfg)
	quizService := services.NewQuizService(db, cipher)
	scoringService := services.NewScoringService(cipher)
	summaryService := services.NewSummaryService(db)
	noteService := services.NewNoteService(db)
	feedbackService := services.NewFeedbackService(db)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService)
	noteHandler := handlers.NewNoteHandler(noteService, store)
	quizHandler := handlers.NewQuizHandler(quizService)
	attemptHandler := handlers.NewAttemptHandler(manager, quizService, scoringService, summaryService, hub)
	summaryHandler := handlers.NewSummaryHandler(summaryService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService, authService)
	dashboardHandler := handlers.NewDashboardHandler(summaryService, quizService, authService)
	wsHandler := handlers.NewWSHandler(hub, manager)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Static("/uploads", cfg.UploadDir)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/attempt/:channel", wsHandler.HandleWebSocket)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		users := api.Group("/users")
		users.Use(middleware.JWTAuth(authService))
		{
			users.GET("/me", userHandler.Me)
			users.PUT("/me", userHandler.UpdateProfile)
			users.GET("/students", middleware.AdminOnly(), userHandler.ListStudents)
		}

		notes := api.Group("/notes")
		notes.Use(middleware.JWTAuth(authService))
		{
			notes.GET("", noteHandler.List)
			notes.POST("/:id/like", noteHandler.ToggleLike)
			notes.POST("/:id/view", noteHandler.RegisterView)
			notes.POST("/:id/download", noteHandler.RegisterDownload)
			notes.GET("/all", middleware.AdminOnly(), noteHandler.ListAll)
			notes.POST("", middleware.AdminOnly(), noteHandler.Upload)
			notes.DELETE("/:id", middleware.AdminOnly(), noteHandler.Delete)
		}

		quizzes := api.Group("/quizzes")
		quizzes.Use(middleware.JWTAuth(authService))
		{
			quizzes.GET("", quizHandler.ListQuizzes)
			quizzes.GET("/:id", quizHandler.GetQuiz)
			quizzes.POST("", middleware.AdminOnly(), quizHandler.CreateQuiz)
			quizzes.DELETE("/:id", middleware.AdminOnly(), quizHandler.DeleteQuiz)

			quizzes.POST("/:id/attempt", attemptHandler.Start)
			quizzes.GET("/:id/attempt", attemptHandler.GetState)
			quizzes.DELETE("/:id/attempt", attemptHandler.Abandon)
			quizzes.POST("/:id/attempt/answer", attemptHandler.Answer)
			quizzes.POST("/:id/attempt/next", attemptHandler.Next)
			quizzes.POST("/:id/attempt/previous", attemptHandler.Previous)
			quizzes.POST("/:id/attempt/complete", attemptHandler.Complete)
		}

		summaries := api.Group("/summaries")
		summaries.Use(middleware.JWTAuth(authService))
		{
			summaries.GET("", summaryHandler.List)
			summaries.GET("/:quizId", summaryHandler.Get)
		}

		feedback := api.Group("/feedback")
		feedback.Use(middleware.JWTAuth(authService))
		{
			feedback.POST("", feedbackHandler.Create)
			feedback.GET("", middleware.AdminOnly(), feedbackHandler.List)
		}

		api.GET("/dashboard", middleware.JWTAuth(authService), dashboardHandler.Get)
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
