// Package app wires the application together and runs the HTTP server.
package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "gatherly/internal/controller/http"
	"gatherly/internal/realtime"
	"gatherly/internal/repo/persistent"
	"gatherly/internal/usecase"
	"gatherly/pkg/cache"
	"gatherly/pkg/config"
	"gatherly/pkg/database"
	"gatherly/pkg/jwt"
	"gatherly/pkg/logger"
	"gatherly/pkg/mailer"
	"gatherly/pkg/middleware"
	"gatherly/pkg/queue"
	"gatherly/pkg/s3"

	_ "gatherly/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Run builds every dependency, mounts the routes and blocks until the
// process receives SIGINT or SIGTERM.
func Run(cfg *config.Config, log *logger.Logger) error {
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		return err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		return err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		return err
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		return err
	}

	jwtService := jwt.NewService(cfg.JWTSecret)
	mailClient := mailer.New(cfg)
	registry := realtime.NewRegistry()

	// Repositories
	notificationRepo := persistent.NewNotificationRepository(db)
	userRepo := persistent.NewUserRepository(db)
	eventRepo := persistent.NewEventRepository(db)
	groupRepo := persistent.NewGroupRepository(db)
	commentRepo := persistent.NewCommentRepository(db)
	blacklistRepo := persistent.NewBlacklistRepository(db)
	requestLogRepo := persistent.NewRequestLogRepository(db)

	// Use cases
	notificationUC := usecase.NewNotificationUseCase(notificationRepo, registry, redisClient, log)
	authUC := usecase.NewAuthUseCase(userRepo, jwtService, mailClient, log)
	userUC := usecase.NewUserUseCase(userRepo, log)
	eventUC := usecase.NewEventUseCase(eventRepo, userRepo, blacklistRepo, notificationUC, queueClient, s3Client, log)
	groupUC := usecase.NewGroupUseCase(groupRepo, userRepo, notificationUC, log)
	commentUC := usecase.NewCommentUseCase(commentRepo, eventRepo, log)
	blacklistUC := usecase.NewBlacklistUseCase(blacklistRepo, userRepo, log)
	adminUC := usecase.NewAdminUseCase(userRepo, eventRepo, commentRepo, requestLogRepo, queueClient, log)

	// Fan-out tasks resolve their recipients and go through the same
	// dispatcher as direct notifications.
	if err := queueClient.ConsumeFanoutTasks(notificationUC.HandleFanoutTask); err != nil {
		return err
	}

	// Handlers
	notificationHandler := handlers.NewNotificationHandler(notificationUC, registry, jwtService, log)
	authHandler := handlers.NewAuthHandler(authUC, log)
	userHandler := handlers.NewUserHandler(userUC, log)
	eventHandler := handlers.NewEventHandler(eventUC, log)
	groupHandler := handlers.NewGroupHandler(groupUC, log)
	commentHandler := handlers.NewCommentHandler(commentUC, log)
	blacklistHandler := handlers.NewBlacklistHandler(blacklistUC, log)
	adminHandler := handlers.NewAdminHandler(adminUC, log)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL, "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))
	r.Use(middleware.RequestLogMiddleware(requestLogRepo, log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/confirm", authHandler.ConfirmEmail)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/events", eventHandler.ListEvents)
	api.GET("/events/:id", eventHandler.GetEvent)
	api.GET("/events/:id/comments", commentHandler.ListComments)
	api.GET("/users/:id", userHandler.GetUser)

	// The websocket endpoint authenticates itself via a query token.
	api.GET("/notifications/ws", notificationHandler.HandleWebSocket)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/users/me", userHandler.GetMe)
		protected.PATCH("/users/me", userHandler.UpdateMe)

		protected.POST("/events", eventHandler.CreateEvent)
		protected.GET("/events/my", eventHandler.ListMyEvents)
		protected.PATCH("/events/:id", eventHandler.UpdateEvent)
		protected.DELETE("/events/:id", eventHandler.DeleteEvent)
		protected.POST("/events/:id/image", eventHandler.UploadEventImage)
		protected.POST("/events/:id/register", eventHandler.Register)
		protected.DELETE("/events/:id/register", eventHandler.CancelRegistration)
		protected.GET("/events/:id/participants", eventHandler.ListParticipants)
		protected.POST("/events/:id/admins", eventHandler.AssignAdmin)
		protected.DELETE("/events/:id/admins/:userId", eventHandler.RemoveAdmin)
		protected.POST("/events/:id/comments", commentHandler.CreateComment)
		protected.DELETE("/comments/:id", commentHandler.DeleteComment)

		protected.GET("/groups", groupHandler.ListMyGroups)
		protected.POST("/groups", groupHandler.CreateGroup)
		protected.GET("/groups/:id", groupHandler.GetGroup)
		protected.PATCH("/groups/:id", groupHandler.RenameGroup)
		protected.DELETE("/groups/:id", groupHandler.DeleteGroup)
		protected.POST("/groups/:id/members", groupHandler.AddMember)
		protected.DELETE("/groups/:id/members/:userId", groupHandler.RemoveMember)
		protected.POST("/groups/:id/leave", groupHandler.LeaveGroup)

		protected.GET("/blacklist", blacklistHandler.ListBlacklist)
		protected.POST("/blacklist", blacklistHandler.AddToBlacklist)
		protected.DELETE("/blacklist/:userId", blacklistHandler.RemoveFromBlacklist)

		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.GetUnreadCount)
		protected.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
		protected.POST("/notifications/read-all", notificationHandler.MarkAllRead)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(jwtService), middleware.AdminMiddleware())
	{
		admin.GET("/users", adminHandler.ListUsers)
		admin.POST("/users/:id/block", adminHandler.BlockUser)
		admin.GET("/events", adminHandler.ListEvents)
		admin.POST("/events/:id/cancel", adminHandler.CancelEvent)
		admin.GET("/comments", adminHandler.ListComments)
		admin.DELETE("/comments/:id", adminHandler.DeleteComment)
		admin.GET("/logs", adminHandler.ListRequestLogs)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info("Gatherly server starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis: %v", err)
	}
	if err := queueClient.Close(); err != nil {
		log.Error("Error closing RabbitMQ: %v", err)
	}
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		return err
	}

	log.Info("Server exited")
	return nil
}
