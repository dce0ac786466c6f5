package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/task-tracker-api/internal/config"
	"github.com/taskhub/task-tracker-api/internal/database"
	"github.com/taskhub/task-tracker-api/internal/handlers"
	"github.com/taskhub/task-tracker-api/internal/logger"
	"github.com/taskhub/task-tracker-api/internal/middleware"
	"github.com/taskhub/task-tracker-api/internal/repository"
	"github.com/taskhub/task-tracker-api/internal/services"
)

func main() {
	cfg := config.Load()

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		logger.Log.Fatalw("failed to connect to database", "error", err)
	}

	if err := database.Migrate(); err != nil {
		logger.Log.Fatalw("failed to run migrations", "error", err)
	}

	if cfg.SeedDemoUser {
		if err := database.SeedDemoUser(database.GetDB()); err != nil {
			logger.Log.Fatalw("failed to seed demo user", "error", err)
		}
	}

	r := setupRouter(cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Log.Infow("server starting", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalw("server error", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("forced shutdown", "error", err)
	}
	logger.Log.Info("server stopped")
}

func setupRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(logger.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigin))

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo)

	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)

	r.GET("/", handlers.Root)
	r.GET("/health", handlers.Health)

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PATCH("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)

			users.POST("/:id/tasks", taskHandler.CreateTask)
			users.GET("/:id/tasks", taskHandler.ListTasks)
			users.GET("/:id/tasks/stats", taskHandler.TaskStats)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}
	}

	return r
}
