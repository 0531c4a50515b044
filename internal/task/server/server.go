package server

import (
	"context"
	"embed"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/identity"
	"taskboard/internal/middleware"
	"taskboard/internal/task/client"
	"taskboard/internal/task/handler"
	"taskboard/internal/task/repository"
	"taskboard/internal/task/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db, migrations); err != nil {
		return nil, err
	}

	r := gin.Default()

	taskRepo := repository.NewTaskRepository(db)
	projects := client.NewHTTPProjectClient(cfg.ProjectServiceURL)
	users := identity.NewHTTPClient(cfg.AuthServiceURL)

	taskService := service.NewTaskService(taskRepo, projects, users)

	taskHandler := handler.NewTaskHandler(taskService)
	internalHandler := handler.NewInternalHandler(taskService)

	api := r.Group("/api/v1")
	api.Use(middleware.Identity(cfg.JWTSecret))
	{
		api.POST("/tasks", taskHandler.Create)
		api.GET("/tasks", taskHandler.List)
		api.GET("/tasks/stats", taskHandler.Stats)
		api.GET("/tasks/:id", taskHandler.GetByID)
		api.PUT("/tasks/:id", taskHandler.Update)
		api.DELETE("/tasks/:id", taskHandler.Delete)
		api.PATCH("/tasks/:id/status", taskHandler.UpdateStatus)
	}

	// Service-to-service routes, reachable only inside the deployment
	// network. The gateway never forwards /internal paths.
	internal := r.Group("/internal")
	{
		internal.POST("/tasks/migrate", internalHandler.Migrate)
		internal.DELETE("/tasks", internalHandler.PurgeProject)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Task service running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
