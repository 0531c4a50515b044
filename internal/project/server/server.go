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
	"taskboard/internal/notify"
	"taskboard/internal/project/client"
	"taskboard/internal/project/handler"
	"taskboard/internal/project/repository"
	"taskboard/internal/project/service"

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

	projectRepo := repository.NewProjectRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	statusRepo := repository.NewStatusRepository(db)

	users := identity.NewHTTPClient(cfg.AuthServiceURL)
	tasks := client.NewHTTPTaskClient(cfg.TaskServiceURL)
	notifier := notify.NewLogNotifier(cfg.FrontendURL)

	statusService := service.NewStatusService(statusRepo, projectRepo, memberRepo, tasks)
	projectService := service.NewProjectService(projectRepo, memberRepo, statusService, users, tasks)
	invitationService := service.NewInvitationService(invitationRepo, projectRepo, projectService, users, notifier)

	projectHandler := handler.NewProjectHandler(projectService)
	memberHandler := handler.NewMemberHandler(projectService)
	invitationHandler := handler.NewInvitationHandler(invitationService)
	statusHandler := handler.NewStatusHandler(statusService)

	api := r.Group("/api/v1")

	// Public invitation preview, linked from the email before login.
	api.GET("/invitations/:token", invitationHandler.Info)

	authorized := api.Group("/")
	authorized.Use(middleware.Identity(cfg.JWTSecret))
	{
		authorized.POST("/projects", projectHandler.Create)
		authorized.GET("/projects", projectHandler.List)
		authorized.GET("/projects/:id", projectHandler.GetByID)
		authorized.PUT("/projects/:id", projectHandler.Update)
		authorized.DELETE("/projects/:id", projectHandler.Delete)
		authorized.GET("/projects/:id/stats", projectHandler.Stats)

		authorized.GET("/projects/:id/members", memberHandler.List)
		authorized.POST("/projects/:id/members", memberHandler.Add)
		authorized.DELETE("/projects/:id/members/:userId", memberHandler.Remove)

		authorized.POST("/projects/:id/invitations", invitationHandler.Invite)
		authorized.POST("/invitations/accept", invitationHandler.Accept)

		authorized.GET("/projects/:id/statuses", statusHandler.List)
		authorized.POST("/projects/:id/statuses", statusHandler.Create)
		authorized.POST("/projects/:id/statuses/reorder", statusHandler.Reorder)
		authorized.GET("/projects/:id/statuses/:statusId", statusHandler.GetByID)
		authorized.PUT("/projects/:id/statuses/:statusId", statusHandler.Update)
		authorized.DELETE("/projects/:id/statuses/:statusId", statusHandler.Delete)
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
		log.Printf("🚀 Project service running on port %s\n", s.Config.ServerPort)
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
