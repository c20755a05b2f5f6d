package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"teamtrack/internal/config"
	"teamtrack/internal/handler"
	"teamtrack/internal/middleware"
	"teamtrack/internal/model"
	"teamtrack/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	if err := db.AutoMigrate(&model.Member{}, &model.Project{}, &model.ProjectMember{}, &model.Task{}); err != nil {
		return nil, fmt.Errorf("❌ failed to migrate schema: %w", err)
	}

	if err := seedLeader(db, cfg); err != nil {
		return nil, fmt.Errorf("❌ failed to seed initial leader: %w", err)
	}

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	memberRepo := repository.NewMemberRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize handlers
	jwtExpiry := time.Duration(cfg.JWTExpiryHours) * time.Hour
	authHandler := handler.NewAuthHandler(memberRepo, cfg.JWTSecret, jwtExpiry)
	projectHandler := handler.NewProjectHandler(projectRepo, taskRepo, memberRepo)
	taskHandler := handler.NewTaskHandler(taskRepo, projectRepo, memberRepo)
	teamHandler := handler.NewTeamHandler(memberRepo)
	dashboardHandler := handler.NewDashboardHandler(projectRepo, taskRepo, memberRepo)

	// Public routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/api/auth/login", authHandler.Login)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		api.GET("/auth/me", authHandler.Me)

		// Project routes
		api.POST("/projects", projectHandler.Create)
		api.GET("/projects", projectHandler.GetAll)
		api.GET("/projects/:id", projectHandler.GetByID)
		api.PUT("/projects/:id", projectHandler.Update)
		api.DELETE("/projects/:id", projectHandler.Delete)

		// Task routes
		api.POST("/tasks", taskHandler.Create)
		api.GET("/tasks", taskHandler.GetAll)
		api.GET("/tasks/:id", taskHandler.GetByID)
		api.PUT("/tasks/:id", taskHandler.Update)
		api.DELETE("/tasks/:id", taskHandler.Delete)

		// Team routes
		api.GET("/team", teamHandler.GetAll)
		api.GET("/team/:id", teamHandler.GetByID)
		api.POST("/team", teamHandler.Create)
		api.PUT("/team/:id", teamHandler.Update)
		api.DELETE("/team/:id", teamHandler.Delete)

		// Dashboard
		api.GET("/dashboard", dashboardHandler.Get)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

// seedLeader creates the bootstrap Leader account on an empty database so
// the team endpoints are reachable on first run.
func seedLeader(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&model.Member{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	leader := model.Member{
		ID:             uuid.New(),
		Name:           "Team Leader",
		Email:          cfg.AdminEmail,
		HashedPassword: string(hash),
		Role:           model.RoleLeader,
		Title:          "Leader",
	}
	if err := db.Create(&leader).Error; err != nil {
		return err
	}
	log.Printf("✅ Seeded initial leader account %s", cfg.AdminEmail)
	return nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
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
