package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"premam/docs" // swagger docs

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"

	"premam/internal/auth"
	"premam/internal/cache"
	"premam/internal/config"
	"premam/internal/db"
	"premam/internal/handler"
	"premam/internal/model"
	"premam/internal/repository"
	"premam/internal/router"
	"premam/internal/service"
)

// @title Premam API
// @version 1.0
// @description Anonymous confession and bouquet service with identity verification, anonymous voting and moderation.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Vote{},
			&model.Message{},
			&model.Creator{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Creator{},
		&model.Message{},
		&model.Vote{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	creatorRepo := repository.NewCreatorRepository(gormDB)
	messageRepo := repository.NewMessageRepository(gormDB)
	voteRepo := repository.NewVoteRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.SessionSecret)
	sessionStore := auth.NewSessionStore(cacheClient)
	probeClient := &http.Client{Timeout: cfg.ProbeTimeout}
	instagram := auth.NewInstagramProvider(cfg.InstagramAppID, cfg.InstagramAppSecret, probeClient)

	// Provision the admin inbox in single-admin mode
	adminCreatorID, err := provisionAdminCreator(cfg, creatorRepo)
	if err != nil {
		log.Fatalf("provision admin creator: %v", err)
	}

	// Initialize services
	otpProvider := service.NewOTPProvider(cacheClient, service.LogSender{})
	accountDirectory := service.NewAccountDirectory(userRepo, otpProvider)
	adminService := service.NewAdminService(cfg, creatorRepo, sessionStore)
	verifierService := service.NewVerifierService(probeClient)
	ipLookup := service.NewIPLookup(probeClient)
	messageService := service.NewMessageService(cfg, messageRepo, creatorRepo, ipLookup, cacheClient, adminCreatorID)
	voteService := service.NewVoteService(voteRepo, messageRepo)

	// Initialize handlers
	creatorHandler := handler.NewCreatorHandler(adminService)
	accountHandler := handler.NewAccountHandler(accountDirectory, jwtService)
	messageHandler := handler.NewMessageHandler(messageService)
	voteHandler := handler.NewVoteHandler(voteService, jwtService)
	verifyHandler := handler.NewVerifyHandler(verifierService, instagram)

	// Register routes
	router.Register(
		e,
		cfg,
		adminService,
		creatorHandler,
		accountHandler,
		messageHandler,
		voteHandler,
		verifyHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// provisionAdminCreator makes sure the configured single-admin inbox exists.
// Multi-tenant deployments skip this and return a nil id.
func provisionAdminCreator(cfg *config.Config, creators repository.CreatorRepository) (uuid.UUID, error) {
	if cfg.DeployMode != config.DeploySingle {
		return uuid.Nil, nil
	}
	if cfg.AdminPasscode == "" {
		log.Fatal("ADMIN_PASSCODE must be set in single-admin mode")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPasscode), 10)
	if err != nil {
		return uuid.Nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	creator, err := creators.FindBySlugOrCreate(ctx, &model.Creator{
		DisplayName:  "Admin",
		Slug:         cfg.AdminSlug,
		PasscodeHash: string(hash),
	})
	if err != nil {
		return uuid.Nil, err
	}
	log.Printf("single-admin inbox ready: /to/%s", creator.Slug)
	return creator.ID, nil
}
