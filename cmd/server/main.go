package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"quickbite.backend/internal/config"
	"quickbite.backend/internal/infrastructure/jobs"
	"quickbite.backend/internal/infrastructure/models"
	"quickbite.backend/internal/infrastructure/repositories"
	"quickbite.backend/internal/interfaces/http/handlers"
	"quickbite.backend/internal/usecases"
	"quickbite.backend/pkg/jwt"
	"quickbite.backend/pkg/logger"
	"quickbite.backend/pkg/redis"
	"quickbite.backend/pkg/storage"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	openSQL   = func(dsn string) (*sql.DB, error) { return sql.Open("postgres", dsn) }
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("database not available: %v (endpoints will return errors)", err)
	} else {
		if err := db.AutoMigrate(&models.User{}, &models.Merchant{}, &models.DeliveryBoy{}, &models.Promotion{}); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
		log.Println("connected to PostgreSQL")
	}

	// the settings document lives on a plain database/sql connection
	settingsDB, err := openSQL(dsn)
	if err != nil {
		return fmt.Errorf("failed to open settings connection: %w", err)
	}
	defer settingsDB.Close()

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	userRepo := repositories.NewUserRepository(db)
	merchantRepo := repositories.NewMerchantRepository(db)
	riderRepo := repositories.NewRiderRepository(db)
	settingsRepo := repositories.NewSettingsRepository(settingsDB)
	promotionRepo := repositories.NewPromotionRepository(db)
	uow := repositories.NewUnitOfWork(db)

	if err := settingsRepo.EnsureSchema(context.Background()); err != nil {
		log.Printf("settings schema not ready: %v", err)
	}

	otpStore := redis.NewOTPStore(cfg.OTP.TTL, cfg.OTP.Cooldown)
	uploads := storage.NewStore(cfg.Upload.Dir, cfg.Upload.BaseURL)

	reconcileUsecase := usecases.NewReconcileUsecase(userRepo)
	merchantUsecase := usecases.NewMerchantUsecase(uow, merchantRepo, userRepo, reconcileUsecase)
	riderUsecase := usecases.NewRiderUsecase(uow, riderRepo, userRepo)
	userUsecase := usecases.NewUserUsecase(userRepo)
	settingsUsecase := usecases.NewSettingsUsecase(settingsRepo)
	statsUsecase := usecases.NewStatsUsecase(merchantRepo, riderRepo)
	authUsecase := usecases.NewAuthUsecase(userRepo, merchantRepo, riderRepo, otpStore, jwtService, cfg.Server.IsDevelopment())
	promotionUsecase := usecases.NewPromotionUsecase(promotionRepo)

	// background jobs
	jobCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hoursJob := jobs.NewStoreHoursJob(settingsRepo, merchantRepo)
	go hoursJob.Start(jobCtx)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("shutting down server...")
		hoursJob.Stop()
		cancel()
	}()

	deps := routeDeps{
		authHandler:      handlers.NewAuthHandler(authUsecase),
		merchantHandler:  handlers.NewMerchantHandler(merchantUsecase),
		riderHandler:     handlers.NewRiderHandler(riderUsecase),
		userHandler:      handlers.NewUserHandler(userUsecase),
		settingsHandler:  handlers.NewSettingsHandler(settingsUsecase),
		statsHandler:     handlers.NewStatsHandler(statsUsecase),
		portalHandler:    handlers.NewPortalHandler(merchantUsecase, uploads),
		promotionHandler: handlers.NewPromotionHandler(promotionUsecase, uploads),
		jwtService:       jwtService,
		uploadDir:        cfg.Upload.Dir,
	}

	r := newRouter(deps)

	log.Printf("QuickBite backend starting on port %s", cfg.Server.Port)
	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
