package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"pagecraft/internal/config"
	"pagecraft/internal/db"
	"pagecraft/internal/email"
	apihttp "pagecraft/internal/http"
	"pagecraft/internal/repository"
	"pagecraft/internal/service"
	"pagecraft/internal/storage"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := db.Migrate(ctx, cfg.DatabaseURL); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	projectRepo := repository.NewPgProjectRepository(pool)
	pageRepo := repository.NewPgPageRepository(pool)
	elementRepo := repository.NewPgElementRepository(pool)
	textRepo := repository.NewPgTextRepository(pool)
	canvasImageRepo := repository.NewPgCanvasImageRepository(pool)
	deviceRepo := repository.NewPgDeviceRepository(pool)
	imageGroupRepo := repository.NewPgImageGroupRepository(pool)
	assetRepo := repository.NewPgAssetRepository(pool)
	projectImageRepo := repository.NewPgProjectImageRepository(pool)

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	var (
		otpLimiter  service.OTPRateLimiter
		tokenStore  service.RefreshTokenStore
		redisClient *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			otpLimiter = service.NewRedisOTPRateLimiter(redisClient, time.Duration(cfg.OTPWindowMinutes)*time.Minute, cfg.OTPMaxPerWindow)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}
	if otpLimiter == nil {
		otpLimiter = service.NewOTPRateLimiter(time.Duration(cfg.OTPWindowMinutes)*time.Minute, cfg.OTPMaxPerWindow)
	}

	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}
	tokenSvc := service.NewTokenServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTResetTTLMinutes)*time.Minute,
		tokenStore,
	)

	userSvc := service.NewUserService(logger, userRepo, emailSender, otpLimiter, cfg.BcryptCost)

	assetStore, err := storage.NewLocalStore(cfg.UploadDir, logger)
	if err != nil {
		logger.Fatal("asset store init", zap.Error(err))
	}
	projectStore, err := storage.NewLocalStore(cfg.ProjectUploadDir, logger)
	if err != nil {
		logger.Fatal("project store init", zap.Error(err))
	}

	router := apihttp.NewRouter(logger, apihttp.RouterDeps{
		Users:         apihttp.NewUserHandler(logger, userSvc, tokenSvc),
		Projects:      apihttp.NewProjectHandler(logger, projectRepo),
		Pages:         apihttp.NewPageHandler(logger, pageRepo),
		Elements:      apihttp.NewElementHandler(logger, elementRepo),
		Texts:         apihttp.NewTextHandler(logger, textRepo),
		CanvasImages:  apihttp.NewCanvasImageHandler(logger, canvasImageRepo),
		Devices:       apihttp.NewDeviceHandler(logger, deviceRepo),
		ImageGroups:   apihttp.NewImageGroupHandler(logger, imageGroupRepo),
		Uploads:       apihttp.NewUploadHandler(logger, assetRepo, assetStore),
		ProjectImages: apihttp.NewProjectImageHandler(logger, projectImageRepo, projectStore),
		Auth:          apihttp.JWTAuthMiddleware(tokenSvc),
		UploadDir:     cfg.UploadDir,
		DBPing: func(ctx context.Context) error {
			return db.Ping(ctx, pool)
		},
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
