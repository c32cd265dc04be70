package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"dermamatch/internal/config"
	"dermamatch/internal/db"
	"dermamatch/internal/email"
	apihttp "dermamatch/internal/http"
	"dermamatch/internal/questionnaire"
	"dermamatch/internal/repository"
	"dermamatch/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
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

	if err := service.ValidatePolicies(); err != nil {
		logger.Fatal("policy table invalid", zap.Error(err))
	}

	definition, err := questionnaire.LoadDefault()
	if err != nil {
		logger.Fatal("questionnaire load failed", zap.Error(err))
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	productRepo := repository.NewPgProductRepository(pool)
	submissionRepo := repository.NewPgSubmissionRepository(pool)

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	recoTTL := time.Duration(cfg.RecoCacheTTLMinutes) * time.Minute
	var (
		otpLimiter  service.OTPRateLimiter
		tokenStore  service.RefreshTokenStore
		recoCache   = service.NewMemoryRecommendationCache(recoTTL)
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
			otpLimiter = service.NewRedisOTPRateLimiter(redisClient, 10*time.Minute, cfg.OTPRateLimitPerWindow)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
			recoCache = service.NewRedisRecommendationCache(redisClient, recoTTL)
		}
		cancel()
	}

	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)

	userSvc := service.NewUserService(logger, userRepo, emailSender, otpLimiter)
	quizSvc := service.NewQuizService(definition, submissionRepo, logger)
	recoSvc := service.NewRecommendationService(productRepo, recoCache, logger)

	userHandler := apihttp.NewUserHandler(logger, userSvc, jwtSvc)
	quizHandler := apihttp.NewQuizHandler(logger, quizSvc, submissionRepo)
	recoHandler := apihttp.NewRecommendationHandler(logger, recoSvc, productRepo)
	router := apihttp.NewRouter(logger, jwtSvc, userHandler, quizHandler, recoHandler)

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
