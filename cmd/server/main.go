package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"jobify/docs"
	"jobify/internal/auth"
	"jobify/internal/cache"
	"jobify/internal/config"
	"jobify/internal/db"
	"jobify/internal/handler"
	"jobify/internal/logger"
	"jobify/internal/metrics"
	"jobify/internal/repository"
	"jobify/internal/router"
	"jobify/internal/service"
)

// @title Jobify Auth API
// @version 1.0
// @description Sign-up, sign-in and role-scoped bearer token access for the Jobify job board.
// @host localhost:5000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "json").WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.WithError(err).Fatal("database init")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.WithError(err).Warn("redis unavailable, profile reads will go to the database")
	}
	cancelPing()

	m := metrics.New()

	accountRepo := repository.NewAccountRepository(gormDB)

	hasher := auth.NewHasher(cfg.BcryptCost, cfg.HashWorkers)
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	guard := auth.NewGuard(jwtService, m, log)
	log.WithFields(logrus.Fields{
		"token_ttl":    jwtService.TTL().String(),
		"hash_workers": cfg.HashWorkers,
	}).Info("auth configured")

	authService := service.NewAuthService(accountRepo, hasher, jwtService)
	accountService := service.NewAccountService(accountRepo, cacheClient)

	authHandler := handler.NewAuthHandler(authService, m, log)
	profileHandler := handler.NewProfileHandler(accountService, log)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, log, m, guard, authHandler, profileHandler)

	swaggerHost := "localhost:" + cfg.ServerPort
	if cfg.SwaggerHost != "" {
		swaggerHost = cfg.SwaggerHost
	}
	docs.SwaggerInfo.Host = swaggerHost
	log.Infof("Swagger documentation available at: http://%s/swagger/index.html", swaggerHost)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server start")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
}
