package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/yalajobs/jobboard-api/docs"
	"github.com/yalajobs/jobboard-api/internal/api"
	"github.com/yalajobs/jobboard-api/internal/core/service"
	"github.com/yalajobs/jobboard-api/internal/infrastructure/config"
	mongodb "github.com/yalajobs/jobboard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/yalajobs/jobboard-api/internal/infrastructure/db/redis"
	"github.com/yalajobs/jobboard-api/internal/infrastructure/storage"
	"github.com/yalajobs/jobboard-api/internal/session"
	"github.com/yalajobs/jobboard-api/pkg/logger"
)

// @title        Yala Job Board API
// @version      1.0
// @description  Multi-role job board: jobseeker profiles, company listings, hosted-style auth.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Dependencies ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	fileStorage, err := storage.NewCloudinaryStorage(cfg.Cloudinary.URL, cfg.Cloudinary.Folder)
	if err != nil {
		log.Fatal().Err(err).Msg("cloudinary init failed")
	}

	// --- Repositories and stores ---
	authRepo := mongodb.NewAuthRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	companyRepo := mongodb.NewCompanyRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)
	wizardStore := redisdb.NewWizardStore(rdb)
	codeStore := redisdb.NewCodeStore(rdb)

	// --- Session broker ---
	broker := session.NewBroker(0, log)
	broker.Start(ctx)

	// --- Services ---
	authService := service.NewAuthService(service.AuthServiceOptions{
		Repo:      authRepo,
		Profiles:  profileRepo,
		Companies: companyRepo,
		Sessions:  sessionStore,
		Codes:     codeStore,
		Broker:    broker,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  time.Duration(cfg.SessionTTL) * time.Hour,
		Logger:    log,
	})
	wizardService := service.NewWizardService(wizardStore, profileRepo, log)
	companyService := service.NewCompanyService(companyRepo, log)

	// Drop cached wizard state when its owner signs out, so a later session
	// reseeds from the persisted profile instead of a stale working copy.
	subID, events := broker.Subscribe()
	defer broker.Unsubscribe(subID)
	go func() {
		for ev := range events {
			if ev.Kind != session.SignedOut {
				continue
			}
			if err := wizardStore.Delete(ctx, ev.UserID); err != nil {
				log.Warn().Err(err).Str("user_id", ev.UserID).Msg("wizard state cleanup failed")
			}
		}
	}()

	e, err := api.NewRouter(api.RouterOptions{
		Mongo:     db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		Auth:      authService,
		Wizard:    wizardService,
		Company:   companyService,
		Sessions:  sessionStore,
		Storage:   fileStorage,
		Logger:    log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		serverErr <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received, draining in-flight requests")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed, forcing close")
			if err := e.Close(); err != nil {
				log.Error().Err(err).Msg("forced shutdown failed")
				os.Exit(1)
			}
		}
		log.Info().Msg("server shutdown complete")
	}
}
