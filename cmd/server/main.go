package main

import (
	"StudyHub/internal/config"
	"StudyHub/internal/handlers"
	"StudyHub/internal/middleware"
	"StudyHub/internal/repo"
	"StudyHub/internal/service"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.NewConfig()

	// создаём регистратор zap с уровнем из конфига
	zcfg := zap.NewDevelopmentConfig()
	if lvl, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, err := zcfg.Build()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}
	defer func() {
		if err := repo.Close(gormDB); err != nil {
			sugar.Errorw("failed to close database", "error", err)
		}
	}()

	if err := repo.Migrate(gormDB, !cfg.DisableCardStats); err != nil {
		sugar.Fatalw("failed to migrate database", "error", err)
	}
	caps := repo.ProbeCapabilities(gormDB)
	if !caps.CardPerformance {
		sugar.Warnw("card_performances table is missing: per-card statistics are disabled")
	}

	// Repositories
	userRepo := repo.NewUserRepository(gormDB)
	subjectRepo := repo.NewSubjectRepository(gormDB, caps)
	shareRepo := repo.NewShareRepository(gormDB)
	cardRepo := repo.NewCardRepository(gormDB, caps)
	checklistRepo := repo.NewChecklistRepository(gormDB)
	sessionRepo := repo.NewSessionRepository(gormDB)
	statsRepo := repo.NewStatsRepository(gormDB)

	// Services
	access := service.NewAccessResolver(subjectRepo, shareRepo)
	invalidator := service.NewLogInvalidator(sugar)
	services := handlers.Services{
		Users:     service.NewUserService(userRepo),
		Subjects:  service.NewSubjectService(access, subjectRepo, cardRepo, checklistRepo, sessionRepo, statsRepo, caps, sugar),
		Cards:     service.NewCardService(access, cardRepo, sugar),
		Checklist: service.NewChecklistService(access, checklistRepo, invalidator, sugar),
		Sessions:  service.NewSessionService(access, sessionRepo, caps, invalidator, sugar),
		Shares:    service.NewShareService(access, shareRepo, userRepo, sugar),
		Analytics: service.NewAnalyticsService(subjectRepo, statsRepo, caps, sugar),
	}

	h := handlers.NewHandler(services, sugar, cfg)

	srv := &http.Server{
		Addr:              cfg.BaseURL,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sugar.Infow("Starting server", "addr", cfg.BaseURL)
	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"LogLevel", cfg.LogLevel,
		"CardStats", caps.CardPerformance,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		sugar.Infow("Shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Errorw("Server failed", "error", err)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Graceful shutdown failed", "error", err)
	}
}
