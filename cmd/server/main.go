package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/PizzaTimeVN/pizza-backend/internal/config"
	"github.com/PizzaTimeVN/pizza-backend/internal/repository/mongodb"
	"github.com/PizzaTimeVN/pizza-backend/internal/repository/sheets"
	"github.com/PizzaTimeVN/pizza-backend/internal/scheduler"
	"github.com/PizzaTimeVN/pizza-backend/internal/server/handlers"
	"github.com/PizzaTimeVN/pizza-backend/internal/server/router"
	inventorysvc "github.com/PizzaTimeVN/pizza-backend/internal/service/inventory"
	notifysvc "github.com/PizzaTimeVN/pizza-backend/internal/service/notify"
	reportingsvc "github.com/PizzaTimeVN/pizza-backend/internal/service/reporting"
	"github.com/PizzaTimeVN/pizza-backend/pkg/clients/chat"
	"github.com/PizzaTimeVN/pizza-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	repo, err := mongodb.NewRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	reportingSvc := reportingsvc.NewService(repo, baseLogger.Named("svc.reporting"))
	inventorySvc := inventorysvc.NewService(repo, baseLogger.Named("svc.inventory"))

	var notifySvc *notifysvc.Service
	if cfg.Chat.WebhookURL != "" {
		chatClient := chat.NewClient(cfg.Chat)
		notifySvc = notifysvc.NewService(chatClient, baseLogger.Named("svc.notify"))
		baseLogger.Info("chat notifications enabled")
	} else {
		baseLogger.Warn("chat webhook url missing, notifications disabled")
	}

	var exporter sheets.Exporter
	if cfg.SheetsEnabled() {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("bookkeeping sheet exporter enabled")
	}

	reportsHandler := handlers.NewReportsHandler(reportingSvc, baseLogger.Named("handlers.reports"))
	inventoryHandler := handlers.NewInventoryHandler(inventorySvc, notifySvc, baseLogger.Named("handlers.inventory"))
	engine := router.New(reportsHandler, inventoryHandler, cfg.Auth, baseLogger.Named("router"))

	var sched *scheduler.Scheduler
	if notifySvc != nil {
		sched = scheduler.NewScheduler(cfg.Reporting, reportingSvc, notifySvc, exporter, baseLogger.Named("scheduler"))
		sched.Start()
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
