package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/escafood/kasadefteri-backend/api/routes"
	"github.com/escafood/kasadefteri-backend/internal/attachments"
	"github.com/escafood/kasadefteri-backend/internal/banks"
	"github.com/escafood/kasadefteri-backend/internal/cards"
	"github.com/escafood/kasadefteri-backend/internal/cheques"
	"github.com/escafood/kasadefteri-backend/internal/customers"
	"github.com/escafood/kasadefteri-backend/internal/ledger"
	"github.com/escafood/kasadefteri-backend/internal/posterminals"
	"github.com/escafood/kasadefteri-backend/internal/suppliers"
	"github.com/escafood/kasadefteri-backend/internal/tags"
	"github.com/escafood/kasadefteri-backend/internal/users"
	"github.com/escafood/kasadefteri-backend/pkg/config"
	"github.com/escafood/kasadefteri-backend/pkg/db"
	"github.com/escafood/kasadefteri-backend/pkg/logger"
	"github.com/escafood/kasadefteri-backend/pkg/metrics"
	"github.com/escafood/kasadefteri-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	conn := dbClient.DB()
	ledgerRepo := ledger.NewRepository(conn)
	bankRepo := banks.NewRepository(conn)
	cardRepo := cards.NewRepository(conn)
	customerRepo := customers.NewRepository(conn)
	supplierRepo := suppliers.NewRepository(conn)
	terminalRepo := posterminals.NewRepository(conn)
	tagRepo := tags.NewRepository(conn)
	chequeRepo := cheques.NewRepository(conn)
	usersRepo := users.NewRepository(conn)

	ledgerService, err := ledger.NewService(dbClient, ledgerRepo, bankRepo, cardRepo, customerRepo, supplierRepo, terminalRepo, tagRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create ledger service", err)
		os.Exit(1)
	}
	chequeService, err := cheques.NewService(dbClient, chequeRepo, ledgerRepo, bankRepo, customerRepo, supplierRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cheque service", err)
		os.Exit(1)
	}
	cardService, err := cards.NewService(cardRepo, ledgerRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create card service", err)
		os.Exit(1)
	}
	bankService, err := banks.NewService(bankRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create bank service", err)
		os.Exit(1)
	}
	customerService, err := customers.NewService(customerRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create customer service", err)
		os.Exit(1)
	}
	supplierService, err := suppliers.NewService(supplierRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create supplier service", err)
		os.Exit(1)
	}
	terminalService, err := posterminals.NewService(terminalRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create pos terminal service", err)
		os.Exit(1)
	}
	tagService, err := tags.NewService(tagRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create tag service", err)
		os.Exit(1)
	}
	attachmentStore, err := attachments.NewStore(cfg.Attachments.Dir)
	if err != nil {
		logg.Error(context.Background(), "failed to open attachment store", err)
		os.Exit(1)
	}
	attachmentService, err := attachments.NewService(attachments.NewRepository(conn), attachmentStore, cfg.Attachments)
	if err != nil {
		logg.Error(context.Background(), "failed to create attachment service", err)
		os.Exit(1)
	}
	userService, err := users.NewService(usersRepo, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			httpMetrics,
			registry,
			usersRepo,
			ledgerService,
			chequeService,
			cardService,
			bankService,
			customerService,
			supplierService,
			terminalService,
			tagService,
			attachmentService,
			userService,
		),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
