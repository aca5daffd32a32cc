package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/app"
	"github.com/MrJamesThe3rd/finanzas/internal/auth"
	"github.com/MrJamesThe3rd/finanzas/internal/config"
	"github.com/MrJamesThe3rd/finanzas/internal/database"
	apiHttp "github.com/MrJamesThe3rd/finanzas/internal/http"
	accountHandler "github.com/MrJamesThe3rd/finanzas/internal/http/account"
	budgetHandler "github.com/MrJamesThe3rd/finanzas/internal/http/budget"
	categoryHandler "github.com/MrJamesThe3rd/finanzas/internal/http/category"
	creditcardHandler "github.com/MrJamesThe3rd/finanzas/internal/http/creditcard"
	cycleHandler "github.com/MrJamesThe3rd/finanzas/internal/http/cycle"
	dashboardHandler "github.com/MrJamesThe3rd/finanzas/internal/http/dashboard"
	dataHandler "github.com/MrJamesThe3rd/finanzas/internal/http/data"
	exchangeHandler "github.com/MrJamesThe3rd/finanzas/internal/http/exchange"
	exportHandler "github.com/MrJamesThe3rd/finanzas/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/finanzas/internal/http/importer"
	loanHandler "github.com/MrJamesThe3rd/finanzas/internal/http/loan"
	matchingHandler "github.com/MrJamesThe3rd/finanzas/internal/http/matching"
	templateHandler "github.com/MrJamesThe3rd/finanzas/internal/http/quicktemplate"
	txHandler "github.com/MrJamesThe3rd/finanzas/internal/http/transaction"
	"github.com/MrJamesThe3rd/finanzas/internal/logging"
	"github.com/MrJamesThe3rd/finanzas/internal/metrics"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(os.Stdout, cfg.App.LogFormat, cfg.App.LogLevel)
	if err != nil {
		slog.Error("failed to configure logging", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.ConnectionString(), cfg.DB.MaxOpenConns)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	if err := database.FixSequences(ctx, db); err != nil {
		return fmt.Errorf("fix sequences: %w", err)
	}

	m := metrics.New()

	svc := app.New(db, cfg, logger, m.RateFallback)

	handlers := apiHttp.Handlers{
		Accounts:       accountHandler.NewHandler(svc.Accounts),
		Categories:     categoryHandler.NewHandler(svc.Categories),
		Transactions:   txHandler.NewHandler(svc.Transactions),
		Transfers:      txHandler.NewTransferHandler(svc.Transactions),
		BillingCycle:   cycleHandler.NewHandler(svc.Cycles),
		Budgets:        budgetHandler.NewHandler(svc.Budgets),
		Loans:          loanHandler.NewHandler(svc.Loans),
		CreditCards:    creditcardHandler.NewHandler(svc.Cards),
		Dashboard:      dashboardHandler.NewHandler(svc.Dashboard),
		QuickTemplates: templateHandler.NewHandler(svc.Templates),
		ExchangeRate:   exchangeHandler.NewHandler(svc.Rates),
		Data:           dataHandler.NewHandler(svc.Demo),
		Import:         importHandler.NewHandler(svc.Import, cfg.Import.MaxUploadMB, m),
		Rules:          matchingHandler.NewHandler(svc.Rules),
		Export:         exportHandler.NewHandler(svc.Export),
	}

	opts := apiHttp.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Timeout:        cfg.Server.Timeout,
		Metrics:        m,
		DB:             db,
	}

	if cfg.Auth.Enabled {
		opts.Verifier, err = auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Whitelist)
		if err != nil {
			return fmt.Errorf("configure auth: %w", err)
		}
	} else {
		logger.Warn("authentication disabled")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           apiHttp.New(handlers, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("starting server", "addr", srv.Addr, "app", cfg.App.Name)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
