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

	"github.com/MrJamesThe3rd/ledger/internal/app"
	"github.com/MrJamesThe3rd/ledger/internal/config"
	ledgerHttp "github.com/MrJamesThe3rd/ledger/internal/http"
	exclusionHandler "github.com/MrJamesThe3rd/ledger/internal/http/exclusion"
	exportHandler "github.com/MrJamesThe3rd/ledger/internal/http/export"
	ledgerHandler "github.com/MrJamesThe3rd/ledger/internal/http/ledger"
	statementHandler "github.com/MrJamesThe3rd/ledger/internal/http/statement"
	"github.com/MrJamesThe3rd/ledger/internal/http/web"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	pageH, err := web.NewHandler(web.Config{
		AppName: cfg.App.Name,
		Owner:   a.Owner(),
		Timeout: cfg.Server.Timeout,
	}, a.Ledger, a.Exclusions, a.Transactions, a.Flash)
	if err != nil {
		slog.Error("failed to create web handler", "error", err)
		os.Exit(1)
	}

	var (
		ledgerH    = ledgerHandler.NewHandler(a.Ledger, a.Transactions, a.Owner())
		exclusionH = exclusionHandler.NewHandler(a.Exclusions, a.Owner())
		exportH    = exportHandler.NewHandler(a.Export, a.Owner())
		statementH *statementHandler.Handler
	)

	if a.Statements != nil {
		statementH = statementHandler.NewHandler(a.Statements, a.Transactions)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           ledgerHttp.New(pageH, ledgerH, exclusionH, exportH, statementH, cfg.Server.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "port", srv.Addr, "ledger", a.Owner())

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
