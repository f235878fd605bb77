package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/hishabkhata/cashbook-server/internal/config"
	"github.com/hishabkhata/cashbook-server/internal/handler"
	"github.com/hishabkhata/cashbook-server/internal/logging"
	"github.com/hishabkhata/cashbook-server/internal/middleware"
	"github.com/hishabkhata/cashbook-server/internal/repository"
	"github.com/hishabkhata/cashbook-server/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("cashbook-api", cfg.LogLevel, cfg.AppEnv)

	db, err := connectDB(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.RunMigrations(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	users := repository.NewUserRepository(db)
	accounts := repository.NewAccountRepository(db)
	transactions := repository.NewTransactionRepository(db)

	userSvc := service.NewUserService(db, users, accounts)
	accountSvc := service.NewAccountService(db, accounts, transactions)
	transactionSvc := service.NewTransactionService(db, transactions, accounts)
	statsSvc := service.NewStatsService(accounts, transactions)

	healthHandler := handler.NewHealthHandler(db)
	authHandler := handler.NewAuthHandler(userSvc, users, cfg.JWTSecret, cfg.JWTExpiry())
	accountHandler := handler.NewAccountHandler(accountSvc)
	transactionHandler := handler.NewTransactionHandler(transactionSvc, accountSvc)
	dashboardHandler := handler.NewDashboardHandler(statsSvc)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler.Liveness)
	mux.HandleFunc("GET /health/ready", healthHandler.Readiness)

	mux.HandleFunc("POST /api/v1/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)

	protected := http.NewServeMux()
	protected.HandleFunc("GET /api/v1/accounts", accountHandler.List)
	protected.HandleFunc("POST /api/v1/accounts", accountHandler.Create)
	protected.HandleFunc("PATCH /api/v1/accounts/{id}", accountHandler.Update)
	protected.HandleFunc("DELETE /api/v1/accounts/{id}", accountHandler.Delete)
	protected.HandleFunc("POST /api/v1/accounts/{id}/adjust", accountHandler.Adjust)

	protected.HandleFunc("GET /api/v1/transactions", transactionHandler.List)
	protected.HandleFunc("POST /api/v1/transactions", transactionHandler.Create)
	protected.HandleFunc("PATCH /api/v1/transactions/{id}", transactionHandler.Update)
	protected.HandleFunc("DELETE /api/v1/transactions/{id}", transactionHandler.Delete)
	protected.HandleFunc("GET /api/v1/transactions/export", transactionHandler.Export)

	protected.HandleFunc("GET /api/v1/dashboard", dashboardHandler.Stats)

	mux.Handle("/api/v1/", middleware.Auth(cfg.JWTSecret)(protected))

	root := middleware.RequestID(middleware.Logging(middleware.Recovery(mux)))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           root,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func connectDB(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connectDB: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeS) * time.Second)
	db.SetConnMaxIdleTime(time.Duration(cfg.DBConnMaxIdleTimeS) * time.Second)

	for i := range 30 {
		if err = db.Ping(); err == nil {
			return db, nil
		}
		slog.Info("waiting for database", "attempt", i+1)
		time.Sleep(time.Second)
	}

	db.Close()
	return nil, fmt.Errorf("connectDB: gave up after 30 attempts: %w", err)
}
