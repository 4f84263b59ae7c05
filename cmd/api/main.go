package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"

	"github.com/ArowuTest/nebula-luck-backend/api/routes"
	"github.com/ArowuTest/nebula-luck-backend/internal/bootstrap"
	"github.com/ArowuTest/nebula-luck-backend/internal/config"
	"github.com/ArowuTest/nebula-luck-backend/internal/lottery"
	"github.com/ArowuTest/nebula-luck-backend/internal/repositories"
	"github.com/ArowuTest/nebula-luck-backend/internal/rng"
	"github.com/ArowuTest/nebula-luck-backend/internal/services"
	"github.com/ArowuTest/nebula-luck-backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.Server.Mode)

	ctx := context.Background()
	store, err := bootstrap.OpenSlotStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.Store.Driver, err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			slog.Error("Error closing store", "error", err)
		}
	}()

	repo := repositories.NewSnapshotRepository(store)
	snap := repo.Load(ctx)
	slog.Info("Draw state loaded",
		"participants", len(snap.Roster),
		"prizes", len(snap.Catalog),
		"winners", len(snap.Ledger),
	)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Invalid time zone: %v", err)
	}

	machine := lottery.NewMachine(rng.NewSampler(cfg.Draw.Seed))
	drawService := services.NewDrawService(machine, repo, snap, services.WithSuspenseDelay(cfg.Draw.SuspenseDelay))
	deps := routes.Dependencies{
		DrawService:     drawService,
		SettingsService: services.NewSettingsService(repo, drawService, snap.Settings),
		HistoryService:  services.NewHistoryService(drawService, loc),
		StoreDriver:     cfg.Store.Driver,
		AllowedOrigins:  cfg.Server.AllowedHosts,
	}
	if cfg.Auth.Enabled {
		deps.AuthService = services.NewAuthService(services.AuthOptions{
			Username:     cfg.Auth.Username,
			PasswordHash: cfg.Auth.PasswordHash,
			Secret:       cfg.JWT.Secret,
			ExpiresIn:    time.Duration(cfg.JWT.ExpiresIn) * time.Second,
		})
	} else {
		slog.Warn("Authentication is disabled; configuration routes are open")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           routes.SetupRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("Server starting", "port", cfg.Server.Port, "store", cfg.Store.Driver)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exiting")
}
