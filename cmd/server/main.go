package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	handler "github.com/vouchd/vouchd/internal/adapters/handler/http"
	"github.com/vouchd/vouchd/internal/adapters/repository/memory"
	"github.com/vouchd/vouchd/internal/adapters/repository/postgres"
	"github.com/vouchd/vouchd/internal/config"
	"github.com/vouchd/vouchd/internal/core/ports"
	"github.com/vouchd/vouchd/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	hasher := services.NewArgon2Hasher()

	var (
		users  ports.UserStore
		banned ports.BannedTokenStore
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()

		users = postgres.NewUserStore(db, hasher)
		banned = postgres.NewBannedTokenStore(db)
		logger.Info("using postgres stores")
	} else {
		users = memory.NewUserStore(hasher)
		banned = memory.NewBannedTokenStore()
		logger.Info("using in-memory stores")
	}

	tokens := services.NewTokenAuthority([]byte(cfg.JWTSecret), cfg.TokenTTL)
	authService := services.NewAuthService(users, banned, tokens, hasher, logger)
	authHandler := handler.NewAuthHandler(authService, cfg.CookieDomain)

	server := &stdhttp.Server{Addr: cfg.Addr, Handler: handler.NewHandler(authHandler)}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
