package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iliyamo/cinepedia/internal/config"
	"github.com/iliyamo/cinepedia/internal/database"
	"github.com/iliyamo/cinepedia/internal/handler"
	"github.com/iliyamo/cinepedia/internal/queue"
	"github.com/iliyamo/cinepedia/internal/repository"
	"github.com/iliyamo/cinepedia/internal/router"
	"github.com/iliyamo/cinepedia/internal/service"
	"github.com/iliyamo/cinepedia/internal/session"
	"github.com/iliyamo/cinepedia/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		// Get is a no-op logger when run failed before Init
		log := logger.Get()
		log.Error().Err(err).Msg("server stopped")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx) // fails fast on a missing or short SESSION_SECRET
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	db, err := database.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if cfg.DB.Migrate {
		if err := database.Migrate(ctx, db, cfg.DB.Driver); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	} else if cfg.Redis.Addr != "" {
		log.Warn().Str("addr", cfg.Redis.Addr).Msg("redis unreachable; logout will not revoke sessions")
	}

	var events service.EventPublisher = queue.NopPublisher{}
	if cfg.Activity.URL != "" {
		events = queue.NewPublisher(cfg.Activity.URL, log)
		if cfg.Activity.RunConsumer {
			go func() {
				if err := queue.StartActivityConsumer(ctx, cfg.Activity.URL, cfg.Activity.LogDir, log); err != nil && !errors.Is(err, context.Canceled) {
					log.Error().Err(err).Msg("activity consumer stopped")
				}
			}()
		}
	}

	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	comments := repository.NewCommentRepo(db)

	authSvc := service.NewAuthService(users, cfg.BcryptCost, log)
	movieSvc := service.NewMovieService(movies, comments, events, log)
	commentSvc := service.NewCommentService(comments, movies, events, log)
	sessions := session.NewManager(cfg.Session, session.NewRevoker(rdb), log)

	e, err := router.New(router.Deps{
		Auth:     handler.NewAuthHandler(authSvc, sessions, log),
		Home:     handler.NewHomeHandler(authSvc, log),
		Movies:   handler.NewMovieHandler(movieSvc, log),
		Comments: handler.NewCommentHandler(commentSvc, log),
		Health:   handler.NewHealthHandler(db, rdb),
		Sessions: sessions,
		Log:      log,
		Metrics:  cfg.MetricsEnabled,
	})
	if err != nil {
		return err
	}

	addr := ":" + cfg.Port
	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Env).Str("db", cfg.DB.Driver).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info().Msg("shutting down")
	return e.Shutdown(shutdownCtx)
}
