// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/mhruby/rinkside/internal/api/auth"
	"github.com/mhruby/rinkside/internal/api/matches"
	"github.com/mhruby/rinkside/internal/api/newsletter"
	"github.com/mhruby/rinkside/internal/api/players"
	"github.com/mhruby/rinkside/internal/api/public"
	"github.com/mhruby/rinkside/internal/api/teams"
	"github.com/mhruby/rinkside/internal/cognito"
	"github.com/mhruby/rinkside/internal/config"
	"github.com/mhruby/rinkside/internal/db"
	"github.com/mhruby/rinkside/internal/email"
	"github.com/mhruby/rinkside/internal/ratelimit"
	"github.com/mhruby/rinkside/internal/scheduler"
)

const shutdownTimeout = 30 * time.Second

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	var cognitoClient *cognito.CognitoClient
	if cfg.Auth.PoolID != "" {
		cognitoClient, err = cognito.NewClient(cfg.Auth.PoolID, cfg.Auth.ClientID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create cognito client")
		}
	} else {
		log.Warn().Msg("No cognito pool configured; using local admin fallback")
	}

	var sender email.EmailSender
	if cfg.Email.Sender != "" {
		sesClient, err := email.NewSESClient(cfg.Email.AccessKeyID, cfg.Email.SecretAccessKey, cfg.Email.Region, cfg.Email.Sender)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create email client")
		}
		sender = sesClient
	} else {
		log.Warn().Msg("No email sender configured; newsletter mail disabled")
	}

	limiter := ratelimit.New(ratelimit.DefaultConfig())
	defer limiter.Close()

	auth.InitHandlers(cfg, cognitoClient, limiter)
	public.InitHandlers(cfg, database.Queries)
	teams.InitHandlers(cfg, database.Queries)
	players.InitHandlers(cfg, database.Queries)
	matches.InitHandlers(cfg, database, sender)
	newsletter.InitHandlers(cfg, database.Queries, sender)

	if sender != nil && cfg.Newsletter.DigestSchedule != "" {
		if err := scheduler.Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to init scheduler")
		}
		if err := scheduler.RegisterDigestJob(database, sender, cfg.App.Name, cfg.Newsletter.DigestSchedule); err != nil {
			log.Fatal().Err(err).Msg("Failed to register digest job")
		}
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start scheduler")
		}
		defer func() {
			if err := scheduler.Stop(); err != nil {
				log.Error().Err(err).Msg("Failed to stop scheduler")
			}
		}()
	}

	server := newServer(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
