package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/sorawitch/user-auth-api/internal/auth"
	"github.com/sorawitch/user-auth-api/internal/config"
	"github.com/sorawitch/user-auth-api/internal/handler"
	"github.com/sorawitch/user-auth-api/internal/mailer"
	"github.com/sorawitch/user-auth-api/internal/repository"
	"github.com/sorawitch/user-auth-api/internal/usecase"
	"github.com/sorawitch/user-auth-api/internal/validator"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping MongoDB")
	}

	db := client.Database(cfg.MongoDatabase)
	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)

	validate, err := validator.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create validator")
	}

	ml := mailer.NewMailer(&logger)
	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)

	authUsecase, err := usecase.NewAuthUsecase(userRepo, ml, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create auth usecase")
	}
	resetUsecase := usecase.NewPasswordResetUsecase(userRepo, ml, cfg.ClientURL, &logger)

	authHandler := handler.NewAuthHandler(authUsecase, jwtAuth, validate, cfg.Token, cfg.SecureCookie, &logger)
	resetHandler := handler.NewPasswordResetHandler(resetUsecase, validate, &logger)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.NewRouter(authHandler, resetHandler, &logger),
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shut down HTTP server")
	}

	// Let in-flight notification emails finish before exiting.
	authUsecase.Wait()
	resetUsecase.Wait()
}
