package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medconnect/medconnect-client/internal/application/services"
	"github.com/medconnect/medconnect-client/internal/infrastructure/clients/medconnect"
	"github.com/medconnect/medconnect-client/internal/infrastructure/observability"
	"github.com/medconnect/medconnect-client/internal/infrastructure/session"
	"github.com/medconnect/medconnect-client/pkg/config"
	"github.com/medconnect/medconnect-client/pkg/retry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)
	logger := observability.GetLogger()

	// Cancel on interrupt so long loads abort cleanly
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	client, err := medconnect.New(cfg.API.BaseURL, cfg.API.Timeout)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize backend client")
	}
	logger.Info().Str("base_url", cfg.API.BaseURL).Msg("backend client initialized")

	// Wait for the backend to be reachable before doing anything
	if err := retry.Do(ctx, retry.DefaultConfig(), func() error {
		return client.Health(ctx)
	}); err != nil {
		logger.Fatal().Err(err).Msg("backend unreachable")
	}

	store := session.NewFileStore(cfg.Session.Dir)
	auth := services.NewAuthService(client, store)
	data := services.NewDataService(client, auth)
	auth.OnSessionChange(data.HandleSessionChange)
	defer auth.Teardown()

	email := os.Getenv("MEDCONNECT_EMAIL")
	password := os.Getenv("MEDCONNECT_PASSWORD")

	switch {
	case auth.IsAuthenticated():
		logger.Info().Str("email", auth.CurrentUser().Email).Msg("restored persisted session")
		data.HandleSessionChange(auth.CurrentUser())
	case email != "" && password != "":
		if err := auth.Login(ctx, services.LoginCredentials{Email: email, Password: password}); err != nil {
			logger.Fatal().Err(err).Msg("login failed")
		}
		logger.Info().Str("email", email).Msg("logged in")
	default:
		logger.Info().Msg("no session and no credentials, loading public collections only")
		data.FetchStudies(ctx)
		data.FetchCommunities(ctx)
		report(data)
		return
	}

	data.WaitForLoad()
	report(data)

	if user := auth.CurrentUser(); user != nil {
		logger.Info().
			Str("user_type", string(user.UserType)).
			Str("name", user.FirstName+" "+user.LastName).
			Msg("session active")
	}
}

func report(data *services.DataService) {
	logger := observability.GetLogger()
	logger.Info().
		Int("studies", len(data.ClinicalTrials())).
		Int("user_studies", len(data.UserStudies())).
		Int("communities", len(data.Communities())).
		Int("user_communities", len(data.UserCommunities())).
		Int("medical_records", len(data.MedicalRecords())).
		Int("vital_signs", len(data.VitalSigns())).
		Int("medications", len(data.Medications())).
		Int("immunizations", len(data.Immunizations())).
		Int("allergies", len(data.Allergies())).
		Int("contact_requests", len(data.ContactRequests())).
		Bool("profile_loaded", data.Profile() != nil).
		Msg("collection snapshot")
}
