package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/intake-api/config"
	"github.com/jwalitptl/intake-api/internal/email"
	"github.com/jwalitptl/intake-api/internal/handler"
	authHandler "github.com/jwalitptl/intake-api/internal/handler/auth"
	availabilityHandler "github.com/jwalitptl/intake-api/internal/handler/availability"
	clientHandler "github.com/jwalitptl/intake-api/internal/handler/client"
	outreachHandler "github.com/jwalitptl/intake-api/internal/handler/outreach"
	"github.com/jwalitptl/intake-api/internal/middleware"
	"github.com/jwalitptl/intake-api/internal/repository/postgres"
	"github.com/jwalitptl/intake-api/internal/router"
	"github.com/jwalitptl/intake-api/internal/service/auth"
	availabilityService "github.com/jwalitptl/intake-api/internal/service/availability"
	clientService "github.com/jwalitptl/intake-api/internal/service/client"
	outreachService "github.com/jwalitptl/intake-api/internal/service/outreach"
	"github.com/jwalitptl/intake-api/internal/sheet"
	pkgauth "github.com/jwalitptl/intake-api/pkg/auth"
	"github.com/jwalitptl/intake-api/pkg/logger"
	"github.com/jwalitptl/intake-api/pkg/metrics"
	"github.com/jwalitptl/intake-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)
	appMetrics := metrics.NewMetrics("intake", "api")

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	clientRepo := postgres.NewClientRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	offeredRepo := postgres.NewOfferedSlotRepository(db)
	userRepo := postgres.NewUserRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Slot source and email
	slotSource := sheet.NewSource(cfg.Sheet.CSVURL, cfg.Sheet.CacheTTL)
	emailSvc := email.NewGomailService(cfg.SMTP, cfg.Outreach.ReplyTo)

	// Services
	jwtSvc := pkgauth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	hasher := security.NewBcryptHasher(0)
	authSvc := auth.NewService(userRepo, jwtSvc, hasher, appLogger)
	availabilitySvc := availabilityService.NewService(slotSource, bookingRepo, offeredRepo, appLogger, appMetrics)
	clientSvc := clientService.NewService(clientRepo, outboxRepo, appLogger)
	outreachSvc := outreachService.NewService(clientRepo, offeredRepo, outboxRepo, availabilitySvc, emailSvc, cfg.Outreach.OfferCount, appLogger, appMetrics)

	// HTTP layer
	authMiddleware := middleware.NewAuthMiddleware(authSvc)
	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc),
		availabilityHandler.NewHandler(availabilitySvc),
		clientHandler.NewHandler(clientSvc),
		outreachHandler.NewHandler(outreachSvc),
		handler.NewHandler(),
		router.RouterConfig{
			RateLimit:     rate.Limit(cfg.Server.RateLimitRPS),
			RateBurst:     cfg.Server.RateLimitBurst,
			Timeout:       cfg.Server.RequestTimeout,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "intake_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
