package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/auth"
	"github.com/BruksfildServices01/appointmenttech-api/internal/cache"
	"github.com/BruksfildServices01/appointmenttech-api/internal/config"
	dbpkg "github.com/BruksfildServices01/appointmenttech-api/internal/db"
	infraRepo "github.com/BruksfildServices01/appointmenttech-api/internal/infra/repository"
	"github.com/BruksfildServices01/appointmenttech-api/internal/logger"
	"github.com/BruksfildServices01/appointmenttech-api/internal/payments"
	"github.com/BruksfildServices01/appointmenttech-api/internal/ratelimit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/realtime"
	"github.com/BruksfildServices01/appointmenttech-api/internal/routes"
	"github.com/BruksfildServices01/appointmenttech-api/internal/security"
	"github.com/BruksfildServices01/appointmenttech-api/internal/storage"
	"github.com/BruksfildServices01/appointmenttech-api/internal/timezone"
	"github.com/BruksfildServices01/appointmenttech-api/internal/tracing"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/user"
)

const (
	shutdownTimeout        = 15 * time.Second
	notificationCleanupInt = time.Hour
	sessionSweepInt        = 15 * time.Minute
)

func main() {

	cfg := config.Load()
	log := logger.New(cfg.Log)
	zerolog.DefaultContextLogger = &log

	if !timezone.SetDefault(cfg.AppTimezone) {
		log.Warn().Str("timezone", cfg.AppTimezone).Msg("invalid APP_TIMEZONE, keeping default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init tracing")
	}

	db, err := dbpkg.NewDB(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	// --------------------------------------------------
	// Cache / rate limiting (Redis when enabled)
	// --------------------------------------------------
	var (
		appCache cache.Cache       = cache.Noop{}
		limiter  ratelimit.Limiter = ratelimit.NewMemory()
	)
	if cfg.Redis.Enabled {
		client, err := cache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, using in-memory limiter and no cache")
		} else {
			defer client.Close()
			appCache = cache.NewRedis(client, "appointmenttech:cache:")
			limiter = ratelimit.NewRedis(client, "appointmenttech:rl:")
		}
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init storage")
	}

	// --------------------------------------------------
	// Payments and Google sign-in are optional
	// --------------------------------------------------
	var gateway payments.Gateway
	if cfg.Payments.MercadoPagoToken != "" {
		mp, err := payments.NewMercadoPago(cfg.Payments.MercadoPagoToken, cfg.Payments.NotificationURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to init payment gateway")
		}
		gateway = mp
	}

	var google user.IdentityVerifier
	if cfg.Auth.GoogleClientID != "" {
		v, err := auth.NewGoogleVerifier(ctx, cfg.Auth.GoogleClientID)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to init google sign-in")
		}
		google = v
	}

	// --------------------------------------------------
	// Audit / security / realtime
	// --------------------------------------------------
	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)
	securitySvc := security.NewService(infraRepo.NewSecurityGormRepository(db), cfg.Auth.SessionTTL, log)

	hub := realtime.NewHub(func(ctx context.Context, token string) (uint, bool) {
		claims, err := auth.Parse(cfg.Auth.JWTSecret, token)
		if err != nil {
			return 0, false
		}
		uid, err := claims.UserID()
		if err != nil {
			return 0, false
		}
		active, err := securitySvc.SessionActive(ctx, auth.SessionID(token))
		return uid, err == nil && active
	}, log)
	go hub.Run()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	app, err := routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Cache:    appCache,
		Limiter:  limiter,
		Storage:  store,
		Gateway:  gateway,
		Google:   google,
		Hub:      hub,
		Security: securitySvc,
		Audit:    auditDispatcher,
		AuditLog: auditLogger,
		Registry: registry,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register routes")
	}

	go app.Notifications.RunCleanup(ctx, notificationCleanupInt)
	go sweepSessions(ctx, securitySvc, log)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(r, "http.server"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	hub.Close()
	if err := auditDispatcher.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("audit flush")
	}
	if err := securitySvc.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("security flush")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown")
	}
}

// sweepSessions marks sessions past their expiry as EXPIRED.
func sweepSessions(ctx context.Context, svc *security.Service, log zerolog.Logger) {
	ticker := time.NewTicker(sessionSweepInt)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := svc.ExpireSessions(ctx)
			if err != nil {
				log.Error().Err(err).Msg("session sweep failed")
				continue
			}
			if n > 0 {
				log.Info().Int64("expired", n).Msg("sessions expired")
			}
		}
	}
}
