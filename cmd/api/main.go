package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/booklyhq/booking-api/internal/config"
	"github.com/booklyhq/booking-api/internal/handler"
	appointmentHandler "github.com/booklyhq/booking-api/internal/handler/appointment"
	availabilityHandler "github.com/booklyhq/booking-api/internal/handler/availability"
	businessHandler "github.com/booklyhq/booking-api/internal/handler/business"
	scheduleHandler "github.com/booklyhq/booking-api/internal/handler/schedule"
	"github.com/booklyhq/booking-api/internal/middleware"
	"github.com/booklyhq/booking-api/internal/model"
	"github.com/booklyhq/booking-api/internal/repository/postgres"
	"github.com/booklyhq/booking-api/internal/router"
	"github.com/booklyhq/booking-api/internal/service/availability"
	"github.com/booklyhq/booking-api/internal/service/booking"
	"github.com/booklyhq/booking-api/internal/service/discovery"
	scheduleService "github.com/booklyhq/booking-api/internal/service/schedule"
	"github.com/booklyhq/booking-api/pkg/auth"
	"github.com/booklyhq/booking-api/pkg/geo"
	"github.com/booklyhq/booking-api/pkg/geolocation"
	"github.com/booklyhq/booking-api/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Log.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Initialize repositories
	scheduleRepo := postgres.NewScheduleRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	businessRepo := postgres.NewBusinessRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Redis backs the short-TTL business cache. The API stays up
	// without it; discovery just reads straight from Postgres.
	var cache *goredis.Client
	if cfg.Redis.URL != "" {
		opts, err := goredis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to parse Redis URL")
		}
		cache = goredis.NewClient(opts)
		defer cache.Close()
	}

	locator := buildLocator(cfg.Booking)

	availabilityCfg, err := availabilityConfig(cfg.Booking)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid booking configuration")
	}

	// Initialize services
	availabilitySvc := availability.NewService(scheduleRepo, availabilityCfg)
	bookingSvc := booking.NewService(appointmentRepo, outboxRepo, appLogger)
	discoverySvc := discovery.NewService(businessRepo, locator, cache, appLogger, cfg.Booking.MaxRadiusKm)
	scheduleSvc := scheduleService.NewService(scheduleRepo)

	tokens := auth.NewTokenService(cfg.JWT.Secret)
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	// Initialize handlers
	h := handler.NewHandler(db)
	availabilityH := availabilityHandler.NewHandler(availabilitySvc)
	appointmentH := appointmentHandler.NewHandler(bookingSvc)
	businessH := businessHandler.NewHandler(discoverySvc)
	scheduleH := scheduleHandler.NewHandler(scheduleSvc)

	r := router.NewRouter(
		authMiddleware,
		availabilityH,
		businessH,
		appointmentH,
		scheduleH,
		h,
		router.Config{
			RateLimitRPS:  cfg.Server.RateLimitRPS,
			RateBurst:     cfg.Server.RateBurst,
			Timeout:       cfg.Server.Timeout(),
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "booking_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		appLogger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info("server exited properly")
}

// buildLocator returns the fallback position source for requests that
// carry no coordinates, or nil when the deployment has none configured.
func buildLocator(cfg config.BookingConfig) geolocation.Locator {
	if cfg.DefaultLatitude == 0 && cfg.DefaultLongitude == 0 {
		return nil
	}
	static := geolocation.StaticLocator{
		Position: geo.Point{
			Latitude:  cfg.DefaultLatitude,
			Longitude: cfg.DefaultLongitude,
		},
	}
	return geolocation.NewCachedLocator(static, cfg.GeoTimeout(), cfg.GeoCacheWindow())
}

// availabilityConfig translates the yaml booking block into the
// availability service's defaults. Unset fields fall back to the
// service constants.
func availabilityConfig(cfg config.BookingConfig) (availability.Config, error) {
	out := availability.Config{
		SlotInterval: time.Duration(cfg.SlotIntervalMinutes) * time.Minute,
	}
	if cfg.DefaultDayStart != "" {
		start, err := model.ParseMinuteOfDay(cfg.DefaultDayStart)
		if err != nil {
			return out, fmt.Errorf("invalid default_day_start: %w", err)
		}
		out.DayStart = start
	}
	if cfg.DefaultDayEnd != "" {
		end, err := model.ParseMinuteOfDay(cfg.DefaultDayEnd)
		if err != nil {
			return out, fmt.Errorf("invalid default_day_end: %w", err)
		}
		out.DayEnd = end
	}
	return out, nil
}
