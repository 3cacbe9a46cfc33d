package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okravchuk/airport-service/api"
	"github.com/okravchuk/airport-service/config"
	"github.com/okravchuk/airport-service/internal/auth"
	"github.com/okravchuk/airport-service/internal/bootstrap"
	"github.com/okravchuk/airport-service/internal/cache"
	"github.com/okravchuk/airport-service/internal/kafka"
	"github.com/okravchuk/airport-service/internal/repository"
	"github.com/okravchuk/airport-service/internal/service/booking"
	"github.com/okravchuk/airport-service/internal/service/catalog"
	"github.com/okravchuk/airport-service/internal/service/flights"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Catalog.CacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	userRepo := repository.NewUserRepository(pool)
	airportRepo := repository.NewAirportRepository(pool)
	routeRepo := repository.NewRouteRepository(pool)
	airplaneRepo := repository.NewAirplaneRepository(pool)
	crewRepo := repository.NewCrewRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	authService := auth.NewService(userRepo, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.AccessTTLMinutes)*time.Minute)
	catalogService := catalog.NewCatalogService(airportRepo, routeRepo, airplaneRepo, crewRepo, redisCache)
	flightService := flights.NewFlightService(flightRepo)
	bookingService := booking.NewBookingService(
		orderRepo,
		flightRepo,
		producer,
		cfg.Kafka.OrdersTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	router := api.NewRouter(authService, catalogService, flightService, bookingService)

	if err := bootstrap.Run(ctx, cfg, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
