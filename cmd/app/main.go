package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/aerodrome/api"
	"github.com/Domenick1991/aerodrome/config"
	"github.com/Domenick1991/aerodrome/internal/auth"
	"github.com/Domenick1991/aerodrome/internal/bootstrap"
	"github.com/Domenick1991/aerodrome/internal/cache"
	"github.com/Domenick1991/aerodrome/internal/kafka"
	"github.com/Domenick1991/aerodrome/internal/repository"
	"github.com/Domenick1991/aerodrome/internal/rules"
	"github.com/Domenick1991/aerodrome/internal/service/booking"
	"github.com/Domenick1991/aerodrome/internal/service/resources"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

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

	if err := runMigrations(cfg.Database.DSN()); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.ResourceCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	userRepo := repository.NewUserRepository(pool)
	resourceRepo := repository.NewResourceRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	aircraftRepo := repository.NewAircraftRepository(pool)
	fuelingRepo := repository.NewFuelingRepository(pool)
	invoiceRepo := repository.NewInvoiceRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)

	conflicts := rules.NewConflictChecker(bookingRepo, time.Duration(cfg.Booking.BufferMinutes)*time.Minute)
	costs := rules.NewCostCalculator(resourceRepo, fuelingRepo)
	access := rules.NewAccessPolicy(aircraftRepo, bookingRepo, invoiceRepo, messageRepo)

	authenticator := auth.NewAuthenticator(userRepo, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	resourceService := resources.NewResourceService(resourceRepo, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		conflicts,
		costs,
		access,
		redisCache,
		producer,
		cfg.Kafka.BookingEventsTopic,
		time.Duration(cfg.Booking.LockTTLSeconds)*time.Second,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	router := api.NewRouter(api.Handlers{
		Auth:      api.NewAuthHandler(authenticator),
		Resources: api.NewResourceHandler(resourceService),
		Bookings:  api.NewBookingHandler(bookingService),
		Aircraft:  api.NewAircraftHandler(aircraftRepo, access),
		Fuelings:  api.NewFuelingHandler(fuelingRepo, access),
		Invoices:  api.NewInvoiceHandler(invoiceRepo, access),
		Messages:  api.NewMessageHandler(messageRepo, access),
		Users:     api.NewUserHandler(userRepo),
		Verifier:  authenticator,
	})

	if err := bootstrap.Run(ctx, cfg, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
