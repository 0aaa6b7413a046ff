package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/aerodrome/config"
	"github.com/Domenick1991/aerodrome/internal/kafka"
	"github.com/Domenick1991/aerodrome/internal/notify"
	"github.com/Domenick1991/aerodrome/internal/repository"
	"github.com/Domenick1991/aerodrome/internal/rules"
	"github.com/Domenick1991/aerodrome/internal/service/booking"
	"github.com/jackc/pgx/v5/pgxpool"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	bookingRepo := repository.NewBookingRepository(pool)
	resourceRepo := repository.NewResourceRepository(pool)
	aircraftRepo := repository.NewAircraftRepository(pool)
	fuelingRepo := repository.NewFuelingRepository(pool)
	invoiceRepo := repository.NewInvoiceRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)

	conflicts := rules.NewConflictChecker(bookingRepo, time.Duration(cfg.Booking.BufferMinutes)*time.Minute)
	costs := rules.NewCostCalculator(resourceRepo, fuelingRepo)
	access := rules.NewAccessPolicy(aircraftRepo, bookingRepo, invoiceRepo, messageRepo)

	bookingService := booking.NewBookingService(
		bookingRepo,
		conflicts,
		costs,
		access,
		nil,
		producer,
		cfg.Kafka.BookingEventsTopic,
		time.Duration(cfg.Booking.LockTTLSeconds)*time.Second,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	consumer := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := notify.NewSender(messageRepo)

	go func() {
		if err := consumer.Consume(ctx, sender.Send); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	sweepTicker := time.NewTicker(time.Duration(cfg.Worker.SweepMinutes) * time.Minute)
	defer sweepTicker.Stop()

	requestTTL := time.Duration(cfg.Worker.RequestTTLHours) * time.Hour

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sweepTicker.C:
			cancelled, err := bookingService.CancelStaleRequests(ctx, requestTTL)
			if err != nil {
				log.Printf("cancel stale requests error: %v", err)
				continue
			}
			if len(cancelled) > 0 {
				log.Printf("cancelled %d stale booking requests", len(cancelled))
			}
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}
