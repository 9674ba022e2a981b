package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/novikovva/aviapp/config"
	"github.com/novikovva/aviapp/internal/bootstrap"
	"github.com/novikovva/aviapp/internal/cache"
	"github.com/novikovva/aviapp/internal/kafka"
	"github.com/novikovva/aviapp/internal/logger"
	"github.com/novikovva/aviapp/internal/notify"
	"github.com/novikovva/aviapp/internal/repository"
	"github.com/novikovva/aviapp/internal/service/auth"
	"github.com/novikovva/aviapp/internal/service/booking"
	"github.com/novikovva/aviapp/internal/service/flights"
	"github.com/novikovva/aviapp/internal/service/reviews"
	"github.com/novikovva/aviapp/internal/service/users"
	"github.com/novikovva/aviapp/internal/session"
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

	zlog, err := logger.New(cfg.Log.Dir, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		zlog.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		zlog.Fatal("connect redis", zap.Error(err))
	}
	defer redisClient.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	redisCache := cache.NewRedisCache(redisClient, cfg.Redis.KeyPrefix,
		time.Duration(cfg.Redis.CitiesCacheTTL)*time.Second,
		time.Duration(cfg.Redis.AirportsCacheTTL)*time.Second,
		time.Duration(cfg.Redis.AirlinesCacheTTL)*time.Second)
	sessions := session.NewStore(redisClient, cfg.Redis.KeyPrefix, cfg.Session.TokenTTL(), cfg.Session.SessionTTL())

	userRepo := repository.NewUserRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)

	authService := auth.NewAuthService(userRepo, sessions, zlog)
	flightService := flights.NewFlightService(flightRepo, redisCache, zlog)
	bookingService := booking.NewBookingService(bookingRepo, redisCache, zlog,
		booking.WithEventsTopic(producer, cfg.Kafka.BookingEventsTopic))
	userService := users.NewUserService(userRepo, zlog)
	reviewService := reviews.NewReviewService(reviewRepo)

	relay := notify.NewRelay(redisClient, cfg.Redis.KeyPrefix, zlog)
	go func() {
		if err := relay.Run(ctx); err != nil && ctx.Err() == nil {
			zlog.Error("notification relay stopped", zap.Error(err))
		}
	}()

	services := bootstrap.Services{
		Sessions: sessions,
		Auth:     authService,
		Flights:  flightService,
		Bookings: bookingService,
		Users:    userService,
		Reviews:  reviewService,
		Relay:    relay,
	}

	if err := bootstrap.Run(ctx, cfg, zlog, services); err != nil {
		zlog.Fatal("server error", zap.Error(err))
	}
}
