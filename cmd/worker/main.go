package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	kafkaGo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/novikovva/aviapp/config"
	"github.com/novikovva/aviapp/internal/email"
	"github.com/novikovva/aviapp/internal/kafka"
	"github.com/novikovva/aviapp/internal/logger"
)

// The worker turns durable booking events into user notifications. It
// runs separately from the API server so a notification backlog never
// slows down request handling.
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

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingEventsTopic, zlog)
	defer consumer.Close()

	sender := email.NewSender(zlog)

	err = consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
		var event kafka.BookingEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			zlog.Warn("decode booking event failed", zap.Error(err))
			return nil
		}
		return sender.Send(ctx, event)
	})
	if err != nil && ctx.Err() == nil {
		zlog.Error("consumer stopped", zap.Error(err))
	}
}
