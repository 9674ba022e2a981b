package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event types carried on the booking events topic.
const (
	EventBookingCreated   = "booking_created"
	EventBookingConfirmed = "booking_confirmed"
)

// BookingEvent is the durable event emitted for each booking lifecycle
// step. The admin relay uses its own lighter payload on redis; this
// stream feeds the notification worker.
type BookingEvent struct {
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	BookingID int64     `json:"booking_id"`
	FlightID  int64     `json:"flight_id"`
	UserID    int64     `json:"user_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
