package email

import (
	"context"

	"go.uber.org/zap"

	"github.com/novikovva/aviapp/internal/kafka"
)

// Sender delivers booking notifications to users. The transport is a
// stub for now; it records what would have been sent.
type Sender struct {
	log *zap.Logger
}

func NewSender(log *zap.Logger) *Sender {
	return &Sender{log: log.With(zap.String("component", "email"))}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.log.Info("send booking notification",
		zap.String("type", event.Type),
		zap.Int64("booking_id", event.BookingID),
		zap.Int64("user_id", event.UserID),
		zap.Int64("flight_id", event.FlightID),
		zap.String("status", event.Status))
	return nil
}
