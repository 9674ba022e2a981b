package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/novikovva/aviapp/internal/domain"
	"github.com/novikovva/aviapp/internal/kafka"
	"github.com/novikovva/aviapp/internal/notify"
	"github.com/novikovva/aviapp/internal/repository"
)

type BookingUseCase interface {
	ProcessSale(ctx context.Context, saleDate time.Time, items []domain.SaleItem) ([]domain.Booking, error)
	Confirm(ctx context.Context, bookingID, userID int64) error
	UserBookings(ctx context.Context, userID int64) ([]domain.UserBooking, error)
	AllBookings(ctx context.Context) ([]domain.Booking, error)
	AllPayments(ctx context.Context) ([]domain.Payment, error)
}

// Publisher pushes an event payload to the shared notification channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// Producer writes to the durable booking events stream.
type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings    repository.BookingRepository
	publisher   Publisher
	producer    Producer
	eventsTopic string
	log         *zap.Logger
}

type BookingServiceOption func(*BookingService)

// WithEventsTopic enables publishing lifecycle events to kafka.
func WithEventsTopic(producer Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.eventsTopic = topic
	}
}

func NewBookingService(bookings repository.BookingRepository, publisher Publisher, log *zap.Logger, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		bookings:  bookings,
		publisher: publisher,
		log:       log.With(zap.String("service", "booking")),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// ProcessSale books every cart item in the caller's order. An insert
// failure aborts the remaining items; bookings already created stay.
// Each created booking is announced on the notification channel, but a
// failed publish never fails the sale.
func (s *BookingService) ProcessSale(ctx context.Context, saleDate time.Time, items []domain.SaleItem) ([]domain.Booking, error) {
	created := make([]domain.Booking, 0, len(items))
	for _, item := range items {
		b := domain.Booking{
			UserID:      item.UserID,
			FlightID:    item.FlightID,
			BookingTime: saleDate,
		}
		if err := s.bookings.CreatePending(ctx, &b); err != nil {
			return created, fmt.Errorf("create booking for flight %d: %w", item.FlightID, err)
		}
		created = append(created, b)

		s.announce(ctx, &b)
		s.emit(ctx, kafka.EventBookingCreated, &b)
	}
	return created, nil
}

// Confirm moves a pending booking to confirmed and records the payment
// for the flight price. Only the booking's owner may confirm it.
func (s *BookingService) Confirm(ctx context.Context, bookingID, userID int64) error {
	current, price, err := s.bookings.GetWithPrice(ctx, bookingID)
	if err != nil {
		return err
	}
	if current.UserID != userID {
		return domain.ErrForbidden
	}
	if current.Status != domain.BookingStatusPending {
		return domain.ErrNotFound
	}

	if err := s.bookings.ConfirmWithPayment(ctx, bookingID, price, time.Now(), domain.PaymentMethodCard); err != nil {
		return err
	}

	current.Status = domain.BookingStatusConfirmed
	s.emit(ctx, kafka.EventBookingConfirmed, current)
	return nil
}

func (s *BookingService) UserBookings(ctx context.Context, userID int64) ([]domain.UserBooking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *BookingService) AllBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListAll(ctx)
}

func (s *BookingService) AllPayments(ctx context.Context) ([]domain.Payment, error) {
	return s.bookings.ListPayments(ctx)
}

// announce publishes the advisory new-booking event for admin views.
func (s *BookingService) announce(ctx context.Context, b *domain.Booking) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(notify.BookingEvent{
		Event:     "new_booking",
		FlightID:  b.FlightID,
		UserID:    b.UserID,
		Timestamp: b.BookingTime.Format(time.RFC3339),
	})
	if err != nil {
		s.log.Warn("marshal booking event failed", zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, notify.BookingsChannel, payload); err != nil {
		s.log.Warn("publish booking event failed", zap.Int64("booking_id", b.ID), zap.Error(err))
	}
}

// emit writes a lifecycle event to the durable stream, if configured.
func (s *BookingService) emit(ctx context.Context, eventType string, b *domain.Booking) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		BookingID: b.ID,
		FlightID:  b.FlightID,
		UserID:    b.UserID,
		Status:    string(b.Status),
		Timestamp: time.Now(),
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, event.EventID, event); err != nil {
		s.log.Warn("publish kafka event failed", zap.String("type", eventType), zap.Int64("booking_id", b.ID), zap.Error(err))
	}
}

var _ BookingUseCase = (*BookingService)(nil)
