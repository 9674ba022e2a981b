// Package notify delivers new-booking events to admin views. One relay
// runs per process: it subscribes to the shared redis channel and keeps
// at most one undelivered event. Delivery is at-most-once; events that
// arrive while nobody polls are overwritten by newer ones.
package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BookingsChannel is the channel name under the application key prefix.
const BookingsChannel = "bookings"

// BookingEvent is the wire payload published on the bookings channel.
type BookingEvent struct {
	Event     string `json:"event"`
	FlightID  int64  `json:"flight_id"`
	UserID    int64  `json:"user_id"`
	Timestamp string `json:"timestamp"`
}

type Relay struct {
	client  *redis.Client
	channel string
	log     *zap.Logger
	slot    chan BookingEvent
}

func NewRelay(client *redis.Client, prefix string, log *zap.Logger) *Relay {
	return &Relay{
		client:  client,
		channel: prefix + BookingsChannel,
		log:     log.With(zap.String("component", "notify")),
		slot:    make(chan BookingEvent, 1),
	}
}

// Run subscribes and consumes until the context is cancelled. Malformed
// payloads are logged and dropped; the loop itself never stops on them.
func (r *Relay) Run(ctx context.Context) error {
	pubsub := r.client.Subscribe(ctx, r.channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.deliver([]byte(msg.Payload))
		}
	}
}

// Poll returns the pending event, if any, and clears the slot.
func (r *Relay) Poll() (BookingEvent, bool) {
	select {
	case event := <-r.slot:
		return event, true
	default:
		return BookingEvent{}, false
	}
}

func (r *Relay) deliver(payload []byte) {
	var event BookingEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		r.log.Warn("dropping malformed booking event", zap.Error(err))
		return
	}
	for {
		select {
		case r.slot <- event:
			return
		default:
			// Slot occupied: discard the stale event, keep the newest.
			select {
			case <-r.slot:
			default:
			}
		}
	}
}
