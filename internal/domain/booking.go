package domain

import "time"

type BookingStatus string

// Статусы хранятся в базе в исходном виде, менять значения нельзя.
const (
	BookingStatusPending   BookingStatus = "ожидает подтверждения"
	BookingStatusConfirmed BookingStatus = "Подтверждено"
)

type Booking struct {
	ID          int64
	UserID      int64
	FlightID    int64
	BookingTime time.Time
	Status      BookingStatus
}

// UserBooking is a booking joined with its flight details for the profile view.
type UserBooking struct {
	BookingID            int64
	FlightID             int64
	DepartureTime        time.Time
	ArrivalTime          time.Time
	Price                float64
	Status               BookingStatus
	AirlineName          string
	DepartureAirportName string
	ArrivalAirportName   string
}

// SaleItem is one cart position: a flight booked for a user.
type SaleItem struct {
	FlightID int64 `json:"flight_id"`
	UserID   int64 `json:"user_id"`
}
