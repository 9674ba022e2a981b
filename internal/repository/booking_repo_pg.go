package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/novikovva/aviapp/internal/domain"
)

type BookingRepository interface {
	CreatePending(ctx context.Context, booking *domain.Booking) error
	GetWithPrice(ctx context.Context, bookingID int64) (*domain.Booking, float64, error)
	ConfirmWithPayment(ctx context.Context, bookingID int64, amount float64, paymentDate time.Time, method string) error
	ListByUser(ctx context.Context, userID int64) ([]domain.UserBooking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	ListPayments(ctx context.Context) ([]domain.Payment, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

// CreatePending books a seat and inserts the booking in one transaction.
// The conditional decrement serializes concurrent checkouts on the same
// flight row, so the flight cannot be oversold.
func (r *PGBookingRepository) CreatePending(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `UPDATE Flights SET number_seats = number_seats - 1 WHERE flight_id=$1 AND number_seats > 0`, booking.FlightID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNoSeats
	}

	booking.Status = domain.BookingStatusPending
	if err := tx.QueryRow(ctx, `INSERT INTO Bookings (user_id, flight_id, booking_time, status) VALUES ($1, $2, $3, $4) RETURNING booking_id`,
		booking.UserID, booking.FlightID, booking.BookingTime, booking.Status).Scan(&booking.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) GetWithPrice(ctx context.Context, bookingID int64) (*domain.Booking, float64, error) {
	row := r.db.QueryRow(ctx, `
		SELECT b.booking_id, b.user_id, b.flight_id, b.booking_time, b.status, f.price
		FROM Bookings b
		JOIN Flights f ON b.flight_id = f.flight_id
		WHERE b.booking_id=$1`, bookingID)

	var b domain.Booking
	var price float64
	if err := row.Scan(&b.ID, &b.UserID, &b.FlightID, &b.BookingTime, &b.Status, &price); err != nil {
		return nil, 0, mapError(err)
	}
	return &b, price, nil
}

// ConfirmWithPayment moves a pending booking to confirmed and records its
// payment in the same transaction. Zero rows affected means the booking
// does not exist or is already confirmed; both are reported as ErrNotFound
// and no payment row appears.
func (r *PGBookingRepository) ConfirmWithPayment(ctx context.Context, bookingID int64, amount float64, paymentDate time.Time, method string) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `UPDATE Bookings SET status=$1 WHERE booking_id=$2 AND status=$3`,
		domain.BookingStatusConfirmed, bookingID, domain.BookingStatusPending)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `INSERT INTO Payments (booking_id, amount, payment_date, payment_method) VALUES ($1, $2, $3, $4)`,
		bookingID, amount, paymentDate, method); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.UserBooking, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.booking_id, f.flight_id, f.departure_time, f.arrival_time, f.price, b.status,
		       a.name AS airline_name,
		       dep_airport.name AS departure_airport_name,
		       arr_airport.name AS arrival_airport_name
		FROM Bookings b
		JOIN Flights f ON b.flight_id = f.flight_id
		JOIN Airlines a ON f.airline_id = a.airline_id
		JOIN Airports dep_airport ON f.departure_airport_id = dep_airport.airport_id
		JOIN Airports arr_airport ON f.arrival_airport_id = arr_airport.airport_id
		WHERE b.user_id = $1
		ORDER BY b.booking_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.UserBooking, 0)
	for rows.Next() {
		var b domain.UserBooking
		if err := rows.Scan(&b.BookingID, &b.FlightID, &b.DepartureTime, &b.ArrivalTime, &b.Price, &b.Status,
			&b.AirlineName, &b.DepartureAirportName, &b.ArrivalAirportName); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT booking_id, user_id, flight_id, booking_time, status FROM Bookings ORDER BY booking_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.FlightID, &b.BookingTime, &b.Status); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx, `SELECT payment_id, booking_id, amount, payment_date, payment_method FROM Payments ORDER BY payment_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.BookingID, &p.Amount, &p.PaymentDate, &p.Method); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
