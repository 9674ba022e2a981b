package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/novikovva/aviapp/internal/domain"
)

type FlightRepository interface {
	Cities(ctx context.Context) ([]string, error)
	Airports(ctx context.Context, city string) ([]string, error)
	Search(ctx context.Context, departureAirport, arrivalAirport string, departureDate time.Time) ([]domain.FlightDetails, error)
	List(ctx context.Context) ([]domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Airlines(ctx context.Context) ([]domain.Airline, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) Cities(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT city FROM Airports ORDER BY city`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cities := make([]string, 0)
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, err
		}
		cities = append(cities, city)
	}
	return cities, rows.Err()
}

func (r *PGFlightRepository) Airports(ctx context.Context, city string) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT name FROM Airports WHERE city=$1 ORDER BY name`, city)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		airports = append(airports, name)
	}
	return airports, rows.Err()
}

func (r *PGFlightRepository) Search(ctx context.Context, departureAirport, arrivalAirport string, departureDate time.Time) ([]domain.FlightDetails, error) {
	rows, err := r.db.Query(ctx, `
		SELECT flight_id, airline_name, departure_airport_name, arrival_airport_name,
		       departure_time, arrival_time, price, number_seats
		FROM flight_details
		WHERE departure_airport_name = $1
		  AND arrival_airport_name = $2
		  AND DATE(departure_time) = $3
		ORDER BY departure_time`,
		departureAirport, arrivalAirport, departureDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.FlightDetails, 0)
	for rows.Next() {
		var f domain.FlightDetails
		if err := rows.Scan(&f.FlightID, &f.AirlineName, &f.DepartureAirportName, &f.ArrivalAirportName,
			&f.DepartureTime, &f.ArrivalTime, &f.Price, &f.NumberSeats); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `
		SELECT flight_id, airline_id, departure_airport_id, arrival_airport_id,
		       departure_time, arrival_time, number_seats, price
		FROM Flights ORDER BY flight_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.AirlineID, &f.DepartureAirportID, &f.ArrivalAirportID,
			&f.DepartureTime, &f.ArrivalTime, &f.NumberSeats, &f.Price); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO Flights (airline_id, departure_airport_id, arrival_airport_id,
		                     departure_time, arrival_time, number_seats, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING flight_id`,
		flight.AirlineID, flight.DepartureAirportID, flight.ArrivalAirportID,
		flight.DepartureTime, flight.ArrivalTime, flight.NumberSeats, flight.Price).Scan(&flight.ID)
	return mapError(err)
}

func (r *PGFlightRepository) Airlines(ctx context.Context) ([]domain.Airline, error) {
	rows, err := r.db.Query(ctx, `SELECT airline_id, name, code, country FROM Airlines ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airlines := make([]domain.Airline, 0)
	for rows.Next() {
		var a domain.Airline
		if err := rows.Scan(&a.ID, &a.Name, &a.Code, &a.Country); err != nil {
			return nil, err
		}
		airlines = append(airlines, a)
	}
	return airlines, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
