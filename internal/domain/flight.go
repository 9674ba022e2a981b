package domain

import "time"

type Flight struct {
	ID                 int64
	AirlineID          int64
	DepartureAirportID int64
	ArrivalAirportID   int64
	DepartureTime      time.Time
	ArrivalTime        time.Time
	NumberSeats        int
	Price              float64
}

// FlightDetails is a search result row from the flight_details view.
type FlightDetails struct {
	FlightID             int64
	AirlineName          string
	DepartureAirportName string
	ArrivalAirportName   string
	DepartureTime        time.Time
	ArrivalTime          time.Time
	Price                float64
	NumberSeats          int
}

type Airline struct {
	ID      int64
	Name    string
	Code    string
	Country string
}
