package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/novikovva/aviapp/internal/domain"
	"github.com/novikovva/aviapp/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightDetailsResponse struct {
	FlightID             int64   `json:"flight_id"`
	AirlineName          string  `json:"airline_name"`
	DepartureAirportName string  `json:"departure_airport_name"`
	ArrivalAirportName   string  `json:"arrival_airport_name"`
	DepartureTime        string  `json:"departure_time"`
	ArrivalTime          string  `json:"arrival_time"`
	Price                float64 `json:"price"`
	NumberSeats          int     `json:"number_seats"`
}

type createFlightRequest struct {
	AirlineID          int64   `json:"airline_id" binding:"required"`
	DepartureAirportID int64   `json:"departure_airport_id" binding:"required"`
	ArrivalAirportID   int64   `json:"arrival_airport_id" binding:"required"`
	DepartureTime      string  `json:"departure_time" binding:"required"`
	ArrivalTime        string  `json:"arrival_time" binding:"required"`
	NumberSeats        int     `json:"number_seats" binding:"required,min=1"`
	Price              float64 `json:"price" binding:"required"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/flights/cities", h.cities)
	router.GET("/flights/airports", h.airports)
	router.GET("/flights/search", h.search)
}

func (h *FlightHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.GET("/flights", h.list)
	router.POST("/flights", h.create)
}

func (h *FlightHandler) cities(c *gin.Context) {
	cities, err := h.service.Cities(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cities"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

func (h *FlightHandler) airports(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city is required"})
		return
	}

	airports, err := h.service.Airports(c.Request.Context(), city)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load airports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"airports": airports})
}

func (h *FlightHandler) search(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to airports are required"})
		return
	}
	if from == to {
		c.JSON(http.StatusBadRequest, gin.H{"error": "departure and arrival airports must differ"})
		return
	}
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	found, err := h.service.Search(c.Request.Context(), from, to, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "flight search failed"})
		return
	}

	resp := make([]flightDetailsResponse, 0, len(found))
	for _, f := range found {
		resp = append(resp, flightDetailsResponse{
			FlightID:             f.FlightID,
			AirlineName:          f.AirlineName,
			DepartureAirportName: f.DepartureAirportName,
			ArrivalAirportName:   f.ArrivalAirportName,
			DepartureTime:        f.DepartureTime.Format(time.RFC3339),
			ArrivalTime:          f.ArrivalTime.Format(time.RFC3339),
			Price:                f.Price,
			NumberSeats:          f.NumberSeats,
		})
	}
	c.JSON(http.StatusOK, gin.H{"flights": resp})
}

func (h *FlightHandler) list(c *gin.Context) {
	all, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load flights"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"flights": all})
}

func (h *FlightHandler) create(c *gin.Context) {
	var req createFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	departure, err := time.Parse(time.RFC3339, req.DepartureTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "departure_time must be RFC3339"})
		return
	}
	arrival, err := time.Parse(time.RFC3339, req.ArrivalTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "arrival_time must be RFC3339"})
		return
	}

	flight := domain.Flight{
		AirlineID:          req.AirlineID,
		DepartureAirportID: req.DepartureAirportID,
		ArrivalAirportID:   req.ArrivalAirportID,
		DepartureTime:      departure,
		ArrivalTime:        arrival,
		NumberSeats:        req.NumberSeats,
		Price:              req.Price,
	}
	if err := h.service.Create(c.Request.Context(), &flight); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create flight"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"flight_id": flight.ID})
}
