package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/novikovva/aviapp/internal/domain"
	"github.com/novikovva/aviapp/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type checkoutRequest struct {
	Items []checkoutItem `json:"items" binding:"required,min=1"`
}

type checkoutItem struct {
	FlightID int64 `json:"flight_id" binding:"required"`
}

type bookingResponse struct {
	BookingID int64  `json:"booking_id"`
	FlightID  int64  `json:"flight_id"`
	Status    string `json:"status"`
}

type userBookingResponse struct {
	BookingID            int64   `json:"booking_id"`
	FlightID             int64   `json:"flight_id"`
	AirlineName          string  `json:"airline_name"`
	DepartureAirportName string  `json:"departure_airport_name"`
	ArrivalAirportName   string  `json:"arrival_airport_name"`
	DepartureTime        string  `json:"departure_time"`
	ArrivalTime          string  `json:"arrival_time"`
	Price                float64 `json:"price"`
	Status               string  `json:"status"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/bookings", h.checkout)
	router.GET("/bookings/my", h.myBookings)
	router.POST("/bookings/:id/confirm", h.confirm)
}

// checkout books the whole cart for the current user.
func (h *BookingHandler) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := sessionFrom(c)
	items := make([]domain.SaleItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.SaleItem{FlightID: item.FlightID, UserID: sess.UserID})
	}

	created, err := h.service.ProcessSale(c.Request.Context(), time.Now(), items)
	if err != nil {
		resp := gin.H{"created": bookingResponses(created)}
		if errors.Is(err, domain.ErrNoSeats) {
			resp["error"] = "no available seats on one of the flights"
			c.JSON(http.StatusConflict, resp)
			return
		}
		resp["error"] = "booking failed"
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bookings": bookingResponses(created)})
}

func (h *BookingHandler) myBookings(c *gin.Context) {
	sess := sessionFrom(c)
	bookings, err := h.service.UserBookings(c.Request.Context(), sess.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bookings"})
		return
	}

	resp := make([]userBookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, userBookingResponse{
			BookingID:            b.BookingID,
			FlightID:             b.FlightID,
			AirlineName:          b.AirlineName,
			DepartureAirportName: b.DepartureAirportName,
			ArrivalAirportName:   b.ArrivalAirportName,
			DepartureTime:        b.DepartureTime.Format(time.RFC3339),
			ArrivalTime:          b.ArrivalTime.Format(time.RFC3339),
			Price:                b.Price,
			Status:               string(b.Status),
		})
	}
	c.JSON(http.StatusOK, gin.H{"bookings": resp})
}

func (h *BookingHandler) confirm(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking id must be a number"})
		return
	}

	sess := sessionFrom(c)
	if err := h.service.Confirm(c.Request.Context(), bookingID, sess.UserID); err != nil {
		switch err {
		case domain.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found or already confirmed"})
		case domain.ErrForbidden:
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "confirmation failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "booking confirmed"})
}

func bookingResponses(bookings []domain.Booking) []bookingResponse {
	resp := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, bookingResponse{
			BookingID: b.ID,
			FlightID:  b.FlightID,
			Status:    string(b.Status),
		})
	}
	return resp
}
