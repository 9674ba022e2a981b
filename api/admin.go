package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/novikovva/aviapp/internal/domain"
	"github.com/novikovva/aviapp/internal/notify"
	"github.com/novikovva/aviapp/internal/service/booking"
	"github.com/novikovva/aviapp/internal/service/reviews"
	"github.com/novikovva/aviapp/internal/service/users"
)

type AdminHandler struct {
	users    users.UserUseCase
	bookings booking.BookingUseCase
	reviews  reviews.ReviewUseCase
	relay    *notify.Relay
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin user"`
}

func NewAdminHandler(userSvc users.UserUseCase, bookingSvc booking.BookingUseCase, reviewSvc reviews.ReviewUseCase, relay *notify.Relay) *AdminHandler {
	return &AdminHandler{
		users:    userSvc,
		bookings: bookingSvc,
		reviews:  reviewSvc,
		relay:    relay,
	}
}

func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.GET("/users", h.listUsers)
	router.PUT("/users/:id/role", h.changeRole)
	router.DELETE("/users/:id", h.deleteUser)
	router.GET("/bookings", h.listBookings)
	router.GET("/payments", h.listPayments)
	router.GET("/reviews", h.listReviews)
	router.DELETE("/reviews/:id", h.deleteReview)
	router.GET("/events", h.pollEvents)
}

func (h *AdminHandler) listUsers(c *gin.Context) {
	all, err := h.users.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}

	type userRow struct {
		UserID   int64  `json:"user_id"`
		Username string `json:"username"`
		Login    string `json:"login"`
		Role     string `json:"role"`
	}
	resp := make([]userRow, 0, len(all))
	for _, u := range all {
		resp = append(resp, userRow{UserID: u.ID, Username: u.Username, Login: u.Login, Role: u.Role})
	}
	c.JSON(http.StatusOK, gin.H{"users": resp})
}

func (h *AdminHandler) changeRole(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user id must be a number"})
		return
	}
	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.ChangeRole(c.Request.Context(), id, req.Role); err != nil {
		switch err {
		case users.ErrInvalidRole:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case domain.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to change role"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "role updated"})
}

func (h *AdminHandler) deleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user id must be a number"})
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		switch err {
		case domain.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case domain.ErrForbidden:
			c.JSON(http.StatusForbidden, gin.H{"error": "administrator accounts cannot be deleted"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

func (h *AdminHandler) listBookings(c *gin.Context) {
	all, err := h.bookings.AllBookings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bookings"})
		return
	}

	type bookingRow struct {
		BookingID   int64  `json:"booking_id"`
		UserID      int64  `json:"user_id"`
		FlightID    int64  `json:"flight_id"`
		BookingTime string `json:"booking_time"`
		Status      string `json:"status"`
	}
	resp := make([]bookingRow, 0, len(all))
	for _, b := range all {
		resp = append(resp, bookingRow{
			BookingID:   b.ID,
			UserID:      b.UserID,
			FlightID:    b.FlightID,
			BookingTime: b.BookingTime.Format(time.RFC3339),
			Status:      string(b.Status),
		})
	}
	c.JSON(http.StatusOK, gin.H{"bookings": resp})
}

func (h *AdminHandler) listPayments(c *gin.Context) {
	all, err := h.bookings.AllPayments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load payments"})
		return
	}

	type paymentRow struct {
		PaymentID   int64   `json:"payment_id"`
		BookingID   int64   `json:"booking_id"`
		Amount      float64 `json:"amount"`
		PaymentDate string  `json:"payment_date"`
		Method      string  `json:"payment_method"`
	}
	resp := make([]paymentRow, 0, len(all))
	for _, p := range all {
		resp = append(resp, paymentRow{
			PaymentID:   p.ID,
			BookingID:   p.BookingID,
			Amount:      p.Amount,
			PaymentDate: p.PaymentDate.Format(time.RFC3339),
			Method:      p.Method,
		})
	}
	c.JSON(http.StatusOK, gin.H{"payments": resp})
}

func (h *AdminHandler) listReviews(c *gin.Context) {
	all, err := h.reviews.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reviews"})
		return
	}

	type reviewRow struct {
		ReviewID  int64  `json:"review_id"`
		UserID    int64  `json:"user_id"`
		AirlineID int64  `json:"airline_id"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
	}
	resp := make([]reviewRow, 0, len(all))
	for _, r := range all {
		resp = append(resp, reviewRow{
			ReviewID:  r.ID,
			UserID:    r.UserID,
			AirlineID: r.AirlineID,
			Rating:    r.Rating,
			Comment:   r.Comment,
		})
	}
	c.JSON(http.StatusOK, gin.H{"reviews": resp})
}

func (h *AdminHandler) deleteReview(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "review id must be a number"})
		return
	}

	if err := h.reviews.Delete(c.Request.Context(), id); err != nil {
		if err == domain.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete review"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}

// pollEvents hands out the latest new-booking event, if one arrived
// since the last poll. At most one event per call, none is queued.
func (h *AdminHandler) pollEvents(c *gin.Context) {
	if h.relay == nil {
		c.JSON(http.StatusOK, gin.H{"event": nil})
		return
	}
	event, ok := h.relay.Poll()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"event": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event})
}
