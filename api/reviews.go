package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/novikovva/aviapp/internal/service/flights"
	"github.com/novikovva/aviapp/internal/service/reviews"
)

type ReviewHandler struct {
	reviews reviews.ReviewUseCase
	flights flights.FlightUseCase
}

type addReviewRequest struct {
	AirlineID int64  `json:"airline_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment" binding:"required"`
}

type reviewResponse struct {
	ReviewID int64  `json:"review_id"`
	Username string `json:"username"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

func NewReviewHandler(reviewSvc reviews.ReviewUseCase, flightSvc flights.FlightUseCase) *ReviewHandler {
	return &ReviewHandler{reviews: reviewSvc, flights: flightSvc}
}

func (h *ReviewHandler) Register(router *gin.RouterGroup) {
	router.GET("/airlines", h.airlines)
	router.GET("/airlines/:id/reviews", h.listByAirline)
	router.POST("/reviews", h.add)
}

func (h *ReviewHandler) airlines(c *gin.Context) {
	airlines, err := h.flights.Airlines(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load airlines"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"airlines": airlines})
}

func (h *ReviewHandler) listByAirline(c *gin.Context) {
	airlineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "airline id must be a number"})
		return
	}

	found, err := h.reviews.ListByAirline(c.Request.Context(), airlineID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reviews"})
		return
	}

	resp := make([]reviewResponse, 0, len(found))
	for _, r := range found {
		resp = append(resp, reviewResponse{
			ReviewID: r.ID,
			Username: r.Username,
			Rating:   r.Rating,
			Comment:  r.Comment,
		})
	}
	c.JSON(http.StatusOK, gin.H{"reviews": resp})
}

func (h *ReviewHandler) add(c *gin.Context) {
	var req addReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := sessionFrom(c)
	if err := h.reviews.Add(c.Request.Context(), sess.UserID, req.AirlineID, req.Rating, req.Comment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "review added"})
}
