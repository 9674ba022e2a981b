package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/novikovva/aviapp/internal/domain"
)

// MockFlightUseCase is a mock implementation of flights.FlightUseCase
type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) Cities(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFlightUseCase) Airports(ctx context.Context, city string) ([]string, error) {
	args := m.Called(ctx, city)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFlightUseCase) Search(ctx context.Context, departureAirport, arrivalAirport string, departureDate time.Time) ([]domain.FlightDetails, error) {
	args := m.Called(ctx, departureAirport, arrivalAirport, departureDate)
	return args.Get(0).([]domain.FlightDetails), args.Error(1)
}

func (m *MockFlightUseCase) Airlines(ctx context.Context) ([]domain.Airline, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airline), args.Error(1)
}

func (m *MockFlightUseCase) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func TestFlightHandler_cities(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights/cities", nil)

	mockService.On("Cities", c.Request.Context()).Return([]string{"Казань", "Москва"}, nil)

	handler.cities(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Cities []string `json:"cities"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Казань", "Москва"}, response.Cities)
}

func TestFlightHandler_airports_missingCity(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights/airports", nil)

	handler.airports(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Airports")
}

func TestFlightHandler_search(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights/search?from=Шереметьево&to=Пулково&date=2026-05-20", nil)

	date := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	found := []domain.FlightDetails{{
		FlightID:             7,
		AirlineName:          "Аэрофлот",
		DepartureAirportName: "Шереметьево",
		ArrivalAirportName:   "Пулково",
		DepartureTime:        time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC),
		ArrivalTime:          time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC),
		Price:                4500,
		NumberSeats:          12,
	}}
	mockService.On("Search", c.Request.Context(), "Шереметьево", "Пулково", date).Return(found, nil)

	handler.search(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Flights []flightDetailsResponse `json:"flights"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.Flights, 1)
	assert.Equal(t, int64(7), response.Flights[0].FlightID)

	mockService.AssertExpectations(t)
}

// Одинаковые аэропорты вылета и прилета отклоняются до похода в сервис
func TestFlightHandler_search_sameAirports(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights/search?from=Пулково&to=Пулково&date=2026-05-20", nil)

	handler.search(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Search")
}

func TestFlightHandler_search_badDate(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights/search?from=Шереметьево&to=Пулково&date=20.05.2026", nil)

	handler.search(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "YYYY-MM-DD")
	mockService.AssertNotCalled(t, "Search")
}

func TestFlightHandler_create(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{
		"airline_id": 1,
		"departure_airport_id": 2,
		"arrival_airport_id": 3,
		"departure_time": "2026-05-20T10:00:00Z",
		"arrival_time": "2026-05-20T14:00:00Z",
		"number_seats": 120,
		"price": 4500
	}`
	c.Request = httptest.NewRequest("POST", "/flights", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Create", c.Request.Context(), mock.MatchedBy(func(f *domain.Flight) bool {
		return f.AirlineID == 1 && f.NumberSeats == 120 && f.Price == 4500
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Flight).ID = 42
	}).Return(nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"flight_id":42`)

	mockService.AssertExpectations(t)
}
