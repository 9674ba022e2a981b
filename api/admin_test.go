package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/novikovva/aviapp/internal/domain"
	"github.com/novikovva/aviapp/internal/service/users"
)

// MockUserUseCase is a mock implementation of users.UserUseCase
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserUseCase) Get(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) ChangeRole(ctx context.Context, id int64, role string) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserUseCase) ChangeUsername(ctx context.Context, id int64, username string) error {
	args := m.Called(ctx, id, username)
	return args.Error(0)
}

func (m *MockUserUseCase) ChangeLogin(ctx context.Context, id int64, login string) error {
	args := m.Called(ctx, id, login)
	return args.Error(0)
}

func (m *MockUserUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReviewUseCase is a mock implementation of reviews.ReviewUseCase
type MockReviewUseCase struct {
	mock.Mock
}

func (m *MockReviewUseCase) Add(ctx context.Context, userID, airlineID int64, rating int, comment string) error {
	args := m.Called(ctx, userID, airlineID, rating, comment)
	return args.Error(0)
}

func (m *MockReviewUseCase) ListByAirline(ctx context.Context, airlineID int64) ([]domain.Review, error) {
	args := m.Called(ctx, airlineID)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewUseCase) ListAll(ctx context.Context) ([]domain.Review, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewUseCase) Delete(ctx context.Context, reviewID int64) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

// Админский список отзывов отдается теми же snake_case полями, что и
// остальные ручки
func TestAdminHandler_listReviews(t *testing.T) {
	mockReviews := &MockReviewUseCase{}
	handler := NewAdminHandler(nil, nil, mockReviews, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/admin/reviews", nil)

	all := []domain.Review{{ID: 7, UserID: 3, AirlineID: 1, Rating: 5, Comment: "Отличный рейс"}}
	mockReviews.On("ListAll", c.Request.Context()).Return(all, nil)

	handler.listReviews(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Reviews []map[string]any `json:"reviews"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.Reviews, 1)
	assert.Equal(t, float64(7), response.Reviews[0]["review_id"])
	assert.Equal(t, float64(3), response.Reviews[0]["user_id"])
	assert.Equal(t, float64(1), response.Reviews[0]["airline_id"])
	assert.NotContains(t, response.Reviews[0], "ID")
}

func TestAdminHandler_changeRole(t *testing.T) {
	mockUsers := &MockUserUseCase{}
	handler := NewAdminHandler(mockUsers, nil, nil, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	c.Request = httptest.NewRequest("PUT", "/admin/users/5/role", strings.NewReader(`{"role":"admin"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	mockUsers.On("ChangeRole", c.Request.Context(), int64(5), "admin").Return(nil)

	handler.changeRole(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUsers.AssertExpectations(t)
}

// Ошибка валидации роли - это 400, а не "пользователь не найден"
func TestAdminHandler_changeRole_invalidRole(t *testing.T) {
	mockUsers := &MockUserUseCase{}
	handler := NewAdminHandler(mockUsers, nil, nil, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	c.Request = httptest.NewRequest("PUT", "/admin/users/5/role", strings.NewReader(`{"role":"user"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	mockUsers.On("ChangeRole", c.Request.Context(), int64(5), "user").Return(users.ErrInvalidRole)

	handler.changeRole(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "role must be admin or user")
}

func TestAdminHandler_deleteUser_adminForbidden(t *testing.T) {
	mockUsers := &MockUserUseCase{}
	handler := NewAdminHandler(mockUsers, nil, nil, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("DELETE", "/admin/users/1", nil)

	mockUsers.On("Delete", c.Request.Context(), int64(1)).Return(domain.ErrForbidden)

	handler.deleteUser(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "administrator accounts cannot be deleted")
}
