package reviews

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/novikovva/aviapp/internal/domain"
)

// Mock структуры

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) ListByAirline(ctx context.Context, airlineID int64) ([]domain.Review, error) {
	args := m.Called(ctx, airlineID)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) ListAll(ctx context.Context) ([]domain.Review, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) Delete(ctx context.Context, reviewID int64) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

// ============================ Тесты для ReviewService ============================

// Тест 1: Добавление отзыва - успешный сценарий
func TestReviewService_Add_Success(t *testing.T) {
	mockRepo := &MockReviewRepository{}
	service := NewReviewService(mockRepo)

	ctx := context.Background()
	mockRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Review) bool {
		return r.UserID == 3 && r.AirlineID == 1 && r.Rating == 5 && r.Comment == "Отличный рейс"
	})).Return(nil).Once()

	err := service.Add(ctx, 3, 1, 5, "Отличный рейс")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// Тест 2: Добавление отзыва - оценка вне диапазона
func TestReviewService_Add_InvalidRating(t *testing.T) {
	mockRepo := &MockReviewRepository{}
	service := NewReviewService(mockRepo)

	ctx := context.Background()

	for _, rating := range []int{0, -1, 6} {
		err := service.Add(ctx, 3, 1, rating, "ok")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "rating must be between 1 and 5")
	}
	mockRepo.AssertNotCalled(t, "Create")
}

// Тест 3: Добавление отзыва - пустой комментарий
func TestReviewService_Add_EmptyComment(t *testing.T) {
	mockRepo := &MockReviewRepository{}
	service := NewReviewService(mockRepo)

	err := service.Add(context.Background(), 3, 1, 4, "")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "comment is required")
	mockRepo.AssertNotCalled(t, "Create")
}

// Тест 4: Отзывы авиакомпании
func TestReviewService_ListByAirline(t *testing.T) {
	mockRepo := &MockReviewRepository{}
	service := NewReviewService(mockRepo)

	ctx := context.Background()
	reviews := []domain.Review{{ID: 2, AirlineID: 1, Rating: 5}, {ID: 1, AirlineID: 1, Rating: 3}}

	mockRepo.On("ListByAirline", ctx, int64(1)).Return(reviews, nil).Once()

	got, err := service.ListByAirline(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, reviews, got)
}

// Тест 5: Удаление отзыва
func TestReviewService_Delete(t *testing.T) {
	mockRepo := &MockReviewRepository{}
	service := NewReviewService(mockRepo)

	ctx := context.Background()
	mockRepo.On("Delete", ctx, int64(7)).Return(domain.ErrNotFound).Once()

	err := service.Delete(ctx, 7)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
