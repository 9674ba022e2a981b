package reviews

import (
	"context"
	"errors"

	"github.com/novikovva/aviapp/internal/domain"
	"github.com/novikovva/aviapp/internal/repository"
)

type ReviewUseCase interface {
	Add(ctx context.Context, userID, airlineID int64, rating int, comment string) error
	ListByAirline(ctx context.Context, airlineID int64) ([]domain.Review, error)
	ListAll(ctx context.Context) ([]domain.Review, error)
	Delete(ctx context.Context, reviewID int64) error
}

type ReviewService struct {
	reviews repository.ReviewRepository
}

func NewReviewService(reviews repository.ReviewRepository) *ReviewService {
	return &ReviewService{reviews: reviews}
}

func (s *ReviewService) Add(ctx context.Context, userID, airlineID int64, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	if comment == "" {
		return errors.New("comment is required")
	}
	return s.reviews.Create(ctx, &domain.Review{
		UserID:    userID,
		AirlineID: airlineID,
		Rating:    rating,
		Comment:   comment,
	})
}

func (s *ReviewService) ListByAirline(ctx context.Context, airlineID int64) ([]domain.Review, error) {
	return s.reviews.ListByAirline(ctx, airlineID)
}

func (s *ReviewService) ListAll(ctx context.Context) ([]domain.Review, error) {
	return s.reviews.ListAll(ctx)
}

func (s *ReviewService) Delete(ctx context.Context, reviewID int64) error {
	return s.reviews.Delete(ctx, reviewID)
}

var _ ReviewUseCase = (*ReviewService)(nil)
