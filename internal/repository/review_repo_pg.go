package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/novikovva/aviapp/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListByAirline(ctx context.Context, airlineID int64) ([]domain.Review, error)
	ListAll(ctx context.Context) ([]domain.Review, error)
	Delete(ctx context.Context, reviewID int64) error
}

type PGReviewRepository struct {
	db *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) ReviewRepository {
	return &PGReviewRepository{db: db}
}

func (r *PGReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	err := r.db.QueryRow(ctx, `INSERT INTO Reviews (user_id, airline_id, rating, comment) VALUES ($1, $2, $3, $4) RETURNING review_id`,
		review.UserID, review.AirlineID, review.Rating, review.Comment).Scan(&review.ID)
	return mapError(err)
}

func (r *PGReviewRepository) ListByAirline(ctx context.Context, airlineID int64) ([]domain.Review, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.review_id, r.user_id, r.airline_id, r.rating, r.comment, u.username
		FROM Reviews r
		JOIN Users u ON r.user_id = u.user_id
		WHERE r.airline_id = $1
		ORDER BY r.review_id DESC`, airlineID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.AirlineID, &rv.Rating, &rv.Comment, &rv.Username); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *PGReviewRepository) ListAll(ctx context.Context) ([]domain.Review, error) {
	rows, err := r.db.Query(ctx, `SELECT review_id, user_id, airline_id, rating, comment FROM Reviews ORDER BY review_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.AirlineID, &rv.Rating, &rv.Comment); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *PGReviewRepository) Delete(ctx context.Context, reviewID int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM Reviews WHERE review_id=$1`, reviewID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ ReviewRepository = (*PGReviewRepository)(nil)
