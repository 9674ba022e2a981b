package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/novikovva/aviapp/internal/domain"
)

type UserRepository interface {
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
	UpdateRole(ctx context.Context, id int64, role string) error
	UpdateUsername(ctx context.Context, id int64, username string) error
	UpdateLogin(ctx context.Context, id int64, login string) error
	Delete(ctx context.Context, id int64) error
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

func (r *PGUserRepository) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT user_id, username, login, password_hash, role FROM Users WHERE login=$1`, login)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Login, &u.PasswordHash, &u.Role); err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT user_id, username, login, password_hash, role FROM Users WHERE user_id=$1`, id)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Login, &u.PasswordHash, &u.Role); err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRow(ctx, `INSERT INTO Users (username, login, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING user_id`,
		user.Username, user.Login, user.PasswordHash, user.Role).Scan(&user.ID)
	return mapError(err)
}

func (r *PGUserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT user_id, username, login, role FROM Users ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Login, &u.Role); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PGUserRepository) UpdateRole(ctx context.Context, id int64, role string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE Users SET role=$1 WHERE user_id=$2`, role, id)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGUserRepository) UpdateUsername(ctx context.Context, id int64, username string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE Users SET username=$1 WHERE user_id=$2`, username, id)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGUserRepository) UpdateLogin(ctx context.Context, id int64, login string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE Users SET login=$1 WHERE user_id=$2`, login, id)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the user together with their payments, bookings and
// reviews. Admin accounts are not deletable.
func (r *PGUserRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var role string
	if err := tx.QueryRow(ctx, `SELECT role FROM Users WHERE user_id=$1`, id).Scan(&role); err != nil {
		return mapError(err)
	}
	if role == domain.RoleAdmin {
		return domain.ErrForbidden
	}

	if _, err := tx.Exec(ctx, `DELETE FROM Payments WHERE booking_id IN (SELECT booking_id FROM Bookings WHERE user_id=$1)`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM Bookings WHERE user_id=$1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM Reviews WHERE user_id=$1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM Users WHERE user_id=$1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

var _ UserRepository = (*PGUserRepository)(nil)
