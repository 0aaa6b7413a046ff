package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

const userColumns = `id, role, first_name, last_name, phone, email, username, license, medical, password_hash, created_at, updated_at`

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *PGUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username=$1`, username))
}

func (r *PGUserRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE role=$1 ORDER BY username`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Role, &u.FirstName, &u.LastName, &u.Phone, &u.Email, &u.Username, &u.License, &u.Medical, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.QueryRow(ctx, `INSERT INTO users (role, first_name, last_name, phone, email, username, license, medical, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_at, updated_at`,
		user.Role, user.FirstName, user.LastName, user.Phone, user.Email, user.Username, user.License, user.Medical, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *PGUserRepository) Update(ctx context.Context, user *domain.User) error {
	row := r.db.QueryRow(ctx, `UPDATE users SET first_name=$1, last_name=$2, phone=$3, email=$4, username=$5, license=$6, medical=$7, updated_at=now()
		WHERE id=$8 RETURNING updated_at`,
		user.FirstName, user.LastName, user.Phone, user.Email, user.Username, user.License, user.Medical, user.ID)
	if err := row.Scan(&user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.NotFoundError{Entity: "user"}
		}
		return err
	}
	return nil
}

func (r *PGUserRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "user"}
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Role, &u.FirstName, &u.LastName, &u.Phone, &u.Email, &u.Username, &u.License, &u.Medical, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "user"}
		}
		return nil, err
	}
	return &u, nil
}

var _ UserRepository = (*PGUserRepository)(nil)
