package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ResourceRepository interface {
	List(ctx context.Context) ([]domain.Resource, error)
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
	Create(ctx context.Context, resource *domain.Resource) error
	Update(ctx context.Context, resource *domain.Resource) error
	Delete(ctx context.Context, id int64) error
}

type PGResourceRepository struct {
	db *pgxpool.Pool
}

func NewResourceRepository(db *pgxpool.Pool) ResourceRepository {
	return &PGResourceRepository{db: db}
}

func (r *PGResourceRepository) List(ctx context.Context) ([]domain.Resource, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, kind, capacity, day_rate, week_rate, month_rate, created_at, updated_at FROM resources ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resources := make([]domain.Resource, 0)
	for rows.Next() {
		var res domain.Resource
		if err := rows.Scan(&res.ID, &res.Name, &res.Kind, &res.Capacity, &res.DayRate, &res.WeekRate, &res.MonthRate, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}
	return resources, rows.Err()
}

func (r *PGResourceRepository) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, kind, capacity, day_rate, week_rate, month_rate, created_at, updated_at FROM resources WHERE id=$1`, id)
	var res domain.Resource
	if err := row.Scan(&res.ID, &res.Name, &res.Kind, &res.Capacity, &res.DayRate, &res.WeekRate, &res.MonthRate, &res.CreatedAt, &res.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "resource"}
		}
		return nil, err
	}
	return &res, nil
}

func (r *PGResourceRepository) Create(ctx context.Context, resource *domain.Resource) error {
	return r.db.QueryRow(ctx, `INSERT INTO resources (name, kind, capacity, day_rate, week_rate, month_rate)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at`,
		resource.Name, resource.Kind, resource.Capacity, resource.DayRate, resource.WeekRate, resource.MonthRate).
		Scan(&resource.ID, &resource.CreatedAt, &resource.UpdatedAt)
}

func (r *PGResourceRepository) Update(ctx context.Context, resource *domain.Resource) error {
	row := r.db.QueryRow(ctx, `UPDATE resources SET name=$1, kind=$2, capacity=$3, day_rate=$4, week_rate=$5, month_rate=$6, updated_at=now()
		WHERE id=$7 RETURNING updated_at`,
		resource.Name, resource.Kind, resource.Capacity, resource.DayRate, resource.WeekRate, resource.MonthRate, resource.ID)
	if err := row.Scan(&resource.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.NotFoundError{Entity: "resource"}
		}
		return err
	}
	return nil
}

func (r *PGResourceRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM resources WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "resource"}
	}
	return nil
}

var _ ResourceRepository = (*PGResourceRepository)(nil)
