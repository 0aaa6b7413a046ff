package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FuelingRepository interface {
	List(ctx context.Context) ([]domain.Fueling, error)
	GetByID(ctx context.Context, id int64) (*domain.Fueling, error)
	Create(ctx context.Context, fueling *domain.Fueling) error
	Update(ctx context.Context, fueling *domain.Fueling) error
	Delete(ctx context.Context, id int64) error
}

type PGFuelingRepository struct {
	db *pgxpool.Pool
}

func NewFuelingRepository(db *pgxpool.Pool) FuelingRepository {
	return &PGFuelingRepository{db: db}
}

func (r *PGFuelingRepository) List(ctx context.Context) ([]domain.Fueling, error) {
	rows, err := r.db.Query(ctx, `SELECT id, occurred_at, quantity_liters, cost, aircraft_id FROM fuelings ORDER BY occurred_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fuelings := make([]domain.Fueling, 0)
	for rows.Next() {
		var f domain.Fueling
		if err := rows.Scan(&f.ID, &f.OccurredAt, &f.QuantityLiters, &f.Cost, &f.AircraftID); err != nil {
			return nil, err
		}
		fuelings = append(fuelings, f)
	}
	return fuelings, rows.Err()
}

func (r *PGFuelingRepository) GetByID(ctx context.Context, id int64) (*domain.Fueling, error) {
	row := r.db.QueryRow(ctx, `SELECT id, occurred_at, quantity_liters, cost, aircraft_id FROM fuelings WHERE id=$1`, id)
	var f domain.Fueling
	if err := row.Scan(&f.ID, &f.OccurredAt, &f.QuantityLiters, &f.Cost, &f.AircraftID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "fueling"}
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFuelingRepository) Create(ctx context.Context, fueling *domain.Fueling) error {
	return r.db.QueryRow(ctx, `INSERT INTO fuelings (occurred_at, quantity_liters, cost, aircraft_id)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		fueling.OccurredAt, fueling.QuantityLiters, fueling.Cost, fueling.AircraftID).Scan(&fueling.ID)
}

func (r *PGFuelingRepository) Update(ctx context.Context, fueling *domain.Fueling) error {
	cmd, err := r.db.Exec(ctx, `UPDATE fuelings SET occurred_at=$1, quantity_liters=$2, cost=$3, aircraft_id=$4 WHERE id=$5`,
		fueling.OccurredAt, fueling.QuantityLiters, fueling.Cost, fueling.AircraftID, fueling.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "fueling"}
	}
	return nil
}

func (r *PGFuelingRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM fuelings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "fueling"}
	}
	return nil
}

var _ FuelingRepository = (*PGFuelingRepository)(nil)
