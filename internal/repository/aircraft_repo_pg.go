package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AircraftRepository interface {
	List(ctx context.Context) ([]domain.Aircraft, error)
	ListByPilot(ctx context.Context, pilotID int64) ([]domain.Aircraft, error)
	GetByRegistration(ctx context.Context, registration string) (*domain.Aircraft, error)
	Create(ctx context.Context, aircraft *domain.Aircraft) error
	Update(ctx context.Context, aircraft *domain.Aircraft) error
	Delete(ctx context.Context, registration string) error
}

type PGAircraftRepository struct {
	db *pgxpool.Pool
}

func NewAircraftRepository(db *pgxpool.Pool) AircraftRepository {
	return &PGAircraftRepository{db: db}
}

func (r *PGAircraftRepository) List(ctx context.Context) ([]domain.Aircraft, error) {
	return r.query(ctx, `SELECT registration, make, model, dimensions, weight, fuel_type, pilot_id FROM aircraft ORDER BY registration`)
}

func (r *PGAircraftRepository) ListByPilot(ctx context.Context, pilotID int64) ([]domain.Aircraft, error) {
	return r.query(ctx, `SELECT registration, make, model, dimensions, weight, fuel_type, pilot_id FROM aircraft WHERE pilot_id=$1 ORDER BY registration`, pilotID)
}

func (r *PGAircraftRepository) GetByRegistration(ctx context.Context, registration string) (*domain.Aircraft, error) {
	row := r.db.QueryRow(ctx, `SELECT registration, make, model, dimensions, weight, fuel_type, pilot_id FROM aircraft WHERE registration=$1`, registration)
	var a domain.Aircraft
	if err := row.Scan(&a.Registration, &a.Make, &a.Model, &a.Dimensions, &a.Weight, &a.FuelType, &a.PilotID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "aircraft"}
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGAircraftRepository) Create(ctx context.Context, aircraft *domain.Aircraft) error {
	_, err := r.db.Exec(ctx, `INSERT INTO aircraft (registration, make, model, dimensions, weight, fuel_type, pilot_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		aircraft.Registration, aircraft.Make, aircraft.Model, aircraft.Dimensions, aircraft.Weight, aircraft.FuelType, aircraft.PilotID)
	return err
}

func (r *PGAircraftRepository) Update(ctx context.Context, aircraft *domain.Aircraft) error {
	cmd, err := r.db.Exec(ctx, `UPDATE aircraft SET make=$1, model=$2, dimensions=$3, weight=$4, fuel_type=$5, pilot_id=$6 WHERE registration=$7`,
		aircraft.Make, aircraft.Model, aircraft.Dimensions, aircraft.Weight, aircraft.FuelType, aircraft.PilotID, aircraft.Registration)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "aircraft"}
	}
	return nil
}

func (r *PGAircraftRepository) Delete(ctx context.Context, registration string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM aircraft WHERE registration=$1`, registration)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "aircraft"}
	}
	return nil
}

func (r *PGAircraftRepository) query(ctx context.Context, sql string, args ...any) ([]domain.Aircraft, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	aircraft := make([]domain.Aircraft, 0)
	for rows.Next() {
		var a domain.Aircraft
		if err := rows.Scan(&a.Registration, &a.Make, &a.Model, &a.Dimensions, &a.Weight, &a.FuelType, &a.PilotID); err != nil {
			return nil, err
		}
		aircraft = append(aircraft, a)
	}
	return aircraft, rows.Err()
}

var _ AircraftRepository = (*PGAircraftRepository)(nil)
