package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	ListByResource(ctx context.Context, resourceID int64) ([]domain.Booking, error)
	ListByPilot(ctx context.Context, pilotID int64) ([]domain.Booking, error)
	ListByInvoiceAndPilot(ctx context.Context, invoiceID, pilotID int64) ([]domain.Booking, error)
	ListStaleRequested(ctx context.Context, cutoff time.Time) ([]domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	Delete(ctx context.Context, id int64) error
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, token, pilot_id, resource_id, aircraft_id, fueling_id, invoice_id,
	planned_start, planned_end, actual_start, actual_end, status, total_cost, created_at, updated_at`

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.db.QueryRow(ctx, `INSERT INTO bookings (token, pilot_id, resource_id, aircraft_id, fueling_id, invoice_id, planned_start, planned_end, actual_start, actual_end, status, total_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`,
		booking.Token, booking.PilotID, booking.ResourceID, booking.AircraftID, booking.FuelingID, booking.InvoiceID,
		booking.PlannedStart, booking.PlannedEnd, booking.ActualStart, booking.ActualEnd, booking.Status, booking.TotalCost).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	return scanBooking(row)
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	return r.query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY planned_start`)
}

func (r *PGBookingRepository) ListByResource(ctx context.Context, resourceID int64) ([]domain.Booking, error) {
	return r.query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE resource_id=$1`, resourceID)
}

func (r *PGBookingRepository) ListByPilot(ctx context.Context, pilotID int64) ([]domain.Booking, error) {
	return r.query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE pilot_id=$1 ORDER BY planned_start`, pilotID)
}

func (r *PGBookingRepository) ListByInvoiceAndPilot(ctx context.Context, invoiceID, pilotID int64) ([]domain.Booking, error) {
	return r.query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE invoice_id=$1 AND pilot_id=$2`, invoiceID, pilotID)
}

func (r *PGBookingRepository) ListStaleRequested(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	return r.query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE status=$1 AND created_at <= $2`, domain.BookingStatusRequested, cutoff)
}

func (r *PGBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET resource_id=$1, aircraft_id=$2, fueling_id=$3, invoice_id=$4,
		planned_start=$5, planned_end=$6, actual_start=$7, actual_end=$8, status=$9, total_cost=$10, updated_at=now()
		WHERE id=$11 RETURNING updated_at`,
		booking.ResourceID, booking.AircraftID, booking.FuelingID, booking.InvoiceID,
		booking.PlannedStart, booking.PlannedEnd, booking.ActualStart, booking.ActualEnd, booking.Status, booking.TotalCost, booking.ID)
	if err := row.Scan(&booking.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.NotFoundError{Entity: "booking"}
		}
		return err
	}
	return nil
}

func (r *PGBookingRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "booking"}
	}
	return nil
}

func (r *PGBookingRepository) query(ctx context.Context, sql string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.Token, &b.PilotID, &b.ResourceID, &b.AircraftID, &b.FuelingID, &b.InvoiceID,
			&b.PlannedStart, &b.PlannedEnd, &b.ActualStart, &b.ActualEnd, &b.Status, &b.TotalCost, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.Token, &b.PilotID, &b.ResourceID, &b.AircraftID, &b.FuelingID, &b.InvoiceID,
		&b.PlannedStart, &b.PlannedEnd, &b.ActualStart, &b.ActualEnd, &b.Status, &b.TotalCost, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "booking"}
		}
		return nil, err
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
