package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InvoiceRepository interface {
	List(ctx context.Context) ([]domain.Invoice, error)
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	Create(ctx context.Context, invoice *domain.Invoice) error
	Update(ctx context.Context, invoice *domain.Invoice) error
	Delete(ctx context.Context, id int64) error
}

type PGInvoiceRepository struct {
	db *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) InvoiceRepository {
	return &PGInvoiceRepository{db: db}
}

func (r *PGInvoiceRepository) List(ctx context.Context) ([]domain.Invoice, error) {
	rows, err := r.db.Query(ctx, `SELECT id, payment_ref, issued_at, agent_id FROM invoices ORDER BY issued_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := make([]domain.Invoice, 0)
	for rows.Next() {
		var inv domain.Invoice
		if err := rows.Scan(&inv.ID, &inv.PaymentRef, &inv.IssuedAt, &inv.AgentID); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *PGInvoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	row := r.db.QueryRow(ctx, `SELECT id, payment_ref, issued_at, agent_id FROM invoices WHERE id=$1`, id)
	var inv domain.Invoice
	if err := row.Scan(&inv.ID, &inv.PaymentRef, &inv.IssuedAt, &inv.AgentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "invoice"}
		}
		return nil, err
	}
	return &inv, nil
}

func (r *PGInvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	return r.db.QueryRow(ctx, `INSERT INTO invoices (payment_ref, issued_at, agent_id) VALUES ($1, $2, $3) RETURNING id`,
		invoice.PaymentRef, invoice.IssuedAt, invoice.AgentID).Scan(&invoice.ID)
}

func (r *PGInvoiceRepository) Update(ctx context.Context, invoice *domain.Invoice) error {
	cmd, err := r.db.Exec(ctx, `UPDATE invoices SET payment_ref=$1, issued_at=$2, agent_id=$3 WHERE id=$4`,
		invoice.PaymentRef, invoice.IssuedAt, invoice.AgentID, invoice.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "invoice"}
	}
	return nil
}

func (r *PGInvoiceRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM invoices WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "invoice"}
	}
	return nil
}

var _ InvoiceRepository = (*PGInvoiceRepository)(nil)
