package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Message, error)
	Create(ctx context.Context, message *domain.Message) error
	Delete(ctx context.Context, id int64) error
}

type PGMessageRepository struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) MessageRepository {
	return &PGMessageRepository{db: db}
}

func (r *PGMessageRepository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	row := r.db.QueryRow(ctx, `SELECT id, sent_at, content, direction, agent_id, pilot_id FROM messages WHERE id=$1`, id)
	var m domain.Message
	if err := row.Scan(&m.ID, &m.SentAt, &m.Content, &m.Direction, &m.AgentID, &m.PilotID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "message"}
		}
		return nil, err
	}
	return &m, nil
}

func (r *PGMessageRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Message, error) {
	rows, err := r.db.Query(ctx, `SELECT id, sent_at, content, direction, agent_id, pilot_id FROM messages WHERE pilot_id=$1 OR agent_id=$1 ORDER BY sent_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]domain.Message, 0)
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.SentAt, &m.Content, &m.Direction, &m.AgentID, &m.PilotID); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *PGMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	return r.db.QueryRow(ctx, `INSERT INTO messages (sent_at, content, direction, agent_id, pilot_id)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		message.SentAt, message.Content, message.Direction, message.AgentID, message.PilotID).Scan(&message.ID)
}

func (r *PGMessageRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM messages WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "message"}
	}
	return nil
}

var _ MessageRepository = (*PGMessageRepository)(nil)
