package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tailpair/internal/domain"
)

const messageColumns = `
	m.*,
	su.first_name || ' ' || su.last_name AS sender_name,
	ru.first_name || ' ' || ru.last_name AS recipient_name,
	a.name AS animal_name`

const messageFrom = `
	FROM messages m
	JOIN users su ON su.id = m.sender_id
	JOIN users ru ON ru.id = m.recipient_id
	LEFT JOIN animals a ON a.id = m.animal_id`

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error)
	ListBySender(ctx context.Context, senderID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error)
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error)
	ListUnreadByRecipient(ctx context.Context, recipientID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error)
	CountUnreadByRecipient(ctx context.Context, recipientID uuid.UUID) (int64, error)
	ListByAnimalAndUser(ctx context.Context, animalID, userID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error)
}

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (id, subject, content, sender_id, recipient_id, animal_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		message.ID, message.Subject, message.Content,
		message.SenderID, message.RecipientID, message.AnimalID,
	).Scan(&message.CreatedAt)
}

func (r *messageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	var message domain.Message
	query := `SELECT ` + messageColumns + messageFrom + ` WHERE m.id = $1`

	err := r.db.GetContext(ctx, &message, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE messages SET is_read = true WHERE id = $1 AND is_read = false`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *messageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM messages WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *messageRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error) {
	return r.list(ctx, `(m.sender_id = $1 OR m.recipient_id = $1)`, userID, params)
}

func (r *messageRepository) ListBySender(ctx context.Context, senderID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error) {
	return r.list(ctx, `m.sender_id = $1`, senderID, params)
}

func (r *messageRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error) {
	return r.list(ctx, `m.recipient_id = $1`, recipientID, params)
}

func (r *messageRepository) ListUnreadByRecipient(ctx context.Context, recipientID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error) {
	return r.list(ctx, `m.recipient_id = $1 AND m.is_read = false`, recipientID, params)
}

func (r *messageRepository) CountUnreadByRecipient(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM messages WHERE recipient_id = $1 AND is_read = false`
	err := r.db.GetContext(ctx, &count, query, recipientID)
	return count, err
}

func (r *messageRepository) ListByAnimalAndUser(ctx context.Context, animalID, userID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error) {
	params.Validate()

	where := ` WHERE m.animal_id = $1 AND (m.sender_id = $2 OR m.recipient_id = $2)`

	var total int64
	countQuery := `SELECT COUNT(*) FROM messages m` + where
	if err := r.db.GetContext(ctx, &total, countQuery, animalID, userID); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + messageColumns + messageFrom + where + `
		ORDER BY m.created_at DESC
		LIMIT $3 OFFSET $4`

	var messages []domain.Message
	err := r.db.SelectContext(ctx, &messages, query, animalID, userID, params.PageSize, params.Offset())
	return messages, total, err
}

func (r *messageRepository) list(ctx context.Context, where string, arg interface{}, params domain.PaginationParams) ([]domain.Message, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM messages m WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, arg); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + messageColumns + messageFrom + ` WHERE ` + where + `
		ORDER BY m.created_at DESC
		LIMIT $2 OFFSET $3`

	var messages []domain.Message
	err := r.db.SelectContext(ctx, &messages, query, arg, params.PageSize, params.Offset())
	return messages, total, err
}
