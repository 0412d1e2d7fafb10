package message

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"tailpair/internal/domain"
	"tailpair/internal/repository"
	"tailpair/internal/service/notification"
)

var (
	ErrNotRecipient   = errors.New("only the recipient can mark a message as read")
	ErrNotParticipant = errors.New("only the sender or recipient can act on this message")
	ErrSelfMessage    = errors.New("cannot send a message to yourself")
)

type Service interface {
	Send(ctx context.Context, senderID uuid.UUID, input domain.SendMessageInput) (*domain.Message, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Message, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Message], error)
	ListSent(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Message], error)
	ListReceived(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Message], error)
	ListUnread(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Message], error)
	ListByAnimal(ctx context.Context, animalID, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Message], error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}

type service struct {
	messageRepo  repository.MessageRepository
	userRepo     repository.UserRepository
	animalRepo   repository.AnimalRepository
	notifService notification.Service
}

func NewService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	animalRepo repository.AnimalRepository,
	notifService notification.Service,
) Service {
	return &service{
		messageRepo:  messageRepo,
		userRepo:     userRepo,
		animalRepo:   animalRepo,
		notifService: notifService,
	}
}

func (s *service) Send(ctx context.Context, senderID uuid.UUID, input domain.SendMessageInput) (*domain.Message, error) {
	if senderID == input.RecipientID {
		return nil, ErrSelfMessage
	}

	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sender: %w", err)
	}
	if sender == nil {
		return nil, domain.ErrUserNotFound
	}

	recipient, err := s.userRepo.GetByID(ctx, input.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipient: %w", err)
	}
	if recipient == nil {
		return nil, domain.ErrUserNotFound
	}

	if input.AnimalID != nil {
		animal, err := s.animalRepo.GetByID(ctx, *input.AnimalID)
		if err != nil {
			return nil, fmt.Errorf("failed to get animal: %w", err)
		}
		if animal == nil {
			return nil, domain.ErrAnimalNotFound
		}
	}

	msg := &domain.Message{
		ID:          uuid.New(),
		Subject:     input.Subject,
		Content:     input.Content,
		SenderID:    senderID,
		RecipientID: input.RecipientID,
		AnimalID:    input.AnimalID,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	if err := s.notifService.NotifyMessageReceived(ctx, sender, msg); err != nil {
		log.Printf("Warning: failed to notify recipient of new message: %v", err)
	}

	return s.messageRepo.GetByID(ctx, msg.ID)
}

func (s *service) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Message, error) {
	msg, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	if msg == nil {
		return nil, domain.ErrMessageNotFound
	}
	if msg.SenderID != userID && msg.RecipientID != userID {
		return nil, ErrNotParticipant
	}
	return msg, nil
}

func (s *service) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	msg, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get message: %w", err)
	}
	if msg == nil {
		return domain.ErrMessageNotFound
	}
	if msg.RecipientID != userID {
		return ErrNotRecipient
	}
	if msg.IsRead {
		return nil
	}

	if err := s.messageRepo.MarkAsRead(ctx, id); err != nil {
		return fmt.Errorf("failed to mark message as read: %w", err)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	msg, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get message: %w", err)
	}
	if msg == nil {
		return domain.ErrMessageNotFound
	}
	if msg.SenderID != userID && msg.RecipientID != userID {
		return ErrNotParticipant
	}

	if err := s.messageRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Message], error) {
	return s.list(params, func(p domain.PaginationParams) ([]domain.Message, int64, error) {
		return s.messageRepo.ListByUser(ctx, userID, p)
	})
}

func (s *service) ListSent(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Message], error) {
	return s.list(params, func(p domain.PaginationParams) ([]domain.Message, int64, error) {
		return s.messageRepo.ListBySender(ctx, userID, p)
	})
}

func (s *service) ListReceived(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Message], error) {
	return s.list(params, func(p domain.PaginationParams) ([]domain.Message, int64, error) {
		return s.messageRepo.ListByRecipient(ctx, userID, p)
	})
}

func (s *service) ListUnread(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Message], error) {
	return s.list(params, func(p domain.PaginationParams) ([]domain.Message, int64, error) {
		return s.messageRepo.ListUnreadByRecipient(ctx, userID, p)
	})
}

func (s *service) ListByAnimal(ctx context.Context, animalID, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Message], error) {
	return s.list(params, func(p domain.PaginationParams) ([]domain.Message, int64, error) {
		return s.messageRepo.ListByAnimalAndUser(ctx, animalID, userID, p)
	})
}

func (s *service) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.messageRepo.CountUnreadByRecipient(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

func (s *service) list(params domain.PaginationParams, fetch func(domain.PaginationParams) ([]domain.Message, int64, error)) (domain.PaginatedResponse[domain.Message], error) {
	params.Validate()

	messages, total, err := fetch(params)
	if err != nil {
		return domain.PaginatedResponse[domain.Message]{}, fmt.Errorf("failed to list messages: %w", err)
	}
	return domain.NewPaginatedResponse(messages, params.Page, params.PageSize, total), nil
}
