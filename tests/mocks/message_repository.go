package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tailpair/internal/domain"
)

type MessageRepository struct {
	mock.Mock
}

func (m *MessageRepository) Create(ctx context.Context, message *domain.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MessageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MessageRepository) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MessageRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]domain.Message), args.Get(1).(int64), args.Error(2)
}

func (m *MessageRepository) ListBySender(ctx context.Context, senderID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error) {
	args := m.Called(ctx, senderID, params)
	return args.Get(0).([]domain.Message), args.Get(1).(int64), args.Error(2)
}

func (m *MessageRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error) {
	args := m.Called(ctx, recipientID, params)
	return args.Get(0).([]domain.Message), args.Get(1).(int64), args.Error(2)
}

func (m *MessageRepository) ListUnreadByRecipient(ctx context.Context, recipientID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error) {
	args := m.Called(ctx, recipientID, params)
	return args.Get(0).([]domain.Message), args.Get(1).(int64), args.Error(2)
}

func (m *MessageRepository) CountUnreadByRecipient(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MessageRepository) ListByAnimalAndUser(ctx context.Context, animalID, userID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error) {
	args := m.Called(ctx, animalID, userID, params)
	return args.Get(0).([]domain.Message), args.Get(1).(int64), args.Error(2)
}
