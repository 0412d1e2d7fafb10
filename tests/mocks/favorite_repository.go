package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tailpair/internal/domain"
)

type FavoriteRepository struct {
	mock.Mock
}

func (m *FavoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) error {
	args := m.Called(ctx, favorite)
	return args.Error(0)
}

func (m *FavoriteRepository) Delete(ctx context.Context, userID, animalID uuid.UUID) error {
	args := m.Called(ctx, userID, animalID)
	return args.Error(0)
}

func (m *FavoriteRepository) Exists(ctx context.Context, userID, animalID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, animalID)
	return args.Bool(0), args.Error(1)
}

func (m *FavoriteRepository) ListAnimalsByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Animal, int64, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]domain.Animal), args.Get(1).(int64), args.Error(2)
}

func (m *FavoriteRepository) CountByAnimal(ctx context.Context, animalID uuid.UUID) (int64, error) {
	args := m.Called(ctx, animalID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *FavoriteRepository) ListUserIDsByAnimal(ctx context.Context, animalID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, animalID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}
