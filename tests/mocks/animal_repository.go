package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"tailpair/internal/domain"
)

type AnimalRepository struct {
	mock.Mock
}

func (m *AnimalRepository) Create(ctx context.Context, animal *domain.Animal) error {
	args := m.Called(ctx, animal)
	return args.Error(0)
}

func (m *AnimalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Animal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Animal), args.Error(1)
}

func (m *AnimalRepository) GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*domain.Animal, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Animal), args.Error(1)
}

func (m *AnimalRepository) Update(ctx context.Context, animal *domain.Animal) error {
	args := m.Called(ctx, animal)
	return args.Error(0)
}

func (m *AnimalRepository) UpdateStatus(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status domain.AnimalStatus) error {
	args := m.Called(ctx, tx, id, status)
	return args.Error(0)
}

func (m *AnimalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *AnimalRepository) ListAvailable(ctx context.Context, params domain.PaginationParams) ([]domain.Animal, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.Animal), args.Get(1).(int64), args.Error(2)
}

func (m *AnimalRepository) Search(ctx context.Context, term string, params domain.PaginationParams) ([]domain.Animal, int64, error) {
	args := m.Called(ctx, term, params)
	return args.Get(0).([]domain.Animal), args.Get(1).(int64), args.Error(2)
}

func (m *AnimalRepository) Filter(ctx context.Context, filter domain.AnimalFilter, params domain.PaginationParams) ([]domain.Animal, int64, error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).([]domain.Animal), args.Get(1).(int64), args.Error(2)
}

func (m *AnimalRepository) ListByShelter(ctx context.Context, shelterID uuid.UUID, params domain.PaginationParams) ([]domain.Animal, int64, error) {
	args := m.Called(ctx, shelterID, params)
	return args.Get(0).([]domain.Animal), args.Get(1).(int64), args.Error(2)
}

func (m *AnimalRepository) AddImage(ctx context.Context, animalID uuid.UUID, imageURL string) error {
	args := m.Called(ctx, animalID, imageURL)
	return args.Error(0)
}

func (m *AnimalRepository) RemoveImage(ctx context.Context, animalID uuid.UUID, imageURL string) error {
	args := m.Called(ctx, animalID, imageURL)
	return args.Error(0)
}
