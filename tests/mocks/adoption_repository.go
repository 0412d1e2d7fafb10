package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"tailpair/internal/domain"
)

type AdoptionRepository struct {
	mock.Mock
}

func (m *AdoptionRepository) Create(ctx context.Context, tx *sqlx.Tx, adoption *domain.Adoption) error {
	args := m.Called(ctx, tx, adoption)
	return args.Error(0)
}

func (m *AdoptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Adoption, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Adoption), args.Error(1)
}

func (m *AdoptionRepository) GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*domain.Adoption, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Adoption), args.Error(1)
}

func (m *AdoptionRepository) UpdateStatus(ctx context.Context, tx *sqlx.Tx, adoption *domain.Adoption) error {
	args := m.Called(ctx, tx, adoption)
	return args.Error(0)
}

func (m *AdoptionRepository) ExistsByAdopterAndAnimal(ctx context.Context, tx *sqlx.Tx, adopterID, animalID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tx, adopterID, animalID)
	return args.Bool(0), args.Error(1)
}

func (m *AdoptionRepository) ListByAdopter(ctx context.Context, adopterID uuid.UUID, params domain.PaginationParams) ([]domain.Adoption, int64, error) {
	args := m.Called(ctx, adopterID, params)
	return args.Get(0).([]domain.Adoption), args.Get(1).(int64), args.Error(2)
}

func (m *AdoptionRepository) ListByShelter(ctx context.Context, shelterID uuid.UUID, status *domain.AdoptionStatus, params domain.PaginationParams) ([]domain.Adoption, int64, error) {
	args := m.Called(ctx, shelterID, status, params)
	return args.Get(0).([]domain.Adoption), args.Get(1).(int64), args.Error(2)
}

func (m *AdoptionRepository) ListByStatus(ctx context.Context, status domain.AdoptionStatus, params domain.PaginationParams) ([]domain.Adoption, int64, error) {
	args := m.Called(ctx, status, params)
	return args.Get(0).([]domain.Adoption), args.Get(1).(int64), args.Error(2)
}

func (m *AdoptionRepository) CountPendingByShelter(ctx context.Context, shelterID uuid.UUID) (int64, error) {
	args := m.Called(ctx, shelterID)
	return args.Get(0).(int64), args.Error(1)
}
