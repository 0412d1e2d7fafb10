package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tailpair/internal/domain"
)

type ShelterRepository struct {
	mock.Mock
}

func (m *ShelterRepository) Create(ctx context.Context, shelter *domain.Shelter) error {
	args := m.Called(ctx, shelter)
	return args.Error(0)
}

func (m *ShelterRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shelter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shelter), args.Error(1)
}

func (m *ShelterRepository) GetByAdminID(ctx context.Context, adminID uuid.UUID) (*domain.Shelter, error) {
	args := m.Called(ctx, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shelter), args.Error(1)
}

func (m *ShelterRepository) Update(ctx context.Context, shelter *domain.Shelter) error {
	args := m.Called(ctx, shelter)
	return args.Error(0)
}

func (m *ShelterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ShelterRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	args := m.Called(ctx, id, verified)
	return args.Error(0)
}

func (m *ShelterRepository) List(ctx context.Context, verifiedOnly bool, params domain.PaginationParams) ([]domain.Shelter, int64, error) {
	args := m.Called(ctx, verifiedOnly, params)
	return args.Get(0).([]domain.Shelter), args.Get(1).(int64), args.Error(2)
}

func (m *ShelterRepository) Search(ctx context.Context, term string, params domain.PaginationParams) ([]domain.Shelter, int64, error) {
	args := m.Called(ctx, term, params)
	return args.Get(0).([]domain.Shelter), args.Get(1).(int64), args.Error(2)
}

func (m *ShelterRepository) ListByLocation(ctx context.Context, city, state string) ([]domain.Shelter, error) {
	args := m.Called(ctx, city, state)
	return args.Get(0).([]domain.Shelter), args.Error(1)
}

func (m *ShelterRepository) ListByZipCode(ctx context.Context, zipCode string) ([]domain.Shelter, error) {
	args := m.Called(ctx, zipCode)
	return args.Get(0).([]domain.Shelter), args.Error(1)
}
