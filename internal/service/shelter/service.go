package shelter

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tailpair/internal/domain"
	"tailpair/internal/repository"
)

var (
	ErrAlreadyExists = errors.New("user already manages a shelter")
	ErrNotAdmin      = errors.New("shelter does not belong to this user")
)

type Service interface {
	Create(ctx context.Context, adminID uuid.UUID, input domain.CreateShelterInput) (*domain.Shelter, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Shelter, error)
	GetByAdminID(ctx context.Context, adminID uuid.UUID) (*domain.Shelter, error)
	Update(ctx context.Context, id, adminID uuid.UUID, input domain.UpdateShelterInput) (*domain.Shelter, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Verify(ctx context.Context, id uuid.UUID, verified bool) (*domain.Shelter, error)
	List(ctx context.Context, verifiedOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Shelter], error)
	Search(ctx context.Context, term string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Shelter], error)
	ListByLocation(ctx context.Context, city, state string) ([]domain.Shelter, error)
	ListByZipCode(ctx context.Context, zipCode string) ([]domain.Shelter, error)
}

type service struct {
	shelterRepo repository.ShelterRepository
	userRepo    repository.UserRepository
}

func NewService(shelterRepo repository.ShelterRepository, userRepo repository.UserRepository) Service {
	return &service{
		shelterRepo: shelterRepo,
		userRepo:    userRepo,
	}
}

func (s *service) Create(ctx context.Context, adminID uuid.UUID, input domain.CreateShelterInput) (*domain.Shelter, error) {
	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	if admin == nil {
		return nil, domain.ErrUserNotFound
	}

	existing, err := s.shelterRepo.GetByAdminID(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing shelter: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	shelter := &domain.Shelter{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Address:     input.Address,
		City:        input.City,
		State:       input.State,
		ZipCode:     input.ZipCode,
		Phone:       input.Phone,
		Email:       input.Email,
		Website:     input.Website,
		AdminID:     adminID,
	}
	if err := s.shelterRepo.Create(ctx, shelter); err != nil {
		return nil, fmt.Errorf("failed to create shelter: %w", err)
	}
	return s.GetByID(ctx, shelter.ID)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shelter, error) {
	shelter, err := s.shelterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get shelter: %w", err)
	}
	if shelter == nil {
		return nil, domain.ErrShelterNotFound
	}
	return shelter, nil
}

func (s *service) GetByAdminID(ctx context.Context, adminID uuid.UUID) (*domain.Shelter, error) {
	shelter, err := s.shelterRepo.GetByAdminID(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shelter: %w", err)
	}
	if shelter == nil {
		return nil, domain.ErrShelterNotFound
	}
	return shelter, nil
}

func (s *service) Update(ctx context.Context, id, adminID uuid.UUID, input domain.UpdateShelterInput) (*domain.Shelter, error) {
	shelter, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shelter.AdminID != adminID {
		return nil, ErrNotAdmin
	}

	if input.Name != nil {
		shelter.Name = *input.Name
	}
	if input.Description != nil {
		shelter.Description = *input.Description
	}
	if input.Address != nil {
		shelter.Address = *input.Address
	}
	if input.City != nil {
		shelter.City = *input.City
	}
	if input.State != nil {
		shelter.State = *input.State
	}
	if input.ZipCode != nil {
		shelter.ZipCode = *input.ZipCode
	}
	if input.Phone != nil {
		shelter.Phone = *input.Phone
	}
	if input.Email != nil {
		shelter.Email = *input.Email
	}
	if input.Website != nil {
		shelter.Website = *input.Website
	}

	if err := s.shelterRepo.Update(ctx, shelter); err != nil {
		return nil, fmt.Errorf("failed to update shelter: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.shelterRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete shelter: %w", err)
	}
	return nil
}

func (s *service) Verify(ctx context.Context, id uuid.UUID, verified bool) (*domain.Shelter, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.shelterRepo.SetVerified(ctx, id, verified); err != nil {
		return nil, fmt.Errorf("failed to update shelter verification: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, verifiedOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Shelter], error) {
	params.Validate()

	shelters, total, err := s.shelterRepo.List(ctx, verifiedOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Shelter]{}, fmt.Errorf("failed to list shelters: %w", err)
	}
	return domain.NewPaginatedResponse(shelters, params.Page, params.PageSize, total), nil
}

func (s *service) Search(ctx context.Context, term string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Shelter], error) {
	params.Validate()

	shelters, total, err := s.shelterRepo.Search(ctx, term, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Shelter]{}, fmt.Errorf("failed to search shelters: %w", err)
	}
	return domain.NewPaginatedResponse(shelters, params.Page, params.PageSize, total), nil
}

func (s *service) ListByLocation(ctx context.Context, city, state string) ([]domain.Shelter, error) {
	shelters, err := s.shelterRepo.ListByLocation(ctx, city, state)
	if err != nil {
		return nil, fmt.Errorf("failed to list shelters by location: %w", err)
	}
	return shelters, nil
}

func (s *service) ListByZipCode(ctx context.Context, zipCode string) ([]domain.Shelter, error) {
	shelters, err := s.shelterRepo.ListByZipCode(ctx, zipCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list shelters by zip code: %w", err)
	}
	return shelters, nil
}
