package animal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"tailpair/internal/config"
	"tailpair/internal/domain"
	"tailpair/internal/repository"
)

var (
	ErrNotOwner      = errors.New("animal does not belong to this shelter")
	ErrInvalidInput  = errors.New("invalid animal input")
	ErrStatusManaged = errors.New("animal status is managed by the adoption lifecycle")
)

type Service interface {
	Create(ctx context.Context, shelterID uuid.UUID, input domain.CreateAnimalInput) (*domain.Animal, error)
	GetByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*domain.Animal, error)
	Update(ctx context.Context, id, shelterID uuid.UUID, input domain.UpdateAnimalInput) (*domain.Animal, error)
	Delete(ctx context.Context, id, shelterID uuid.UUID) error
	ListAvailable(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Animal], error)
	Search(ctx context.Context, term string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Animal], error)
	Filter(ctx context.Context, filter domain.AnimalFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Animal], error)
	ListByShelter(ctx context.Context, shelterID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Animal], error)
	UploadImage(ctx context.Context, animalID, shelterID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error)
	RemoveImage(ctx context.Context, animalID, shelterID uuid.UUID, imageURL string) error
}

type service struct {
	animalRepo   repository.AnimalRepository
	favoriteRepo repository.FavoriteRepository
	minioClient  *minio.Client
	cfg          *config.Config
}

func NewService(
	animalRepo repository.AnimalRepository,
	favoriteRepo repository.FavoriteRepository,
	minioClient *minio.Client,
	cfg *config.Config,
) Service {
	return &service{
		animalRepo:   animalRepo,
		favoriteRepo: favoriteRepo,
		minioClient:  minioClient,
		cfg:          cfg,
	}
}

func (s *service) Create(ctx context.Context, shelterID uuid.UUID, input domain.CreateAnimalInput) (*domain.Animal, error) {
	if !input.Species.IsValid() || !input.Gender.IsValid() || !input.Size.IsValid() {
		return nil, ErrInvalidInput
	}
	if input.Age < 0 || input.AdoptionFee < 0 {
		return nil, ErrInvalidInput
	}

	animal := &domain.Animal{
		ID:             uuid.New(),
		Name:           input.Name,
		Species:        input.Species,
		Breed:          input.Breed,
		Age:            input.Age,
		Gender:         input.Gender,
		Size:           input.Size,
		Weight:         input.Weight,
		Color:          input.Color,
		Description:    input.Description,
		MedicalHistory: input.MedicalHistory,
		Vaccinated:     input.Vaccinated,
		SpayedNeutered: input.SpayedNeutered,
		HouseTrained:   input.HouseTrained,
		GoodWithKids:   input.GoodWithKids,
		GoodWithPets:   input.GoodWithPets,
		Status:         domain.AnimalAvailable,
		AdoptionFee:    input.AdoptionFee,
		ShelterID:      shelterID,
		ImageURLs:      input.ImageURLs,
	}

	if err := s.animalRepo.Create(ctx, animal); err != nil {
		return nil, fmt.Errorf("failed to create animal: %w", err)
	}
	return s.getExisting(ctx, animal.ID)
}

// GetByID returns the animal, with the favorited flag filled in when a viewer
// is known.
func (s *service) GetByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*domain.Animal, error) {
	animal, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	if viewerID != nil {
		favorited, err := s.favoriteRepo.Exists(ctx, *viewerID, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check favorite: %w", err)
		}
		animal.IsFavorited = &favorited
	}
	return animal, nil
}

func (s *service) Update(ctx context.Context, id, shelterID uuid.UUID, input domain.UpdateAnimalInput) (*domain.Animal, error) {
	animal, err := s.getOwned(ctx, id, shelterID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		animal.Name = *input.Name
	}
	if input.Species != nil {
		if !input.Species.IsValid() {
			return nil, ErrInvalidInput
		}
		animal.Species = *input.Species
	}
	if input.Breed != nil {
		animal.Breed = input.Breed
	}
	if input.Age != nil {
		if *input.Age < 0 {
			return nil, ErrInvalidInput
		}
		animal.Age = *input.Age
	}
	if input.Gender != nil {
		if !input.Gender.IsValid() {
			return nil, ErrInvalidInput
		}
		animal.Gender = *input.Gender
	}
	if input.Size != nil {
		if !input.Size.IsValid() {
			return nil, ErrInvalidInput
		}
		animal.Size = *input.Size
	}
	if input.Weight != nil {
		animal.Weight = input.Weight
	}
	if input.Color != nil {
		animal.Color = input.Color
	}
	if input.Description != nil {
		animal.Description = input.Description
	}
	if input.MedicalHistory != nil {
		animal.MedicalHistory = input.MedicalHistory
	}
	if input.Vaccinated != nil {
		animal.Vaccinated = *input.Vaccinated
	}
	if input.SpayedNeutered != nil {
		animal.SpayedNeutered = *input.SpayedNeutered
	}
	if input.HouseTrained != nil {
		animal.HouseTrained = *input.HouseTrained
	}
	if input.GoodWithKids != nil {
		animal.GoodWithKids = *input.GoodWithKids
	}
	if input.GoodWithPets != nil {
		animal.GoodWithPets = *input.GoodWithPets
	}
	if input.AdoptionFee != nil {
		if *input.AdoptionFee < 0 {
			return nil, ErrInvalidInput
		}
		animal.AdoptionFee = *input.AdoptionFee
	}
	if input.Status != nil {
		// Shelters can only take an animal on or off the market manually.
		// PENDING and ADOPTED come from the adoption lifecycle.
		if *input.Status != domain.AnimalAvailable && *input.Status != domain.AnimalNotAvailable {
			return nil, ErrStatusManaged
		}
		if animal.Status == domain.AnimalPending || animal.Status == domain.AnimalAdopted {
			return nil, ErrStatusManaged
		}
		animal.Status = *input.Status
	}

	if err := s.animalRepo.Update(ctx, animal); err != nil {
		return nil, fmt.Errorf("failed to update animal: %w", err)
	}
	return s.getExisting(ctx, id)
}

func (s *service) Delete(ctx context.Context, id, shelterID uuid.UUID) error {
	animal, err := s.getOwned(ctx, id, shelterID)
	if err != nil {
		return err
	}

	if err := s.animalRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete animal: %w", err)
	}

	for _, imageURL := range animal.ImageURLs {
		if path, ok := s.storagePathFromURL(imageURL); ok {
			_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, path, minio.RemoveObjectOptions{})
		}
	}
	return nil
}

func (s *service) ListAvailable(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Animal], error) {
	return s.list(params, func(p domain.PaginationParams) ([]domain.Animal, int64, error) {
		return s.animalRepo.ListAvailable(ctx, p)
	})
}

func (s *service) Search(ctx context.Context, term string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Animal], error) {
	return s.list(params, func(p domain.PaginationParams) ([]domain.Animal, int64, error) {
		return s.animalRepo.Search(ctx, term, p)
	})
}

func (s *service) Filter(ctx context.Context, filter domain.AnimalFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Animal], error) {
	return s.list(params, func(p domain.PaginationParams) ([]domain.Animal, int64, error) {
		return s.animalRepo.Filter(ctx, filter, p)
	})
}

func (s *service) ListByShelter(ctx context.Context, shelterID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Animal], error) {
	return s.list(params, func(p domain.PaginationParams) ([]domain.Animal, int64, error) {
		return s.animalRepo.ListByShelter(ctx, shelterID, p)
	})
}

func (s *service) UploadImage(ctx context.Context, animalID, shelterID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error) {
	if _, err := s.getOwned(ctx, animalID, shelterID); err != nil {
		return "", err
	}

	storagePath := fmt.Sprintf("animals/%s/%s", animalID, uuid.New())
	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	imageURL := s.publicURL(storagePath)
	if err := s.animalRepo.AddImage(ctx, animalID, imageURL); err != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return imageURL, nil
}

func (s *service) RemoveImage(ctx context.Context, animalID, shelterID uuid.UUID, imageURL string) error {
	if _, err := s.getOwned(ctx, animalID, shelterID); err != nil {
		return err
	}

	if err := s.animalRepo.RemoveImage(ctx, animalID, imageURL); err != nil {
		return fmt.Errorf("failed to remove image: %w", err)
	}

	if path, ok := s.storagePathFromURL(imageURL); ok {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, path, minio.RemoveObjectOptions{})
	}
	return nil
}

func (s *service) list(params domain.PaginationParams, fetch func(domain.PaginationParams) ([]domain.Animal, int64, error)) (domain.PaginatedResponse[domain.Animal], error) {
	params.Validate()

	animals, total, err := fetch(params)
	if err != nil {
		return domain.PaginatedResponse[domain.Animal]{}, fmt.Errorf("failed to list animals: %w", err)
	}
	return domain.NewPaginatedResponse(animals, params.Page, params.PageSize, total), nil
}

func (s *service) getExisting(ctx context.Context, id uuid.UUID) (*domain.Animal, error) {
	animal, err := s.animalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get animal: %w", err)
	}
	if animal == nil {
		return nil, domain.ErrAnimalNotFound
	}
	return animal, nil
}

func (s *service) getOwned(ctx context.Context, id, shelterID uuid.UUID) (*domain.Animal, error) {
	animal, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	if animal.ShelterID != shelterID {
		return nil, ErrNotOwner
	}
	return animal, nil
}

func (s *service) publicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, storagePath)
}

func (s *service) storagePathFromURL(imageURL string) (string, bool) {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return "", false
	}
	prefix := "/" + s.cfg.MinIOBucket + "/"
	if len(parsed.Path) <= len(prefix) || parsed.Path[:len(prefix)] != prefix {
		return "", false
	}
	return parsed.Path[len(prefix):], true
}
