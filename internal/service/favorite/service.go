package favorite

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"tailpair/internal/domain"
	"tailpair/internal/repository"
)

var ErrAlreadyFavorited = errors.New("animal is already favorited")

type Service interface {
	Add(ctx context.Context, userID, animalID uuid.UUID) (*domain.Favorite, error)
	Remove(ctx context.Context, userID, animalID uuid.UUID) error
	IsFavorited(ctx context.Context, userID, animalID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Animal], error)
	CountByAnimal(ctx context.Context, animalID uuid.UUID) (int64, error)
}

type service struct {
	favoriteRepo repository.FavoriteRepository
	animalRepo   repository.AnimalRepository
	userRepo     repository.UserRepository
	redisClient  *redis.Client
}

func NewService(
	favoriteRepo repository.FavoriteRepository,
	animalRepo repository.AnimalRepository,
	userRepo repository.UserRepository,
	redisClient *redis.Client,
) Service {
	return &service{
		favoriteRepo: favoriteRepo,
		animalRepo:   animalRepo,
		userRepo:     userRepo,
		redisClient:  redisClient,
	}
}

func (s *service) Add(ctx context.Context, userID, animalID uuid.UUID) (*domain.Favorite, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	animal, err := s.animalRepo.GetByID(ctx, animalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get animal: %w", err)
	}
	if animal == nil {
		return nil, domain.ErrAnimalNotFound
	}

	exists, err := s.favoriteRepo.Exists(ctx, userID, animalID)
	if err != nil {
		return nil, fmt.Errorf("failed to check favorite: %w", err)
	}
	if exists {
		return nil, ErrAlreadyFavorited
	}

	favorite := &domain.Favorite{
		ID:       uuid.New(),
		UserID:   userID,
		AnimalID: animalID,
	}
	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		return nil, fmt.Errorf("failed to create favorite: %w", err)
	}

	s.invalidateCount(ctx, animalID)
	return favorite, nil
}

func (s *service) Remove(ctx context.Context, userID, animalID uuid.UUID) error {
	exists, err := s.favoriteRepo.Exists(ctx, userID, animalID)
	if err != nil {
		return fmt.Errorf("failed to check favorite: %w", err)
	}
	if !exists {
		return domain.ErrFavoriteNotFound
	}

	if err := s.favoriteRepo.Delete(ctx, userID, animalID); err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	s.invalidateCount(ctx, animalID)
	return nil
}

func (s *service) IsFavorited(ctx context.Context, userID, animalID uuid.UUID) (bool, error) {
	exists, err := s.favoriteRepo.Exists(ctx, userID, animalID)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Animal], error) {
	params.Validate()

	animals, total, err := s.favoriteRepo.ListAnimalsByUser(ctx, userID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Animal]{}, fmt.Errorf("failed to list favorites: %w", err)
	}
	return domain.NewPaginatedResponse(animals, params.Page, params.PageSize, total), nil
}

func (s *service) CountByAnimal(ctx context.Context, animalID uuid.UUID) (int64, error) {
	cacheKey := countKey(animalID)

	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Int64(); err == nil {
			return cached, nil
		}
	}

	count, err := s.favoriteRepo.CountByAnimal(ctx, animalID)
	if err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}

	if s.redisClient != nil {
		if err := s.redisClient.Set(ctx, cacheKey, count, 5*time.Minute).Err(); err != nil {
			log.Printf("Warning: failed to cache favorite count: %v", err)
		}
	}

	return count, nil
}

func (s *service) invalidateCount(ctx context.Context, animalID uuid.UUID) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, countKey(animalID)).Err(); err != nil {
		log.Printf("Warning: failed to invalidate favorite count cache: %v", err)
	}
}

func countKey(animalID uuid.UUID) string {
	return fmt.Sprintf("favorites:count:%s", animalID)
}
