package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tailpair/internal/domain"
)

type FavoriteRepository interface {
	Create(ctx context.Context, favorite *domain.Favorite) error
	Delete(ctx context.Context, userID, animalID uuid.UUID) error
	Exists(ctx context.Context, userID, animalID uuid.UUID) (bool, error)
	// ListAnimalsByUser returns the favorited animals, newest favorite first.
	ListAnimalsByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Animal, int64, error)
	CountByAnimal(ctx context.Context, animalID uuid.UUID) (int64, error)
	// ListUserIDsByAnimal returns the ids of every user who favorited the
	// animal; used for the favorite-adopted notification fan-out.
	ListUserIDsByAnimal(ctx context.Context, animalID uuid.UUID) ([]uuid.UUID, error)
}

type favoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) error {
	query := `
		INSERT INTO favorites (id, user_id, animal_id)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		favorite.ID, favorite.UserID, favorite.AnimalID,
	).Scan(&favorite.CreatedAt)
}

func (r *favoriteRepository) Delete(ctx context.Context, userID, animalID uuid.UUID) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND animal_id = $2`
	_, err := r.db.ExecContext(ctx, query, userID, animalID)
	return err
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, animalID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND animal_id = $2)`
	err := r.db.GetContext(ctx, &exists, query, userID, animalID)
	return exists, err
}

func (r *favoriteRepository) ListAnimalsByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Animal, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM favorites WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT a.*, s.name AS shelter_name
		FROM favorites f
		JOIN animals a ON a.id = f.animal_id
		JOIN shelters s ON s.id = a.shelter_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3`

	var animals []domain.Animal
	err := r.db.SelectContext(ctx, &animals, query, userID, params.PageSize, params.Offset())
	return animals, total, err
}

func (r *favoriteRepository) CountByAnimal(ctx context.Context, animalID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM favorites WHERE animal_id = $1`
	err := r.db.GetContext(ctx, &count, query, animalID)
	return count, err
}

func (r *favoriteRepository) ListUserIDsByAnimal(ctx context.Context, animalID uuid.UUID) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID
	query := `SELECT user_id FROM favorites WHERE animal_id = $1`
	err := r.db.SelectContext(ctx, &userIDs, query, animalID)
	return userIDs, err
}
