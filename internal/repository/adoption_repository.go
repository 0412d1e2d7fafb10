package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tailpair/internal/domain"
)

// adoptionColumns enriches adoption rows with adopter, animal and shelter
// presentation fields the API returns alongside the raw record.
const adoptionColumns = `
	ad.*,
	u.first_name || ' ' || u.last_name AS adopter_name,
	u.email AS adopter_email,
	a.name AS animal_name,
	a.shelter_id AS shelter_id,
	s.name AS shelter_name`

const adoptionFrom = `
	FROM adoptions ad
	JOIN users u ON u.id = ad.adopter_id
	JOIN animals a ON a.id = ad.animal_id
	JOIN shelters s ON s.id = a.shelter_id`

type AdoptionRepository interface {
	// Create inserts the request inside tx so it commits together with the
	// animal status flip and the shelter-admin notification.
	Create(ctx context.Context, tx *sqlx.Tx, adoption *domain.Adoption) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Adoption, error)
	// GetByIDForUpdate locks the adoption row for a lifecycle transition.
	GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*domain.Adoption, error)
	// UpdateStatus writes status, rejection_reason, approved_at and
	// completed_at inside tx.
	UpdateStatus(ctx context.Context, tx *sqlx.Tx, adoption *domain.Adoption) error
	// ExistsByAdopterAndAnimal reports whether any adoption record exists for
	// the pair, in any status. Runs inside tx during create so the duplicate
	// check holds under the animal row lock.
	ExistsByAdopterAndAnimal(ctx context.Context, tx *sqlx.Tx, adopterID, animalID uuid.UUID) (bool, error)
	ListByAdopter(ctx context.Context, adopterID uuid.UUID, params domain.PaginationParams) ([]domain.Adoption, int64, error)
	ListByShelter(ctx context.Context, shelterID uuid.UUID, status *domain.AdoptionStatus, params domain.PaginationParams) ([]domain.Adoption, int64, error)
	ListByStatus(ctx context.Context, status domain.AdoptionStatus, params domain.PaginationParams) ([]domain.Adoption, int64, error)
	CountPendingByShelter(ctx context.Context, shelterID uuid.UUID) (int64, error)
}

type adoptionRepository struct {
	db *sqlx.DB
}

func NewAdoptionRepository(db *sqlx.DB) AdoptionRepository {
	return &adoptionRepository{db: db}
}

func (r *adoptionRepository) Create(ctx context.Context, tx *sqlx.Tx, adoption *domain.Adoption) error {
	query := `
		INSERT INTO adoptions (id, status, notes, adopter_id, animal_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	return tx.QueryRowxContext(ctx, query,
		adoption.ID, adoption.Status, adoption.Notes, adoption.AdopterID, adoption.AnimalID,
	).Scan(&adoption.CreatedAt, &adoption.UpdatedAt)
}

func (r *adoptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Adoption, error) {
	var adoption domain.Adoption
	query := `SELECT ` + adoptionColumns + adoptionFrom + ` WHERE ad.id = $1`

	err := r.db.GetContext(ctx, &adoption, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &adoption, nil
}

// GetByIDForUpdate locks the adoptions row (FOR UPDATE OF ad leaves the
// joined rows unlocked) while still returning the joined shelter_id and
// presentation columns: the ownership check and the notification templates
// read them straight off the locked record.
func (r *adoptionRepository) GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*domain.Adoption, error) {
	var adoption domain.Adoption
	query := `SELECT ` + adoptionColumns + adoptionFrom + `
		WHERE ad.id = $1
		FOR UPDATE OF ad`

	err := tx.GetContext(ctx, &adoption, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &adoption, nil
}

func (r *adoptionRepository) UpdateStatus(ctx context.Context, tx *sqlx.Tx, adoption *domain.Adoption) error {
	query := `
		UPDATE adoptions
		SET status = $2, rejection_reason = $3, approved_at = $4, completed_at = $5,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return tx.QueryRowxContext(ctx, query,
		adoption.ID, adoption.Status, adoption.RejectionReason,
		adoption.ApprovedAt, adoption.CompletedAt,
	).Scan(&adoption.UpdatedAt)
}

func (r *adoptionRepository) ExistsByAdopterAndAnimal(ctx context.Context, tx *sqlx.Tx, adopterID, animalID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM adoptions WHERE adopter_id = $1 AND animal_id = $2)`
	err := tx.GetContext(ctx, &exists, query, adopterID, animalID)
	return exists, err
}

func (r *adoptionRepository) ListByAdopter(ctx context.Context, adopterID uuid.UUID, params domain.PaginationParams) ([]domain.Adoption, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM adoptions WHERE adopter_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, adopterID); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + adoptionColumns + adoptionFrom + `
		WHERE ad.adopter_id = $1
		ORDER BY ad.created_at DESC
		LIMIT $2 OFFSET $3`

	var adoptions []domain.Adoption
	err := r.db.SelectContext(ctx, &adoptions, query, adopterID, params.PageSize, params.Offset())
	return adoptions, total, err
}

func (r *adoptionRepository) ListByShelter(ctx context.Context, shelterID uuid.UUID, status *domain.AdoptionStatus, params domain.PaginationParams) ([]domain.Adoption, int64, error) {
	params.Validate()

	if status != nil {
		var total int64
		countQuery := `
			SELECT COUNT(*) FROM adoptions ad
			JOIN animals a ON a.id = ad.animal_id
			WHERE a.shelter_id = $1 AND ad.status = $2`
		if err := r.db.GetContext(ctx, &total, countQuery, shelterID, *status); err != nil {
			return nil, 0, err
		}

		query := `SELECT ` + adoptionColumns + adoptionFrom + `
			WHERE a.shelter_id = $1 AND ad.status = $2
			ORDER BY ad.created_at DESC
			LIMIT $3 OFFSET $4`

		var adoptions []domain.Adoption
		err := r.db.SelectContext(ctx, &adoptions, query, shelterID, *status, params.PageSize, params.Offset())
		return adoptions, total, err
	}

	var total int64
	countQuery := `
		SELECT COUNT(*) FROM adoptions ad
		JOIN animals a ON a.id = ad.animal_id
		WHERE a.shelter_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, shelterID); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + adoptionColumns + adoptionFrom + `
		WHERE a.shelter_id = $1
		ORDER BY ad.created_at DESC
		LIMIT $2 OFFSET $3`

	var adoptions []domain.Adoption
	err := r.db.SelectContext(ctx, &adoptions, query, shelterID, params.PageSize, params.Offset())
	return adoptions, total, err
}

func (r *adoptionRepository) ListByStatus(ctx context.Context, status domain.AdoptionStatus, params domain.PaginationParams) ([]domain.Adoption, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM adoptions WHERE status = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, status); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + adoptionColumns + adoptionFrom + `
		WHERE ad.status = $1
		ORDER BY ad.created_at DESC
		LIMIT $2 OFFSET $3`

	var adoptions []domain.Adoption
	err := r.db.SelectContext(ctx, &adoptions, query, status, params.PageSize, params.Offset())
	return adoptions, total, err
}

func (r *adoptionRepository) CountPendingByShelter(ctx context.Context, shelterID uuid.UUID) (int64, error) {
	var count int64
	query := `
		SELECT COUNT(*) FROM adoptions ad
		JOIN animals a ON a.id = ad.animal_id
		WHERE a.shelter_id = $1 AND ad.status = 'PENDING'`
	err := r.db.GetContext(ctx, &count, query, shelterID)
	return count, err
}
