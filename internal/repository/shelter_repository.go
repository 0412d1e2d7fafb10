package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tailpair/internal/domain"
)

// shelterColumns joins the admin's name and the live animal count onto every
// shelter row; both are presentation fields the frontend card needs.
const shelterColumns = `
	s.*,
	u.first_name || ' ' || u.last_name AS admin_name,
	(SELECT COUNT(*) FROM animals a WHERE a.shelter_id = s.id) AS animal_count`

type ShelterRepository interface {
	Create(ctx context.Context, shelter *domain.Shelter) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Shelter, error)
	GetByAdminID(ctx context.Context, adminID uuid.UUID) (*domain.Shelter, error)
	Update(ctx context.Context, shelter *domain.Shelter) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	List(ctx context.Context, verifiedOnly bool, params domain.PaginationParams) ([]domain.Shelter, int64, error)
	Search(ctx context.Context, term string, params domain.PaginationParams) ([]domain.Shelter, int64, error)
	ListByLocation(ctx context.Context, city, state string) ([]domain.Shelter, error)
	ListByZipCode(ctx context.Context, zipCode string) ([]domain.Shelter, error)
}

type shelterRepository struct {
	db *sqlx.DB
}

func NewShelterRepository(db *sqlx.DB) ShelterRepository {
	return &shelterRepository{db: db}
}

func (r *shelterRepository) Create(ctx context.Context, shelter *domain.Shelter) error {
	query := `
		INSERT INTO shelters (id, name, description, address, city, state, zip_code,
			phone, email, website, verified, admin_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		shelter.ID, shelter.Name, shelter.Description, shelter.Address,
		shelter.City, shelter.State, shelter.ZipCode, shelter.Phone,
		shelter.Email, shelter.Website, shelter.Verified, shelter.AdminID,
	).Scan(&shelter.CreatedAt, &shelter.UpdatedAt)
}

func (r *shelterRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shelter, error) {
	var shelter domain.Shelter
	query := `SELECT ` + shelterColumns + `
		FROM shelters s
		JOIN users u ON u.id = s.admin_id
		WHERE s.id = $1`

	err := r.db.GetContext(ctx, &shelter, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shelter, nil
}

func (r *shelterRepository) GetByAdminID(ctx context.Context, adminID uuid.UUID) (*domain.Shelter, error) {
	var shelter domain.Shelter
	query := `SELECT ` + shelterColumns + `
		FROM shelters s
		JOIN users u ON u.id = s.admin_id
		WHERE s.admin_id = $1`

	err := r.db.GetContext(ctx, &shelter, query, adminID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shelter, nil
}

func (r *shelterRepository) Update(ctx context.Context, shelter *domain.Shelter) error {
	query := `
		UPDATE shelters
		SET name = $2, description = $3, address = $4, city = $5, state = $6,
			zip_code = $7, phone = $8, email = $9, website = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		shelter.ID, shelter.Name, shelter.Description, shelter.Address,
		shelter.City, shelter.State, shelter.ZipCode, shelter.Phone,
		shelter.Email, shelter.Website,
	).Scan(&shelter.UpdatedAt)
}

func (r *shelterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM shelters WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *shelterRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	query := `UPDATE shelters SET verified = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, verified)
	return err
}

func (r *shelterRepository) List(ctx context.Context, verifiedOnly bool, params domain.PaginationParams) ([]domain.Shelter, int64, error) {
	params.Validate()

	where := ``
	if verifiedOnly {
		where = ` WHERE s.verified = true`
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM shelters s`+where); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + shelterColumns + `
		FROM shelters s
		JOIN users u ON u.id = s.admin_id` + where + `
		ORDER BY s.name
		LIMIT $1 OFFSET $2`

	var shelters []domain.Shelter
	err := r.db.SelectContext(ctx, &shelters, query, params.PageSize, params.Offset())
	return shelters, total, err
}

func (r *shelterRepository) Search(ctx context.Context, term string, params domain.PaginationParams) ([]domain.Shelter, int64, error) {
	params.Validate()

	pattern := "%" + term + "%"
	cond := goqu.Or(
		goqu.I("s.name").ILike(pattern),
		goqu.I("s.city").ILike(pattern),
		goqu.I("s.state").ILike(pattern),
	)

	countSQL, countArgs, err := goqu.Dialect("postgres").
		From(goqu.T("shelters").As("s")).
		Select(goqu.COUNT("*")).
		Where(cond).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, 0, err
	}

	listSQL, listArgs, err := goqu.Dialect("postgres").
		From(goqu.T("shelters").As("s")).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("s.admin_id")))).
		Select(goqu.L(shelterColumns)).
		Where(cond).
		Order(goqu.I("s.name").Asc()).
		Limit(uint(params.PageSize)).
		Offset(uint(params.Offset())).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, err
	}

	var shelters []domain.Shelter
	err = r.db.SelectContext(ctx, &shelters, listSQL, listArgs...)
	return shelters, total, err
}

func (r *shelterRepository) ListByLocation(ctx context.Context, city, state string) ([]domain.Shelter, error) {
	query := `SELECT ` + shelterColumns + `
		FROM shelters s
		JOIN users u ON u.id = s.admin_id
		WHERE s.city ILIKE $1 AND s.state ILIKE $2
		ORDER BY s.name`

	var shelters []domain.Shelter
	err := r.db.SelectContext(ctx, &shelters, query, city, state)
	return shelters, err
}

func (r *shelterRepository) ListByZipCode(ctx context.Context, zipCode string) ([]domain.Shelter, error) {
	query := `SELECT ` + shelterColumns + `
		FROM shelters s
		JOIN users u ON u.id = s.admin_id
		WHERE s.zip_code = $1
		ORDER BY s.name`

	var shelters []domain.Shelter
	err := r.db.SelectContext(ctx, &shelters, query, zipCode)
	return shelters, err
}
