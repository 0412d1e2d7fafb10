package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"tailpair/internal/domain"
)

const animalColumns = `a.*, s.name AS shelter_name`

type AnimalRepository interface {
	Create(ctx context.Context, animal *domain.Animal) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Animal, error)
	// GetByIDForUpdate reads the animal row inside tx with a row lock so a
	// lifecycle transition can re-check availability at commit time.
	GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*domain.Animal, error)
	Update(ctx context.Context, animal *domain.Animal) error
	UpdateStatus(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status domain.AnimalStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAvailable(ctx context.Context, params domain.PaginationParams) ([]domain.Animal, int64, error)
	Search(ctx context.Context, term string, params domain.PaginationParams) ([]domain.Animal, int64, error)
	Filter(ctx context.Context, filter domain.AnimalFilter, params domain.PaginationParams) ([]domain.Animal, int64, error)
	ListByShelter(ctx context.Context, shelterID uuid.UUID, params domain.PaginationParams) ([]domain.Animal, int64, error)
	AddImage(ctx context.Context, animalID uuid.UUID, imageURL string) error
	RemoveImage(ctx context.Context, animalID uuid.UUID, imageURL string) error
}

type animalRepository struct {
	db *sqlx.DB
}

func NewAnimalRepository(db *sqlx.DB) AnimalRepository {
	return &animalRepository{db: db}
}

func (r *animalRepository) Create(ctx context.Context, animal *domain.Animal) error {
	query := `
		INSERT INTO animals (id, name, species, breed, age, gender, size, weight,
			color, description, medical_history, vaccinated, spayed_neutered,
			house_trained, good_with_kids, good_with_pets, status, adoption_fee, shelter_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		animal.ID, animal.Name, animal.Species, animal.Breed, animal.Age,
		animal.Gender, animal.Size, animal.Weight, animal.Color,
		animal.Description, animal.MedicalHistory, animal.Vaccinated,
		animal.SpayedNeutered, animal.HouseTrained, animal.GoodWithKids,
		animal.GoodWithPets, animal.Status, animal.AdoptionFee, animal.ShelterID,
	).Scan(&animal.CreatedAt, &animal.UpdatedAt)
	if err != nil {
		return err
	}

	for _, url := range animal.ImageURLs {
		if err := r.AddImage(ctx, animal.ID, url); err != nil {
			return err
		}
	}
	return nil
}

func (r *animalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Animal, error) {
	var animal domain.Animal
	query := `SELECT ` + animalColumns + `
		FROM animals a
		JOIN shelters s ON s.id = a.shelter_id
		WHERE a.id = $1`

	err := r.db.GetContext(ctx, &animal, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadImages(ctx, []*domain.Animal{&animal}); err != nil {
		return nil, err
	}
	return &animal, nil
}

func (r *animalRepository) GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*domain.Animal, error) {
	var animal domain.Animal
	query := `SELECT * FROM animals WHERE id = $1 FOR UPDATE`

	err := tx.GetContext(ctx, &animal, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &animal, nil
}

func (r *animalRepository) Update(ctx context.Context, animal *domain.Animal) error {
	query := `
		UPDATE animals
		SET name = $2, species = $3, breed = $4, age = $5, gender = $6, size = $7,
			weight = $8, color = $9, description = $10, medical_history = $11,
			vaccinated = $12, spayed_neutered = $13, house_trained = $14,
			good_with_kids = $15, good_with_pets = $16, status = $17,
			adoption_fee = $18, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		animal.ID, animal.Name, animal.Species, animal.Breed, animal.Age,
		animal.Gender, animal.Size, animal.Weight, animal.Color,
		animal.Description, animal.MedicalHistory, animal.Vaccinated,
		animal.SpayedNeutered, animal.HouseTrained, animal.GoodWithKids,
		animal.GoodWithPets, animal.Status, animal.AdoptionFee,
	).Scan(&animal.UpdatedAt)
}

func (r *animalRepository) UpdateStatus(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status domain.AnimalStatus) error {
	query := `UPDATE animals SET status = $2, updated_at = NOW() WHERE id = $1`
	_, err := tx.ExecContext(ctx, query, id, status)
	return err
}

func (r *animalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM animals WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *animalRepository) ListAvailable(ctx context.Context, params domain.PaginationParams) ([]domain.Animal, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM animals WHERE status = 'AVAILABLE'`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + animalColumns + `
		FROM animals a
		JOIN shelters s ON s.id = a.shelter_id
		WHERE a.status = 'AVAILABLE'
		ORDER BY a.created_at DESC
		LIMIT $1 OFFSET $2`

	var animals []domain.Animal
	if err := r.db.SelectContext(ctx, &animals, query, params.PageSize, params.Offset()); err != nil {
		return nil, 0, err
	}
	if err := r.loadImagesForList(ctx, animals); err != nil {
		return nil, 0, err
	}
	return animals, total, nil
}

func (r *animalRepository) Search(ctx context.Context, term string, params domain.PaginationParams) ([]domain.Animal, int64, error) {
	pattern := "%" + term + "%"
	cond := goqu.And(
		goqu.I("a.status").Eq(string(domain.AnimalAvailable)),
		goqu.Or(
			goqu.I("a.name").ILike(pattern),
			goqu.I("a.breed").ILike(pattern),
			goqu.I("a.description").ILike(pattern),
		),
	)
	return r.listAvailableWhere(ctx, cond, params)
}

func (r *animalRepository) Filter(ctx context.Context, filter domain.AnimalFilter, params domain.PaginationParams) ([]domain.Animal, int64, error) {
	conds := []goqu.Expression{
		goqu.I("a.status").Eq(string(domain.AnimalAvailable)),
	}

	if filter.Species != nil {
		conds = append(conds, goqu.I("a.species").Eq(string(*filter.Species)))
	}
	if filter.Breed != nil {
		conds = append(conds, goqu.I("a.breed").ILike("%"+*filter.Breed+"%"))
	}
	if filter.Size != nil {
		conds = append(conds, goqu.I("a.size").Eq(string(*filter.Size)))
	}
	if filter.Gender != nil {
		conds = append(conds, goqu.I("a.gender").Eq(string(*filter.Gender)))
	}
	if filter.MinAge != nil {
		conds = append(conds, goqu.I("a.age").Gte(*filter.MinAge))
	}
	if filter.MaxAge != nil {
		conds = append(conds, goqu.I("a.age").Lte(*filter.MaxAge))
	}
	if filter.GoodWithKids != nil {
		conds = append(conds, goqu.I("a.good_with_kids").Eq(*filter.GoodWithKids))
	}
	if filter.GoodWithPets != nil {
		conds = append(conds, goqu.I("a.good_with_pets").Eq(*filter.GoodWithPets))
	}
	if filter.HouseTrained != nil {
		conds = append(conds, goqu.I("a.house_trained").Eq(*filter.HouseTrained))
	}

	return r.listAvailableWhere(ctx, goqu.And(conds...), params)
}

func (r *animalRepository) listAvailableWhere(ctx context.Context, cond goqu.Expression, params domain.PaginationParams) ([]domain.Animal, int64, error) {
	params.Validate()

	countSQL, countArgs, err := goqu.Dialect("postgres").
		From(goqu.T("animals").As("a")).
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
		From(goqu.T("animals").As("a")).
		Join(goqu.T("shelters").As("s"), goqu.On(goqu.I("s.id").Eq(goqu.I("a.shelter_id")))).
		Select(goqu.L(animalColumns)).
		Where(cond).
		Order(goqu.I("a.created_at").Desc()).
		Limit(uint(params.PageSize)).
		Offset(uint(params.Offset())).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, err
	}

	var animals []domain.Animal
	if err := r.db.SelectContext(ctx, &animals, listSQL, listArgs...); err != nil {
		return nil, 0, err
	}
	if err := r.loadImagesForList(ctx, animals); err != nil {
		return nil, 0, err
	}
	return animals, total, nil
}

func (r *animalRepository) ListByShelter(ctx context.Context, shelterID uuid.UUID, params domain.PaginationParams) ([]domain.Animal, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM animals WHERE shelter_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, shelterID); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + animalColumns + `
		FROM animals a
		JOIN shelters s ON s.id = a.shelter_id
		WHERE a.shelter_id = $1
		ORDER BY a.created_at DESC
		LIMIT $2 OFFSET $3`

	var animals []domain.Animal
	if err := r.db.SelectContext(ctx, &animals, query, shelterID, params.PageSize, params.Offset()); err != nil {
		return nil, 0, err
	}
	if err := r.loadImagesForList(ctx, animals); err != nil {
		return nil, 0, err
	}
	return animals, total, nil
}

func (r *animalRepository) AddImage(ctx context.Context, animalID uuid.UUID, imageURL string) error {
	query := `
		INSERT INTO animal_images (animal_id, image_url)
		VALUES ($1, $2)
		ON CONFLICT (animal_id, image_url) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, animalID, imageURL)
	return err
}

func (r *animalRepository) RemoveImage(ctx context.Context, animalID uuid.UUID, imageURL string) error {
	query := `DELETE FROM animal_images WHERE animal_id = $1 AND image_url = $2`
	_, err := r.db.ExecContext(ctx, query, animalID, imageURL)
	return err
}

func (r *animalRepository) loadImagesForList(ctx context.Context, animals []domain.Animal) error {
	refs := make([]*domain.Animal, len(animals))
	for i := range animals {
		refs[i] = &animals[i]
	}
	return r.loadImages(ctx, refs)
}

func (r *animalRepository) loadImages(ctx context.Context, animals []*domain.Animal) error {
	if len(animals) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(animals))
	byID := make(map[uuid.UUID]*domain.Animal, len(animals))
	for i, a := range animals {
		ids[i] = a.ID
		byID[a.ID] = a
		a.ImageURLs = []string{}
	}

	query := `SELECT animal_id, image_url FROM animal_images WHERE animal_id = ANY($1) ORDER BY image_url`
	rows, err := r.db.QueryxContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var animalID uuid.UUID
		var url string
		if err := rows.Scan(&animalID, &url); err != nil {
			return err
		}
		if a, ok := byID[animalID]; ok {
			a.ImageURLs = append(a.ImageURLs, url)
		}
	}
	return rows.Err()
}
