package unit_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailpair/internal/domain"
	"tailpair/internal/repository"
)

// adoptionJoinColumns mirrors what the adoption queries actually select:
// the adoptions table itself plus the adopter/animal/shelter fields joined
// in from the related tables. ShelterID in particular lives on animals,
// not on adoptions, so the lock query must join to produce it.
var adoptionJoinColumns = []string{
	"id", "status", "notes", "rejection_reason", "approved_at", "completed_at",
	"adopter_id", "animal_id", "created_at", "updated_at",
	"adopter_name", "adopter_email", "animal_name", "shelter_id", "shelter_name",
}

func TestAdoptionRepository_GetByIDForUpdate(t *testing.T) {
	ctx := context.Background()

	newRepo := func(t *testing.T) (repository.AdoptionRepository, *sqlx.DB, sqlmock.Sqlmock) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { mockDB.Close() })

		db := sqlx.NewDb(mockDB, "sqlmock")
		return repository.NewAdoptionRepository(db), db, mock
	}

	t.Run("Returns Joined Shelter And Presentation Fields", func(t *testing.T) {
		repo, db, mock := newRepo(t)

		adoptionID := uuid.New()
		adopterID := uuid.New()
		animalID := uuid.New()
		shelterID := uuid.New()
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`(?s)SELECT\s+ad\.\*,.+a\.shelter_id AS shelter_id,.+FROM adoptions ad\s+JOIN users u ON u\.id = ad\.adopter_id\s+JOIN animals a ON a\.id = ad\.animal_id\s+JOIN shelters s ON s\.id = a\.shelter_id\s+WHERE ad\.id = \$1\s+FOR UPDATE OF ad`).
			WithArgs(adoptionID).
			WillReturnRows(sqlmock.NewRows(adoptionJoinColumns).AddRow(
				adoptionID.String(), "PENDING", nil, nil, nil, nil,
				adopterID.String(), animalID.String(), now, now,
				"Ada Lovelace", "ada@example.com", "Rex", shelterID.String(), "Happy Paws",
			))

		tx, err := db.Beginx()
		require.NoError(t, err)

		a, err := repo.GetByIDForUpdate(ctx, tx, adoptionID)

		require.NoError(t, err)
		require.NotNil(t, a)
		assert.Equal(t, shelterID, a.ShelterID)
		assert.Equal(t, "Rex", a.AnimalName)
		assert.Equal(t, "Ada Lovelace", a.AdopterName)
		assert.Equal(t, "ada@example.com", a.AdopterEmail)
		assert.Equal(t, "Happy Paws", a.ShelterName)
		assert.Equal(t, domain.AdoptionPending, a.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Rows Means Nil Not Error", func(t *testing.T) {
		repo, db, mock := newRepo(t)

		adoptionID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`(?s)FOR UPDATE OF ad`).
			WithArgs(adoptionID).
			WillReturnRows(sqlmock.NewRows(adoptionJoinColumns))

		tx, err := db.Beginx()
		require.NoError(t, err)

		a, err := repo.GetByIDForUpdate(ctx, tx, adoptionID)

		assert.NoError(t, err)
		assert.Nil(t, a)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
