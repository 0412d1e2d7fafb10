package unit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tailpair/internal/config"
	"tailpair/internal/domain"
	"tailpair/internal/service/animal"
	"tailpair/tests/mocks"
)

func newAnimalService(animalRepo *mocks.AnimalRepository, favoriteRepo *mocks.FavoriteRepository) animal.Service {
	return animal.NewService(animalRepo, favoriteRepo, nil, &config.Config{MinIOBucket: "tailpair-animal-images"})
}

func TestAnimalService_Create(t *testing.T) {
	ctx := context.Background()
	shelterID := uuid.New()

	input := domain.CreateAnimalInput{
		Name:        "Rex",
		Species:     domain.SpeciesDog,
		Age:         3,
		Gender:      domain.GenderMale,
		Size:        domain.SizeLarge,
		AdoptionFee: 150,
	}

	t.Run("Success Starts Available", func(t *testing.T) {
		mockAnimalRepo := new(mocks.AnimalRepository)
		svc := newAnimalService(mockAnimalRepo, new(mocks.FavoriteRepository))

		mockAnimalRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.Animal) bool {
			return a.Name == "Rex" && a.Status == domain.AnimalAvailable && a.ShelterID == shelterID
		})).Return(nil).Once()
		mockAnimalRepo.On("GetByID", ctx, mock.Anything).Return(&domain.Animal{Name: "Rex", Status: domain.AnimalAvailable, ShelterID: shelterID}, nil).Once()

		a, err := svc.Create(ctx, shelterID, input)

		assert.NoError(t, err)
		assert.Equal(t, domain.AnimalAvailable, a.Status)
		mockAnimalRepo.AssertExpectations(t)
	})

	t.Run("Invalid Species", func(t *testing.T) {
		mockAnimalRepo := new(mocks.AnimalRepository)
		svc := newAnimalService(mockAnimalRepo, new(mocks.FavoriteRepository))

		bad := input
		bad.Species = domain.Species("DRAGON")

		a, err := svc.Create(ctx, shelterID, bad)

		assert.ErrorIs(t, err, animal.ErrInvalidInput)
		assert.Nil(t, a)
		mockAnimalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Negative Age", func(t *testing.T) {
		mockAnimalRepo := new(mocks.AnimalRepository)
		svc := newAnimalService(mockAnimalRepo, new(mocks.FavoriteRepository))

		bad := input
		bad.Age = -1

		a, err := svc.Create(ctx, shelterID, bad)

		assert.ErrorIs(t, err, animal.ErrInvalidInput)
		assert.Nil(t, a)
	})
}

func TestAnimalService_GetByID(t *testing.T) {
	ctx := context.Background()
	animalID := uuid.New()
	viewerID := uuid.New()

	stored := func() *domain.Animal {
		return &domain.Animal{ID: animalID, Name: "Rex", Status: domain.AnimalAvailable}
	}

	t.Run("Anonymous Viewer Gets No Favorited Flag", func(t *testing.T) {
		mockAnimalRepo := new(mocks.AnimalRepository)
		mockFavoriteRepo := new(mocks.FavoriteRepository)
		svc := newAnimalService(mockAnimalRepo, mockFavoriteRepo)

		mockAnimalRepo.On("GetByID", ctx, animalID).Return(stored(), nil).Once()

		a, err := svc.GetByID(ctx, animalID, nil)

		assert.NoError(t, err)
		assert.Nil(t, a.IsFavorited)
		mockFavoriteRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Authenticated Viewer Gets Favorited Flag", func(t *testing.T) {
		mockAnimalRepo := new(mocks.AnimalRepository)
		mockFavoriteRepo := new(mocks.FavoriteRepository)
		svc := newAnimalService(mockAnimalRepo, mockFavoriteRepo)

		mockAnimalRepo.On("GetByID", ctx, animalID).Return(stored(), nil).Once()
		mockFavoriteRepo.On("Exists", ctx, viewerID, animalID).Return(true, nil).Once()

		a, err := svc.GetByID(ctx, animalID, &viewerID)

		assert.NoError(t, err)
		assert.NotNil(t, a.IsFavorited)
		assert.True(t, *a.IsFavorited)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockAnimalRepo := new(mocks.AnimalRepository)
		svc := newAnimalService(mockAnimalRepo, new(mocks.FavoriteRepository))

		mockAnimalRepo.On("GetByID", ctx, animalID).Return(nil, nil).Once()

		a, err := svc.GetByID(ctx, animalID, nil)

		assert.ErrorIs(t, err, domain.ErrAnimalNotFound)
		assert.Nil(t, a)
	})
}

func TestAnimalService_Update(t *testing.T) {
	ctx := context.Background()
	animalID := uuid.New()
	shelterID := uuid.New()

	stored := func(status domain.AnimalStatus) *domain.Animal {
		return &domain.Animal{ID: animalID, Name: "Rex", Status: status, ShelterID: shelterID}
	}

	t.Run("Success", func(t *testing.T) {
		mockAnimalRepo := new(mocks.AnimalRepository)
		svc := newAnimalService(mockAnimalRepo, new(mocks.FavoriteRepository))

		newName := "Rexy"
		mockAnimalRepo.On("GetByID", ctx, animalID).Return(stored(domain.AnimalAvailable), nil).Twice()
		mockAnimalRepo.On("Update", ctx, mock.MatchedBy(func(a *domain.Animal) bool {
			return a.Name == "Rexy"
		})).Return(nil).Once()

		_, err := svc.Update(ctx, animalID, shelterID, domain.UpdateAnimalInput{Name: &newName})

		assert.NoError(t, err)
		mockAnimalRepo.AssertExpectations(t)
	})

	t.Run("Wrong Shelter", func(t *testing.T) {
		mockAnimalRepo := new(mocks.AnimalRepository)
		svc := newAnimalService(mockAnimalRepo, new(mocks.FavoriteRepository))

		mockAnimalRepo.On("GetByID", ctx, animalID).Return(stored(domain.AnimalAvailable), nil).Once()

		newName := "Rexy"
		a, err := svc.Update(ctx, animalID, uuid.New(), domain.UpdateAnimalInput{Name: &newName})

		assert.ErrorIs(t, err, animal.ErrNotOwner)
		assert.Nil(t, a)
		mockAnimalRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Manual Switch To Unavailable", func(t *testing.T) {
		mockAnimalRepo := new(mocks.AnimalRepository)
		svc := newAnimalService(mockAnimalRepo, new(mocks.FavoriteRepository))

		status := domain.AnimalNotAvailable
		mockAnimalRepo.On("GetByID", ctx, animalID).Return(stored(domain.AnimalAvailable), nil).Twice()
		mockAnimalRepo.On("Update", ctx, mock.MatchedBy(func(a *domain.Animal) bool {
			return a.Status == domain.AnimalNotAvailable
		})).Return(nil).Once()

		_, err := svc.Update(ctx, animalID, shelterID, domain.UpdateAnimalInput{Status: &status})

		assert.NoError(t, err)
	})

	t.Run("Cannot Set Lifecycle Status Manually", func(t *testing.T) {
		mockAnimalRepo := new(mocks.AnimalRepository)
		svc := newAnimalService(mockAnimalRepo, new(mocks.FavoriteRepository))

		status := domain.AnimalAdopted
		mockAnimalRepo.On("GetByID", ctx, animalID).Return(stored(domain.AnimalAvailable), nil).Once()

		a, err := svc.Update(ctx, animalID, shelterID, domain.UpdateAnimalInput{Status: &status})

		assert.ErrorIs(t, err, animal.ErrStatusManaged)
		assert.Nil(t, a)
	})

	t.Run("Cannot Touch Status While Pending", func(t *testing.T) {
		mockAnimalRepo := new(mocks.AnimalRepository)
		svc := newAnimalService(mockAnimalRepo, new(mocks.FavoriteRepository))

		status := domain.AnimalNotAvailable
		mockAnimalRepo.On("GetByID", ctx, animalID).Return(stored(domain.AnimalPending), nil).Once()

		a, err := svc.Update(ctx, animalID, shelterID, domain.UpdateAnimalInput{Status: &status})

		assert.ErrorIs(t, err, animal.ErrStatusManaged)
		assert.Nil(t, a)
	})
}

func TestAnimalService_Delete(t *testing.T) {
	ctx := context.Background()
	animalID := uuid.New()
	shelterID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockAnimalRepo := new(mocks.AnimalRepository)
		svc := newAnimalService(mockAnimalRepo, new(mocks.FavoriteRepository))

		mockAnimalRepo.On("GetByID", ctx, animalID).Return(&domain.Animal{ID: animalID, ShelterID: shelterID}, nil).Once()
		mockAnimalRepo.On("Delete", ctx, animalID).Return(nil).Once()

		err := svc.Delete(ctx, animalID, shelterID)

		assert.NoError(t, err)
		mockAnimalRepo.AssertExpectations(t)
	})

	t.Run("Wrong Shelter", func(t *testing.T) {
		mockAnimalRepo := new(mocks.AnimalRepository)
		svc := newAnimalService(mockAnimalRepo, new(mocks.FavoriteRepository))

		mockAnimalRepo.On("GetByID", ctx, animalID).Return(&domain.Animal{ID: animalID, ShelterID: shelterID}, nil).Once()

		err := svc.Delete(ctx, animalID, uuid.New())

		assert.ErrorIs(t, err, animal.ErrNotOwner)
		mockAnimalRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
