package unit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tailpair/internal/domain"
	"tailpair/internal/service/adoption"
	"tailpair/tests/mocks"
)

type adoptionFixture struct {
	txer         *mocks.Transactor
	adoptionRepo *mocks.AdoptionRepository
	animalRepo   *mocks.AnimalRepository
	userRepo     *mocks.UserRepository
	shelterRepo  *mocks.ShelterRepository
	favoriteRepo *mocks.FavoriteRepository
	notifRepo    *mocks.NotificationRepository
	notifService *mocks.NotificationService
	emailService *mocks.EmailService
	svc          adoption.Service
}

func newAdoptionFixture() *adoptionFixture {
	f := &adoptionFixture{
		txer:         new(mocks.Transactor),
		adoptionRepo: new(mocks.AdoptionRepository),
		animalRepo:   new(mocks.AnimalRepository),
		userRepo:     new(mocks.UserRepository),
		shelterRepo:  new(mocks.ShelterRepository),
		favoriteRepo: new(mocks.FavoriteRepository),
		notifRepo:    new(mocks.NotificationRepository),
		notifService: new(mocks.NotificationService),
		emailService: new(mocks.EmailService),
	}
	f.svc = adoption.NewService(
		f.txer,
		f.adoptionRepo,
		f.animalRepo,
		f.userRepo,
		f.shelterRepo,
		f.favoriteRepo,
		f.notifRepo,
		f.notifService,
		f.emailService,
		nil,
	)
	return f
}

func TestAdoptionService_Create(t *testing.T) {
	ctx := context.Background()
	adopterID := uuid.New()
	animalID := uuid.New()
	shelterID := uuid.New()
	adminID := uuid.New()

	adopter := &domain.User{ID: adopterID, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	animal := &domain.Animal{ID: animalID, Name: "Rex", Status: domain.AnimalAvailable, ShelterID: shelterID}

	t.Run("Success", func(t *testing.T) {
		f := newAdoptionFixture()

		f.userRepo.On("GetByID", ctx, adopterID).Return(adopter, nil).Once()
		f.txer.On("Transact", ctx, mock.Anything).Return(nil).Once()
		f.animalRepo.On("GetByIDForUpdate", ctx, mock.Anything, animalID).Return(animal, nil).Once()
		f.adoptionRepo.On("ExistsByAdopterAndAnimal", ctx, mock.Anything, adopterID, animalID).Return(false, nil).Once()
		f.shelterRepo.On("GetByID", ctx, shelterID).Return(&domain.Shelter{ID: shelterID, AdminID: adminID}, nil).Once()
		f.adoptionRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(a *domain.Adoption) bool {
			return a.Status == domain.AdoptionPending && a.AdopterID == adopterID && a.AnimalID == animalID
		})).Return(nil).Once()
		f.animalRepo.On("UpdateStatus", ctx, mock.Anything, animalID, domain.AnimalPending).Return(nil).Once()
		f.notifRepo.On("CreateInTx", ctx, mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == adminID &&
				n.Type == domain.NotifAdoptionRequest &&
				n.Title == "New Adoption Request" &&
				n.Message == "Ada Lovelace has requested to adopt Rex"
		})).Return(nil).Once()
		f.notifService.On("InvalidateUnreadCount", ctx, adminID).Return().Once()
		f.adoptionRepo.On("GetByID", ctx, mock.Anything).Return(&domain.Adoption{Status: domain.AdoptionPending, AdopterID: adopterID, AnimalID: animalID}, nil).Once()

		a, err := f.svc.Create(ctx, adopterID, domain.CreateAdoptionInput{AnimalID: animalID})

		assert.NoError(t, err)
		assert.NotNil(t, a)
		assert.Equal(t, domain.AdoptionPending, a.Status)

		f.adoptionRepo.AssertExpectations(t)
		f.animalRepo.AssertExpectations(t)
		f.notifRepo.AssertExpectations(t)
	})

	t.Run("Animal Not Available", func(t *testing.T) {
		f := newAdoptionFixture()

		taken := &domain.Animal{ID: animalID, Name: "Rex", Status: domain.AnimalPending, ShelterID: shelterID}

		f.userRepo.On("GetByID", ctx, adopterID).Return(adopter, nil).Once()
		f.txer.On("Transact", ctx, mock.Anything).Return(nil).Once()
		f.animalRepo.On("GetByIDForUpdate", ctx, mock.Anything, animalID).Return(taken, nil).Once()

		a, err := f.svc.Create(ctx, adopterID, domain.CreateAdoptionInput{AnimalID: animalID})

		assert.ErrorIs(t, err, adoption.ErrAnimalNotAvailable)
		assert.Nil(t, a)
		f.adoptionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Duplicate Request In Any Status", func(t *testing.T) {
		f := newAdoptionFixture()

		f.userRepo.On("GetByID", ctx, adopterID).Return(adopter, nil).Once()
		f.txer.On("Transact", ctx, mock.Anything).Return(nil).Once()
		f.animalRepo.On("GetByIDForUpdate", ctx, mock.Anything, animalID).Return(animal, nil).Once()
		f.adoptionRepo.On("ExistsByAdopterAndAnimal", ctx, mock.Anything, adopterID, animalID).Return(true, nil).Once()

		a, err := f.svc.Create(ctx, adopterID, domain.CreateAdoptionInput{AnimalID: animalID})

		assert.ErrorIs(t, err, adoption.ErrDuplicateRequest)
		assert.Nil(t, a)
		f.adoptionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Animal Not Found", func(t *testing.T) {
		f := newAdoptionFixture()

		f.userRepo.On("GetByID", ctx, adopterID).Return(adopter, nil).Once()
		f.txer.On("Transact", ctx, mock.Anything).Return(nil).Once()
		f.animalRepo.On("GetByIDForUpdate", ctx, mock.Anything, animalID).Return(nil, nil).Once()

		a, err := f.svc.Create(ctx, adopterID, domain.CreateAdoptionInput{AnimalID: animalID})

		assert.ErrorIs(t, err, domain.ErrAnimalNotFound)
		assert.Nil(t, a)
	})

	t.Run("Adopter Not Found", func(t *testing.T) {
		f := newAdoptionFixture()

		f.userRepo.On("GetByID", ctx, adopterID).Return(nil, nil).Once()

		a, err := f.svc.Create(ctx, adopterID, domain.CreateAdoptionInput{AnimalID: animalID})

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.Nil(t, a)
	})
}

func TestAdoptionService_Approve(t *testing.T) {
	ctx := context.Background()
	adoptionID := uuid.New()
	adopterID := uuid.New()
	animalID := uuid.New()
	shelterID := uuid.New()

	pending := func() *domain.Adoption {
		return &domain.Adoption{
			ID:           adoptionID,
			Status:       domain.AdoptionPending,
			AdopterID:    adopterID,
			AnimalID:     animalID,
			ShelterID:    shelterID,
			AnimalName:   "Rex",
			AdopterName:  "Ada Lovelace",
			AdopterEmail: "ada@example.com",
			ShelterName:  "Happy Paws",
		}
	}

	t.Run("Success", func(t *testing.T) {
		f := newAdoptionFixture()

		f.txer.On("Transact", ctx, mock.Anything).Return(nil).Once()
		f.adoptionRepo.On("GetByIDForUpdate", ctx, mock.Anything, adoptionID).Return(pending(), nil).Once()
		f.adoptionRepo.On("UpdateStatus", ctx, mock.Anything, mock.MatchedBy(func(a *domain.Adoption) bool {
			return a.Status == domain.AdoptionApproved && a.ApprovedAt != nil
		})).Return(nil).Once()
		f.notifRepo.On("CreateInTx", ctx, mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == adopterID &&
				n.Type == domain.NotifAdoptionApproved &&
				n.Message == "Your adoption request for Rex has been approved!"
		})).Return(nil).Once()
		f.notifService.On("InvalidateUnreadCount", ctx, adopterID).Return().Once()
		f.emailService.On("SendAdoptionApproved", mock.Anything, "ada@example.com", "Ada Lovelace", "Rex", "Happy Paws").Return(nil).Maybe()

		a, err := f.svc.Approve(ctx, adoptionID, shelterID)

		assert.NoError(t, err)
		assert.Equal(t, domain.AdoptionApproved, a.Status)
		assert.NotNil(t, a.ApprovedAt)

		// The animal stays PENDING; only complete moves it.
		f.animalRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Wrong Shelter", func(t *testing.T) {
		f := newAdoptionFixture()

		f.txer.On("Transact", ctx, mock.Anything).Return(nil).Once()
		f.adoptionRepo.On("GetByIDForUpdate", ctx, mock.Anything, adoptionID).Return(pending(), nil).Once()

		a, err := f.svc.Approve(ctx, adoptionID, uuid.New())

		assert.ErrorIs(t, err, adoption.ErrWrongShelter)
		assert.Nil(t, a)
	})

	t.Run("Not Pending", func(t *testing.T) {
		f := newAdoptionFixture()

		rejected := pending()
		rejected.Status = domain.AdoptionRejected

		f.txer.On("Transact", ctx, mock.Anything).Return(nil).Once()
		f.adoptionRepo.On("GetByIDForUpdate", ctx, mock.Anything, adoptionID).Return(rejected, nil).Once()

		a, err := f.svc.Approve(ctx, adoptionID, shelterID)

		assert.ErrorIs(t, err, adoption.ErrInvalidState)
		assert.Nil(t, a)
	})

	t.Run("Not Found", func(t *testing.T) {
		f := newAdoptionFixture()

		f.txer.On("Transact", ctx, mock.Anything).Return(nil).Once()
		f.adoptionRepo.On("GetByIDForUpdate", ctx, mock.Anything, adoptionID).Return(nil, nil).Once()

		a, err := f.svc.Approve(ctx, adoptionID, shelterID)

		assert.ErrorIs(t, err, domain.ErrAdoptionNotFound)
		assert.Nil(t, a)
	})
}

func TestAdoptionService_Reject(t *testing.T) {
	ctx := context.Background()
	adoptionID := uuid.New()
	adopterID := uuid.New()
	animalID := uuid.New()
	shelterID := uuid.New()

	pending := &domain.Adoption{
		ID:         adoptionID,
		Status:     domain.AdoptionPending,
		AdopterID:  adopterID,
		AnimalID:   animalID,
		ShelterID:  shelterID,
		AnimalName: "Rex",
	}

	t.Run("Success", func(t *testing.T) {
		f := newAdoptionFixture()

		f.txer.On("Transact", ctx, mock.Anything).Return(nil).Once()
		f.adoptionRepo.On("GetByIDForUpdate", ctx, mock.Anything, adoptionID).Return(pending, nil).Once()
		f.adoptionRepo.On("UpdateStatus", ctx, mock.Anything, mock.MatchedBy(func(a *domain.Adoption) bool {
			return a.Status == domain.AdoptionRejected && a.RejectionReason != nil && *a.RejectionReason == "already placed"
		})).Return(nil).Once()
		f.animalRepo.On("UpdateStatus", ctx, mock.Anything, animalID, domain.AnimalAvailable).Return(nil).Once()
		f.notifRepo.On("CreateInTx", ctx, mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == adopterID &&
				n.Type == domain.NotifAdoptionRejected &&
				n.Message == "Your adoption request for Rex has been rejected. Reason: already placed"
		})).Return(nil).Once()
		f.notifService.On("InvalidateUnreadCount", ctx, adopterID).Return().Once()
		f.emailService.On("SendAdoptionRejected", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

		a, err := f.svc.Reject(ctx, adoptionID, shelterID, "already placed")

		assert.NoError(t, err)
		assert.Equal(t, domain.AdoptionRejected, a.Status)

		f.animalRepo.AssertExpectations(t)
		f.notifRepo.AssertExpectations(t)
	})
}

func TestAdoptionService_Complete(t *testing.T) {
	ctx := context.Background()
	adoptionID := uuid.New()
	adopterID := uuid.New()
	animalID := uuid.New()
	shelterID := uuid.New()

	approved := func() *domain.Adoption {
		return &domain.Adoption{
			ID:         adoptionID,
			Status:     domain.AdoptionApproved,
			AdopterID:  adopterID,
			AnimalID:   animalID,
			ShelterID:  shelterID,
			AnimalName: "Rex",
		}
	}

	t.Run("Success With Favorite Fanout", func(t *testing.T) {
		f := newAdoptionFixture()

		otherUser := uuid.New()

		f.txer.On("Transact", ctx, mock.Anything).Return(nil).Once()
		f.adoptionRepo.On("GetByIDForUpdate", ctx, mock.Anything, adoptionID).Return(approved(), nil).Once()
		f.adoptionRepo.On("UpdateStatus", ctx, mock.Anything, mock.MatchedBy(func(a *domain.Adoption) bool {
			return a.Status == domain.AdoptionCompleted && a.CompletedAt != nil
		})).Return(nil).Once()
		f.animalRepo.On("UpdateStatus", ctx, mock.Anything, animalID, domain.AnimalAdopted).Return(nil).Once()

		// The adopter favorited their own animal; they must not be told.
		f.favoriteRepo.On("ListUserIDsByAnimal", ctx, animalID).Return([]uuid.UUID{adopterID, otherUser}, nil).Once()
		f.notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == otherUser &&
				n.Type == domain.NotifFavoriteAdopted &&
				n.Message == "Your favorite animal Rex has been adopted by someone else."
		})).Return(nil).Once()
		f.notifService.On("InvalidateUnreadCount", ctx, otherUser).Return().Once()

		a, err := f.svc.Complete(ctx, adoptionID, shelterID)

		assert.NoError(t, err)
		assert.Equal(t, domain.AdoptionCompleted, a.Status)
		assert.NotNil(t, a.CompletedAt)

		f.favoriteRepo.AssertExpectations(t)
		f.notifRepo.AssertExpectations(t)
	})

	t.Run("Complete Before Approve Fails", func(t *testing.T) {
		f := newAdoptionFixture()

		notYet := approved()
		notYet.Status = domain.AdoptionPending

		f.txer.On("Transact", ctx, mock.Anything).Return(nil).Once()
		f.adoptionRepo.On("GetByIDForUpdate", ctx, mock.Anything, adoptionID).Return(notYet, nil).Once()

		a, err := f.svc.Complete(ctx, adoptionID, shelterID)

		assert.ErrorIs(t, err, adoption.ErrInvalidState)
		assert.Nil(t, a)
		f.animalRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAdoptionService_Cancel(t *testing.T) {
	ctx := context.Background()
	adoptionID := uuid.New()
	adopterID := uuid.New()
	animalID := uuid.New()

	base := func(status domain.AdoptionStatus) *domain.Adoption {
		return &domain.Adoption{
			ID:        adoptionID,
			Status:    status,
			AdopterID: adopterID,
			AnimalID:  animalID,
		}
	}

	t.Run("Pending Animal Reverts To Available", func(t *testing.T) {
		f := newAdoptionFixture()

		f.txer.On("Transact", ctx, mock.Anything).Return(nil).Once()
		f.adoptionRepo.On("GetByIDForUpdate", ctx, mock.Anything, adoptionID).Return(base(domain.AdoptionPending), nil).Once()
		f.adoptionRepo.On("UpdateStatus", ctx, mock.Anything, mock.MatchedBy(func(a *domain.Adoption) bool {
			return a.Status == domain.AdoptionCancelled
		})).Return(nil).Once()
		f.animalRepo.On("GetByIDForUpdate", ctx, mock.Anything, animalID).Return(&domain.Animal{ID: animalID, Status: domain.AnimalPending}, nil).Once()
		f.animalRepo.On("UpdateStatus", ctx, mock.Anything, animalID, domain.AnimalAvailable).Return(nil).Once()
		f.adoptionRepo.On("GetByID", ctx, adoptionID).Return(&domain.Adoption{
			ID:         adoptionID,
			Status:     domain.AdoptionCancelled,
			AdopterID:  adopterID,
			AnimalID:   animalID,
			AnimalName: "Rex",
		}, nil).Once()

		a, err := f.svc.Cancel(ctx, adoptionID, adopterID)

		assert.NoError(t, err)
		assert.Equal(t, domain.AdoptionCancelled, a.Status)
		assert.Equal(t, "Rex", a.AnimalName)
		f.animalRepo.AssertExpectations(t)
	})

	t.Run("Adopted Animal Untouched", func(t *testing.T) {
		f := newAdoptionFixture()

		f.txer.On("Transact", ctx, mock.Anything).Return(nil).Once()
		f.adoptionRepo.On("GetByIDForUpdate", ctx, mock.Anything, adoptionID).Return(base(domain.AdoptionApproved), nil).Once()
		f.adoptionRepo.On("UpdateStatus", ctx, mock.Anything, mock.Anything).Return(nil).Once()
		f.animalRepo.On("GetByIDForUpdate", ctx, mock.Anything, animalID).Return(&domain.Animal{ID: animalID, Status: domain.AnimalAdopted}, nil).Once()
		f.adoptionRepo.On("GetByID", ctx, adoptionID).Return(&domain.Adoption{
			ID:        adoptionID,
			Status:    domain.AdoptionCancelled,
			AdopterID: adopterID,
			AnimalID:  animalID,
		}, nil).Once()

		a, err := f.svc.Cancel(ctx, adoptionID, adopterID)

		assert.NoError(t, err)
		assert.Equal(t, domain.AdoptionCancelled, a.Status)
		f.animalRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Completed Cannot Be Cancelled", func(t *testing.T) {
		f := newAdoptionFixture()

		f.txer.On("Transact", ctx, mock.Anything).Return(nil).Once()
		f.adoptionRepo.On("GetByIDForUpdate", ctx, mock.Anything, adoptionID).Return(base(domain.AdoptionCompleted), nil).Once()

		a, err := f.svc.Cancel(ctx, adoptionID, adopterID)

		assert.ErrorIs(t, err, adoption.ErrInvalidState)
		assert.Nil(t, a)
	})

	t.Run("Not The Adopter", func(t *testing.T) {
		f := newAdoptionFixture()

		f.txer.On("Transact", ctx, mock.Anything).Return(nil).Once()
		f.adoptionRepo.On("GetByIDForUpdate", ctx, mock.Anything, adoptionID).Return(base(domain.AdoptionPending), nil).Once()

		a, err := f.svc.Cancel(ctx, adoptionID, uuid.New())

		assert.ErrorIs(t, err, adoption.ErrNotAdopter)
		assert.Nil(t, a)
	})
}

func TestAdoptionService_TransactionFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	adopterID := uuid.New()
	animalID := uuid.New()
	shelterID := uuid.New()

	f := newAdoptionFixture()

	adopter := &domain.User{ID: adopterID, FirstName: "Ada", LastName: "Lovelace"}
	animal := &domain.Animal{ID: animalID, Name: "Rex", Status: domain.AnimalAvailable, ShelterID: shelterID}

	f.userRepo.On("GetByID", ctx, adopterID).Return(adopter, nil).Once()
	f.txer.On("Transact", ctx, mock.Anything).Return(nil).Once()
	f.animalRepo.On("GetByIDForUpdate", ctx, mock.Anything, animalID).Return(animal, nil).Once()
	f.adoptionRepo.On("ExistsByAdopterAndAnimal", ctx, mock.Anything, adopterID, animalID).Return(false, nil).Once()
	f.shelterRepo.On("GetByID", ctx, shelterID).Return(&domain.Shelter{ID: shelterID, AdminID: uuid.New()}, nil).Once()
	f.adoptionRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()

	a, err := f.svc.Create(ctx, adopterID, domain.CreateAdoptionInput{AnimalID: animalID})

	assert.Error(t, err)
	assert.Nil(t, a)
	f.animalRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.notifRepo.AssertNotCalled(t, "CreateInTx", mock.Anything, mock.Anything, mock.Anything)
}
