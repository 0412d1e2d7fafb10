package unit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tailpair/internal/domain"
	"tailpair/internal/service/notification"
	"tailpair/tests/mocks"
)

func TestNotificationService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockNotifRepo, nil)

		mockNotifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == userID && n.Type == domain.NotifSystem && n.Title == "Maintenance"
		})).Return(nil).Once()

		notif, err := svc.Create(ctx, domain.CreateNotificationInput{
			UserID:  userID,
			Type:    domain.NotifSystem,
			Title:   "Maintenance",
			Message: "The site will be down tonight.",
		})

		assert.NoError(t, err)
		assert.NotNil(t, notif)
		mockNotifRepo.AssertExpectations(t)
	})

	t.Run("Invalid Type", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockNotifRepo, nil)

		notif, err := svc.Create(ctx, domain.CreateNotificationInput{
			UserID:  userID,
			Type:    domain.NotificationType("NONSENSE"),
			Title:   "x",
			Message: "y",
		})

		assert.ErrorIs(t, err, notification.ErrInvalidType)
		assert.Nil(t, notif)
		mockNotifRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestNotificationService_GetByID(t *testing.T) {
	ctx := context.Background()
	notifID := uuid.New()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockNotifRepo, nil)

		mockNotifRepo.On("GetByID", ctx, notifID).Return(&domain.Notification{ID: notifID, UserID: userID}, nil).Once()

		notif, err := svc.GetByID(ctx, notifID, userID)

		assert.NoError(t, err)
		assert.Equal(t, notifID, notif.ID)
	})

	t.Run("Someone Elses Notification Reads As Not Found", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockNotifRepo, nil)

		mockNotifRepo.On("GetByID", ctx, notifID).Return(&domain.Notification{ID: notifID, UserID: uuid.New()}, nil).Once()

		notif, err := svc.GetByID(ctx, notifID, userID)

		assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
		assert.Nil(t, notif)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockNotifRepo, nil)

		mockNotifRepo.On("GetByID", ctx, notifID).Return(nil, nil).Once()

		notif, err := svc.GetByID(ctx, notifID, userID)

		assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
		assert.Nil(t, notif)
	})
}

func TestNotificationService_MarkAsRead(t *testing.T) {
	ctx := context.Background()
	notifID := uuid.New()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockNotifRepo, nil)

		mockNotifRepo.On("GetByID", ctx, notifID).Return(&domain.Notification{ID: notifID, UserID: userID}, nil).Once()
		mockNotifRepo.On("MarkAsRead", ctx, notifID).Return(nil).Once()

		err := svc.MarkAsRead(ctx, notifID, userID)

		assert.NoError(t, err)
		mockNotifRepo.AssertExpectations(t)
	})

	t.Run("Already Read Is Idempotent", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockNotifRepo, nil)

		mockNotifRepo.On("GetByID", ctx, notifID).Return(&domain.Notification{ID: notifID, UserID: userID, IsRead: true}, nil).Once()

		err := svc.MarkAsRead(ctx, notifID, userID)

		assert.NoError(t, err)
		mockNotifRepo.AssertNotCalled(t, "MarkAsRead", mock.Anything, mock.Anything)
	})
}

func TestNotificationService_ListByUserAndType(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	params := domain.DefaultPagination()

	t.Run("Success", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockNotifRepo, nil)

		notifs := []domain.Notification{{ID: uuid.New(), UserID: userID, Type: domain.NotifAdoptionApproved}}
		mockNotifRepo.On("ListByUserAndType", ctx, userID, domain.NotifAdoptionApproved, params).Return(notifs, int64(1), nil).Once()

		resp, err := svc.ListByUserAndType(ctx, userID, domain.NotifAdoptionApproved, params)

		assert.NoError(t, err)
		assert.Len(t, resp.Data, 1)
		assert.Equal(t, int64(1), resp.TotalItems)
	})

	t.Run("Invalid Type", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockNotifRepo, nil)

		_, err := svc.ListByUserAndType(ctx, userID, domain.NotificationType("NONSENSE"), params)

		assert.ErrorIs(t, err, notification.ErrInvalidType)
		mockNotifRepo.AssertNotCalled(t, "ListByUserAndType", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestNotificationService_NotifyMessageReceived(t *testing.T) {
	ctx := context.Background()
	recipientID := uuid.New()

	mockNotifRepo := new(mocks.NotificationRepository)
	svc := notification.NewService(mockNotifRepo, nil)

	sender := &domain.User{ID: uuid.New(), FirstName: "Ada", LastName: "Lovelace"}
	msg := &domain.Message{ID: uuid.New(), RecipientID: recipientID, Content: "Is Rex still available?"}

	mockNotifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == recipientID &&
			n.Type == domain.NotifMessageReceived &&
			n.Title == "New Message" &&
			n.Message == "You have a new message from Ada Lovelace: Is Rex still available?"
	})).Return(nil).Once()

	err := svc.NotifyMessageReceived(ctx, sender, msg)

	assert.NoError(t, err)
	mockNotifRepo.AssertExpectations(t)
}

func TestNotificationComposers(t *testing.T) {
	recipientID := uuid.New()
	animalID := uuid.New()

	t.Run("Adoption Requested", func(t *testing.T) {
		adopter := &domain.User{FirstName: "Ada", LastName: "Lovelace"}
		animal := &domain.Animal{ID: animalID, Name: "Rex"}

		n := notification.AdoptionRequested(recipientID, adopter, animal)

		assert.Equal(t, recipientID, n.UserID)
		assert.Equal(t, domain.NotifAdoptionRequest, n.Type)
		assert.Equal(t, "New Adoption Request", n.Title)
		assert.Equal(t, "Ada Lovelace has requested to adopt Rex", n.Message)
		assert.Equal(t, animalID, *n.AnimalID)
	})

	t.Run("Adoption Rejected Carries Reason", func(t *testing.T) {
		n := notification.AdoptionRejected(recipientID, animalID, "Rex", "already placed")

		assert.Equal(t, domain.NotifAdoptionRejected, n.Type)
		assert.Equal(t, "Your adoption request for Rex has been rejected. Reason: already placed", n.Message)
	})

	t.Run("Favorite Adopted", func(t *testing.T) {
		n := notification.FavoriteAdopted(recipientID, animalID, "Rex")

		assert.Equal(t, domain.NotifFavoriteAdopted, n.Type)
		assert.Equal(t, "Your favorite animal Rex has been adopted by someone else.", n.Message)
	})
}
