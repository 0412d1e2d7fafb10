package notification

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

var ErrInvalidType = errors.New("invalid notification type")

type Service interface {
	Create(ctx context.Context, input domain.CreateNotificationInput) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	ListByUserAndType(ctx context.Context, userID uuid.UUID, notifType domain.NotificationType, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Notification, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	NotifyMessageReceived(ctx context.Context, sender *domain.User, msg *domain.Message) error
	InvalidateUnreadCount(ctx context.Context, userID uuid.UUID)
}

type service struct {
	notifRepo   repository.NotificationRepository
	redisClient *redis.Client
}

func NewService(notifRepo repository.NotificationRepository, redisClient *redis.Client) Service {
	return &service{
		notifRepo:   notifRepo,
		redisClient: redisClient,
	}
}

// AdoptionRequested builds the notification sent to a shelter admin when a new
// adoption request comes in. Callers persist it inside the same transaction as
// the request itself.
func AdoptionRequested(recipientID uuid.UUID, adopter *domain.User, animal *domain.Animal) *domain.Notification {
	return &domain.Notification{
		ID:       uuid.New(),
		UserID:   recipientID,
		Type:     domain.NotifAdoptionRequest,
		Title:    "New Adoption Request",
		Message:  fmt.Sprintf("%s %s has requested to adopt %s", adopter.FirstName, adopter.LastName, animal.Name),
		AnimalID: &animal.ID,
	}
}

func AdoptionApproved(recipientID, animalID uuid.UUID, animalName string) *domain.Notification {
	return &domain.Notification{
		ID:       uuid.New(),
		UserID:   recipientID,
		Type:     domain.NotifAdoptionApproved,
		Title:    "Adoption Request Approved",
		Message:  fmt.Sprintf("Your adoption request for %s has been approved!", animalName),
		AnimalID: &animalID,
	}
}

func AdoptionRejected(recipientID, animalID uuid.UUID, animalName, reason string) *domain.Notification {
	return &domain.Notification{
		ID:       uuid.New(),
		UserID:   recipientID,
		Type:     domain.NotifAdoptionRejected,
		Title:    "Adoption Request Rejected",
		Message:  fmt.Sprintf("Your adoption request for %s has been rejected. Reason: %s", animalName, reason),
		AnimalID: &animalID,
	}
}

func FavoriteAdopted(recipientID, animalID uuid.UUID, animalName string) *domain.Notification {
	return &domain.Notification{
		ID:       uuid.New(),
		UserID:   recipientID,
		Type:     domain.NotifFavoriteAdopted,
		Title:    "Favorite Animal Adopted",
		Message:  fmt.Sprintf("Your favorite animal %s has been adopted by someone else.", animalName),
		AnimalID: &animalID,
	}
}

// Create persists an arbitrary notification. Lifecycle transitions build
// theirs through the composers below; this path is for admin-sent ones.
func (s *service) Create(ctx context.Context, input domain.CreateNotificationInput) (*domain.Notification, error) {
	if !input.Type.IsValid() {
		return nil, ErrInvalidType
	}

	notif := &domain.Notification{
		ID:       uuid.New(),
		UserID:   input.UserID,
		Type:     input.Type,
		Title:    input.Title,
		Message:  input.Message,
		AnimalID: input.AnimalID,
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.InvalidateUnreadCount(ctx, input.UserID)
	return notif, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	params.Validate()

	notifs, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, fmt.Errorf("failed to list notifications: %w", err)
	}

	return domain.NewPaginatedResponse(notifs, params.Page, params.PageSize, total), nil
}

func (s *service) ListByUserAndType(ctx context.Context, userID uuid.UUID, notifType domain.NotificationType, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	params.Validate()

	if !notifType.IsValid() {
		return domain.PaginatedResponse[domain.Notification]{}, ErrInvalidType
	}

	notifs, total, err := s.notifRepo.ListByUserAndType(ctx, userID, notifType, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, fmt.Errorf("failed to list notifications: %w", err)
	}

	return domain.NewPaginatedResponse(notifs, params.Page, params.PageSize, total), nil
}

func (s *service) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Notification, error) {
	notif, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	if notif == nil || notif.UserID != userID {
		return nil, domain.ErrNotificationNotFound
	}
	return notif, nil
}

func (s *service) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	notif, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if notif.IsRead {
		return nil
	}

	if err := s.notifRepo.MarkAsRead(ctx, id); err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	s.InvalidateUnreadCount(ctx, userID)
	return nil
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}

	if err := s.notifRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	s.InvalidateUnreadCount(ctx, userID)
	return nil
}

func (s *service) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	cacheKey := unreadCountKey(userID)

	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Int64(); err == nil {
			return cached, nil
		}
	}

	count, err := s.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	if s.redisClient != nil {
		if err := s.redisClient.Set(ctx, cacheKey, count, 5*time.Minute).Err(); err != nil {
			log.Printf("Warning: failed to cache unread notification count: %v", err)
		}
	}

	return count, nil
}

func (s *service) NotifyMessageReceived(ctx context.Context, sender *domain.User, msg *domain.Message) error {
	notif := &domain.Notification{
		ID:       uuid.New(),
		UserID:   msg.RecipientID,
		Type:     domain.NotifMessageReceived,
		Title:    "New Message",
		Message:  fmt.Sprintf("You have a new message from %s %s: %s", sender.FirstName, sender.LastName, msg.Content),
		AnimalID: msg.AnimalID,
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return fmt.Errorf("failed to create message notification: %w", err)
	}
	s.InvalidateUnreadCount(ctx, msg.RecipientID)
	return nil
}

func (s *service) InvalidateUnreadCount(ctx context.Context, userID uuid.UUID) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, unreadCountKey(userID)).Err(); err != nil {
		log.Printf("Warning: failed to invalidate unread count cache: %v", err)
	}
}

func unreadCountKey(userID uuid.UUID) string {
	return fmt.Sprintf("notifications:unread:%s", userID)
}
