package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	UserID    uuid.UUID        `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	AnimalID  *uuid.UUID       `json:"animal_id,omitempty" db:"animal_id"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifAdoptionRequest  NotificationType = "ADOPTION_REQUEST"
	NotifAdoptionApproved NotificationType = "ADOPTION_APPROVED"
	NotifAdoptionRejected NotificationType = "ADOPTION_REJECTED"
	NotifMessageReceived  NotificationType = "MESSAGE_RECEIVED"
	NotifFavoriteAdopted  NotificationType = "FAVORITE_ADOPTED"
	NotifSystem           NotificationType = "SYSTEM_NOTIFICATION"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotifAdoptionRequest, NotifAdoptionApproved, NotifAdoptionRejected,
		NotifMessageReceived, NotifFavoriteAdopted, NotifSystem:
		return true
	default:
		return false
	}
}

type CreateNotificationInput struct {
	UserID   uuid.UUID        `json:"user_id" validate:"required"`
	Type     NotificationType `json:"type" validate:"required"`
	Title    string           `json:"title" validate:"required,max=100"`
	Message  string           `json:"message" validate:"required,max=500"`
	AnimalID *uuid.UUID       `json:"animal_id,omitempty"`
}
