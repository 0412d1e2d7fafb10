package domain

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Subject     string     `json:"subject" db:"subject"`
	Content     string     `json:"content" db:"content"`
	IsRead      bool       `json:"is_read" db:"is_read"`
	SenderID    uuid.UUID  `json:"sender_id" db:"sender_id"`
	RecipientID uuid.UUID  `json:"recipient_id" db:"recipient_id"`
	AnimalID    *uuid.UUID `json:"animal_id,omitempty" db:"animal_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`

	// Populated by joined queries, not stored on messages.
	SenderName    string  `json:"sender_name,omitempty" db:"sender_name"`
	RecipientName string  `json:"recipient_name,omitempty" db:"recipient_name"`
	AnimalName    *string `json:"animal_name,omitempty" db:"animal_name"`
}

type SendMessageInput struct {
	RecipientID uuid.UUID  `json:"recipient_id" validate:"required"`
	Subject     string     `json:"subject" validate:"required,max=100"`
	Content     string     `json:"content" validate:"required,max=2000"`
	AnimalID    *uuid.UUID `json:"animal_id,omitempty"`
}
