package domain

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is a bookmark, unique per (user, animal) pair.
type Favorite struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	AnimalID  uuid.UUID `json:"animal_id" db:"animal_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
