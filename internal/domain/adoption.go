package domain

import (
	"time"

	"github.com/google/uuid"
)

// Adoption is one adopter's request for one animal. It advances PENDING →
// APPROVED → COMPLETED, or diverts to REJECTED / CANCELLED. COMPLETED,
// REJECTED and CANCELLED are terminal.
type Adoption struct {
	ID              uuid.UUID      `json:"id" db:"id"`
	Status          AdoptionStatus `json:"status" db:"status"`
	Notes           *string        `json:"notes,omitempty" db:"notes"`
	RejectionReason *string        `json:"rejection_reason,omitempty" db:"rejection_reason"`
	ApprovedAt      *time.Time     `json:"approved_at,omitempty" db:"approved_at"`
	CompletedAt     *time.Time     `json:"completed_at,omitempty" db:"completed_at"`
	AdopterID       uuid.UUID      `json:"adopter_id" db:"adopter_id"`
	AnimalID        uuid.UUID      `json:"animal_id" db:"animal_id"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`

	// Populated by joined queries, not stored on adoptions.
	AdopterName  string    `json:"adopter_name,omitempty" db:"adopter_name"`
	AdopterEmail string    `json:"adopter_email,omitempty" db:"adopter_email"`
	AnimalName   string    `json:"animal_name,omitempty" db:"animal_name"`
	ShelterID    uuid.UUID `json:"shelter_id,omitempty" db:"shelter_id"`
	ShelterName  string    `json:"shelter_name,omitempty" db:"shelter_name"`
}

type AdoptionStatus string

const (
	AdoptionPending   AdoptionStatus = "PENDING"
	AdoptionApproved  AdoptionStatus = "APPROVED"
	AdoptionRejected  AdoptionStatus = "REJECTED"
	AdoptionCompleted AdoptionStatus = "COMPLETED"
	AdoptionCancelled AdoptionStatus = "CANCELLED"
)

func (s AdoptionStatus) IsValid() bool {
	switch s {
	case AdoptionPending, AdoptionApproved, AdoptionRejected, AdoptionCompleted, AdoptionCancelled:
		return true
	default:
		return false
	}
}

func (s AdoptionStatus) IsTerminal() bool {
	switch s {
	case AdoptionCompleted, AdoptionRejected, AdoptionCancelled:
		return true
	default:
		return false
	}
}

type CreateAdoptionInput struct {
	AnimalID uuid.UUID `json:"animal_id" validate:"required"`
	Notes    *string   `json:"notes,omitempty" validate:"omitempty,max=1000"`
}
