package domain

import (
	"time"

	"github.com/google/uuid"
)

type Shelter struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Address     string    `json:"address" db:"address"`
	City        string    `json:"city" db:"city"`
	State       string    `json:"state" db:"state"`
	ZipCode     string    `json:"zip_code" db:"zip_code"`
	Phone       *string   `json:"phone,omitempty" db:"phone"`
	Email       *string   `json:"email,omitempty" db:"email"`
	Website     *string   `json:"website,omitempty" db:"website"`
	Verified    bool      `json:"verified" db:"verified"`
	AdminID     uuid.UUID `json:"admin_id" db:"admin_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// Populated by joined queries, not stored on shelters.
	AdminName   string `json:"admin_name,omitempty" db:"admin_name"`
	AnimalCount int64  `json:"animal_count" db:"animal_count"`
}

type CreateShelterInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty"`
	Address     string  `json:"address" validate:"required,max=200"`
	City        string  `json:"city" validate:"required,max=50"`
	State       string  `json:"state" validate:"required,max=50"`
	ZipCode     string  `json:"zip_code" validate:"required,max=10"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	Website     *string `json:"website,omitempty"`
}

type UpdateShelterInput struct {
	Name        *string  `json:"name,omitempty"`
	Description **string `json:"description,omitempty"`
	Address     *string  `json:"address,omitempty"`
	City        *string  `json:"city,omitempty"`
	State       *string  `json:"state,omitempty"`
	ZipCode     *string  `json:"zip_code,omitempty"`
	Phone       **string `json:"phone,omitempty"`
	Email       **string `json:"email,omitempty"`
	Website     **string `json:"website,omitempty"`
}
