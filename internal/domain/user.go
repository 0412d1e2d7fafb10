package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	Address      *string   `json:"address,omitempty" db:"address"`
	City         *string   `json:"city,omitempty" db:"city"`
	State        *string   `json:"state,omitempty" db:"state"`
	ZipCode      *string   `json:"zip_code,omitempty" db:"zip_code"`
	Role         string    `json:"role" db:"role"`
	Enabled      bool      `json:"enabled" db:"enabled"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type RegisterInput struct {
	Username  string  `json:"username" validate:"required,min=3,max=50"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8"`
	FirstName string  `json:"first_name" validate:"required,max=50"`
	LastName  string  `json:"last_name" validate:"required,max=50"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	City      *string `json:"city,omitempty"`
	State     *string `json:"state,omitempty"`
	ZipCode   *string `json:"zip_code,omitempty"`
	Role      string  `json:"role" validate:"omitempty,oneof=ADOPTER SHELTER_ADMIN"`
}

type UpdateUserInput struct {
	Username  *string  `json:"username,omitempty"`
	Email     *string  `json:"email,omitempty"`
	FirstName *string  `json:"first_name,omitempty"`
	LastName  *string  `json:"last_name,omitempty"`
	Phone     **string `json:"phone,omitempty"`
	Address   **string `json:"address,omitempty"`
	City      **string `json:"city,omitempty"`
	State     **string `json:"state,omitempty"`
	ZipCode   **string `json:"zip_code,omitempty"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserRole string

const (
	RoleAdopter      UserRole = "ADOPTER"
	RoleShelterAdmin UserRole = "SHELTER_ADMIN"
	RoleAdmin        UserRole = "ADMIN"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdopter, RoleShelterAdmin, RoleAdmin:
		return true
	default:
		return false
	}
}

// HasRole reports whether the user satisfies the required role. ADMIN
// satisfies everything, SHELTER_ADMIN additionally satisfies ADOPTER-level
// access so shelter staff can browse like any signed-in user.
func (u *User) HasRole(requiredRole string) bool {
	switch requiredRole {
	case string(RoleAdmin):
		return u.Role == string(RoleAdmin)
	case string(RoleShelterAdmin):
		return u.Role == string(RoleShelterAdmin) || u.Role == string(RoleAdmin)
	case string(RoleAdopter):
		return UserRole(u.Role).IsValid()
	default:
		return false
	}
}
