package domain

import (
	"time"

	"github.com/google/uuid"
)

type Animal struct {
	ID             uuid.UUID    `json:"id" db:"id"`
	Name           string       `json:"name" db:"name"`
	Species        Species      `json:"species" db:"species"`
	Breed          *string      `json:"breed,omitempty" db:"breed"`
	Age            int          `json:"age" db:"age"`
	Gender         Gender       `json:"gender" db:"gender"`
	Size           AnimalSize   `json:"size" db:"size"`
	Weight         *float64     `json:"weight,omitempty" db:"weight"`
	Color          *string      `json:"color,omitempty" db:"color"`
	Description    *string      `json:"description,omitempty" db:"description"`
	MedicalHistory *string      `json:"medical_history,omitempty" db:"medical_history"`
	Vaccinated     bool         `json:"vaccinated" db:"vaccinated"`
	SpayedNeutered bool         `json:"spayed_neutered" db:"spayed_neutered"`
	HouseTrained   bool         `json:"house_trained" db:"house_trained"`
	GoodWithKids   bool         `json:"good_with_kids" db:"good_with_kids"`
	GoodWithPets   bool         `json:"good_with_pets" db:"good_with_pets"`
	Status         AnimalStatus `json:"status" db:"status"`
	AdoptionFee    float64      `json:"adoption_fee" db:"adoption_fee"`
	ShelterID      uuid.UUID    `json:"shelter_id" db:"shelter_id"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" db:"updated_at"`

	// Stored in the animal_images join table.
	ImageURLs []string `json:"image_urls" db:"-"`

	// Populated by joined queries / enrichment, not stored on animals.
	ShelterName string `json:"shelter_name,omitempty" db:"shelter_name"`
	IsFavorited *bool  `json:"is_favorited,omitempty" db:"-"`
}

type Species string

const (
	SpeciesDog       Species = "DOG"
	SpeciesCat       Species = "CAT"
	SpeciesRabbit    Species = "RABBIT"
	SpeciesBird      Species = "BIRD"
	SpeciesHamster   Species = "HAMSTER"
	SpeciesGuineaPig Species = "GUINEA_PIG"
	SpeciesFerret    Species = "FERRET"
	SpeciesOther     Species = "OTHER"
)

func (s Species) IsValid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesRabbit, SpeciesBird,
		SpeciesHamster, SpeciesGuineaPig, SpeciesFerret, SpeciesOther:
		return true
	default:
		return false
	}
}

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

type AnimalSize string

const (
	SizeSmall      AnimalSize = "SMALL"
	SizeMedium     AnimalSize = "MEDIUM"
	SizeLarge      AnimalSize = "LARGE"
	SizeExtraLarge AnimalSize = "EXTRA_LARGE"
)

func (s AnimalSize) IsValid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge:
		return true
	default:
		return false
	}
}

type AnimalStatus string

const (
	AnimalAvailable    AnimalStatus = "AVAILABLE"
	AnimalPending      AnimalStatus = "PENDING"
	AnimalAdopted      AnimalStatus = "ADOPTED"
	AnimalNotAvailable AnimalStatus = "NOT_AVAILABLE"
)

func (s AnimalStatus) IsValid() bool {
	switch s {
	case AnimalAvailable, AnimalPending, AnimalAdopted, AnimalNotAvailable:
		return true
	default:
		return false
	}
}

type CreateAnimalInput struct {
	Name           string     `json:"name" validate:"required,max=50"`
	Species        Species    `json:"species" validate:"required"`
	Breed          *string    `json:"breed,omitempty"`
	Age            int        `json:"age" validate:"required,min=0"`
	Gender         Gender     `json:"gender" validate:"required"`
	Size           AnimalSize `json:"size" validate:"required"`
	Weight         *float64   `json:"weight,omitempty"`
	Color          *string    `json:"color,omitempty"`
	Description    *string    `json:"description,omitempty"`
	MedicalHistory *string    `json:"medical_history,omitempty"`
	Vaccinated     bool       `json:"vaccinated"`
	SpayedNeutered bool       `json:"spayed_neutered"`
	HouseTrained   bool       `json:"house_trained"`
	GoodWithKids   bool       `json:"good_with_kids"`
	GoodWithPets   bool       `json:"good_with_pets"`
	AdoptionFee    float64    `json:"adoption_fee" validate:"min=0"`
	ImageURLs      []string   `json:"image_urls,omitempty"`
}

// UpdateAnimalInput carries a partial update. Nil fields are left untouched.
type UpdateAnimalInput struct {
	Name           *string       `json:"name,omitempty" validate:"omitempty,max=50"`
	Species        *Species      `json:"species,omitempty"`
	Breed          *string       `json:"breed,omitempty"`
	Age            *int          `json:"age,omitempty" validate:"omitempty,min=0"`
	Gender         *Gender       `json:"gender,omitempty"`
	Size           *AnimalSize   `json:"size,omitempty"`
	Weight         *float64      `json:"weight,omitempty"`
	Color          *string       `json:"color,omitempty"`
	Description    *string       `json:"description,omitempty"`
	MedicalHistory *string       `json:"medical_history,omitempty"`
	Vaccinated     *bool         `json:"vaccinated,omitempty"`
	SpayedNeutered *bool         `json:"spayed_neutered,omitempty"`
	HouseTrained   *bool         `json:"house_trained,omitempty"`
	GoodWithKids   *bool         `json:"good_with_kids,omitempty"`
	GoodWithPets   *bool         `json:"good_with_pets,omitempty"`
	AdoptionFee    *float64      `json:"adoption_fee,omitempty" validate:"omitempty,min=0"`
	Status         *AnimalStatus `json:"status,omitempty"`
}

// AnimalFilter holds the optional conjunctive predicates for browsing
// available animals. Nil fields are skipped.
type AnimalFilter struct {
	Species      *Species    `query:"species"`
	Breed        *string     `query:"breed"`
	Size         *AnimalSize `query:"size"`
	Gender       *Gender     `query:"gender"`
	MinAge       *int        `query:"min_age"`
	MaxAge       *int        `query:"max_age"`
	GoodWithKids *bool       `query:"good_with_kids"`
	GoodWithPets *bool       `query:"good_with_pets"`
	HouseTrained *bool       `query:"house_trained"`
}
