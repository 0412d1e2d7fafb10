package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Tx           Transactor
	User         UserRepository
	Shelter      ShelterRepository
	Animal       AnimalRepository
	Adoption     AdoptionRepository
	Favorite     FavoriteRepository
	Message      MessageRepository
	Notification NotificationRepository
	Session      SessionRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Tx:           NewTransactor(db),
		User:         NewUserRepository(db),
		Shelter:      NewShelterRepository(db),
		Animal:       NewAnimalRepository(db),
		Adoption:     NewAdoptionRepository(db),
		Favorite:     NewFavoriteRepository(db),
		Message:      NewMessageRepository(db),
		Notification: NewNotificationRepository(db),
		Session:      NewSessionRepository(db),
	}
}
