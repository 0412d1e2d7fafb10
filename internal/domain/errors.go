package domain

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrShelterNotFound      = errors.New("shelter not found")
	ErrAnimalNotFound       = errors.New("animal not found")
	ErrAdoptionNotFound     = errors.New("adoption not found")
	ErrFavoriteNotFound     = errors.New("favorite not found")
	ErrMessageNotFound      = errors.New("message not found")
	ErrNotificationNotFound = errors.New("notification not found")
)
