package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tailpair/internal/domain"
	"tailpair/internal/middleware"
	"tailpair/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Shelter      *ShelterHandler
	Animal       *AnimalHandler
	Adoption     *AdoptionHandler
	Favorite     *FavoriteHandler
	Message      *MessageHandler
	Notification *NotificationHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Shelter:      NewShelterHandler(services.Shelter, services.Adoption),
		Animal:       NewAnimalHandler(services.Animal, services.Shelter),
		Adoption:     NewAdoptionHandler(services.Adoption, services.Shelter),
		Favorite:     NewFavoriteHandler(services.Favorite),
		Message:      NewMessageHandler(services.Message),
		Notification: NewNotificationHandler(services.Notification),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()
	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}
	return params
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid " + name)
	}
	return id, nil
}
