package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tailpair/internal/domain"
	"tailpair/internal/middleware"
	"tailpair/internal/service/favorite"
)

type FavoriteHandler struct {
	favoriteService favorite.Service
}

func NewFavoriteHandler(favoriteService favorite.Service) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

func (h *FavoriteHandler) Add(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	animalID, err := parseUUIDParam(c, "animalId")
	if err != nil {
		return err
	}

	f, err := h.favoriteService.Add(c.Context(), userID, animalID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return middleware.NotFound("User not found")
		case errors.Is(err, domain.ErrAnimalNotFound):
			return middleware.NotFound("Animal not found")
		case errors.Is(err, favorite.ErrAlreadyFavorited):
			return middleware.Conflict("Animal is already favorited")
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(f)
}

func (h *FavoriteHandler) Remove(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	animalID, err := parseUUIDParam(c, "animalId")
	if err != nil {
		return err
	}

	if err := h.favoriteService.Remove(c.Context(), userID, animalID); err != nil {
		if errors.Is(err, domain.ErrFavoriteNotFound) {
			return middleware.NotFound("Favorite not found")
		}
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *FavoriteHandler) Check(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	animalID, err := parseUUIDParam(c, "animalId")
	if err != nil {
		return err
	}

	favorited, err := h.favoriteService.IsFavorited(c.Context(), userID, animalID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"animal_id":    animalID,
		"is_favorited": favorited,
	})
}

func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	result, err := h.favoriteService.ListByUser(c.Context(), userID, getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *FavoriteHandler) Count(c *fiber.Ctx) error {
	animalID, err := parseUUIDParam(c, "animalId")
	if err != nil {
		return err
	}

	count, err := h.favoriteService.CountByAnimal(c.Context(), animalID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"animal_id": animalID,
		"count":     count,
	})
}
