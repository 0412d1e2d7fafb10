package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tailpair/internal/domain"
	"tailpair/internal/middleware"
	"tailpair/internal/service/animal"
	"tailpair/internal/service/shelter"
)

type AnimalHandler struct {
	animalService  animal.Service
	shelterService shelter.Service
}

func NewAnimalHandler(animalService animal.Service, shelterService shelter.Service) *AnimalHandler {
	return &AnimalHandler{
		animalService:  animalService,
		shelterService: shelterService,
	}
}

// callerShelter resolves the shelter managed by the authenticated user.
func (h *AnimalHandler) callerShelter(c *fiber.Ctx) (*domain.Shelter, error) {
	userID := middleware.GetCurrentUserID(c)

	s, err := h.shelterService.GetByAdminID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrShelterNotFound) {
			return nil, middleware.Forbidden("User does not manage a shelter")
		}
		return nil, err
	}
	return s, nil
}

func (h *AnimalHandler) Create(c *fiber.Ctx) error {
	s, err := h.callerShelter(c)
	if err != nil {
		return err
	}

	var input domain.CreateAnimalInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Name == "" {
		return middleware.BadRequest("name is required")
	}

	a, err := h.animalService.Create(c.Context(), s.ID, input)
	if err != nil {
		if errors.Is(err, animal.ErrInvalidInput) {
			return middleware.BadRequest("Invalid animal attributes")
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

func (h *AnimalHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var viewerID *uuid.UUID
	if userID := middleware.GetCurrentUserID(c); userID != uuid.Nil {
		viewerID = &userID
	}

	a, err := h.animalService.GetByID(c.Context(), id, viewerID)
	if err != nil {
		if errors.Is(err, domain.ErrAnimalNotFound) {
			return middleware.NotFound("Animal not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(a)
}

func (h *AnimalHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	s, err := h.callerShelter(c)
	if err != nil {
		return err
	}

	var input domain.UpdateAnimalInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	a, err := h.animalService.Update(c.Context(), id, s.ID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAnimalNotFound):
			return middleware.NotFound("Animal not found")
		case errors.Is(err, animal.ErrNotOwner):
			return middleware.Forbidden("Animal does not belong to this shelter")
		case errors.Is(err, animal.ErrInvalidInput):
			return middleware.BadRequest("Invalid animal attributes")
		case errors.Is(err, animal.ErrStatusManaged):
			return middleware.BadRequest("Animal status cannot be changed while an adoption is in progress")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(a)
}

func (h *AnimalHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	s, err := h.callerShelter(c)
	if err != nil {
		return err
	}

	if err := h.animalService.Delete(c.Context(), id, s.ID); err != nil {
		switch {
		case errors.Is(err, domain.ErrAnimalNotFound):
			return middleware.NotFound("Animal not found")
		case errors.Is(err, animal.ErrNotOwner):
			return middleware.Forbidden("Animal does not belong to this shelter")
		}
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AnimalHandler) ListAvailable(c *fiber.Ctx) error {
	result, err := h.animalService.ListAvailable(c.Context(), getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AnimalHandler) Search(c *fiber.Ctx) error {
	term := c.Query("q")
	if term == "" {
		return middleware.BadRequest("Search term is required")
	}

	result, err := h.animalService.Search(c.Context(), term, getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AnimalHandler) Filter(c *fiber.Ctx) error {
	var filter domain.AnimalFilter
	if err := c.QueryParser(&filter); err != nil {
		return middleware.BadRequest("Invalid filter parameters")
	}
	if filter.Species != nil && !filter.Species.IsValid() {
		return middleware.BadRequest("Invalid species")
	}
	if filter.Gender != nil && !filter.Gender.IsValid() {
		return middleware.BadRequest("Invalid gender")
	}
	if filter.Size != nil && !filter.Size.IsValid() {
		return middleware.BadRequest("Invalid size")
	}

	result, err := h.animalService.Filter(c.Context(), filter, getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AnimalHandler) ListByShelter(c *fiber.Ctx) error {
	shelterID, err := parseUUIDParam(c, "shelterId")
	if err != nil {
		return err
	}

	result, err := h.animalService.ListByShelter(c.Context(), shelterID, getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AnimalHandler) UploadImage(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	s, err := h.callerShelter(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return middleware.BadRequest("image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read image file")
	}
	defer file.Close()

	imageURL, err := h.animalService.UploadImage(c.Context(), id, s.ID, fileHeader.Filename, fileHeader.Size, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAnimalNotFound):
			return middleware.NotFound("Animal not found")
		case errors.Is(err, animal.ErrNotOwner):
			return middleware.Forbidden("Animal does not belong to this shelter")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"image_url": imageURL,
	})
}

func (h *AnimalHandler) RemoveImage(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	s, err := h.callerShelter(c)
	if err != nil {
		return err
	}

	var input struct {
		ImageURL string `json:"image_url"`
	}
	if err := c.BodyParser(&input); err != nil || input.ImageURL == "" {
		return middleware.BadRequest("image_url is required")
	}

	if err := h.animalService.RemoveImage(c.Context(), id, s.ID, input.ImageURL); err != nil {
		switch {
		case errors.Is(err, domain.ErrAnimalNotFound):
			return middleware.NotFound("Animal not found")
		case errors.Is(err, animal.ErrNotOwner):
			return middleware.Forbidden("Animal does not belong to this shelter")
		}
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
