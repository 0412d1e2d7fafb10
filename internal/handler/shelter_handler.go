package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tailpair/internal/domain"
	"tailpair/internal/middleware"
	"tailpair/internal/service/adoption"
	"tailpair/internal/service/shelter"
)

type ShelterHandler struct {
	shelterService  shelter.Service
	adoptionService adoption.Service
}

func NewShelterHandler(shelterService shelter.Service, adoptionService adoption.Service) *ShelterHandler {
	return &ShelterHandler{
		shelterService:  shelterService,
		adoptionService: adoptionService,
	}
}

func (h *ShelterHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.CreateShelterInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Name == "" || input.Address == "" || input.City == "" || input.State == "" || input.ZipCode == "" {
		return middleware.BadRequest("name, address, city, state and zip_code are required")
	}

	s, err := h.shelterService.Create(c.Context(), userID, input)
	if err != nil {
		if errors.Is(err, shelter.ErrAlreadyExists) {
			return middleware.Conflict("User already manages a shelter")
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

func (h *ShelterHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	s, err := h.shelterService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrShelterNotFound) {
			return middleware.NotFound("Shelter not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(s)
}

func (h *ShelterHandler) GetMine(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	s, err := h.shelterService.GetByAdminID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrShelterNotFound) {
			return middleware.NotFound("Shelter not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(s)
}

func (h *ShelterHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	userID := middleware.GetCurrentUserID(c)

	var input domain.UpdateShelterInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	s, err := h.shelterService.Update(c.Context(), id, userID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrShelterNotFound):
			return middleware.NotFound("Shelter not found")
		case errors.Is(err, shelter.ErrNotAdmin):
			return middleware.Forbidden("Shelter does not belong to this user")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(s)
}

func (h *ShelterHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.shelterService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrShelterNotFound) {
			return middleware.NotFound("Shelter not found")
		}
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ShelterHandler) Verify(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var input struct {
		Verified bool `json:"verified"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	s, err := h.shelterService.Verify(c.Context(), id, input.Verified)
	if err != nil {
		if errors.Is(err, domain.ErrShelterNotFound) {
			return middleware.NotFound("Shelter not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(s)
}

func (h *ShelterHandler) List(c *fiber.Ctx) error {
	verifiedOnly := c.QueryBool("verified", false)

	result, err := h.shelterService.List(c.Context(), verifiedOnly, getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ShelterHandler) Search(c *fiber.Ctx) error {
	term := c.Query("q")
	if term == "" {
		return middleware.BadRequest("Search term is required")
	}

	result, err := h.shelterService.Search(c.Context(), term, getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ShelterHandler) ByLocation(c *fiber.Ctx) error {
	city := c.Query("city")
	state := c.Query("state")
	zipCode := c.Query("zip_code")

	if zipCode != "" {
		shelters, err := h.shelterService.ListByZipCode(c.Context(), zipCode)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(shelters)
	}

	if city == "" && state == "" {
		return middleware.BadRequest("city, state or zip_code is required")
	}

	shelters, err := h.shelterService.ListByLocation(c.Context(), city, state)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(shelters)
}

// PendingAdoptionsCount powers the shelter dashboard badge.
func (h *ShelterHandler) PendingAdoptionsCount(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	count, err := h.adoptionService.CountPendingByShelter(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"shelter_id": id,
		"pending":    count,
	})
}
