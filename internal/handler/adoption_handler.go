package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tailpair/internal/domain"
	"tailpair/internal/middleware"
	"tailpair/internal/service/adoption"
	"tailpair/internal/service/shelter"
)

type AdoptionHandler struct {
	adoptionService adoption.Service
	shelterService  shelter.Service
}

func NewAdoptionHandler(adoptionService adoption.Service, shelterService shelter.Service) *AdoptionHandler {
	return &AdoptionHandler{
		adoptionService: adoptionService,
		shelterService:  shelterService,
	}
}

func translateAdoptionError(err error) error {
	switch {
	case errors.Is(err, domain.ErrAdoptionNotFound):
		return middleware.NotFound("Adoption not found")
	case errors.Is(err, domain.ErrAnimalNotFound):
		return middleware.NotFound("Animal not found")
	case errors.Is(err, domain.ErrUserNotFound):
		return middleware.NotFound("User not found")
	case errors.Is(err, domain.ErrShelterNotFound):
		return middleware.NotFound("Shelter not found")
	case errors.Is(err, adoption.ErrAnimalNotAvailable):
		return middleware.BadRequest("Animal is not available for adoption")
	case errors.Is(err, adoption.ErrDuplicateRequest):
		return middleware.Conflict("An adoption request for this animal already exists")
	case errors.Is(err, adoption.ErrWrongShelter):
		return middleware.Forbidden("Adoption does not belong to this shelter")
	case errors.Is(err, adoption.ErrNotAdopter):
		return middleware.Forbidden("Adoption does not belong to this user")
	case errors.Is(err, adoption.ErrInvalidState):
		return middleware.BadRequest("Adoption is not in a valid state for this operation")
	}
	return err
}

// callerShelter resolves the shelter managed by the authenticated user.
func (h *AdoptionHandler) callerShelter(c *fiber.Ctx) (*domain.Shelter, error) {
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

func (h *AdoptionHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.CreateAdoptionInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	a, err := h.adoptionService.Create(c.Context(), userID, input)
	if err != nil {
		return translateAdoptionError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

func (h *AdoptionHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	a, err := h.adoptionService.GetByID(c.Context(), id)
	if err != nil {
		return translateAdoptionError(err)
	}

	// Only the adopter, the owning shelter's admin or a site admin may look.
	user := middleware.GetCurrentUser(c)
	if user != nil && user.Role != string(domain.RoleAdmin) && a.AdopterID != user.ID {
		s, err := h.shelterService.GetByAdminID(c.Context(), user.ID)
		if err != nil || s.ID != a.ShelterID {
			return middleware.Forbidden("Not allowed to view this adoption")
		}
	}

	return c.Status(fiber.StatusOK).JSON(a)
}

func (h *AdoptionHandler) Approve(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	s, err := h.callerShelter(c)
	if err != nil {
		return err
	}

	a, err := h.adoptionService.Approve(c.Context(), id, s.ID)
	if err != nil {
		return translateAdoptionError(err)
	}
	return c.Status(fiber.StatusOK).JSON(a)
}

func (h *AdoptionHandler) Reject(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	s, err := h.callerShelter(c)
	if err != nil {
		return err
	}

	var input struct {
		RejectionReason string `json:"rejection_reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.RejectionReason == "" {
		return middleware.BadRequest("rejection_reason is required")
	}

	a, err := h.adoptionService.Reject(c.Context(), id, s.ID, input.RejectionReason)
	if err != nil {
		return translateAdoptionError(err)
	}
	return c.Status(fiber.StatusOK).JSON(a)
}

func (h *AdoptionHandler) Complete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	s, err := h.callerShelter(c)
	if err != nil {
		return err
	}

	a, err := h.adoptionService.Complete(c.Context(), id, s.ID)
	if err != nil {
		return translateAdoptionError(err)
	}
	return c.Status(fiber.StatusOK).JSON(a)
}

func (h *AdoptionHandler) Cancel(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	userID := middleware.GetCurrentUserID(c)

	a, err := h.adoptionService.Cancel(c.Context(), id, userID)
	if err != nil {
		return translateAdoptionError(err)
	}
	return c.Status(fiber.StatusOK).JSON(a)
}

func (h *AdoptionHandler) ListMine(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	result, err := h.adoptionService.ListByAdopter(c.Context(), userID, getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AdoptionHandler) ListForShelter(c *fiber.Ctx) error {
	s, err := h.callerShelter(c)
	if err != nil {
		return err
	}

	var status *domain.AdoptionStatus
	if raw := c.Query("status"); raw != "" {
		st := domain.AdoptionStatus(raw)
		if !st.IsValid() {
			return middleware.BadRequest("Invalid adoption status")
		}
		status = &st
	}

	result, err := h.adoptionService.ListByShelter(c.Context(), s.ID, status, getPaginationParams(c))
	if err != nil {
		return translateAdoptionError(err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AdoptionHandler) ListByStatus(c *fiber.Ctx) error {
	status := domain.AdoptionStatus(c.Query("status"))
	if !status.IsValid() {
		return middleware.BadRequest("Invalid adoption status")
	}

	result, err := h.adoptionService.ListByStatus(c.Context(), status, getPaginationParams(c))
	if err != nil {
		return translateAdoptionError(err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
