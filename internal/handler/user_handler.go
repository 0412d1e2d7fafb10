package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tailpair/internal/domain"
	"tailpair/internal/middleware"
	"tailpair/internal/service/user"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	u, err := h.userService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(u)
}

func (h *UserHandler) GetByUsername(c *fiber.Ctx) error {
	username := c.Params("username")

	u, err := h.userService.GetByUsername(c.Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(u)
}

func (h *UserHandler) ExistsByUsername(c *fiber.Ctx) error {
	exists, err := h.userService.ExistsByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"exists": exists})
}

func (h *UserHandler) ExistsByEmail(c *fiber.Ctx) error {
	exists, err := h.userService.ExistsByEmail(c.Context(), c.Params("email"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"exists": exists})
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	u, err := h.userService.Update(c.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return middleware.NotFound("User not found")
		case errors.Is(err, user.ErrUsernameTaken):
			return middleware.Conflict("Username already taken")
		case errors.Is(err, user.ErrEmailTaken):
			return middleware.Conflict("Email already registered")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(u)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) SetEnabled(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var input struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	u, err := h.userService.SetEnabled(c.Context(), id, input.Enabled)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(u)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	if role := c.Query("role"); role != "" {
		userRole := domain.UserRole(role)
		if !userRole.IsValid() {
			return middleware.BadRequest("Invalid role")
		}
		result, err := h.userService.ListByRole(c.Context(), userRole, params)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(result)
	}

	result, err := h.userService.List(c.Context(), params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *UserHandler) Search(c *fiber.Ctx) error {
	term := c.Query("q")
	if term == "" {
		return middleware.BadRequest("Search term is required")
	}

	result, err := h.userService.Search(c.Context(), term, getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
