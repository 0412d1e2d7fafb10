package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tailpair/internal/domain"
	"tailpair/internal/middleware"
	"tailpair/internal/service/message"
)

type MessageHandler struct {
	messageService message.Service
}

func NewMessageHandler(messageService message.Service) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func translateMessageError(err error) error {
	switch {
	case errors.Is(err, domain.ErrMessageNotFound):
		return middleware.NotFound("Message not found")
	case errors.Is(err, domain.ErrUserNotFound):
		return middleware.NotFound("User not found")
	case errors.Is(err, domain.ErrAnimalNotFound):
		return middleware.NotFound("Animal not found")
	case errors.Is(err, message.ErrNotRecipient):
		return middleware.Forbidden("Only the recipient can mark a message as read")
	case errors.Is(err, message.ErrNotParticipant):
		return middleware.Forbidden("Only the sender or recipient can act on this message")
	case errors.Is(err, message.ErrSelfMessage):
		return middleware.BadRequest("Cannot send a message to yourself")
	}
	return err
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.SendMessageInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Subject == "" || input.Content == "" {
		return middleware.BadRequest("subject and content are required")
	}

	msg, err := h.messageService.Send(c.Context(), userID, input)
	if err != nil {
		return translateMessageError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

func (h *MessageHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	userID := middleware.GetCurrentUserID(c)

	msg, err := h.messageService.GetByID(c.Context(), id, userID)
	if err != nil {
		return translateMessageError(err)
	}
	return c.Status(fiber.StatusOK).JSON(msg)
}

func (h *MessageHandler) MarkAsRead(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	userID := middleware.GetCurrentUserID(c)

	if err := h.messageService.MarkAsRead(c.Context(), id, userID); err != nil {
		return translateMessageError(err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Marked as read",
	})
}

func (h *MessageHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	userID := middleware.GetCurrentUserID(c)

	if err := h.messageService.Delete(c.Context(), id, userID); err != nil {
		return translateMessageError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *MessageHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	params := getPaginationParams(c)

	var (
		result domain.PaginatedResponse[domain.Message]
		err    error
	)
	switch c.Query("box", "all") {
	case "sent":
		result, err = h.messageService.ListSent(c.Context(), userID, params)
	case "received":
		result, err = h.messageService.ListReceived(c.Context(), userID, params)
	case "unread":
		result, err = h.messageService.ListUnread(c.Context(), userID, params)
	case "all":
		result, err = h.messageService.ListByUser(c.Context(), userID, params)
	default:
		return middleware.BadRequest("Invalid box, expected all, sent, received or unread")
	}
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *MessageHandler) ListByAnimal(c *fiber.Ctx) error {
	animalID, err := parseUUIDParam(c, "animalId")
	if err != nil {
		return err
	}
	userID := middleware.GetCurrentUserID(c)

	result, err := h.messageService.ListByAnimal(c.Context(), animalID, userID, getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *MessageHandler) UnreadCount(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	count, err := h.messageService.CountUnread(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"unread": count,
	})
}
