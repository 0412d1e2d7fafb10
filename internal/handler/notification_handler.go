package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tailpair/internal/domain"
	"tailpair/internal/middleware"
	"tailpair/internal/service/notification"
)

type NotificationHandler struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateNotificationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.UserID == uuid.Nil || input.Title == "" || input.Message == "" {
		return middleware.BadRequest("user_id, title and message are required")
	}

	notif, err := h.notificationService.Create(c.Context(), input)
	if err != nil {
		if errors.Is(err, notification.ErrInvalidType) {
			return middleware.BadRequest("Invalid notification type")
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(notif)
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	params := getPaginationParams(c)

	if raw := c.Query("type"); raw != "" {
		notifType := domain.NotificationType(raw)
		result, err := h.notificationService.ListByUserAndType(c.Context(), userID, notifType, params)
		if err != nil {
			if errors.Is(err, notification.ErrInvalidType) {
				return middleware.BadRequest("Invalid notification type")
			}
			return err
		}
		return c.Status(fiber.StatusOK).JSON(result)
	}

	unreadOnly := c.QueryBool("unread", false)
	result, err := h.notificationService.ListByUser(c.Context(), userID, unreadOnly, params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	userID := middleware.GetCurrentUserID(c)

	notif, err := h.notificationService.GetByID(c.Context(), id, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			return middleware.NotFound("Notification not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(notif)
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	userID := middleware.GetCurrentUserID(c)

	if err := h.notificationService.MarkAsRead(c.Context(), id, userID); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			return middleware.NotFound("Notification not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Marked as read",
	})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	userID := middleware.GetCurrentUserID(c)

	if err := h.notificationService.Delete(c.Context(), id, userID); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			return middleware.NotFound("Notification not found")
		}
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	count, err := h.notificationService.CountUnread(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"unread": count,
	})
}
