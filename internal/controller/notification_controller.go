package controller

import (
	"adminboard-be/internal/dto"
	"adminboard-be/internal/pkg/serverutils"
	"adminboard-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INotificationController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	UnreadCount(ctx *fiber.Ctx) error
	MarkRead(ctx *fiber.Ctx) error
}

type notificationController struct {
	service service.INotificationService
}

func NewNotificationController(service service.INotificationService) INotificationController {
	return &notificationController{service: service}
}

func (c *notificationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notifications")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/", c.List)
	h.Get("/unread-count", c.UnreadCount) // specific route before :id
	h.Patch("/:id/read", c.MarkRead)
	h.Post("/", serverutils.AdminOnly, c.Send)
}

func (c *notificationController) Send(ctx *fiber.Ctx) error {
	var req dto.SendNotificationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	view, err := c.service.Send(ctx.UserContext(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Notification sent", view))
}

func (c *notificationController) List(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.ListFor(ctx.UserContext(), serverutils.UserID(ctx), limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Notifications", res))
}

func (c *notificationController) UnreadCount(ctx *fiber.Ctx) error {
	count, err := c.service.UnreadCount(ctx.UserContext(), serverutils.UserID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Unread count", dto.UnreadCountResponse{Count: count}))
}

func (c *notificationController) MarkRead(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid notification id"))
	}

	view, err := c.service.MarkRead(ctx.UserContext(), id, serverutils.UserID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Notification marked as read", view))
}
