package controller

import (
	"adminboard-be/internal/dto"
	"adminboard-be/internal/pkg/serverutils"
	"adminboard-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPreferenceController interface {
	RegisterRoutes(r fiber.Router)
	Get(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
}

type preferenceController struct {
	service service.IPreferenceService
}

func NewPreferenceController(service service.IPreferenceService) IPreferenceController {
	return &preferenceController{service: service}
}

func (c *preferenceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/preferences")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/", c.Get)
	h.Put("/", c.Update)
}

func (c *preferenceController) Get(ctx *fiber.Ctx) error {
	res, err := c.service.Get(ctx.UserContext(), serverutils.UserID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Notification preferences", res))
}

func (c *preferenceController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdatePreferenceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.UserContext(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Preferences updated", res))
}
