package controller

import (
	"foodiebot-be/internal/dto"
	"foodiebot-be/internal/pkg/serverutils"
	"foodiebot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Turn(ctx *fiber.Ctx) error
	Choice(ctx *fiber.Ctx) error
}

type chatController struct {
	recommendationService service.IRecommendationService
}

func NewChatController(recommendationService service.IRecommendationService) IChatController {
	return &chatController{
		recommendationService: recommendationService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("/turn", c.Turn)
	h.Post("/choice", c.Choice)
}

func (c *chatController) Turn(ctx *fiber.Ctx) error {
	var req dto.ChatTurnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.recommendationService.HandleTurn(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process turn", res))
}

func (c *chatController) Choice(ctx *fiber.Ctx) error {
	var req dto.RecordChoiceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.recommendationService.RecordChoice(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success record choice", nil))
}
