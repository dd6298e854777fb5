package controller

import (
	"foodiebot-be/internal/dto"
	"foodiebot-be/internal/pkg/serverutils"
	"foodiebot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRecommendController interface {
	RegisterRoutes(r fiber.Router)
	Recommend(ctx *fiber.Ctx) error
}

type recommendController struct {
	recommendationService service.IRecommendationService
}

func NewRecommendController(recommendationService service.IRecommendationService) IRecommendController {
	return &recommendController{
		recommendationService: recommendationService,
	}
}

func (c *recommendController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/recommend/v1")
	h.Post("", c.Recommend)
}

func (c *recommendController) Recommend(ctx *fiber.Ctx) error {
	var req dto.RecommendRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.recommendationService.Recommend(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success recommend products", res))
}
