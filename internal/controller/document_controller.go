package controller

import (
	"ai-learning-be/internal/dto"
	"ai-learning-be/internal/pkg/serverutils"
	"ai-learning-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	ProcessVideo(ctx *fiber.Ctx) error
	ProcessPdf(ctx *fiber.Ctx) error
}

type documentController struct {
	ingestionService service.IIngestionService
}

func NewDocumentController(ingestionService service.IIngestionService) IDocumentController {
	return &documentController{
		ingestionService: ingestionService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/learning/v1")
	h.Post("process-video", c.ProcessVideo)
	h.Post("process-pdf", c.ProcessPdf)
}

func (c *documentController) ProcessVideo(ctx *fiber.Ctx) error {
	var req dto.ProcessVideoRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ingestionService.ProcessVideo(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process video", res))
}

func (c *documentController) ProcessPdf(ctx *fiber.Ctx) error {
	var req dto.ProcessPdfRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ingestionService.ProcessPdf(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process pdf", res))
}
