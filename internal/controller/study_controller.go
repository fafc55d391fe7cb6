package controller

import (
	"ai-learning-be/internal/dto"
	"ai-learning-be/internal/pkg/serverutils"
	"ai-learning-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IStudyController interface {
	RegisterRoutes(r fiber.Router)
	GenerateFlashcards(ctx *fiber.Ctx) error
	GenerateQuiz(ctx *fiber.Ctx) error
	CheckAnswer(ctx *fiber.Ctx) error
}

type studyController struct {
	studyService service.IStudyService
}

func NewStudyController(studyService service.IStudyService) IStudyController {
	return &studyController{
		studyService: studyService,
	}
}

func (c *studyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/learning/v1")
	h.Post("flashcards", c.GenerateFlashcards)
	h.Post("quiz", c.GenerateQuiz)
	h.Post("check-answer", c.CheckAnswer)
}

func (c *studyController) GenerateFlashcards(ctx *fiber.Ctx) error {
	var req dto.GenerateFlashcardsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.studyService.GenerateFlashcards(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate flashcards", res))
}

func (c *studyController) GenerateQuiz(ctx *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.studyService.GenerateQuiz(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate quiz", res))
}

func (c *studyController) CheckAnswer(ctx *fiber.Ctx) error {
	var req dto.CheckAnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.studyService.CheckAnswer(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success check answer", res))
}
