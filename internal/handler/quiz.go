package handler

import (
	"quizoraa/internal/domain"
	"quizoraa/internal/dto"
	"quizoraa/internal/logger"
	"quizoraa/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz generation HTTP requests
type QuizHandler struct {
	service service.QuizGenerationService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizGenerationService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz with AI
// @Description Runs the full generation pipeline and persists the result
// @Tags quizzes
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Generation parameters"
// @Success 201 {object} dto.GenerateQuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quizzes/generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	result, err := h.service.GenerateQuiz(c.UserContext(), &req)
	if err != nil {
		logger.Get().Error("Failed to generate quiz",
			zap.Error(err),
			zap.String("creator_id", req.CreatorID),
			zap.String("category", req.Category),
		)
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetQuiz godoc
// @Summary Get a quiz with its questions
// @Description Returns a quiz header together with its questions in order
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizDetailResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quizID := c.Params("id")
	if quizID == "" {
		return domain.NewInvalidInputError("quiz id is required")
	}

	result, err := h.service.GetQuizWithQuestions(c.UserContext(), quizID)
	if err != nil {
		return err
	}

	return c.JSON(result)
}
