package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"perfect-cfw/internal/domain"
	"perfect-cfw/internal/middleware"
	"perfect-cfw/internal/service/question"
)

type QuestionHandler struct {
	questionService question.Service
}

func NewQuestionHandler(questionService question.Service) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

func (h *QuestionHandler) List(c *fiber.Ctx) error {
	var filter domain.QuestionFilter

	if raw := c.Query("type"); raw != "" {
		t := domain.QuestionType(raw)
		filter.Type = &t
	}
	if raw := c.Query("is_basic"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filter.IsBasic = &v
		}
	}
	if raw := c.Query("active"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filter.Active = &v
		}
	}

	questions, err := h.questionService.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return ok(c, questions)
}

func (h *QuestionHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid question ID")
	}

	q, err := h.questionService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, question.ErrQuestionNotFound) {
			return middleware.NotFound("Question not found")
		}
		return err
	}
	return ok(c, q)
}

func (h *QuestionHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateQuestionInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	q, err := h.questionService.Create(c.Context(), input)
	if err != nil {
		if errors.Is(err, question.ErrInvalidInput) {
			return middleware.BadRequest("Question text and a valid type are required")
		}
		return err
	}
	return created(c, q)
}

func (h *QuestionHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid question ID")
	}

	var input domain.UpdateQuestionInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	q, err := h.questionService.Update(c.Context(), id, input)
	if err != nil {
		if errors.Is(err, question.ErrQuestionNotFound) {
			return middleware.NotFound("Question not found")
		}
		if errors.Is(err, question.ErrInvalidInput) {
			return middleware.BadRequest("Question text and a valid type are required")
		}
		return err
	}
	return ok(c, q)
}

func (h *QuestionHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid question ID")
	}

	if err := h.questionService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, question.ErrQuestionNotFound) {
			return middleware.NotFound("Question not found")
		}
		return err
	}
	return okMessage(c, "Question deleted", nil)
}

func (h *QuestionHandler) ToggleActive(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid question ID")
	}

	q, err := h.questionService.ToggleActive(c.Context(), id)
	if err != nil {
		if errors.Is(err, question.ErrQuestionNotFound) {
			return middleware.NotFound("Question not found")
		}
		return err
	}
	return ok(c, q)
}

func (h *QuestionHandler) ForApplication(c *fiber.Ctx) error {
	questions, err := h.questionService.ForApplication(c.Context())
	if err != nil {
		return err
	}
	return ok(c, questions)
}
