package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"perfect-cfw/internal/domain"
	"perfect-cfw/internal/middleware"
	"perfect-cfw/internal/service/activity"
	"perfect-cfw/internal/service/rules"
)

type RulesHandler struct {
	rulesService    rules.Service
	activityService activity.Service
}

func NewRulesHandler(rulesService rules.Service, activityService activity.Service) *RulesHandler {
	return &RulesHandler{rulesService: rulesService, activityService: activityService}
}

func (h *RulesHandler) ListPublic(c *fiber.Ctx) error {
	sections, err := h.rulesService.ListActive(c.Context())
	if err != nil {
		return err
	}
	return ok(c, sections)
}

func (h *RulesHandler) ListAll(c *fiber.Ctx) error {
	sections, err := h.rulesService.ListAll(c.Context())
	if err != nil {
		return err
	}
	return ok(c, sections)
}

func (h *RulesHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid section ID")
	}

	section, err := h.rulesService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, rules.ErrSectionNotFound) {
			return middleware.NotFound("Rule section not found")
		}
		return err
	}
	return ok(c, section)
}

func (h *RulesHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateRuleSectionInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	section, err := h.rulesService.Create(c.Context(), input)
	if err != nil {
		if errors.Is(err, rules.ErrInvalidInput) {
			return middleware.BadRequest("Section title is required")
		}
		return err
	}

	recordActivity(c, h.activityService, domain.ActionCreateRule,
		"Created rule section "+section.Title, section.ID.String(), "rule_section")

	return created(c, section)
}

func (h *RulesHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid section ID")
	}

	var input domain.UpdateRuleSectionInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	section, err := h.rulesService.Update(c.Context(), id, input)
	if err != nil {
		if errors.Is(err, rules.ErrSectionNotFound) {
			return middleware.NotFound("Rule section not found")
		}
		if errors.Is(err, rules.ErrInvalidInput) {
			return middleware.BadRequest("Invalid rule section update")
		}
		return err
	}

	recordActivity(c, h.activityService, domain.ActionUpdateRule,
		"Updated rule section "+section.Title, section.ID.String(), "rule_section")

	return ok(c, section)
}

func (h *RulesHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid section ID")
	}

	if err := h.rulesService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, rules.ErrSectionNotFound) {
			return middleware.NotFound("Rule section not found")
		}
		return err
	}

	recordActivity(c, h.activityService, domain.ActionDeleteRule,
		"Deleted rule section", id.String(), "rule_section")

	return okMessage(c, "Rule section deleted", nil)
}

func (h *RulesHandler) Reorder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid section ID")
	}

	var input domain.ReorderInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.NewOrder == nil {
		return middleware.BadRequest("new_order is required")
	}

	section, err := h.rulesService.Reorder(c.Context(), id, *input.NewOrder)
	if err != nil {
		if errors.Is(err, rules.ErrSectionNotFound) {
			return middleware.NotFound("Rule section not found")
		}
		if errors.Is(err, rules.ErrInvalidOrder) {
			return middleware.BadRequest("new_order is out of range")
		}
		return err
	}

	recordActivity(c, h.activityService, domain.ActionUpdateRule,
		"Reordered rule section "+section.Title, section.ID.String(), "rule_section")

	return ok(c, section)
}

func (h *RulesHandler) AddRule(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid section ID")
	}

	var input domain.RuleTextInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	section, err := h.rulesService.AddRule(c.Context(), id, input.Text)
	if err != nil {
		if errors.Is(err, rules.ErrSectionNotFound) {
			return middleware.NotFound("Rule section not found")
		}
		if errors.Is(err, rules.ErrInvalidInput) {
			return middleware.BadRequest("Rule text is required")
		}
		return err
	}
	return ok(c, section)
}

func (h *RulesHandler) UpdateRule(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid section ID")
	}
	ruleID, err := uuid.Parse(c.Params("ruleId"))
	if err != nil {
		return middleware.BadRequest("Invalid rule ID")
	}

	var input domain.RuleTextInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	section, err := h.rulesService.UpdateRule(c.Context(), sectionID, ruleID, input.Text)
	if err != nil {
		if errors.Is(err, rules.ErrSectionNotFound) {
			return middleware.NotFound("Rule section not found")
		}
		if errors.Is(err, rules.ErrRuleNotFound) {
			return middleware.NotFound("Rule not found in section")
		}
		if errors.Is(err, rules.ErrInvalidInput) {
			return middleware.BadRequest("Rule text is required")
		}
		return err
	}
	return ok(c, section)
}

func (h *RulesHandler) RemoveRule(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid section ID")
	}
	ruleID, err := uuid.Parse(c.Params("ruleId"))
	if err != nil {
		return middleware.BadRequest("Invalid rule ID")
	}

	section, err := h.rulesService.RemoveRule(c.Context(), sectionID, ruleID)
	if err != nil {
		if errors.Is(err, rules.ErrSectionNotFound) {
			return middleware.NotFound("Rule section not found")
		}
		if errors.Is(err, rules.ErrRuleNotFound) {
			return middleware.NotFound("Rule not found in section")
		}
		return err
	}
	return ok(c, section)
}
