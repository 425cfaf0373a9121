package controllers

import (
	"fiber-tracking/repositories"
	"fiber-tracking/services"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type WorkflowConfigController struct {
	DB *gorm.DB
}

func NewWorkflowConfigController(db *gorm.DB) *WorkflowConfigController {
	return &WorkflowConfigController{DB: db}
}

func (c *WorkflowConfigController) GetAll(ctx *fiber.Ctx) error {
	repo := repositories.NewWorkflowConfigRepository(c.DB)
	configs, err := repo.GetAll()
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": configs})
}

// Update changes the dwell-time gate for one of the three pipeline
// edges. Step names are fixed; unknown ones are rejected.
func (c *WorkflowConfigController) Update(ctx *fiber.Ctx) error {
	stepName := ctx.Params("step")

	known := false
	for _, name := range services.EdgeNames {
		if name == stepName {
			known = true
			break
		}
	}
	if !known {
		return RespondError(ctx, services.NewValidationError("unknown workflow step %q", stepName))
	}

	var input struct {
		MinimumMinutes int  `json:"minimum_minutes" validate:"min=0"`
		IsActive       bool `json:"is_active"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewWorkflowConfigRepository(c.DB)
	cfg, err := repo.Update(stepName, input.MinimumMinutes, input.IsActive)
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Workflow config updated",
		"data":    cfg,
	})
}
