package controllers

import (
	"errors"

	"fiber-tracking/services"

	"github.com/gofiber/fiber/v2"
)

// RespondError maps the service error taxonomy to HTTP statuses in one
// place so every handler returns the same body shape.
func RespondError(ctx *fiber.Ctx, err error) error {
	var (
		validationErr *services.ValidationError
		conflictErr   *services.ConflictError
		notFoundErr   *services.NotFoundError
		preconditErr  *services.PreconditionError
		timingErr     *services.TimingNotElapsedError
		exhaustedErr  *services.GenerationExhaustedError
	)

	switch {
	case errors.As(err, &validationErr):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr.Msg, "message": validationErr.Msg})
	case errors.As(err, &conflictErr):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": conflictErr.Msg, "message": conflictErr.Msg})
	case errors.As(err, &notFoundErr):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFoundErr.Msg, "message": notFoundErr.Msg})
	case errors.As(err, &preconditErr):
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": preconditErr.Msg, "message": preconditErr.Msg})
	case errors.As(err, &timingErr):
		return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error":             timingErr.Error(),
			"message":           timingErr.Error(),
			"remaining_seconds": timingErr.RemainingSeconds,
			"minimum_minutes":   timingErr.MinimumMinutes,
		})
	case errors.As(err, &exhaustedErr):
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": exhaustedErr.Error(), "message": exhaustedErr.Error()})
	}

	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
