package controllers

import (
	"context"
	"log"
	"time"

	"fiber-tracking/controllers/helpers"
	"fiber-tracking/middleware"
	"fiber-tracking/notifier"
	"fiber-tracking/repositories"
	"fiber-tracking/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ScanController struct {
	DB       *gorm.DB
	Notifier notifier.Notifier
}

func NewScanController(db *gorm.DB, n notifier.Notifier) *ScanController {
	if n == nil {
		n = notifier.Noop{}
	}
	return &ScanController{DB: db, Notifier: n}
}

// Scan advances one unit to its next pipeline stage. One logical unit
// of work per request: resolve identity (middleware), load the unit,
// determine the transition, validate the dwell-time gate, apply the
// stage update, propagate to the group, notify listeners.
func (c *ScanController) Scan(ctx *fiber.Ctx) error {
	var input struct {
		ProductCode string  `json:"product_code"`
		Quantity    float64 `json:"quantity"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.ProductCode == "" {
		return RespondError(ctx, services.NewValidationError("product_code is required"))
	}

	unitRepo := repositories.NewUnitRepository(c.DB)
	configRepo := repositories.NewWorkflowConfigRepository(c.DB)

	unit, err := unitRepo.GetByProductCode(input.ProductCode)
	if err != nil {
		return RespondError(ctx, err)
	}

	if unit.NeedsSetup {
		return RespondError(ctx, services.NewPreconditionError("lot %s still needs setup, assign a name and barcode first", unit.ProductCode))
	}

	step := services.NextStep(unit)
	if step == services.StepNone {
		return RespondError(ctx, services.NewPreconditionError("code %s has already completed every stage", unit.ProductCode))
	}

	now := time.Now()
	timing, err := services.ValidateTiming(configRepo.Lookup(), unit, step, now)
	if err != nil {
		return RespondError(ctx, err)
	}
	if !timing.Allowed {
		if timing.RemainingSeconds > 0 {
			return RespondError(ctx, &services.TimingNotElapsedError{
				Step:             step,
				RemainingSeconds: timing.RemainingSeconds,
				MinimumMinutes:   timing.MinimumMinutes,
			})
		}
		return RespondError(ctx, services.NewPreconditionError("%s", timing.Message))
	}

	// Warehousing is the handover to stock and must be attributable to
	// a registered employee. Earlier stages accept unknown devices.
	if step == services.StepWarehousing && ctx.Locals(middleware.LocalsDevice) == nil {
		return RespondError(ctx, services.NewPreconditionError("warehousing scans require a registered device"))
	}

	actor, _ := ctx.Locals(middleware.LocalsScannedBy).(string)
	qty := input.Quantity
	if qty == 0 {
		qty = unit.Quantity
	}

	if err := unitRepo.ApplyStageScan(unit, step, actor, qty, now); err != nil {
		return RespondError(ctx, err)
	}

	// Best effort from here on: the primary scan is the authoritative
	// action and is never rolled back by follow-up failures.
	siblings, err := unitRepo.PropagateStatus(unit, unit.Status, now)
	if err != nil {
		log.Printf("group propagation failed for %s: %v", unit.ProductCode, err)
	}

	if err := helpers.InsertScanHistory(c.DB, unit.ProductCode, unit.LotBarcode, step, actor, qty); err != nil {
		log.Printf("scan history insert failed for %s: %v", unit.ProductCode, err)
	}

	if err := c.Notifier.Publish(context.Background(), "scan.completed", fiber.Map{
		"product_code": unit.ProductCode,
		"lot_barcode":  unit.LotBarcode,
		"stage":        step,
		"status":       unit.Status,
		"scanned_by":   actor,
		"group_size":   unit.TotalCodes,
	}); err != nil {
		log.Printf("event publish failed for %s: %v", unit.ProductCode, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":          true,
		"message":          "Scan recorded",
		"data":             unit,
		"stage":            step,
		"siblings_updated": siblings,
	})
}

// NextStep previews the next stage and its timing gate for the scanner
// UI. No side effects.
func (c *ScanController) NextStep(ctx *fiber.Ctx) error {
	productCode := ctx.Params("product_code")

	unitRepo := repositories.NewUnitRepository(c.DB)
	configRepo := repositories.NewWorkflowConfigRepository(c.DB)

	unit, err := unitRepo.GetByProductCode(productCode)
	if err != nil {
		return RespondError(ctx, err)
	}

	step := services.NextStep(unit)
	result := fiber.Map{
		"success":     true,
		"data":        unit,
		"next_step":   step,
		"needs_setup": unit.NeedsSetup,
	}

	if step != services.StepNone && !unit.NeedsSetup {
		timing, err := services.ValidateTiming(configRepo.Lookup(), unit, step, time.Now())
		if err != nil {
			return RespondError(ctx, err)
		}
		result["timing"] = timing
	}

	return ctx.Status(fiber.StatusOK).JSON(result)
}
