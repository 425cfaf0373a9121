package controllers

import (
	"context"
	"errors"
	"log"
	"time"

	"fiber-tracking/controllers/idgen"
	"fiber-tracking/models"
	"fiber-tracking/notifier"
	"fiber-tracking/repositories"
	"fiber-tracking/services"
	"fiber-tracking/types"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LotController struct {
	DB       *gorm.DB
	Notifier notifier.Notifier
}

func NewLotController(db *gorm.DB, n notifier.Notifier) *LotController {
	if n == nil {
		n = notifier.Noop{}
	}
	return &LotController{DB: db, Notifier: n}
}

// createAttempts bounds the generate-then-insert retry when a
// concurrent writer wins a code between the pre-check and the insert.
const createAttempts = 2

// CreateLot creates one lot as a batch of 1..N scannable codes.
// Quantity-first lots (no name, no barcode) are created with
// needs_setup and get their label during setup completion.
func (c *LotController) CreateLot(ctx *fiber.Ctx) error {
	var input struct {
		LotName    string  `json:"lot_name"`
		LotBarcode string  `json:"lot_barcode" validate:"omitempty,max=20"`
		Quantity   float64 `json:"quantity" validate:"required,gt=0"`
		TotalCodes int     `json:"total_codes" validate:"required,min=1,max=99"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	gen := services.NewCodeGenerator()
	now := time.Now()

	needsSetup := input.LotName == "" && input.LotBarcode == ""
	auto := input.LotBarcode == ""

	base := input.LotBarcode
	if !needsSetup && auto {
		var err error
		base, err = gen.GenerateLotBarcode(now)
		if err != nil {
			return RespondError(ctx, err)
		}
	}

	barcodes, err := groupBarcodes(base, input.TotalCodes, auto, needsSetup)
	if err != nil {
		return RespondError(ctx, err)
	}

	unitRepo := repositories.NewUnitRepository(c.DB)

	var group []models.ProductionCode
	for attempt := 0; attempt < createAttempts; attempt++ {
		codes, err := gen.GenerateUniqueBatch(input.TotalCodes, unitRepo.ExistingCodes)
		if err != nil {
			return RespondError(ctx, err)
		}

		masterID := types.SnowflakeID(idgen.GenerateID())
		group = make([]models.ProductionCode, 0, input.TotalCodes)
		for i := 1; i <= input.TotalCodes; i++ {
			unit := models.ProductionCode{
				ProductCode: codes[i-1],
				LotBarcode:  barcodes[i-1],
				LotName:     input.LotName,
				IsMaster:    i == 1,
				CodeIndex:   i,
				TotalCodes:  input.TotalCodes,
				Quantity:    input.Quantity,
				NeedsSetup:  needsSetup,
				Status:      services.StatusCreated,
			}
			if i == 1 {
				unit.ID = masterID
			} else {
				parent := masterID
				unit.ParentGroupID = &parent
			}
			group = append(group, unit)
		}

		err = unitRepo.CreateLotUnits(group)
		if err == nil {
			break
		}
		var conflict *services.ConflictError
		if errors.As(err, &conflict) && attempt+1 < createAttempts {
			continue
		}
		return RespondError(ctx, err)
	}

	if err := c.Notifier.Publish(context.Background(), "lot.created", fiber.Map{
		"lot_barcode": base,
		"lot_name":    input.LotName,
		"total_codes": input.TotalCodes,
		"needs_setup": needsSetup,
	}); err != nil {
		log.Printf("event publish failed for new lot %s: %v", base, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Lot created",
		"data":    group,
	})
}

// SetupLot assigns the lot name and barcode to a quantity-first group
// and clears needs_setup on every member.
func (c *LotController) SetupLot(ctx *fiber.Ctx) error {
	productCode := ctx.Params("product_code")

	var input struct {
		LotName    string `json:"lot_name" validate:"required"`
		LotBarcode string `json:"lot_barcode" validate:"omitempty,max=20"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	unitRepo := repositories.NewUnitRepository(c.DB)

	unit, err := unitRepo.GetByProductCode(productCode)
	if err != nil {
		return RespondError(ctx, err)
	}
	if !unit.NeedsSetup {
		return RespondError(ctx, services.NewPreconditionError("lot %s is already set up", unit.ProductCode))
	}

	group, err := unitRepo.Group(unit)
	if err != nil {
		return RespondError(ctx, err)
	}

	gen := services.NewCodeGenerator()
	auto := input.LotBarcode == ""
	base := input.LotBarcode
	if auto {
		base, err = gen.GenerateLotBarcode(time.Now())
		if err != nil {
			return RespondError(ctx, err)
		}
	}

	barcodes, err := groupBarcodes(base, len(group), auto, false)
	if err != nil {
		return RespondError(ctx, err)
	}

	if err := unitRepo.CompleteSetup(group, input.LotName, barcodes); err != nil {
		return RespondError(ctx, err)
	}

	group, err = unitRepo.Group(unit)
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Lot setup completed",
		"data":    group,
	})
}

// GetLot returns the scanned unit together with its whole group.
func (c *LotController) GetLot(ctx *fiber.Ctx) error {
	productCode := ctx.Params("product_code")

	unitRepo := repositories.NewUnitRepository(c.DB)

	unit, err := unitRepo.GetByProductCode(productCode)
	if err != nil {
		return RespondError(ctx, err)
	}

	group, err := unitRepo.Group(unit)
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    unit,
		"group":   group,
	})
}

// ListLots lists lot masters, optionally filtered by status.
func (c *LotController) ListLots(ctx *fiber.Ctx) error {
	unitRepo := repositories.NewUnitRepository(c.DB)

	masters, err := unitRepo.ListMasters(ctx.Query("status"), ctx.QueryInt("limit"))
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": masters})
}

// groupBarcodes derives the printed barcode for each member. A
// single-code lot carries the base itself; multi-code lots get
// per-member derivations. Lots awaiting setup carry no barcode yet.
func groupBarcodes(base string, total int, auto, needsSetup bool) ([]string, error) {
	barcodes := make([]string, total)
	if needsSetup {
		return barcodes, nil
	}
	if total == 1 {
		if len(base) > services.BarcodeMaxLen {
			return nil, services.NewValidationError("lot barcode exceeds %d characters", services.BarcodeMaxLen)
		}
		barcodes[0] = base
		return barcodes, nil
	}
	for i := 1; i <= total; i++ {
		code, err := services.MemberBarcode(base, i, auto)
		if err != nil {
			return nil, err
		}
		barcodes[i-1] = code
	}
	return barcodes, nil
}
