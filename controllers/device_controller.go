package controllers

import (
	"fiber-tracking/middleware"
	"fiber-tracking/models"
	"fiber-tracking/repositories"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DeviceController struct {
	DB *gorm.DB
}

func NewDeviceController(db *gorm.DB) *DeviceController {
	return &DeviceController{DB: db}
}

// Register binds the calling device's fingerprint to an employee.
// Re-registering an existing employee code re-binds that employee to
// this device instead of creating a duplicate.
func (c *DeviceController) Register(ctx *fiber.Ctx) error {
	var input struct {
		EmployeeCode string `json:"employee_code" validate:"required,max=30"`
		UserName     string `json:"user_name" validate:"required"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	fp, _ := ctx.Locals(middleware.LocalsFingerprint).(string)

	repo := repositories.NewDeviceRepository(c.DB)
	device, err := repo.Register(fp, input.EmployeeCode, input.UserName, ctx.IP(), ctx.Get("User-Agent"))
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Device registered",
		"data":    device,
	})
}

// Me reports how the calling device resolves right now.
func (c *DeviceController) Me(ctx *fiber.Ctx) error {
	fp, _ := ctx.Locals(middleware.LocalsFingerprint).(string)
	label, _ := ctx.Locals(middleware.LocalsScannedBy).(string)

	result := fiber.Map{
		"success":     true,
		"fingerprint": fp,
		"scanned_by":  label,
		"registered":  false,
	}
	if device, ok := ctx.Locals(middleware.LocalsDevice).(*models.ScanDevice); ok {
		result["registered"] = true
		result["data"] = device
	}

	return ctx.Status(fiber.StatusOK).JSON(result)
}

func (c *DeviceController) List(ctx *fiber.Ctx) error {
	repo := repositories.NewDeviceRepository(c.DB)
	devices, err := repo.List()
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": devices})
}
