package controllers

import (
	"time"

	"fiber-tracking/models"
	"fiber-tracking/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// Summary returns code counts per workflow status plus today's scan
// volume.
func (c *DashboardController) Summary(ctx *fiber.Ctx) error {
	unitRepo := repositories.NewUnitRepository(c.DB)

	counts, err := unitRepo.CountByStatus()
	if err != nil {
		return RespondError(ctx, err)
	}

	today := time.Now().Truncate(24 * time.Hour)
	var scansToday int64
	if err := c.DB.Model(&models.ScanHistory{}).
		Where("created_at >= ?", today).
		Count(&scansToday).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":     true,
		"by_status":   counts,
		"scans_today": scansToday,
	})
}
